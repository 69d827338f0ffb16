package rag

const (
	// systemPrompt grounds the model in the retrieved passages and asks it
	// to refuse rather than invent when the passages do not cover the
	// question.
	systemPrompt = "You are a helpful assistant. Answer the user's question using only the provided context. Cite the passages you used as [1], [2] and so on. If the context does not contain the answer, say that you do not know. Be concise."

	msgEmptyQuestion = "Please provide a question to answer."
	msgNoData        = "No documents have been indexed yet. Index some documents first, then ask again."

	// fallbackPrefix starts the answer returned when generation fails and
	// the raw retrieved context is surfaced instead.
	fallbackPrefix = "Failed to generate an answer"

	// contextBudget caps the total characters of document text packed into
	// the prompt; perDocFloor is the minimum share any single document gets
	// no matter how many are retrieved.
	contextBudget = 2000
	perDocFloor   = 200

	snippetLen       = 160
	contextSeparator = "\n---\n"
)
