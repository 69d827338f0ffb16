package models

import "fmt"

// IndexInput is the input for indexing a document.
type IndexInput struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
}

// Validate ensures the input has text to index. ID may be empty; the caller
// assigns one.
func (in *IndexInput) Validate() error {
	if in.Text == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return nil
}

// AskRequest is a question against the indexed documents.
type AskRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}

// Validate ensures the request has a question and normalizes top_k.
// TopK defaults to 1; the service further clamps it to the store size.
func (q *AskRequest) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question cannot be empty")
	}
	if q.TopK <= 0 {
		q.TopK = 1
	}
	return nil
}

// AskResponse is the response for an ask request.
type AskResponse struct {
	Answer    string `json:"answer"`
	Question  string `json:"question"`
	QueryTime int64  `json:"query_time_ms"`
}
