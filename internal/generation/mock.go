package generation

import "context"

// MockGenerator returns a canned response. Used in tests and offline mode.
type MockGenerator struct {
	Response string
	Err      error

	// Captured from the last Generate call.
	LastSystemPrompt string
	LastUserPrompt   string
}

// NewMockGenerator creates a generator that always answers with response.
func NewMockGenerator(response string) *MockGenerator {
	return &MockGenerator{Response: response}
}

func (m *MockGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.LastSystemPrompt = systemPrompt
	m.LastUserPrompt = userPrompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
