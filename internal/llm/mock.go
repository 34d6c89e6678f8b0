package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
// Si Responses tiene elementos se consumen en orden; al agotarse
// (o si esta vacio) se devuelve Response.
type MockClient struct {
	Response  string
	Responses []string
	Err       error

	Calls   int
	Prompts []string
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	idx := m.Calls
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if idx < len(m.Responses) {
		return m.Responses[idx], nil
	}
	return m.Response, nil
}

// MockImageClient permite tests sin llamar a la API de imagenes.
type MockImageClient struct {
	B64        string
	Err        error
	LastPrompt string
}

func (m *MockImageClient) Edit(ctx context.Context, prompt, imageB64 string) (string, error) {
	m.LastPrompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.B64, nil
}
