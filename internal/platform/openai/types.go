package openai

// chatMessage is a single message in a chat-completions conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for the chat-completions endpoint.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// chatChoice is a single completion returned by the upstream.
type chatChoice struct {
	Message chatMessage `json:"message"`
}

// chatResponse is the subset of the chat-completions response body that the
// client reads.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}
