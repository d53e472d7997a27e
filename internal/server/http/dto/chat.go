package dto

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries the conversation history.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}
