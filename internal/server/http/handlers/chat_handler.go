package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardafy/cardafy/internal/adapter/assistant"
	"github.com/cardafy/cardafy/internal/server/http/dto"
)

// ChatHandler proxies assistant conversations.
type ChatHandler struct {
	facade ChatFacade
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(facade ChatFacade) *ChatHandler {
	return &ChatHandler{facade: facade}
}

// Chat handles POST /api/chat. The assistant reply is streamed to the
// client as it arrives.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	history := make([]assistant.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		history = append(history, assistant.Message{Role: m.Role, Content: m.Content})
	}

	stream, err := h.facade.Chat(c.Request.Context(), history)
	if err != nil {
		c.Status(http.StatusBadGateway)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Status(http.StatusOK)

	// Flush after every read so chunks reach the client as the assistant
	// produces them instead of pooling in the response buffer.
	buf := make([]byte, 4096)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			if _, werr := c.Writer.Write(buf[:n]); werr != nil {
				return
			}
			c.Writer.Flush()
		}
		if err != nil {
			return
		}
	}
}
