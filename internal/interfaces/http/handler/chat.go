package handler

import (
	"net/http"

	"github.com/Shriiii01/know-your-local-offers/internal/application/assist"
	"github.com/Shriiii01/know-your-local-offers/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ChatHandler handles conversational API endpoints
type ChatHandler struct {
	BaseHandler
	chatService *assist.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *assist.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ChatRequest represents a chat message from a client
type ChatRequest struct {
	Message  string `json:"message" binding:"required"`
	Language string `json:"language"`
}

// ChatResponse represents the assistant's reply
type ChatResponse struct {
	Response string `json:"response"`
	Language string `json:"language"`
}

// Chat generates a reply for a chat message. Upstream failures never
// surface here; the service degrades to a conversational apology.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if req.Language == "" {
		req.Language = "en"
	}

	reply := h.chatService.GenerateReply(c.Request.Context(), req.Message, req.Language)

	c.JSON(http.StatusOK, ChatResponse{
		Response: reply,
		Language: req.Language,
	})
}
