package handler

import (
	"encoding/xml"
	"net/http"

	"github.com/Shriiii01/know-your-local-offers/internal/application/assist"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler handles inbound messaging webhooks
type WebhookHandler struct {
	BaseHandler
	chatService *assist.ChatService
	logger      *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(chatService *assist.ChatService, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// twimlResponse is the TwiML document Twilio expects back from a webhook
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// Twilio handles an inbound WhatsApp message. Twilio retries on non-2xx,
// so every outcome, including failures, answers 200 with TwiML.
func (h *WebhookHandler) Twilio(c *gin.Context) {
	from := c.PostForm("From")
	body := c.PostForm("Body")

	h.logger.Info("incoming whatsapp message",
		zap.String("from", from),
		zap.Int("body_length", len(body)),
	)

	reply := h.chatService.ReplyForWhatsApp(c.Request.Context(), body)

	h.writeTwiML(c, reply)
}

func (h *WebhookHandler) writeTwiML(c *gin.Context, message string) {
	out, err := xml.Marshal(twimlResponse{Message: message})
	if err != nil {
		h.logger.Error("twiml marshal failed", zap.Error(err))
		out = []byte("<Response><Message>Sorry, there was a technical issue. Please try again with an offers query.</Message></Response>")
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}
