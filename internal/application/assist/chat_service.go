package assist

import (
	"context"
	"strings"

	"github.com/Shriiii01/know-your-local-offers/internal/domain/assist"
	"github.com/Shriiii01/know-your-local-offers/internal/domain/offers"
	"go.uber.org/zap"
)

// Completer generates a chat completion from a system and user prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ChatService runs the conversational pipeline: classify the message,
// extract search parameters, run the fallback search cascade, then either
// narrate the results through the completion model or apologize with live
// suggestions. It never returns an error: every upstream failure degrades to
// a conversational reply.
type ChatService struct {
	repo      offers.Repository
	cascade   *offers.Cascade
	completer Completer
	logger    *zap.Logger
}

// NewChatService creates a ChatService. searchLimit caps the combined, city
// and category cascade steps; trendingLimit caps the terminal fallback.
func NewChatService(repo offers.Repository, completer Completer, searchLimit, trendingLimit int, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	cascade := offers.NewCascade(logger,
		offers.NewCombinedSearch(repo, searchLimit),
		offers.NewCitySearch(repo, searchLimit),
		offers.NewCategorySearch(repo, searchLimit),
		offers.NewTrendingSearch(repo, trendingLimit),
	)
	return &ChatService{
		repo:      repo,
		cascade:   cascade,
		completer: completer,
		logger:    logger,
	}
}

// GenerateReply produces the assistant's answer for a chat message. The
// language tag is echoed through for callers; replies are English today.
func (s *ChatService) GenerateReply(ctx context.Context, text, language string) string {
	if language == "" {
		language = "en"
	}

	if !assist.IsOffersQuery(text, language) {
		return chatRedirectMessage
	}

	query := offers.Query{
		Text:     text,
		City:     assist.ExtractCity(text),
		Category: assist.ExtractCategory(text),
	}
	results := s.cascade.Run(ctx, query)

	if len(results) == 0 {
		return s.noOffersReply(ctx)
	}

	reply, err := s.completer.Complete(ctx, offersSystemPrompt,
		buildOffersUserPrompt(text, formatOffersForPrompt(results)))
	if err != nil {
		s.logger.Warn("completion failed", zap.Error(err))
		return technicalIssueMessage
	}
	return reply
}

// ReplyForWhatsApp produces the webhook reply for an inbound WhatsApp
// message: welcome text for greetings, the chat pipeline for offers queries,
// a redirect otherwise. Non-greeting replies get the WhatsApp formatting.
func (s *ChatService) ReplyForWhatsApp(ctx context.Context, body string) string {
	body = strings.TrimSpace(body)

	if IsGreeting(body) {
		return welcomeMessage
	}

	var reply string
	if assist.IsOffersQuery(body, "en") {
		reply = s.GenerateReply(ctx, body, "en")
	} else {
		reply = whatsappRedirectMessage
	}
	return FormatForWhatsApp(reply)
}

// ExplainDocument runs OCR output through the reply pipeline.
func (s *ChatService) ExplainDocument(ctx context.Context, extracted, language string) string {
	return s.GenerateReply(ctx, buildDocumentPrompt(extracted), language)
}

// noOffersReply lists whatever cities and categories the store currently
// knows. Listing errors degrade to empty suggestion lines.
func (s *ChatService) noOffersReply(ctx context.Context) string {
	cities, err := s.repo.ListCities(ctx)
	if err != nil {
		s.logger.Warn("city listing failed", zap.Error(err))
		cities = nil
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.logger.Warn("category listing failed", zap.Error(err))
		categories = nil
	}
	return buildNoOffersMessage(cities, categories)
}
