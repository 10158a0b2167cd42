package assist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Shriiii01/know-your-local-offers/internal/domain/offers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockOfferRepository is a mock implementation of offers.Repository
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) Search(ctx context.Context, q offers.Query) ([]offers.Offer, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]offers.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindByCity(ctx context.Context, city string, limit int) ([]offers.Offer, error) {
	args := m.Called(ctx, city, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]offers.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindByCategory(ctx context.Context, category string, limit int) ([]offers.Offer, error) {
	args := m.Called(ctx, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]offers.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindTrending(ctx context.Context, limit int) ([]offers.Offer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]offers.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindWithPriceRange(ctx context.Context, limit int) ([]offers.Offer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]offers.Offer), args.Error(1)
}

func (m *MockOfferRepository) Save(ctx context.Context, offer *offers.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) ListCities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockOfferRepository) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockCompleter is a mock implementation of Completer
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

func sampleOffers() []offers.Offer {
	offer, err := offers.New(offers.Draft{
		StoreName:  "Ratan Jewellers",
		City:       "Kolhapur",
		Category:   "jewellery",
		OfferText:  "20% off gold making charges",
		PriceRange: "₹10,000–₹50,000",
		ValidTill:  "2026-09-15",
	})
	if err != nil {
		panic(err)
	}
	return []offers.Offer{*offer}
}

func newTestChatService(repo *MockOfferRepository, completer *MockCompleter) *ChatService {
	return NewChatService(repo, completer, 5, 3, zap.NewNop())
}

func TestChatService_GenerateReply(t *testing.T) {
	ctx := context.Background()

	t.Run("redirects non-offers questions without touching the store", func(t *testing.T) {
		repo := new(MockOfferRepository)
		completer := new(MockCompleter)
		service := newTestChatService(repo, completer)

		reply := service.GenerateReply(ctx, "tell me a joke", "en")

		assert.Equal(t, chatRedirectMessage, reply)
		repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("narrates found offers through the completion model", func(t *testing.T) {
		repo := new(MockOfferRepository)
		completer := new(MockCompleter)
		service := newTestChatService(repo, completer)

		repo.On("Search", ctx, offers.Query{
			Text:     "gold offers in kolhapur",
			City:     "Kolhapur",
			Category: "jewellery",
			Limit:    5,
		}).Return(sampleOffers(), nil)

		completer.On("Complete", ctx, offersSystemPrompt, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Ratan Jewellers") &&
				strings.Contains(prompt, "gold offers in kolhapur") &&
				strings.Contains(prompt, "Valid Till: 2026-09-15")
		})).Return("Ratan Jewellers has the best deal.", nil)

		reply := service.GenerateReply(ctx, "gold offers in kolhapur", "en")

		assert.Equal(t, "Ratan Jewellers has the best deal.", reply)
		repo.AssertExpectations(t)
		completer.AssertExpectations(t)
	})

	t.Run("falls through the cascade to the city step", func(t *testing.T) {
		repo := new(MockOfferRepository)
		completer := new(MockCompleter)
		service := newTestChatService(repo, completer)

		repo.On("Search", ctx, mock.Anything).Return([]offers.Offer{}, nil)
		repo.On("FindByCity", ctx, "Kolhapur", 5).Return(sampleOffers(), nil)
		completer.On("Complete", ctx, offersSystemPrompt, mock.Anything).Return("Recommendation.", nil)

		reply := service.GenerateReply(ctx, "anything interesting in kolhapur", "en")

		assert.Equal(t, "Recommendation.", reply)
		repo.AssertNotCalled(t, "FindTrending", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("treats a failing strategy as empty and keeps cascading", func(t *testing.T) {
		repo := new(MockOfferRepository)
		completer := new(MockCompleter)
		service := newTestChatService(repo, completer)

		repo.On("Search", ctx, mock.Anything).Return(nil, errors.New("connection refused"))
		repo.On("FindByCity", ctx, "Kolhapur", 5).Return(sampleOffers(), nil)
		completer.On("Complete", ctx, offersSystemPrompt, mock.Anything).Return("Recommendation.", nil)

		reply := service.GenerateReply(ctx, "offers in kolhapur", "en")

		assert.Equal(t, "Recommendation.", reply)
		repo.AssertExpectations(t)
	})

	t.Run("apologizes with live suggestions when nothing is found", func(t *testing.T) {
		repo := new(MockOfferRepository)
		completer := new(MockCompleter)
		service := newTestChatService(repo, completer)

		repo.On("Search", ctx, mock.Anything).Return([]offers.Offer{}, nil)
		repo.On("FindByCity", ctx, "Kolhapur", 5).Return([]offers.Offer{}, nil)
		repo.On("FindByCategory", ctx, "jewellery", 5).Return([]offers.Offer{}, nil)
		repo.On("FindTrending", ctx, 3).Return([]offers.Offer{}, nil)
		repo.On("ListCities", ctx).Return([]string{"Kolhapur", "Pune"}, nil)
		repo.On("ListCategories", ctx).Return([]string{"jewellery"}, nil)

		reply := service.GenerateReply(ctx, "gold offers in kolhapur", "en")

		assert.Contains(t, reply, "Sorry, no offers match your current search criteria.")
		assert.Contains(t, reply, "Available cities: Kolhapur, Pune")
		assert.Contains(t, reply, "Available categories: jewellery")
		completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("suggestion listing errors degrade to a bare apology", func(t *testing.T) {
		repo := new(MockOfferRepository)
		completer := new(MockCompleter)
		service := newTestChatService(repo, completer)

		repo.On("Search", ctx, mock.Anything).Return([]offers.Offer{}, nil)
		repo.On("FindByCity", ctx, "Kolhapur", 5).Return([]offers.Offer{}, nil)
		repo.On("FindByCategory", ctx, "jewellery", 5).Return([]offers.Offer{}, nil)
		repo.On("FindTrending", ctx, 3).Return([]offers.Offer{}, nil)
		repo.On("ListCities", ctx).Return(nil, errors.New("connection refused"))
		repo.On("ListCategories", ctx).Return(nil, errors.New("connection refused"))

		reply := service.GenerateReply(ctx, "gold offers in kolhapur", "en")

		assert.Contains(t, reply, "Sorry, no offers match your current search criteria.")
		assert.NotContains(t, reply, "Available cities")
		assert.NotContains(t, reply, "Available categories")
	})

	t.Run("completion failure yields the technical-issue apology", func(t *testing.T) {
		repo := new(MockOfferRepository)
		completer := new(MockCompleter)
		service := newTestChatService(repo, completer)

		repo.On("Search", ctx, mock.Anything).Return(sampleOffers(), nil)
		completer.On("Complete", ctx, offersSystemPrompt, mock.Anything).
			Return("", errors.New("rate limited"))

		reply := service.GenerateReply(ctx, "gold offers in kolhapur", "en")

		assert.Equal(t, technicalIssueMessage, reply)
	})

	t.Run("suppresses non-English free text in the combined search", func(t *testing.T) {
		repo := new(MockOfferRepository)
		completer := new(MockCompleter)
		service := newTestChatService(repo, completer)

		repo.On("Search", ctx, offers.Query{
			Text:     "",
			City:     "Kolhapur",
			Category: "",
			Limit:    5,
		}).Return(sampleOffers(), nil)
		completer.On("Complete", ctx, offersSystemPrompt, mock.Anything).Return("Recommendation.", nil)

		reply := service.GenerateReply(ctx, "कोल्हापूर kolhapur", "en")

		assert.Equal(t, "Recommendation.", reply)
		repo.AssertExpectations(t)
	})
}

func TestChatService_ReplyForWhatsApp(t *testing.T) {
	ctx := context.Background()

	t.Run("greets new users with the unformatted welcome text", func(t *testing.T) {
		service := newTestChatService(new(MockOfferRepository), new(MockCompleter))

		reply := service.ReplyForWhatsApp(ctx, "hi")

		assert.Equal(t, welcomeMessage, reply)
		assert.NotContains(t, reply, "BEST OFFERS:")
	})

	t.Run("redirects non-offers messages with WhatsApp formatting", func(t *testing.T) {
		service := newTestChatService(new(MockOfferRepository), new(MockCompleter))

		reply := service.ReplyForWhatsApp(ctx, "tune a guitar")

		assert.True(t, strings.HasPrefix(reply, "BEST OFFERS:\n\n"))
		assert.Contains(t, reply, whatsappRedirectMessage)
	})

	t.Run("answers offers queries through the chat pipeline", func(t *testing.T) {
		repo := new(MockOfferRepository)
		completer := new(MockCompleter)
		service := newTestChatService(repo, completer)

		repo.On("Search", ctx, mock.Anything).Return(sampleOffers(), nil)
		completer.On("Complete", ctx, offersSystemPrompt, mock.Anything).
			Return("The best offer is at Ratan Jewellers.", nil)

		reply := service.ReplyForWhatsApp(ctx, "gold offers in kolhapur")

		assert.True(t, strings.HasPrefix(reply, "BEST OFFERS:\n\n"))
		assert.Contains(t, reply, "Ratan Jewellers")
	})
}

func TestFormatForWhatsApp(t *testing.T) {
	t.Run("prepends the banner when the reply mentions offers", func(t *testing.T) {
		formatted := FormatForWhatsApp("Great Offer at Ratan Jewellers")

		assert.Equal(t, "BEST OFFERS:\n\nGreat Offer at Ratan Jewellers", formatted)
	})

	t.Run("leaves other replies untouched", func(t *testing.T) {
		formatted := FormatForWhatsApp("Hello there")

		assert.Equal(t, "Hello there", formatted)
	})

	t.Run("truncates long replies under the cap", func(t *testing.T) {
		long := strings.Repeat("offer details ", 200)

		formatted := FormatForWhatsApp(long)

		assert.LessOrEqual(t, len([]rune(formatted)), whatsappMaxLength)
		assert.True(t, strings.HasSuffix(formatted, whatsappTruncationTail))
		assert.True(t, strings.HasPrefix(formatted, "BEST OFFERS:\n\n"))
	})
}

func TestIsGreeting(t *testing.T) {
	for _, greeting := range []string{"hi", "Hello!", "HEY there", "start", "help me"} {
		assert.True(t, IsGreeting(greeting), greeting)
	}
	assert.False(t, IsGreeting("gold offers in kolhapur"))
}
