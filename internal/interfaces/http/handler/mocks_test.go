package handler

import (
	"context"
	"time"

	"github.com/Shriiii01/know-your-local-offers/internal/domain/offers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

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

// MockCompleter is a mock implementation of assist.Completer
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

// MockTranscriber is a mock implementation of assist.Transcriber
type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audio []byte, filename, language string) (string, error) {
	args := m.Called(ctx, audio, filename, language)
	return args.String(0), args.Error(1)
}

// MockTextExtractor is a mock implementation of assist.TextExtractor
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractText(ctx context.Context, image []byte, filename string) (string, error) {
	args := m.Called(ctx, image, filename)
	return args.String(0), args.Error(1)
}

// MockSynthesizer is a mock implementation of assist.Synthesizer
type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	args := m.Called(ctx, text, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// testOffer builds an offer row for handler tests
func testOffer(store, city, category, text string) offers.Offer {
	validTill := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	o := offers.Offer{
		StoreName: store,
		City:      city,
		Category:  category,
		OfferText: text,
		ValidTill: &validTill,
		Source:    "api",
	}
	o.ID = uuid.New()
	return o
}
