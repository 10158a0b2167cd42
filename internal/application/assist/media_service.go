package assist

import (
	"context"
	"strings"

	"github.com/Shriiii01/know-your-local-offers/internal/domain/shared"
	"go.uber.org/zap"
)

// Transcriber converts uploaded audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename, language string) (string, error)
}

// TextExtractor recognizes text in an uploaded document image.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte, filename string) (string, error)
}

// Synthesizer converts reply text to MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

// MediaService handles the voice, OCR and multimodal operations around the
// chat pipeline.
type MediaService struct {
	chat        *ChatService
	transcriber Transcriber
	extractor   TextExtractor
	synthesizer Synthesizer
	logger      *zap.Logger
}

// NewMediaService creates a MediaService
func NewMediaService(chat *ChatService, transcriber Transcriber, extractor TextExtractor, synthesizer Synthesizer, logger *zap.Logger) *MediaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MediaService{
		chat:        chat,
		transcriber: transcriber,
		extractor:   extractor,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// Transcribe converts uploaded audio to text
func (s *MediaService) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	return s.transcriber.Transcribe(ctx, audio, filename, "")
}

// Synthesize converts reply text to audio
func (s *MediaService) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	return s.synthesizer.Synthesize(ctx, text, language)
}

// ExplainDocument extracts text from a document image and explains it
// through the chat pipeline.
func (s *MediaService) ExplainDocument(ctx context.Context, image []byte, filename, language string) (extracted, explanation string, err error) {
	extracted, err = s.extractor.ExtractText(ctx, image, filename)
	if err != nil {
		return "", "", err
	}
	return extracted, s.chat.ExplainDocument(ctx, extracted, language), nil
}

// MultimodalInput carries the optional text, audio and document parts of a
// combined request.
type MultimodalInput struct {
	Text         string
	Language     string
	Audio        []byte
	AudioName    string
	Document     []byte
	DocumentName string
}

// Respond merges whatever inputs are present into one analysis request and
// answers it through the chat pipeline. At least one input is required.
func (s *MediaService) Respond(ctx context.Context, input MultimodalInput) (string, error) {
	var combined strings.Builder

	if input.Text != "" {
		combined.WriteString("User text: " + input.Text + "\n\n")
	}
	if len(input.Audio) > 0 {
		transcript, err := s.transcriber.Transcribe(ctx, input.Audio, input.AudioName, "")
		if err != nil {
			return "", err
		}
		combined.WriteString("User speech: " + transcript + "\n\n")
	}
	if len(input.Document) > 0 {
		extracted, err := s.extractor.ExtractText(ctx, input.Document, input.DocumentName)
		if err != nil {
			return "", err
		}
		combined.WriteString("Document content: " + extracted + "\n\n")
	}

	if combined.Len() == 0 {
		return "", shared.NewDomainError("INVALID_INPUT", "No input provided")
	}

	return s.chat.GenerateReply(ctx, buildMultimodalPrompt(combined.String()), input.Language), nil
}
