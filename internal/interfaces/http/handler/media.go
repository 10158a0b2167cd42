package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Shriiii01/know-your-local-offers/internal/application/assist"
	"github.com/Shriiii01/know-your-local-offers/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// MediaHandler handles OCR, voice and multimodal endpoints
type MediaHandler struct {
	BaseHandler
	mediaService *assist.MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService *assist.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

// ExtractDocument runs OCR over an uploaded document image and explains
// any offers it mentions
func (h *MediaHandler) ExtractDocument(c *gin.Context) {
	data, filename, err := readUpload(c, "file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}

	language := c.DefaultPostForm("language", "en")

	extracted, explanation, err := h.mediaService.ExplainDocument(c.Request.Context(), data, filename, language)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"extracted_text": extracted,
		"explanation":    explanation,
	})
}

// Transcribe converts uploaded audio to text
func (h *MediaHandler) Transcribe(c *gin.Context) {
	data, filename, err := readUpload(c, "file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}

	transcript, err := h.mediaService.Transcribe(c.Request.Context(), data, filename)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transcript": transcript,
	})
}

// SynthesizeRequest represents a text-to-speech request
type SynthesizeRequest struct {
	Message  string `json:"message" binding:"required"`
	Language string `json:"language"`
}

// Synthesize converts text to speech and streams the audio back
func (h *MediaHandler) Synthesize(c *gin.Context) {
	var req SynthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	audio, err := h.mediaService.Synthesize(c.Request.Context(), req.Message, req.Language)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "audio/mpeg", audio)
}

// Multimodal merges optional text, audio and document input into a
// single assistant reply
func (h *MediaHandler) Multimodal(c *gin.Context) {
	input := assist.MultimodalInput{
		Text:     c.PostForm("text"),
		Language: c.DefaultPostForm("language", "en"),
	}

	if data, filename, err := readUpload(c, "audio"); err == nil {
		input.Audio = data
		input.AudioName = filename
	}
	if data, filename, err := readUpload(c, "document"); err == nil {
		input.Document = data
		input.DocumentName = filename
	}

	reply, err := h.mediaService.Respond(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response": reply,
	})
}

// readUpload reads a multipart file field into memory
func readUpload(c *gin.Context, field string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	data, err := readFileHeader(fileHeader)
	if err != nil {
		return nil, "", err
	}
	return data, fileHeader.Filename, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
