package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gestor-financeiro/internal/api/middleware"
	"github.com/gestor-financeiro/internal/api/service"
	"github.com/gestor-financeiro/internal/domain/audit"
	"github.com/gestor-financeiro/internal/transcription"
)

// ProcessingHandler handles the text and audio processing endpoints
type ProcessingHandler struct {
	processingService service.ProcessingService
	logger            *slog.Logger
	whisperMode       string
	llmMode           string
}

// NewProcessingHandler creates a new processing handler. The mode strings are
// reported by the health endpoint.
func NewProcessingHandler(logger *slog.Logger, processingService service.ProcessingService, whisperMode, llmMode string) *ProcessingHandler {
	return &ProcessingHandler{
		processingService: processingService,
		logger:            logger,
		whisperMode:       whisperMode,
		llmMode:           llmMode,
	}
}

// ProcessText handles POST /api/processar-texto. Pipeline failures still
// answer 200; only a malformed request produces an error status.
func (h *ProcessingHandler) ProcessText(c *gin.Context) {
	var req ProcessamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Corpo da requisição inválido: "+err.Error())
		return
	}

	outcome := h.processingService.ProcessText(h.requestContext(c), req.Texto)
	RespondOK(c, mapOutcomeToResponse(outcome))
}

// ProcessAudio handles POST /api/processar-audio with a multipart audio file
func (h *ProcessingHandler) ProcessAudio(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondBadRequest(c, "Arquivo de áudio ausente: "+err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded audio", "filename", fileHeader.Filename, "error", err)
		RespondBadRequest(c, "Não foi possível ler o arquivo de áudio")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded audio", "filename", fileHeader.Filename, "error", err)
		RespondBadRequest(c, "Não foi possível ler o arquivo de áudio")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = transcription.InferContentType(fileHeader.Filename, transcription.DefaultUploadContentType)
	}

	outcome := h.processingService.ProcessAudio(h.requestContext(c), content, fileHeader.Filename, contentType)
	RespondOK(c, mapOutcomeToResponse(outcome))
}

// Health handles GET /health
func (h *ProcessingHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "ok",
		WhisperMode: h.whisperMode,
		LLMMode:     h.llmMode,
	})
}

// requestContext carries the correlation id into the processing pipeline so
// audit entries can be traced back to the request
func (h *ProcessingHandler) requestContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if id := middleware.GetCorrelationID(c); id != "" {
		ctx = audit.WithCorrelationID(ctx, id)
	}
	return ctx
}

func mapOutcomeToResponse(outcome *service.Outcome) ProcessamentoResponse {
	resp := ProcessamentoResponse{
		Sucesso:         outcome.Sucesso,
		Erro:            outcome.Erro,
		TextoProcessado: outcome.TextoProcessado,
	}
	if outcome.Gasto != nil {
		mapped := mapRecordToResponse(outcome.Gasto)
		resp.Gasto = &mapped
	}
	return resp
}
