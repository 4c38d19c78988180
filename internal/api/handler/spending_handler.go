package handler

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gestor-financeiro/internal/api/service"
	"github.com/gestor-financeiro/internal/domain/spending"
)

// SpendingHandler handles HTTP requests for spending record CRUD
type SpendingHandler struct {
	spendingService service.SpendingService
	logger          *slog.Logger
}

// NewSpendingHandler creates a new spending record handler
func NewSpendingHandler(logger *slog.Logger, spendingService service.SpendingService) *SpendingHandler {
	return &SpendingHandler{
		spendingService: spendingService,
		logger:          logger,
	}
}

// Create handles direct creation of a spending record
func (h *SpendingHandler) Create(c *gin.Context) {
	var req GastoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Corpo da requisição inválido: "+err.Error())
		return
	}

	categoria, err := spending.ParseCategoria(req.Categoria)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	var meioPagamento *spending.MeioPagamento
	if req.MeioPagamento != nil {
		mp, err := spending.ParseMeioPagamento(*req.MeioPagamento)
		if err != nil {
			RespondBadRequest(c, err.Error())
			return
		}
		meioPagamento = &mp
	}

	rec, err := h.spendingService.Create(c.Request.Context(), req.Valor, req.Item, categoria, meioPagamento, req.DescricaoOriginal)
	if err != nil {
		if errors.Is(err, spending.ErrInvalidValor) || errors.Is(err, spending.ErrEmptyItem) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create spending record", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapRecordToResponse(rec))
}

// GetByID retrieves a spending record by its ID, returning 404 if not found
func (h *SpendingHandler) GetByID(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}

	rec, err := h.spendingService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondLookupError(c, id, err)
		return
	}

	RespondOK(c, mapRecordToResponse(rec))
}

// List retrieves spending records newest first with skip/limit pagination
func (h *SpendingHandler) List(c *gin.Context) {
	var params ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Parâmetros de paginação inválidos: "+err.Error())
		return
	}

	recs, err := h.spendingService.List(c.Request.Context(), params.Skip, params.Limit)
	if err != nil {
		h.logger.Error("Failed to list spending records", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]GastoResponse, 0, len(recs))
	for _, rec := range recs {
		responses = append(responses, mapRecordToResponse(rec))
	}

	RespondOK(c, responses)
}

// Update applies a partial update to a spending record
func (h *SpendingHandler) Update(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}

	var req GastoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Corpo da requisição inválido: "+err.Error())
		return
	}

	params := spending.UpdateParams{
		Valor:             req.Valor,
		Item:              req.Item,
		DescricaoOriginal: req.DescricaoOriginal,
	}

	if req.Categoria != nil {
		categoria, err := spending.ParseCategoria(*req.Categoria)
		if err != nil {
			RespondBadRequest(c, err.Error())
			return
		}
		params.Categoria = &categoria
	}
	if req.MeioPagamento != nil {
		mp, err := spending.ParseMeioPagamento(*req.MeioPagamento)
		if err != nil {
			RespondBadRequest(c, err.Error())
			return
		}
		params.MeioPagamento = &mp
	}

	rec, err := h.spendingService.Update(c.Request.Context(), id, params)
	if err != nil {
		if errors.Is(err, spending.ErrInvalidValor) || errors.Is(err, spending.ErrEmptyItem) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.respondLookupError(c, id, err)
		return
	}

	RespondOK(c, mapRecordToResponse(rec))
}

// Delete removes a spending record, returning 404 if not found
func (h *SpendingHandler) Delete(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}

	if err := h.spendingService.Delete(c.Request.Context(), id); err != nil {
		h.respondLookupError(c, id, err)
		return
	}

	RespondOK(c, MensagemResponse{Mensagem: "Gasto deletado com sucesso"})
}

// recordID parses the :id path parameter, answering 400 itself on failure
func (h *SpendingHandler) recordID(c *gin.Context) (int64, bool) {
	idParam := c.Param("id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		RespondBadRequest(c, "ID inválido: "+idParam)
		return 0, false
	}
	return id, true
}

func (h *SpendingHandler) respondLookupError(c *gin.Context, id int64, err error) {
	var notFound spending.ErrRecordNotFound
	if errors.As(err, &notFound) {
		RespondNotFound(c, "Gasto não encontrado")
		return
	}
	h.logger.Error("Spending record operation failed", "id", id, "error", err)
	RespondInternalError(c)
}

// mapRecordToResponse maps a spending record entity to its response DTO
func mapRecordToResponse(rec *spending.Record) GastoResponse {
	resp := GastoResponse{
		ID:                rec.ID,
		Valor:             rec.Valor,
		Item:              rec.Item,
		Categoria:         string(rec.Categoria),
		DescricaoOriginal: rec.DescricaoOriginal,
		DataCriacao:       rec.DataCriacao.Format(time.RFC3339),
	}
	if rec.MeioPagamento != nil {
		mp := string(*rec.MeioPagamento)
		resp.MeioPagamento = &mp
	}
	return resp
}
