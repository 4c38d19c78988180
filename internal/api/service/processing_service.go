package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gestor-financeiro/internal/domain/audit"
	"github.com/gestor-financeiro/internal/domain/spending"
	"github.com/gestor-financeiro/internal/extraction"
	"github.com/gestor-financeiro/internal/platform/messaging/producers"
	"github.com/gestor-financeiro/internal/transcription"
)

// Failure tag reported when the text could be extracted but not persisted
const erroInterno = "erro_interno"

// Tag reported when the audio transcribed to nothing
const erroTranscricaoVazia = "transcricao_vazia"

// ProcessingServiceImpl implements the ProcessingService interface.
// The audit repository and the event producer are best-effort: their failures
// are logged but never surfaced, a processing answer must not depend on them.
type ProcessingServiceImpl struct {
	logger      *slog.Logger
	engine      extraction.Engine
	transcriber Transcriber
	repo        spending.Repository
	audits      audit.Repository
	producer    producers.MessagePublisher
}

// NewProcessingService creates a new processing service
func NewProcessingService(logger *slog.Logger, engine extraction.Engine, transcriber Transcriber, repo spending.Repository, audits audit.Repository, producer producers.MessagePublisher) ProcessingService {
	return &ProcessingServiceImpl{
		logger:      logger,
		engine:      engine,
		transcriber: transcriber,
		repo:        repo,
		audits:      audits,
		producer:    producer,
	}
}

// ProcessText extracts a spending record from free text and persists it
func (s *ProcessingServiceImpl) ProcessText(ctx context.Context, texto string) *Outcome {
	return s.process(ctx, audit.SourceTexto, texto)
}

// ProcessAudio transcribes the audio and runs the transcription through the
// text pipeline. Transcription problems short-circuit before the model is
// ever contacted.
func (s *ProcessingServiceImpl) ProcessAudio(ctx context.Context, content []byte, filename, contentType string) *Outcome {
	texto, err := s.transcriber.Transcribe(ctx, content, filename, contentType)
	if err != nil {
		var unavailable transcription.ErrUnavailable
		if errors.As(err, &unavailable) {
			s.logger.Warn("transcription endpoint unreachable", "filename", filename, "error", err)
			return s.failed(ctx, audit.SourceAudio, "", string(extraction.FailureServiceUnavailable))
		}
		s.logger.Error("transcription failed", "filename", filename, "error", err)
		return s.failed(ctx, audit.SourceAudio, "", string(extraction.FailureProcessing)+": "+err.Error())
	}

	if strings.TrimSpace(texto) == "" {
		s.logger.Info("audio transcribed to empty text", "filename", filename)
		return s.failed(ctx, audit.SourceAudio, "", erroTranscricaoVazia)
	}

	return s.process(ctx, audit.SourceAudio, texto)
}

// process is the shared extract-validate-persist pipeline
func (s *ProcessingServiceImpl) process(ctx context.Context, source audit.Source, texto string) *Outcome {
	result := s.engine.Extract(ctx, texto)
	if !result.OK() {
		return s.failed(ctx, source, texto, result.ErroTag())
	}

	extracted := result.Spending
	rec, err := spending.NewRecord(extracted.Valor, extracted.Item, extracted.Categoria, extracted.MeioPagamento, &texto)
	if err != nil {
		s.logger.Error("extracted payload rejected by record invariants", "error", err)
		return s.failed(ctx, source, texto, erroInterno+": "+err.Error())
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error("failed to persist extracted record", "item", rec.Item, "error", err)
		return s.failed(ctx, source, texto, erroInterno+": "+err.Error())
	}

	s.logger.Info("spending record created from "+string(source),
		"gasto_id", rec.ID,
		"valor", rec.Valor,
		"categoria", string(rec.Categoria),
	)

	s.recordAttempt(ctx, source, texto, rec.ID, "")
	s.publishEvent(ctx, rec)

	return &Outcome{
		Sucesso:         true,
		Gasto:           rec,
		TextoProcessado: texto,
	}
}

// failed builds a failure outcome and records the attempt
func (s *ProcessingServiceImpl) failed(ctx context.Context, source audit.Source, texto, erro string) *Outcome {
	s.recordAttempt(ctx, source, texto, 0, erro)
	return &Outcome{
		Erro:            erro,
		TextoProcessado: texto,
	}
}

func (s *ProcessingServiceImpl) recordAttempt(ctx context.Context, source audit.Source, texto string, gastoID int64, erro string) {
	if s.audits == nil {
		return
	}

	attempt := audit.NewAttempt(source, texto)
	attempt.CorrelationID = audit.CorrelationIDFromContext(ctx)
	attempt.Sucesso = erro == ""
	attempt.Erro = erro
	attempt.GastoID = gastoID

	if err := s.audits.Record(ctx, attempt); err != nil {
		s.logger.Warn("failed to record extraction attempt", "error", err)
	}
}

func (s *ProcessingServiceImpl) publishEvent(ctx context.Context, rec *spending.Record) {
	if s.producer == nil {
		return
	}

	key := strconv.FormatInt(rec.ID, 10)
	if err := s.producer.Publish(ctx, key, producers.NewSpendingEvent(rec)); err != nil {
		s.logger.Warn("failed to publish spending event", "gasto_id", rec.ID, "error", err)
	}
}
