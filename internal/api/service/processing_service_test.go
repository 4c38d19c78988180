package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gestor-financeiro/internal/domain/audit"
	"github.com/gestor-financeiro/internal/domain/spending"
	"github.com/gestor-financeiro/internal/extraction"
	"github.com/gestor-financeiro/internal/transcription"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func TestProcessingServiceImpl_ProcessText(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockEngine := new(MockEngine)
		mockRepo := new(MockSpendingRepository)
		mockAudits := new(MockAuditRepository)
		mockProducer := new(MockMessagingProducer)
		svc := NewProcessingService(testLogger(), mockEngine, new(MockTranscriber), mockRepo, mockAudits, mockProducer)

		texto := "gastei 25 reais com pizza no pix"
		mp := spending.MeioPagamentoPix
		mockEngine.On("Extract", ctx, texto).Return(extraction.Success(&extraction.Spending{
			Valor:         25,
			Item:          "pizza",
			Categoria:     spending.CategoriaAlimentacao,
			MeioPagamento: &mp,
		})).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(rec *spending.Record) bool {
			return rec.Valor == 25 && rec.Item == "pizza" &&
				rec.DescricaoOriginal != nil && *rec.DescricaoOriginal == texto
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*spending.Record).ID = 42
		}).Return(nil).Once()
		mockAudits.On("Record", ctx, mock.MatchedBy(func(a *audit.Attempt) bool {
			return a.Sucesso && a.GastoID == 42 && a.Source == audit.SourceTexto && a.Texto == texto
		})).Return(nil).Once()
		mockProducer.On("Publish", ctx, "42", mock.Anything).Return(nil).Once()

		outcome := svc.ProcessText(ctx, texto)

		assert.True(t, outcome.Sucesso)
		require.NotNil(t, outcome.Gasto)
		assert.Equal(t, int64(42), outcome.Gasto.ID)
		assert.Empty(t, outcome.Erro)
		assert.Equal(t, texto, outcome.TextoProcessado)
		mockEngine.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
		mockAudits.AssertExpectations(t)
		mockProducer.AssertExpectations(t)
	})

	t.Run("ExtractionFailure", func(t *testing.T) {
		mockEngine := new(MockEngine)
		mockRepo := new(MockSpendingRepository)
		mockAudits := new(MockAuditRepository)
		svc := NewProcessingService(testLogger(), mockEngine, new(MockTranscriber), mockRepo, mockAudits, nil)

		texto := "bom dia"
		mockEngine.On("Extract", ctx, texto).Return(extraction.Failed(extraction.FailureNotSpending, "")).Once()
		mockAudits.On("Record", ctx, mock.MatchedBy(func(a *audit.Attempt) bool {
			return !a.Sucesso && a.Erro == "nao_e_gasto"
		})).Return(nil).Once()

		outcome := svc.ProcessText(ctx, texto)

		assert.False(t, outcome.Sucesso)
		assert.Nil(t, outcome.Gasto)
		assert.Equal(t, "nao_e_gasto", outcome.Erro)
		assert.Equal(t, texto, outcome.TextoProcessado)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("PersistenceFailure", func(t *testing.T) {
		mockEngine := new(MockEngine)
		mockRepo := new(MockSpendingRepository)
		svc := NewProcessingService(testLogger(), mockEngine, new(MockTranscriber), mockRepo, nil, nil)

		texto := "gastei 10 reais com café"
		mockEngine.On("Extract", ctx, texto).Return(extraction.Success(&extraction.Spending{
			Valor:     10,
			Item:      "café",
			Categoria: spending.CategoriaAlimentacao,
		})).Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("db down")).Once()

		outcome := svc.ProcessText(ctx, texto)

		assert.False(t, outcome.Sucesso)
		assert.Contains(t, outcome.Erro, "erro_interno: ")
		assert.Contains(t, outcome.Erro, "db down")
		assert.Equal(t, texto, outcome.TextoProcessado)
	})

	t.Run("AuditAndEventFailuresAreSwallowed", func(t *testing.T) {
		mockEngine := new(MockEngine)
		mockRepo := new(MockSpendingRepository)
		mockAudits := new(MockAuditRepository)
		mockProducer := new(MockMessagingProducer)
		svc := NewProcessingService(testLogger(), mockEngine, new(MockTranscriber), mockRepo, mockAudits, mockProducer)

		texto := "gastei 10 reais com café"
		mockEngine.On("Extract", ctx, texto).Return(extraction.Success(&extraction.Spending{
			Valor:     10,
			Item:      "café",
			Categoria: spending.CategoriaAlimentacao,
		})).Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockAudits.On("Record", ctx, mock.Anything).Return(errors.New("mongo down")).Once()
		mockProducer.On("Publish", ctx, mock.Anything, mock.Anything).Return(errors.New("kafka down")).Once()

		outcome := svc.ProcessText(ctx, texto)

		assert.True(t, outcome.Sucesso)
		assert.Empty(t, outcome.Erro)
	})

	t.Run("CorrelationIDReachesAuditTrail", func(t *testing.T) {
		mockEngine := new(MockEngine)
		mockAudits := new(MockAuditRepository)
		svc := NewProcessingService(testLogger(), mockEngine, new(MockTranscriber), new(MockSpendingRepository), mockAudits, nil)

		ctxWithID := audit.WithCorrelationID(ctx, "abc-123")
		mockEngine.On("Extract", ctxWithID, "bom dia").Return(extraction.Failed(extraction.FailureNotSpending, "")).Once()
		mockAudits.On("Record", ctxWithID, mock.MatchedBy(func(a *audit.Attempt) bool {
			return a.CorrelationID == "abc-123"
		})).Return(nil).Once()

		svc.ProcessText(ctxWithID, "bom dia")

		mockAudits.AssertExpectations(t)
	})
}

func TestProcessingServiceImpl_ProcessAudio(t *testing.T) {
	ctx := context.Background()
	content := []byte("fake audio bytes")

	t.Run("Success", func(t *testing.T) {
		mockEngine := new(MockEngine)
		mockTranscriber := new(MockTranscriber)
		mockRepo := new(MockSpendingRepository)
		svc := NewProcessingService(testLogger(), mockEngine, mockTranscriber, mockRepo, nil, nil)

		texto := "gastei 30 reais no cinema"
		mockTranscriber.On("Transcribe", ctx, content, "gravacao.webm", "audio/webm").Return(texto, nil).Once()
		mockEngine.On("Extract", ctx, texto).Return(extraction.Success(&extraction.Spending{
			Valor:     30,
			Item:      "cinema",
			Categoria: spending.CategoriaLazer,
		})).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(rec *spending.Record) bool {
			return rec.DescricaoOriginal != nil && *rec.DescricaoOriginal == texto
		})).Return(nil).Once()

		outcome := svc.ProcessAudio(ctx, content, "gravacao.webm", "audio/webm")

		assert.True(t, outcome.Sucesso)
		assert.Equal(t, texto, outcome.TextoProcessado)
		mockTranscriber.AssertExpectations(t)
	})

	t.Run("TranscriptionUnavailable", func(t *testing.T) {
		mockEngine := new(MockEngine)
		mockTranscriber := new(MockTranscriber)
		svc := NewProcessingService(testLogger(), mockEngine, mockTranscriber, new(MockSpendingRepository), nil, nil)

		mockTranscriber.On("Transcribe", ctx, content, "gravacao.webm", "audio/webm").
			Return("", transcription.ErrUnavailable{Err: errors.New("connection refused")}).Once()

		outcome := svc.ProcessAudio(ctx, content, "gravacao.webm", "audio/webm")

		assert.False(t, outcome.Sucesso)
		assert.Equal(t, "servico_indisponivel", outcome.Erro)
		assert.Empty(t, outcome.TextoProcessado)
		mockEngine.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	})

	t.Run("TranscriptionError", func(t *testing.T) {
		mockEngine := new(MockEngine)
		mockTranscriber := new(MockTranscriber)
		svc := NewProcessingService(testLogger(), mockEngine, mockTranscriber, new(MockSpendingRepository), nil, nil)

		mockTranscriber.On("Transcribe", ctx, content, "gravacao.webm", "audio/webm").
			Return("", errors.New("status 500")).Once()

		outcome := svc.ProcessAudio(ctx, content, "gravacao.webm", "audio/webm")

		assert.False(t, outcome.Sucesso)
		assert.Contains(t, outcome.Erro, "falha_processamento: ")
		assert.Contains(t, outcome.Erro, "status 500")
		mockEngine.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	})

	t.Run("EmptyTranscription", func(t *testing.T) {
		mockEngine := new(MockEngine)
		mockTranscriber := new(MockTranscriber)
		mockAudits := new(MockAuditRepository)
		svc := NewProcessingService(testLogger(), mockEngine, mockTranscriber, new(MockSpendingRepository), mockAudits, nil)

		mockTranscriber.On("Transcribe", ctx, content, "gravacao.webm", "audio/webm").Return("   ", nil).Once()
		mockAudits.On("Record", ctx, mock.MatchedBy(func(a *audit.Attempt) bool {
			return a.Source == audit.SourceAudio && a.Erro == "transcricao_vazia"
		})).Return(nil).Once()

		outcome := svc.ProcessAudio(ctx, content, "gravacao.webm", "audio/webm")

		assert.False(t, outcome.Sucesso)
		assert.Equal(t, "transcricao_vazia", outcome.Erro)
		assert.Empty(t, outcome.TextoProcessado)
		mockEngine.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
		mockAudits.AssertExpectations(t)
	})
}
