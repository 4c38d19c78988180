package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gestor-financeiro/internal/domain/spending"
)

// SpendingService defines the interface for spending record CRUD operations
type SpendingService interface {
	// Create persists a new record built from already-validated fields
	Create(ctx context.Context, valor float64, item string, categoria spending.Categoria, meioPagamento *spending.MeioPagamento, descricaoOriginal *string) (*spending.Record, error)

	// GetByID retrieves a record by its ID
	// Returns ErrRecordNotFound if the record doesn't exist
	GetByID(ctx context.Context, id int64) (*spending.Record, error)

	// List retrieves records newest first with skip/limit pagination
	List(ctx context.Context, skip, limit int) ([]*spending.Record, error)

	// Update applies a partial update inside a transaction and returns the
	// updated record. Returns ErrRecordNotFound if the record doesn't exist
	Update(ctx context.Context, id int64, params spending.UpdateParams) (*spending.Record, error)

	// Delete removes a record by its ID
	// Returns ErrRecordNotFound if the record doesn't exist
	Delete(ctx context.Context, id int64) error
}

// ProcessingService turns free-form text or audio into persisted spending
// records. Failures are reported inside the Outcome, not as errors: the
// pipeline always answers, tagging why nothing was recorded.
type ProcessingService interface {
	ProcessText(ctx context.Context, texto string) *Outcome
	ProcessAudio(ctx context.Context, content []byte, filename, contentType string) *Outcome
}

// Outcome is the result of one processing attempt
type Outcome struct {
	Sucesso         bool
	Gasto           *spending.Record
	Erro            string
	TextoProcessado string
}

// Transcriber converts audio bytes into text
type Transcriber interface {
	Transcribe(ctx context.Context, content []byte, filename, contentType string) (string, error)
}

// TxManager runs a function inside a database transaction
type TxManager interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
