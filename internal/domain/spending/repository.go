package spending

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// Default pagination bounds for List
const (
	DefaultListLimit = 40
	MaxListLimit     = 100
)

// Repository defines spending record persistence operations
type Repository interface {
	// Create persists the record, assigning ID and DataCriacao
	Create(ctx context.Context, rec *Record) error

	// GetByID returns ErrRecordNotFound if the id does not exist
	GetByID(ctx context.Context, id int64) (*Record, error)

	// List returns records ordered by creation time descending
	List(ctx context.Context, skip, limit int) ([]*Record, error)

	// Update overwrites the full row; returns ErrRecordNotFound if absent
	Update(ctx context.Context, rec *Record) error

	// Delete returns ErrRecordNotFound if the id does not exist
	Delete(ctx context.Context, id int64) error

	WithTx(tx pgx.Tx) Repository
}

// ErrRecordNotFound indicates a missing spending record
type ErrRecordNotFound struct {
	ID int64
}

func (e ErrRecordNotFound) Error() string {
	return "gasto não encontrado: " + strconv.FormatInt(e.ID, 10)
}
