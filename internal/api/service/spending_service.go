package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gestor-financeiro/internal/domain/spending"
)

// SpendingServiceImpl implements the SpendingService interface
type SpendingServiceImpl struct {
	repo spending.Repository
	tx   TxManager
}

// NewSpendingService creates a new spending record service
func NewSpendingService(repo spending.Repository, tx TxManager) SpendingService {
	return &SpendingServiceImpl{
		repo: repo,
		tx:   tx,
	}
}

// Create persists a new record built from already-validated fields
func (s *SpendingServiceImpl) Create(ctx context.Context, valor float64, item string, categoria spending.Categoria, meioPagamento *spending.MeioPagamento, descricaoOriginal *string) (*spending.Record, error) {
	rec, err := spending.NewRecord(valor, item, categoria, meioPagamento, descricaoOriginal)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// GetByID retrieves a record by its ID, returns ErrRecordNotFound if not found
func (s *SpendingServiceImpl) GetByID(ctx context.Context, id int64) (*spending.Record, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves records newest first with skip/limit pagination
func (s *SpendingServiceImpl) List(ctx context.Context, skip, limit int) ([]*spending.Record, error) {
	return s.repo.List(ctx, skip, limit)
}

// Update applies a partial update inside a transaction so the read-modify-write
// cannot race with a concurrent update on the same record
func (s *SpendingServiceImpl) Update(ctx context.Context, id int64, params spending.UpdateParams) (*spending.Record, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var updated *spending.Record
	err := s.tx.ExecuteTx(ctx, func(tx pgx.Tx) error {
		repo := s.repo.WithTx(tx)

		rec, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		params.Apply(rec)
		if err := repo.Update(ctx, rec); err != nil {
			return err
		}

		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a record by its ID, returns ErrRecordNotFound if not found
func (s *SpendingServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
