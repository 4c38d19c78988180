// Package postgres provides the PostgreSQL implementation of the spending
// record repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gestor-financeiro/internal/domain/spending"
	"github.com/gestor-financeiro/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// SpendingRepository implements the spending.Repository interface for PostgreSQL
type SpendingRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewSpendingRepository creates a new PostgreSQL spending repository
func NewSpendingRepository(logger *slog.Logger, db *persistence.PostgresDB) spending.Repository {
	return &SpendingRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so multiple calls commit or
// roll back together
func (r *SpendingRepository) WithTx(tx pgx.Tx) spending.Repository {
	return &SpendingRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create persists the record and fills in the store-assigned id and creation
// timestamp. Valor positivity is re-checked here as a defense against callers
// that bypass the extraction validation.
func (r *SpendingRepository) Create(ctx context.Context, rec *spending.Record) error {
	if rec.Valor <= 0 {
		return spending.ErrInvalidValor
	}

	query := `
		INSERT INTO gastos (valor, item, categoria, meio_pagamento, descricao_original)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, data_criacao
	`

	err := r.querier.QueryRow(ctx, query,
		rec.Valor,
		rec.Item,
		string(rec.Categoria),
		meioPagamentoValue(rec.MeioPagamento),
		rec.DescricaoOriginal,
	).Scan(&rec.ID, &rec.DataCriacao)
	if err != nil {
		r.logger.Error("Failed to create spending record", "error", err)
		return fmt.Errorf("failed to create spending record: %w", err)
	}

	return nil
}

// GetByID retrieves a spending record by its id
func (r *SpendingRepository) GetByID(ctx context.Context, id int64) (*spending.Record, error) {
	query := `
		SELECT id, valor, item, categoria, meio_pagamento, descricao_original, data_criacao
		FROM gastos
		WHERE id = $1
	`

	rec, err := scanRecord(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, spending.ErrRecordNotFound{ID: id}
		}
		r.logger.Error("Failed to get spending record", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get spending record: %w", err)
	}

	return rec, nil
}

// List retrieves records ordered by creation time descending with skip/limit
// pagination. Out-of-range parameters are clamped to the defaults.
func (r *SpendingRepository) List(ctx context.Context, skip, limit int) ([]*spending.Record, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = spending.DefaultListLimit
	}
	if limit > spending.MaxListLimit {
		limit = spending.MaxListLimit
	}

	query := `
		SELECT id, valor, item, categoria, meio_pagamento, descricao_original, data_criacao
		FROM gastos
		ORDER BY data_criacao DESC, id DESC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.querier.Query(ctx, query, skip, limit)
	if err != nil {
		r.logger.Error("Failed to list spending records", "error", err)
		return nil, fmt.Errorf("failed to list spending records: %w", err)
	}
	defer rows.Close()

	records := make([]*spending.Record, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan spending record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate spending records: %w", err)
	}

	return records, nil
}

// Update overwrites the full row for the record's id
func (r *SpendingRepository) Update(ctx context.Context, rec *spending.Record) error {
	if rec.Valor <= 0 {
		return spending.ErrInvalidValor
	}

	query := `
		UPDATE gastos
		SET valor = $1, item = $2, categoria = $3, meio_pagamento = $4, descricao_original = $5
		WHERE id = $6
	`

	result, err := r.querier.Exec(ctx, query,
		rec.Valor,
		rec.Item,
		string(rec.Categoria),
		meioPagamentoValue(rec.MeioPagamento),
		rec.DescricaoOriginal,
		rec.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update spending record", "id", rec.ID, "error", err)
		return fmt.Errorf("failed to update spending record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return spending.ErrRecordNotFound{ID: rec.ID}
	}

	return nil
}

// Delete removes the record with the given id
func (r *SpendingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM gastos WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete spending record", "id", id, "error", err)
		return fmt.Errorf("failed to delete spending record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return spending.ErrRecordNotFound{ID: id}
	}

	return nil
}

// meioPagamentoValue converts the optional enum into a nullable column value
func meioPagamentoValue(mp *spending.MeioPagamento) *string {
	if mp == nil {
		return nil
	}
	s := string(*mp)
	return &s
}

// scanRecord reads one row into a Record, mapping the nullable columns back
// into the domain types
func scanRecord(row pgx.Row) (*spending.Record, error) {
	var rec spending.Record
	var categoria string
	var meioPagamento *string

	err := row.Scan(
		&rec.ID,
		&rec.Valor,
		&rec.Item,
		&categoria,
		&meioPagamento,
		&rec.DescricaoOriginal,
		&rec.DataCriacao,
	)
	if err != nil {
		return nil, err
	}

	rec.Categoria = spending.Categoria(categoria)
	if meioPagamento != nil {
		mp := spending.MeioPagamento(*meioPagamento)
		rec.MeioPagamento = &mp
	}

	return &rec, nil
}
