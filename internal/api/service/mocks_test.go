package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/gestor-financeiro/internal/domain/audit"
	"github.com/gestor-financeiro/internal/domain/spending"
	"github.com/gestor-financeiro/internal/extraction"
)

type MockSpendingRepository struct {
	mock.Mock
}

func (m *MockSpendingRepository) Create(ctx context.Context, rec *spending.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockSpendingRepository) GetByID(ctx context.Context, id int64) (*spending.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spending.Record), args.Error(1)
}

func (m *MockSpendingRepository) List(ctx context.Context, skip, limit int) ([]*spending.Record, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*spending.Record), args.Error(1)
}

func (m *MockSpendingRepository) Update(ctx context.Context, rec *spending.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockSpendingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSpendingRepository) WithTx(tx pgx.Tx) spending.Repository {
	m.Called(tx)
	return m
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Record(ctx context.Context, attempt *audit.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

type MockMessagingProducer struct {
	mock.Mock
}

func (m *MockMessagingProducer) Publish(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagingProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Extract(ctx context.Context, texto string) extraction.Result {
	args := m.Called(ctx, texto)
	return args.Get(0).(extraction.Result)
}

type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcribe(ctx context.Context, content []byte, filename, contentType string) (string, error) {
	args := m.Called(ctx, content, filename, contentType)
	return args.String(0), args.Error(1)
}

// MockTxManager runs the callback directly with a nil transaction
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}
