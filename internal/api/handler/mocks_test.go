package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gestor-financeiro/internal/api/service"
	"github.com/gestor-financeiro/internal/domain/spending"
)

type MockSpendingService struct {
	mock.Mock
}

func (m *MockSpendingService) Create(ctx context.Context, valor float64, item string, categoria spending.Categoria, meioPagamento *spending.MeioPagamento, descricaoOriginal *string) (*spending.Record, error) {
	args := m.Called(ctx, valor, item, categoria, meioPagamento, descricaoOriginal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spending.Record), args.Error(1)
}

func (m *MockSpendingService) GetByID(ctx context.Context, id int64) (*spending.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spending.Record), args.Error(1)
}

func (m *MockSpendingService) List(ctx context.Context, skip, limit int) ([]*spending.Record, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*spending.Record), args.Error(1)
}

func (m *MockSpendingService) Update(ctx context.Context, id int64, params spending.UpdateParams) (*spending.Record, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spending.Record), args.Error(1)
}

func (m *MockSpendingService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) ProcessText(ctx context.Context, texto string) *service.Outcome {
	args := m.Called(ctx, texto)
	return args.Get(0).(*service.Outcome)
}

func (m *MockProcessingService) ProcessAudio(ctx context.Context, content []byte, filename, contentType string) *service.Outcome {
	args := m.Called(ctx, content, filename, contentType)
	return args.Get(0).(*service.Outcome)
}
