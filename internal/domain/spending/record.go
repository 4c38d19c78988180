// Package spending holds the spending record entity and its closed
// category/payment-method enumerations. Values outside the enumerations are
// rejected at construction, so the rest of the system never observes them.
package spending

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrInvalidValor = errors.New("o valor deve ser maior que zero")
	ErrEmptyItem    = errors.New("o item não pode ser vazio")
)

// Categoria is the closed set of spending categories
type Categoria string

const (
	CategoriaAlimentacao Categoria = "Alimentação"
	CategoriaTransporte  Categoria = "Transporte"
	CategoriaLazer       Categoria = "Lazer"
	CategoriaSaude       Categoria = "Saúde"
	CategoriaMoradia     Categoria = "Moradia"
	CategoriaOutros      Categoria = "Outros"
	CategoriaBebida      Categoria = "Bebida"
)

// Categorias lists every valid category, in prompt order
var Categorias = []Categoria{
	CategoriaAlimentacao,
	CategoriaTransporte,
	CategoriaLazer,
	CategoriaSaude,
	CategoriaMoradia,
	CategoriaOutros,
	CategoriaBebida,
}

// ParseCategoria converts a raw string into a Categoria, rejecting anything
// outside the enumeration
func ParseCategoria(s string) (Categoria, error) {
	for _, c := range Categorias {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("categoria inválida: %q", s)
}

// MeioPagamento is the closed set of payment methods
type MeioPagamento string

const (
	MeioPagamentoCredito  MeioPagamento = "Crédito"
	MeioPagamentoDebito   MeioPagamento = "Débito"
	MeioPagamentoRefeicao MeioPagamento = "Refeição"
	MeioPagamentoPix      MeioPagamento = "Pix"
)

// MeiosPagamento lists every valid payment method
var MeiosPagamento = []MeioPagamento{
	MeioPagamentoCredito,
	MeioPagamentoDebito,
	MeioPagamentoRefeicao,
	MeioPagamentoPix,
}

// ParseMeioPagamento converts a raw string into a MeioPagamento, rejecting
// anything outside the enumeration
func ParseMeioPagamento(s string) (MeioPagamento, error) {
	for _, m := range MeiosPagamento {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("meio de pagamento inválido: %q", s)
}

// Record represents a persisted spending record ("gasto")
type Record struct {
	ID                int64          `json:"id"`
	Valor             float64        `json:"valor"`
	Item              string         `json:"item"`
	Categoria         Categoria      `json:"categoria"`
	MeioPagamento     *MeioPagamento `json:"meio_pagamento"`
	DescricaoOriginal *string        `json:"descricao_original"`
	DataCriacao       time.Time      `json:"data_criacao"`
}

// NewRecord builds an unpersisted record, enforcing valor positivity and a
// non-empty item. ID and DataCriacao are assigned by the store on creation.
func NewRecord(valor float64, item string, categoria Categoria, meioPagamento *MeioPagamento, descricaoOriginal *string) (*Record, error) {
	if valor <= 0 {
		return nil, ErrInvalidValor
	}
	if item == "" {
		return nil, ErrEmptyItem
	}

	return &Record{
		Valor:             valor,
		Item:              item,
		Categoria:         categoria,
		MeioPagamento:     meioPagamento,
		DescricaoOriginal: descricaoOriginal,
	}, nil
}

// UpdateParams carries a partial update; only non-nil fields are applied
type UpdateParams struct {
	Valor             *float64
	Item              *string
	Categoria         *Categoria
	MeioPagamento     *MeioPagamento
	DescricaoOriginal *string
}

// Validate checks the supplied fields against the record invariants
func (p *UpdateParams) Validate() error {
	if p.Valor != nil && *p.Valor <= 0 {
		return ErrInvalidValor
	}
	if p.Item != nil && *p.Item == "" {
		return ErrEmptyItem
	}
	return nil
}

// Apply overwrites only the supplied fields on the record
func (p *UpdateParams) Apply(rec *Record) {
	if p.Valor != nil {
		rec.Valor = *p.Valor
	}
	if p.Item != nil {
		rec.Item = *p.Item
	}
	if p.Categoria != nil {
		rec.Categoria = *p.Categoria
	}
	if p.MeioPagamento != nil {
		rec.MeioPagamento = p.MeioPagamento
	}
	if p.DescricaoOriginal != nil {
		rec.DescricaoOriginal = p.DescricaoOriginal
	}
}
