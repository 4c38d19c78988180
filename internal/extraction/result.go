// Package extraction turns free-form text into a structured spending record
// by calling an OpenAI-compatible chat-completion endpoint and coercing its
// untrusted reply through an explicit pipeline of fallible stages: code-fence
// unwrap, direct JSON decode, brace-scan fallback, then schema validation
// against the closed domain enumerations.
package extraction

import (
	"github.com/gestor-financeiro/internal/domain/spending"
)

// FailureKind tags why an extraction did not produce a spending record.
// The values are the wire-level erro tags callers dispatch on.
type FailureKind string

const (
	FailureEmptyInput         FailureKind = "texto_vazio"
	FailureNotSpending        FailureKind = "nao_e_gasto"
	FailureInvalidReply       FailureKind = "resposta_invalida"
	FailureInvalidData        FailureKind = "dados_invalidos"
	FailureServiceUnavailable FailureKind = "servico_indisponivel"
	FailureProcessing         FailureKind = "falha_processamento"
)

// Spending is a validated extraction payload, not yet persisted
type Spending struct {
	Valor         float64
	Item          string
	Categoria     spending.Categoria
	MeioPagamento *spending.MeioPagamento
}

// Result is either a populated Spending or a tagged failure, never both
type Result struct {
	Spending *Spending
	Failure  FailureKind
	Detail   string // human-readable context for dados_invalidos / falha_processamento
}

// Success wraps a validated payload
func Success(s *Spending) Result {
	return Result{Spending: s}
}

// Failed builds a tagged failure
func Failed(kind FailureKind, detail string) Result {
	return Result{Failure: kind, Detail: detail}
}

// OK reports whether the result carries a spending payload
func (r Result) OK() bool {
	return r.Spending != nil
}

// ErroTag renders the failure for the wire: the bare kind, or "kind: detail"
// when the failure carries context
func (r Result) ErroTag() string {
	if r.Failure == "" {
		return ""
	}
	if r.Detail == "" {
		return string(r.Failure)
	}
	return string(r.Failure) + ": " + r.Detail
}
