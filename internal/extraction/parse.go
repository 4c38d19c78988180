package extraction

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gestor-financeiro/internal/domain/spending"
)

// parseReply coerces the raw model output into a Result. Each stage either
// produces a value for the next one or short-circuits with a tagged failure.
// Decoding is into loose map fields: a reply that is valid JSON but carries
// the wrong types is bad data (dados_invalidos), not a bad reply.
func parseReply(raw string) Result {
	cleaned := stripCodeFences(strings.TrimSpace(raw))

	fields, ok := decodeObject(cleaned)
	if !ok {
		return Failed(FailureInvalidReply, "")
	}

	// The model signalled failure itself; pass its tag through
	if erro, present := fields["erro"]; present {
		return Failed(erroKind(erro), "")
	}

	sp, err := validateFields(fields)
	if err != nil {
		return Failed(FailureInvalidData, err.Error())
	}

	return Success(sp)
}

// stripCodeFences unwraps a reply the model wrapped in a Markdown code block
// despite being told not to
func stripCodeFences(s string) string {
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}
	return s
}

// decodeObject attempts a direct JSON decode, falling back to a best-effort
// scan for the first brace-delimited object when the reply carries extra prose
func decodeObject(s string) (map[string]any, bool) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(s), &fields); err == nil {
		return fields, true
	}

	obj, ok := scanBraceObject(s)
	if !ok {
		return nil, false
	}
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		return nil, false
	}
	return fields, true
}

// scanBraceObject returns the first balanced {...} substring of s
func scanBraceObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// erroKind maps the model's erro value to a failure tag; anything empty or
// non-textual defaults to nao_e_gasto
func erroKind(v any) FailureKind {
	if s, ok := v.(string); ok {
		if kind := strings.TrimSpace(s); kind != "" {
			return FailureKind(kind)
		}
	}
	return FailureNotSpending
}

// validateFields re-validates the decoded object against the record schema.
// A reply the model coerced to zero, or typed wrongly, is a failure, not a
// record.
func validateFields(fields map[string]any) (*Spending, error) {
	valor, ok := valorField(fields["valor"])
	if !ok || valor <= 0 {
		return nil, spending.ErrInvalidValor
	}

	item, _ := fields["item"].(string)
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, spending.ErrEmptyItem
	}

	rawCategoria, _ := fields["categoria"].(string)
	categoria, err := spending.ParseCategoria(rawCategoria)
	if err != nil {
		return nil, err
	}

	var meioPagamento *spending.MeioPagamento
	if v, present := fields["meio_pagamento"]; present && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("meio de pagamento inválido: %v", v)
		}
		mp, err := spending.ParseMeioPagamento(s)
		if err != nil {
			return nil, err
		}
		meioPagamento = &mp
	}

	return &Spending{
		Valor:         valor,
		Item:          item,
		Categoria:     categoria,
		MeioPagamento: meioPagamento,
	}, nil
}

// valorField accepts a JSON number or a numeric string for valor
func valorField(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
