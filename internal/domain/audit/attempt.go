// Package audit records every extraction attempt, successful or not, for
// traceability of what the model was asked and what came back.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies where the processed text came from
type Source string

const (
	SourceTexto Source = "texto"
	SourceAudio Source = "audio"
)

// Attempt is one extraction attempt. Failure attempts carry the erro tag
// surfaced to the caller; successful ones carry the id of the created record.
type Attempt struct {
	ID            uuid.UUID `bson:"attempt_id" json:"attempt_id"`
	CorrelationID string    `bson:"correlation_id,omitempty" json:"correlation_id,omitempty"`
	Source        Source    `bson:"source" json:"source"`
	Texto         string    `bson:"texto" json:"texto"`
	Sucesso       bool      `bson:"sucesso" json:"sucesso"`
	Erro          string    `bson:"erro,omitempty" json:"erro,omitempty"`
	GastoID       int64     `bson:"gasto_id,omitempty" json:"gasto_id,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// NewAttempt builds an attempt with a fresh id and timestamp
func NewAttempt(source Source, texto string) *Attempt {
	return &Attempt{
		ID:        uuid.New(),
		Source:    source,
		Texto:     texto,
		CreatedAt: time.Now().UTC(),
	}
}
