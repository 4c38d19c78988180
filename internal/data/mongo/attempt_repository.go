// Package mongo provides the MongoDB implementation of the extraction audit
// trail repository.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gestor-financeiro/internal/domain/audit"
)

// AttemptsCollectionName is the name of the audit collection in MongoDB
const AttemptsCollectionName = "extraction_attempts"

// AttemptRepository implements the audit.Repository interface for MongoDB
type AttemptRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewAttemptRepository creates a new MongoDB audit repository
func NewAttemptRepository(logger *slog.Logger, db *mongo.Database) audit.Repository {
	return &AttemptRepository{
		db:     db,
		logger: logger,
	}
}

// Record stores one extraction attempt
func (r *AttemptRepository) Record(ctx context.Context, attempt *audit.Attempt) error {
	collection := r.db.Collection(AttemptsCollectionName)

	if _, err := collection.InsertOne(ctx, attempt); err != nil {
		r.logger.Error("Failed to record extraction attempt",
			"attempt_id", attempt.ID.String(),
			"error", err)
		return fmt.Errorf("failed to record extraction attempt: %w", err)
	}

	return nil
}
