// Package repositories provides the document stores behind the
// "transaction" and "alert" collections.
package repositories

import (
	"context"

	"fraudscope/internal/models"
)

// Store is the persistence contract used by the transaction service.
// Implementations must be safe for concurrent use. Insert methods assign
// and return the storage identity; Find methods return at most limit
// documents, newest first where the backend can tell.
type Store interface {
	InsertTransaction(ctx context.Context, tx *models.Transaction) (string, error)
	InsertAlert(ctx context.Context, alert *models.Alert) (string, error)
	FindTransactions(ctx context.Context, limit int) ([]models.Transaction, error)
	FindAlerts(ctx context.Context, limit int) ([]models.Alert, error)

	Ping(ctx context.Context) error
	Collections(ctx context.Context) ([]string, error)
	Name() string
	Close() error
}
