package transaction

import (
	"context"

	"fraudscope/internal/models"
)

type Service interface {
	Create(ctx context.Context, req *models.CreateTransactionRequest) (*CreateResult, error)
	ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error)
	ListAlerts(ctx context.Context, limit int) ([]models.Alert, error)
}
