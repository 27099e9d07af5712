package transaction

import "fraudscope/internal/models"

// CreateResult is the summary returned for a created transaction.
type CreateResult struct {
	ID        string           `json:"id"`
	RiskScore float64          `json:"risk_score"`
	RiskLevel models.RiskLevel `json:"risk_level"`
}
