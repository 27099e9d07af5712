package validation

import "fraudscope/internal/models"

// CreateTransaction checks the fields a create request must carry.
func (v *Validator) CreateTransaction(req *models.CreateTransactionRequest) {
	v.Required("user_id", req.UserID)
	v.Required("currency", req.Currency)
	if v.Present("amount", req.Amount) {
		v.Min("amount", *req.Amount, MinTransactionAmount)
	}
}
