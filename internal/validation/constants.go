package validation

const (
	// Amount limits
	MinTransactionAmount = 0.0
)
