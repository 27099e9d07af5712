package risk

import (
	"fmt"

	"fraudscope/internal/models"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const unknownMerchant = "unknown merchant"

// DeriveAlert returns the alert for a scored transaction, or nil when the
// level is not high. TransactionRef is left empty; the caller sets it once
// the transaction has a storage identity.
func DeriveAlert(tx *models.Transaction, score float64, level models.RiskLevel) *models.Alert {
	if level != models.RiskLevelHigh {
		return nil
	}

	return &models.Alert{
		UserID:    tx.UserID,
		Reason:    AlertReason(tx),
		RiskScore: score,
		RiskLevel: level,
		Tags:      AlertTags(tx),
	}
}

// AlertReason renders the human readable explanation attached to an alert.
func AlertReason(tx *models.Transaction) string {
	merchant := models.StringValue(tx.Merchant)
	if merchant == "" {
		merchant = unknownMerchant
	}
	return fmt.Sprintf("High-risk transaction: $%s %s at %s",
		FormatAmount(tx.Amount), tx.Currency, merchant)
}

// FormatAmount renders an amount in its shortest decimal form, keeping a
// trailing ".0" on whole numbers so 6000 reads "6000.0".
func FormatAmount(amount float64) string {
	d := decimal.NewFromFloat(amount)
	if d.IsInteger() {
		return d.String() + ".0"
	}
	return d.String()
}

// AlertTags lists merchant category, channel and country in that order,
// skipping empty values.
func AlertTags(tx *models.Transaction) pq.StringArray {
	tags := make(pq.StringArray, 0, 3)
	for _, v := range []*string{tx.MerchantCategory, tx.Channel, tx.Country} {
		if s := models.StringValue(v); s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}
