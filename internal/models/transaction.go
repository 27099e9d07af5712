package models

import (
	"encoding/json"
	"time"
)

// Collection names used by every store implementation.
const (
	CollectionTransaction = "transaction"
	CollectionAlert       = "alert"
)

// Request defaults
const (
	DefaultCurrency = "USD"
	DefaultCountry  = "US"
	DefaultChannel  = "card"
)

type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Transaction is one scored payment event, stored in the "transaction" collection.
type Transaction struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	TransactionID    *string   `gorm:"index" json:"transaction_id"` // External reference, not unique
	UserID           string    `gorm:"not null;index" json:"user_id"`
	Amount           float64   `gorm:"not null" json:"amount"`
	Currency         string    `gorm:"not null;default:'USD'" json:"currency"`
	Merchant         *string   `json:"merchant"`
	MerchantCategory *string   `json:"merchant_category"`
	Country          *string   `json:"country"`
	Channel          *string   `json:"channel"`
	Timestamp        time.Time `gorm:"not null" json:"timestamp"`
	DeviceID         *string   `json:"device_id"`
	IPAddress        *string   `json:"ip_address"`
	RiskScore        float64   `gorm:"not null" json:"risk_score"`
	RiskLevel        RiskLevel `gorm:"type:varchar(16);not null;index" json:"risk_level"`
	IsFraud          bool      `gorm:"default:false" json:"is_fraud"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

func (Transaction) TableName() string { return CollectionTransaction }

// CreateTransactionRequest is the body accepted by the create endpoint.
// Server-derived fields are decoded so that a client sending them is not
// rejected, but ToTransaction never copies them.
type CreateTransactionRequest struct {
	TransactionID    *string    `json:"transaction_id"`
	UserID           string     `json:"user_id"`
	Amount           *float64   `json:"amount"`
	Currency         string     `json:"currency"`
	Merchant         *string    `json:"merchant"`
	MerchantCategory *string    `json:"merchant_category"`
	Country          *string    `json:"country"`
	Channel          *string    `json:"channel"`
	Timestamp        *time.Time `json:"timestamp"`
	DeviceID         *string    `json:"device_id"`
	IPAddress        *string    `json:"ip_address"`

	ID        *string  `json:"id"`
	RiskScore *float64 `json:"risk_score"`
	RiskLevel *string  `json:"risk_level"`
	IsFraud   *bool    `json:"is_fraud"`
}

// NewCreateTransactionRequest returns a request with the schema defaults applied.
func NewCreateTransactionRequest() CreateTransactionRequest {
	country, channel := DefaultCountry, DefaultChannel
	return CreateTransactionRequest{
		Currency: DefaultCurrency,
		Country:  &country,
		Channel:  &channel,
	}
}

// UnmarshalJSON applies defaults for fields missing from the body. A field
// sent as an explicit null overrides its default and stays unset; for
// currency that leaves it blank so validation rejects it.
func (r *CreateTransactionRequest) UnmarshalJSON(data []byte) error {
	type plain CreateTransactionRequest
	decoded := plain(NewCreateTransactionRequest())

	currency := DefaultCurrency
	aux := struct {
		*plain
		Currency *string `json:"currency"`
	}{
		plain:    &decoded,
		Currency: &currency,
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	decoded.Currency = StringValue(aux.Currency)
	*r = CreateTransactionRequest(decoded)
	return nil
}

// ToTransaction copies the caller-controlled fields. Identity, score, level
// and the fraud label are left zero for the service to assign.
func (r *CreateTransactionRequest) ToTransaction() *Transaction {
	tx := &Transaction{
		TransactionID:    r.TransactionID,
		UserID:           r.UserID,
		Currency:         r.Currency,
		Merchant:         r.Merchant,
		MerchantCategory: r.MerchantCategory,
		Country:          r.Country,
		Channel:          r.Channel,
		DeviceID:         r.DeviceID,
		IPAddress:        r.IPAddress,
	}
	if r.Amount != nil {
		tx.Amount = *r.Amount
	}
	if r.Timestamp != nil {
		tx.Timestamp = *r.Timestamp
	}
	return tx
}

// StringValue dereferences an optional field, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
