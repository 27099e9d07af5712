package transaction

import (
	"context"
	"log/slog"
	"time"

	"fraudscope/internal/metrics"
	"fraudscope/internal/models"
	"fraudscope/internal/repositories"
	"fraudscope/internal/services/risk"
	"fraudscope/internal/validation"
)

type service struct {
	store   repositories.Store
	clock   func() time.Time
	metrics metrics.Collector
	logger  *slog.Logger
}

type Option func(*service)

// WithClock overrides the clock used to default missing timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *service) { s.clock = clock }
}

func WithMetrics(m metrics.Collector) Option {
	return func(s *service) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *service) { s.logger = l }
}

// NewService creates a new transaction service
func NewService(store repositories.Store, opts ...Option) Service {
	if store == nil {
		panic("store is required")
	}

	s := &service{
		store:   store,
		clock:   time.Now,
		metrics: &metrics.NoopMetricsCollector{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates, scores and stores one transaction, then stores an alert
// when the level is high. If the transaction was stored but the alert write
// failed, both the result and a *StorageError are returned; the transaction
// is not rolled back.
func (s *service) Create(ctx context.Context, req *models.CreateTransactionRequest) (*CreateResult, error) {
	defer s.observe("create", time.Now())

	v := validation.New()
	v.CreateTransaction(req)
	if !v.Valid() {
		return nil, &ValidationError{Fields: v.Errors}
	}

	tx := req.ToTransaction()
	if tx.Timestamp.IsZero() {
		tx.Timestamp = s.clock().UTC()
	}

	assessment := risk.Assess(tx)
	tx.RiskScore = assessment.Score
	tx.RiskLevel = assessment.Level
	tx.IsFraud = false

	id, err := s.store.InsertTransaction(ctx, tx)
	if err != nil {
		return nil, s.storageError(ctx, OpInsert, models.CollectionTransaction, err)
	}
	s.metrics.RecordScore(string(tx.RiskLevel), tx.RiskScore)

	result := &CreateResult{
		ID:        id,
		RiskScore: tx.RiskScore,
		RiskLevel: tx.RiskLevel,
	}

	alert := risk.DeriveAlert(tx, tx.RiskScore, tx.RiskLevel)
	if alert == nil {
		return result, nil
	}

	alert.TransactionRef = id
	if _, err := s.store.InsertAlert(ctx, alert); err != nil {
		return result, s.storageError(ctx, OpInsert, models.CollectionAlert, err)
	}

	s.metrics.RecordAlert()
	s.logger.WarnContext(ctx, "high risk transaction",
		"transaction_ref", id,
		"user_id", tx.UserID,
		"risk_score", tx.RiskScore,
		"tags", []string(alert.Tags),
	)

	return result, nil
}

func (s *service) ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	defer s.observe("list_transactions", time.Now())

	txs, err := s.store.FindTransactions(ctx, ClampLimit(limit))
	if err != nil {
		return nil, s.storageError(ctx, OpFind, models.CollectionTransaction, err)
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return txs, nil
}

func (s *service) ListAlerts(ctx context.Context, limit int) ([]models.Alert, error) {
	defer s.observe("list_alerts", time.Now())

	alerts, err := s.store.FindAlerts(ctx, ClampLimit(limit))
	if err != nil {
		return nil, s.storageError(ctx, OpFind, models.CollectionAlert, err)
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}
	return alerts, nil
}

// ClampLimit maps a requested page size into [MinListLimit, MaxListLimit].
// Zero or negative means unspecified.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func (s *service) storageError(ctx context.Context, op, collection string, err error) error {
	s.metrics.RecordStorageError(op, collection)
	s.logger.ErrorContext(ctx, "store operation failed",
		"op", op,
		"collection", collection,
		"store", s.store.Name(),
		"error", err,
	)
	return &StorageError{Op: op, Collection: collection, Err: err}
}

func (s *service) observe(op string, start time.Time) {
	s.metrics.RecordOperationDuration(op, time.Since(start))
}
