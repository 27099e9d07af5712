package repositories

import (
	"context"
	"fmt"

	"fraudscope/internal/config"
	"fraudscope/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore keeps each collection in its own PostgreSQL table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	if db == nil {
		panic("db is required")
	}
	return &GormStore{db: db}
}

func (s *GormStore) InsertTransaction(ctx context.Context, tx *models.Transaction) (string, error) {
	tx.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		tx.ID = ""
		return "", err
	}
	return tx.ID, nil
}

func (s *GormStore) InsertAlert(ctx context.Context, alert *models.Alert) (string, error) {
	alert.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(alert).Error; err != nil {
		alert.ID = ""
		return "", err
	}
	return alert.ID, nil
}

func (s *GormStore) FindTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

func (s *GormStore) FindAlerts(ctx context.Context, limit int) ([]models.Alert, error) {
	var alerts []models.Alert
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Collections(ctx context.Context) ([]string, error) {
	return s.db.WithContext(ctx).Migrator().GetTables()
}

func (s *GormStore) Name() string { return config.DriverPostgres }

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
