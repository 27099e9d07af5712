package transaction

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"fraudscope/internal/logging"
	"fraudscope/internal/models"
	"fraudscope/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

type MockMetrics struct {
	mock.Mock
}

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("CET", 3600))

func newTestService(store repositories.Store, opts ...Option) Service {
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(logging.Discard()),
	}, opts...)
	return NewService(store, opts...)
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func request(amount float64, country, channel, category, device, ip *string) *models.CreateTransactionRequest {
	return &models.CreateTransactionRequest{
		UserID:           "user-1",
		Amount:           floatPtr(amount),
		Currency:         "USD",
		Country:          country,
		Channel:          channel,
		MerchantCategory: category,
		DeviceID:         device,
		IPAddress:        ip,
	}
}

func TestService_Create_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		req       *models.CreateTransactionRequest
		wantScore float64
		wantLevel models.RiskLevel
		wantTags  []string
	}{
		{
			name:      "high risk creates alert",
			req:       request(6000, strPtr("RU"), strPtr("web"), strPtr("gambling"), nil, nil),
			wantScore: 90,
			wantLevel: models.RiskLevelHigh,
			wantTags:  []string{"gambling", "web", "RU"},
		},
		{
			name:      "low risk small purchase",
			req:       request(150, strPtr("US"), strPtr("card"), nil, strPtr("d1"), strPtr("1.2.3.4")),
			wantScore: 0,
			wantLevel: models.RiskLevelLow,
		},
		{
			name:      "low risk without identity",
			req:       request(1200, strPtr("DE"), strPtr("mobile"), nil, nil, nil),
			wantScore: 30,
			wantLevel: models.RiskLevelLow,
		},
		{
			name:      "medium never alerts",
			req:       request(500, strPtr("NG"), strPtr("card-not-present"), strPtr("adult"), strPtr("dev"), strPtr("9.9.9.9")),
			wantScore: 45,
			wantLevel: models.RiskLevelMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := repositories.NewMemoryStore()
			svc := newTestService(store)

			res, err := svc.Create(ctx, tt.req)
			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, tt.wantScore, res.RiskScore)
			assert.Equal(t, tt.wantLevel, res.RiskLevel)

			txs, err := svc.ListTransactions(ctx, 0)
			require.NoError(t, err)
			require.Len(t, txs, 1)
			assert.Equal(t, res.ID, txs[0].ID)
			assert.Equal(t, tt.wantScore, txs[0].RiskScore)
			assert.Equal(t, tt.wantLevel, txs[0].RiskLevel)
			assert.False(t, txs[0].IsFraud)

			alerts, err := svc.ListAlerts(ctx, 0)
			require.NoError(t, err)
			if tt.wantLevel != models.RiskLevelHigh {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, res.ID, alerts[0].TransactionRef)
			assert.Equal(t, "user-1", alerts[0].UserID)
			assert.Equal(t, tt.wantScore, alerts[0].RiskScore)
			assert.Equal(t, tt.wantTags, []string(alerts[0].Tags))
			assert.Equal(t, "High-risk transaction: $6000.0 USD at unknown merchant", alerts[0].Reason)
		})
	}
}

func TestService_Create_DefaultsTimestampToUTCNow(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	svc := newTestService(store)

	_, err := svc.Create(ctx, request(10, nil, nil, nil, strPtr("d"), strPtr("ip")))
	require.NoError(t, err)

	txs, err := svc.ListTransactions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Timestamp.Equal(fixedNow))
	assert.Equal(t, time.UTC, txs[0].Timestamp.Location())
}

func TestService_Create_KeepsClientTimestamp(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	svc := newTestService(store)

	ts := time.Date(2023, 7, 1, 8, 0, 0, 0, time.UTC)
	req := request(10, nil, nil, nil, nil, nil)
	req.Timestamp = &ts

	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	txs, _ := svc.ListTransactions(ctx, 1)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Timestamp.Equal(ts))
}

func TestService_Create_OverwritesDerivedFields(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	svc := newTestService(store)

	req := request(6000, strPtr("RU"), strPtr("web"), strPtr("gambling"), nil, nil)
	req.ID = strPtr("client-chosen")
	req.RiskScore = floatPtr(1)
	req.RiskLevel = strPtr("low")
	isFraud := true
	req.IsFraud = &isFraud

	res, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, "client-chosen", res.ID)
	assert.Equal(t, 90.0, res.RiskScore)

	txs, _ := svc.ListTransactions(ctx, 1)
	require.Len(t, txs, 1)
	assert.Equal(t, models.RiskLevelHigh, txs[0].RiskLevel)
	assert.False(t, txs[0].IsFraud)
}

func TestService_Create_ValidationError(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)

	tests := []struct {
		name string
		req  *models.CreateTransactionRequest
	}{
		{"negative amount", &models.CreateTransactionRequest{UserID: "u1", Amount: floatPtr(-1)}},
		{"missing user", &models.CreateTransactionRequest{Amount: floatPtr(1)}},
		{"missing amount", &models.CreateTransactionRequest{UserID: "u1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Create(context.Background(), tt.req)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrValidation)
			assert.NotErrorIs(t, err, ErrStorage)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.NotEmpty(t, vErr.Fields)
		})
	}

	// No persistence attempted.
	store.AssertNotCalled(t, "InsertTransaction", mock.Anything, mock.Anything)
}

func TestService_Create_TransactionWriteFails(t *testing.T) {
	dbErr := errors.New("connection refused")
	store := new(MockStore)
	store.On("InsertTransaction", mock.Anything, mock.Anything).Return("", dbErr)
	store.On("Name").Return("mock")

	metrics := new(MockMetrics)
	metrics.On("RecordStorageError", OpInsert, models.CollectionTransaction).Return()
	metrics.On("RecordOperationDuration", "create", mock.Anything).Return()

	svc := newTestService(store, WithMetrics(metrics))
	res, err := svc.Create(context.Background(), request(6000, strPtr("RU"), strPtr("web"), strPtr("gambling"), nil, nil))

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, dbErr)

	var sErr *StorageError
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, OpInsert, sErr.Op)
	assert.Equal(t, models.CollectionTransaction, sErr.Collection)

	store.AssertNotCalled(t, "InsertAlert", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
	metrics.AssertExpectations(t)
	// Unstored transactions are not counted as scored.
	metrics.AssertNotCalled(t, "RecordScore", mock.Anything, mock.Anything)
}

func TestService_Create_RecordsScoreAfterInsert(t *testing.T) {
	store := new(MockStore)
	store.On("InsertTransaction", mock.Anything, mock.Anything).Return("tx-1", nil)

	metrics := new(MockMetrics)
	metrics.On("RecordScore", "low", 0.0).Return().Once()
	metrics.On("RecordOperationDuration", "create", mock.Anything).Return()

	svc := newTestService(store, WithMetrics(metrics))
	_, err := svc.Create(context.Background(), request(10, nil, nil, nil, strPtr("d"), strPtr("ip")))
	require.NoError(t, err)

	store.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestService_Create_AlertWriteFailsKeepsTransaction(t *testing.T) {
	store := new(MockStore)
	store.On("InsertTransaction", mock.Anything, mock.Anything).Return("tx-123", nil)
	store.On("InsertAlert", mock.Anything, mock.MatchedBy(func(a *models.Alert) bool {
		return a.TransactionRef == "tx-123" && a.RiskLevel == models.RiskLevelHigh
	})).Return("", errors.New("disk full"))
	store.On("Name").Return("mock")

	svc := newTestService(store)
	res, err := svc.Create(context.Background(), request(6000, strPtr("RU"), strPtr("web"), strPtr("gambling"), nil, nil))

	assert.ErrorIs(t, err, ErrStorage)
	var sErr *StorageError
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, models.CollectionAlert, sErr.Collection)

	// The transaction write is not undone and its id is still reported.
	require.NotNil(t, res)
	assert.Equal(t, "tx-123", res.ID)
	store.AssertExpectations(t)
}

func TestService_List_ClampsLimit(t *testing.T) {
	tests := []struct {
		requested int
		want      int
	}{
		{-5, 50},
		{0, 50},
		{1, 1},
		{120, 120},
		{200, 200},
		{201, 200},
		{10000, 200},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit %d", tt.requested), func(t *testing.T) {
			store := new(MockStore)
			store.On("FindTransactions", mock.Anything, tt.want).Return([]models.Transaction{}, nil)
			store.On("FindAlerts", mock.Anything, tt.want).Return([]models.Alert(nil), nil)

			svc := newTestService(store)
			txs, err := svc.ListTransactions(context.Background(), tt.requested)
			require.NoError(t, err)
			assert.NotNil(t, txs)

			alerts, err := svc.ListAlerts(context.Background(), tt.requested)
			require.NoError(t, err)
			assert.NotNil(t, alerts)

			store.AssertExpectations(t)
			assert.Equal(t, tt.want, ClampLimit(tt.requested))
		})
	}
}

func TestService_List_NeverExceedsLimit(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	svc := newTestService(store)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, request(6000, strPtr("RU"), strPtr("web"), nil, nil, nil))
		require.NoError(t, err)
	}

	txs, err := svc.ListTransactions(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, txs, 3)

	alerts, err := svc.ListAlerts(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestService_List_StorageError(t *testing.T) {
	store := new(MockStore)
	store.On("FindAlerts", mock.Anything, DefaultListLimit).Return([]models.Alert(nil), errors.New("timeout"))
	store.On("Name").Return("mock")

	svc := newTestService(store)
	alerts, err := svc.ListAlerts(context.Background(), 0)

	assert.Nil(t, alerts)
	var sErr *StorageError
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, OpFind, sErr.Op)
	assert.Equal(t, models.CollectionAlert, sErr.Collection)
}

func TestNewService_PanicsWithoutStore(t *testing.T) {
	assert.Panics(t, func() { NewService(nil) })
}

// Implement repositories.Store

func (m *MockStore) InsertTransaction(ctx context.Context, tx *models.Transaction) (string, error) {
	args := m.Called(ctx, tx)
	return args.String(0), args.Error(1)
}

func (m *MockStore) InsertAlert(ctx context.Context, alert *models.Alert) (string, error) {
	args := m.Called(ctx, alert)
	return args.String(0), args.Error(1)
}

func (m *MockStore) FindTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockStore) FindAlerts(ctx context.Context, limit int) ([]models.Alert, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Alert), args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Collections(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) Name() string {
	return m.Called().String(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

// Implement metrics.Collector

func (m *MockMetrics) RecordScore(level string, score float64) {
	m.Called(level, score)
}

func (m *MockMetrics) RecordAlert() {
	m.Called()
}

func (m *MockMetrics) RecordStorageError(op, collection string) {
	m.Called(op, collection)
}

func (m *MockMetrics) RecordOperationDuration(op string, duration time.Duration) {
	m.Called(op, duration)
}
