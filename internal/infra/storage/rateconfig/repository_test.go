package rateconfig

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/dbmetrics"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func configRow(mock sqlmock.Sqlmock) *sqlmock.Rows {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return mock.NewRows(columns).AddRow(
		int64(5), 2, "approved",
		`{"visitor":{"18":{"weekday":1800,"holiday":2500}}}`,
		`{"1:4":{"18":1600}}`,
		`{"cleaning":{"18":200},"cartPerPerson":{"18":500}}`,
		`{"entertainmentTax":0.05}`,
		int64(10), int64(11), nil, now, now,
	)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, version_number")).
		WithArgs(int64(5)).
		WillReturnRows(configRow(mock))

	cfg, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), cfg.ID)
	assert.Equal(t, domain.RateApproved, cfg.Status)
	assert.Equal(t, int64(2500), cfg.GreenFees["visitor"][domain.Holes18][domain.Holiday])
	assert.Equal(t, int64(1600), cfg.CaddyFees["1:4"][domain.Holes18])
	assert.Equal(t, int64(500), cfg.BaseFees.CartPerPerson[domain.Holes18])
	assert.Equal(t, 0.05, cfg.TaxConfig.EntertainmentTax)
	require.NotNil(t, cfg.ApprovedBy)
	assert.Equal(t, int64(11), *cfg.ApprovedBy)
	assert.Nil(t, cfg.ActivatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM rate_configs").
		WillReturnRows(mock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRateConfigNotFound)
}

func TestRepository_GetActive_LocksInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM rate_configs WHERE status = \\$1 FOR UPDATE").
		WithArgs("active").
		WillReturnRows(configRow(mock))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	cfg, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), cfg.ID)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rate_configs")).
		WithArgs(3, "draft", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), int64(9)).
		WillReturnRows(mock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(12), now, now))

	cfg := &domain.RateConfig{
		VersionNumber: 3,
		Status:        domain.RateDraft,
		GreenFees:     domain.GreenFees{"visitor": {domain.Holes9: {domain.Weekday: 900}}},
		CreatedBy:     9,
	}
	created, err := repo.Create(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(12), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Transition(t *testing.T) {
	repo, mock := newMock(t)
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	actor := int64(4)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE rate_configs SET status = $1, updated_at = $2, approved_by = $3")).
		WithArgs("approved", at, &actor, int64(5), "pending_approval").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Transition(context.Background(), 5, domain.RatePendingApproval, domain.RateApproved, &actor, at)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Transition_Conflict(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE rate_configs").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Transition(context.Background(), 5, domain.RateApproved, domain.RateActive, nil, time.Now())
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestRepository_NextVersion(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(version_number), 0) + 1 FROM rate_configs")).
		WillReturnRows(mock.NewRows([]string{"v"}).AddRow(4))

	v, err := repo.NextVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}
