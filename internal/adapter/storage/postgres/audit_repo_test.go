package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"payline-connector/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuditLog() *domain.AuditLog {
	return &domain.AuditLog{
		ID:            uuid.New(),
		MerchantID:    "merchant",
		Action:        "doAuthorization",
		Group:         domain.GroupDirectPayment,
		Status:        domain.AuditStatusSuccess,
		ResultCode:    "00000",
		TransactionID: "26101123456789",
		Duration:      1500 * time.Millisecond,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestAuditRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepository(mock)
	l := newTestAuditLog()

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(l.ID, "merchant", "doAuthorization", "directPayment", "SUCCESS",
			"00000", "26101123456789", int64(1500), l.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), l))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_Create_RejectedWithoutGroup(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepository(mock)
	l := newTestAuditLog()
	l.Group = ""
	l.Status = domain.AuditStatusFailed
	l.ResultCode = ""
	l.TransactionID = ""

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(l.ID, "merchant", "doAuthorization", "", "FAILED", "", "", int64(1500), l.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), l))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_Create_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepository(mock)

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	err = repo.Create(context.Background(), newTestAuditLog())
	assert.ErrorContains(t, err, "inserting audit log")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	hc := NewHealthCheck(mock)
	assert.Equal(t, "postgresql", hc.Name())

	mock.ExpectExec("SELECT 1").WillReturnResult(pgxmock.NewResult("SELECT", 1))
	assert.NoError(t, hc.Ping(context.Background()))

	mock.ExpectExec("SELECT 1").WillReturnError(errors.New("down"))
	assert.Error(t, hc.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
