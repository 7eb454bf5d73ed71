package postgres

import (
	"context"
	"errors"
	"io"
	"testing"

	"payline-connector/config"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool_InvalidConfig(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:    "localhost",
		Port:    5432,
		User:    "postgres",
		DBName:  "payline_connector",
		SSLMode: "sometimes",
	}

	pool, err := NewPool(context.Background(), cfg, zerolog.New(io.Discard))
	assert.Nil(t, pool)
	assert.ErrorContains(t, err, "parsing database config")
}

func TestEnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS audit_logs \(.*duration_ms\s+BIGINT.*idx_audit_logs_transaction`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, EnsureSchema(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS audit_logs").
		WillReturnError(errors.New("permission denied for schema public"))

	err = EnsureSchema(context.Background(), mock)
	assert.ErrorContains(t, err, "creating schema")
	assert.ErrorContains(t, err, "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}
