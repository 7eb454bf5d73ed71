package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"payline-connector/internal/core/domain"
	"payline-connector/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func newTestAuditLog(status domain.AuditStatus) *domain.AuditLog {
	return &domain.AuditLog{
		ID:            uuid.New(),
		MerchantID:    "merchant",
		Action:        "doAuthorization",
		Group:         domain.GroupDirectPayment,
		Status:        status,
		ResultCode:    "00000",
		TransactionID: "26101123456789",
		Duration:      120 * time.Millisecond,
		CreatedAt:     time.Now(),
	}
}

func TestAuditService_Log_PersistsToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, log *domain.AuditLog) error {
			if log.Action != "doAuthorization" {
				t.Errorf("expected doAuthorization, got %s", log.Action)
			}
			if log.Status != domain.AuditStatusSuccess {
				t.Errorf("expected SUCCESS, got %s", log.Status)
			}
			close(done)
			return nil
		},
	)

	svc.Log(context.Background(), newTestAuditLog(domain.AuditStatusSuccess))

	select {
	case <-done:
		// OK
	case <-time.After(2 * time.Second):
		t.Fatal("audit log not persisted in time")
	}
}

func TestAuditService_Log_RepoFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, log *domain.AuditLog) error {
			close(done)
			return errors.New("connection reset")
		},
	)

	svc.Log(context.Background(), newTestAuditLog(domain.AuditStatusRejected))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit log not attempted in time")
	}
}

func TestAuditService_Log_NilRepo(t *testing.T) {
	svc := NewAuditService(nil, newTestLogger())

	// Should not panic
	svc.Log(context.Background(), newTestAuditLog(domain.AuditStatusFailed))

	time.Sleep(50 * time.Millisecond) // let goroutine run
}
