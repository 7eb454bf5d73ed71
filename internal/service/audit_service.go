package service

import (
	"context"

	"payline-connector/internal/core/domain"
	"payline-connector/internal/core/ports"

	"github.com/rs/zerolog"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService creates a new audit service.
// If repo is nil, gateway actions are only written to the logger.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Log records an audit entry asynchronously (fire-and-forget).
func (s *auditService) Log(_ context.Context, entry *domain.AuditLog) {
	go func() {
		s.log.Info().
			Str("merchant_id", entry.MerchantID).
			Str("action", entry.Action).
			Str("group", string(entry.Group)).
			Str("status", string(entry.Status)).
			Str("result_code", entry.ResultCode).
			Str("transaction_id", entry.TransactionID).
			Dur("duration", entry.Duration).
			Msg("audit")

		if s.repo != nil {
			if err := s.repo.Create(context.Background(), entry); err != nil {
				s.log.Warn().Err(err).Str("action", entry.Action).Msg("failed to persist audit log")
			}
		}
	}()
}
