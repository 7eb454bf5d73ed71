package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditStatus is the outcome of a dispatched gateway action.
type AuditStatus string

const (
	AuditStatusSuccess  AuditStatus = "SUCCESS"
	AuditStatusRejected AuditStatus = "REJECTED"
	AuditStatusFailed   AuditStatus = "FAILED"
)

// AuditLog records a single gateway action.
type AuditLog struct {
	ID            uuid.UUID      `json:"id"`
	MerchantID    string         `json:"merchant_id"`
	Action        string         `json:"action"`
	Group         OperationGroup `json:"operation_group,omitempty"`
	Status        AuditStatus    `json:"status"`
	ResultCode    string         `json:"result_code,omitempty"`
	TransactionID string         `json:"transaction_id,omitempty"`
	Duration      time.Duration  `json:"duration"`
	CreatedAt     time.Time      `json:"created_at"`
}
