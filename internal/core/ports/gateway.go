package ports

import (
	"context"
	"time"

	"payline-connector/internal/core/domain"
)

// SOAPClient is a client bound to one operation group of the gateway.
type SOAPClient interface {
	Group() domain.OperationGroup
	// Supports reports whether the group's service definition declares action.
	Supports(action string) bool
	// Call sends an already normalized request and returns the decoded response.
	// A remote 401 is reported as an AUTH_001 apperror, anything that prevents
	// reading a response as SYS_002.
	Call(ctx context.Context, action string, args domain.Fields) (domain.Response, error)
}

// ClientFactory builds authenticated clients for an operation group.
type ClientFactory interface {
	NewClient(ctx context.Context, group domain.OperationGroup, creds domain.Credentials) (SOAPClient, error)
}

// Dispatcher routes a named action to whichever client exposes it.
type Dispatcher interface {
	RunAction(ctx context.Context, action string, args domain.Fields) (domain.Response, error)
}

// WebPaymentRequest holds the hosted payment page parameters.
type WebPaymentRequest struct {
	ReturnURL            string
	CancelURL            string
	Buyer                domain.Fields
	SelectedContractList []string
}

// Gateway is the typed facade over the gateway's remote operations.
type Gateway interface {
	CreateWallet(ctx context.Context, walletID string, card domain.Card, owner *domain.Owner) (*domain.WalletResult, error)
	UpdateWallet(ctx context.Context, walletID string, card domain.Card, owner *domain.Owner) (*domain.WalletResult, error)
	GetWallet(ctx context.Context, walletID string) (*domain.WalletResult, error)
	DisableWallet(ctx context.Context, walletID string) (*domain.SuccessResult, error)
	DoWalletPayment(ctx context.Context, walletID string, payment domain.Payment, opts domain.Options) (*domain.TransactionResult, error)
	ScheduleWalletPayment(ctx context.Context, walletID string, payment domain.Payment, scheduledDate time.Time, opts domain.Options) (*domain.TransactionResult, error)
	DoAuthorization(ctx context.Context, payment domain.Payment, card domain.Card, opts domain.Options) (*domain.TransactionResult, error)
	DoReAuthorization(ctx context.Context, transactionID string, payment domain.Payment, card domain.Card, opts domain.Options) (*domain.TransactionResult, error)
	DoCapture(ctx context.Context, transactionID string, payment domain.Payment, opts domain.Options) (*domain.TransactionResult, error)
	DoReset(ctx context.Context, transactionID string, comment string) (*domain.TransactionResult, error)
	DoRefund(ctx context.Context, transactionID string, payment domain.Payment, comment string) (*domain.TransactionResult, error)
	DoWebPayment(ctx context.Context, payment domain.Payment, req WebPaymentRequest, opts domain.Options) (*domain.WebPaymentResult, error)
	ValidateCard(ctx context.Context, payment domain.Payment, card domain.Card, opts domain.Options) (*domain.ValidationResult, error)
	TransactionDetail(ctx context.Context, transactionID string) (*domain.TransactionResult, error)
	RunAction(ctx context.Context, action string, args domain.Fields) (domain.Response, error)
}
