package service

import (
	"context"
	"strings"
	"time"

	"payline-connector/internal/core/domain"
	"payline-connector/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GatewayConfig holds the defaults applied to every outbound request.
type GatewayConfig struct {
	ContractNumber  string
	DefaultCurrency domain.Currency
	DefaultMode     domain.Mode
	ReferencePrefix string
	Version         string
}

// Gateway implements ports.Gateway on top of a dispatcher.
type Gateway struct {
	dispatcher ports.Dispatcher
	cfg        GatewayConfig
	log        zerolog.Logger

	now   func() time.Time
	newID func() string
}

var _ ports.Gateway = (*Gateway)(nil)

// NewGateway creates the facade. Zero config values fall back to USD, CPT,
// "order_" and protocol version 18.
func NewGateway(dispatcher ports.Dispatcher, cfg GatewayConfig, log zerolog.Logger) *Gateway {
	if cfg.DefaultCurrency == 0 {
		cfg.DefaultCurrency = domain.CurrencyUSD
	}
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = domain.ModeCPT
	}
	if cfg.ReferencePrefix == "" {
		cfg.ReferencePrefix = domain.DefaultReferencePrefix
	}
	if cfg.Version == "" {
		cfg.Version = domain.ProtocolVersion
	}
	return &Gateway{
		dispatcher: dispatcher,
		cfg:        cfg,
		log:        log,
		now:        time.Now,
		newID:      generateID,
	}
}

func generateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ---- Wallets ----

func (g *Gateway) CreateWallet(ctx context.Context, walletID string, card domain.Card, owner *domain.Owner) (*domain.WalletResult, error) {
	return g.saveWallet(ctx, "createWallet", walletID, card, owner)
}

func (g *Gateway) UpdateWallet(ctx context.Context, walletID string, card domain.Card, owner *domain.Owner) (*domain.WalletResult, error) {
	return g.saveWallet(ctx, "updateWallet", walletID, card, owner)
}

func (g *Gateway) saveWallet(ctx context.Context, action, walletID string, card domain.Card, owner *domain.Owner) (*domain.WalletResult, error) {
	args := g.request(
		domain.Field{Name: "contractNumber", Value: g.cfg.ContractNumber},
		domain.Field{Name: "wallet", Value: domain.Wallet{WalletID: walletID, Card: &card}},
		domain.Field{Name: "owner", Value: owner},
	)

	raw, err := g.dispatcher.RunAction(ctx, action, args)
	if err != nil {
		return nil, err
	}
	return walletResult(walletID, raw), nil
}

func (g *Gateway) GetWallet(ctx context.Context, walletID string) (*domain.WalletResult, error) {
	args := g.request(
		domain.Field{Name: "contractNumber", Value: g.cfg.ContractNumber},
		domain.Field{Name: "walletId", Value: walletID},
	)

	raw, err := g.dispatcher.RunAction(ctx, "getWallet", args)
	if err != nil {
		return nil, err
	}
	return walletResult(walletID, raw), nil
}

func (g *Gateway) DisableWallet(ctx context.Context, walletID string) (*domain.SuccessResult, error) {
	args := g.request(
		domain.Field{Name: "contractNumber", Value: g.cfg.ContractNumber},
		domain.Field{Name: "walletIdList", Value: []string{walletID}},
	)

	raw, err := g.dispatcher.RunAction(ctx, "disableWallet", args)
	if err != nil {
		return nil, err
	}
	return &domain.SuccessResult{Success: true, Raw: raw}, nil
}

// walletResult prefers the id echoed by the gateway.
func walletResult(walletID string, raw domain.Response) *domain.WalletResult {
	res := &domain.WalletResult{WalletID: walletID, Wallet: raw.Node("wallet"), Raw: raw}
	if id := raw.String("wallet", "walletId"); id != "" {
		res.WalletID = id
	}
	return res
}

// ---- Payments ----

func (g *Gateway) DoWalletPayment(ctx context.Context, walletID string, payment domain.Payment, opts domain.Options) (*domain.TransactionResult, error) {
	payment = g.paymentDefaults(payment, domain.ActionPayment, opts.Currency)
	args := g.request(
		domain.Field{Name: "payment", Value: payment},
		domain.Field{Name: "order", Value: g.orderDefaults(payment, opts)},
		domain.Field{Name: "walletId", Value: walletID},
	)
	return g.transaction(ctx, "doImmediateWalletPayment", args)
}

func (g *Gateway) ScheduleWalletPayment(ctx context.Context, walletID string, payment domain.Payment, scheduledDate time.Time, opts domain.Options) (*domain.TransactionResult, error) {
	payment = g.paymentDefaults(payment, domain.ActionPayment, opts.Currency)
	order := g.orderDefaults(payment, opts)
	args := g.request(
		domain.Field{Name: "payment", Value: payment},
		domain.Field{Name: "orderRef", Value: order.Ref},
		domain.Field{Name: "orderDate", Value: order.Date},
		domain.Field{Name: "scheduledDate", Value: scheduledDate},
		domain.Field{Name: "walletId", Value: walletID},
		domain.Field{Name: "order", Value: order},
	)

	raw, err := g.dispatcher.RunAction(ctx, "doScheduledWalletPayment", args)
	if err != nil {
		return nil, err
	}
	id := raw.String("transaction", "id")
	if id == "" {
		id = raw.String("paymentRecordId")
	}
	return &domain.TransactionResult{ID: id, Raw: raw}, nil
}

func (g *Gateway) DoAuthorization(ctx context.Context, payment domain.Payment, card domain.Card, opts domain.Options) (*domain.TransactionResult, error) {
	payment = g.paymentDefaults(payment, domain.ActionAuthorization, opts.Currency)
	args := g.request(
		domain.Field{Name: "payment", Value: payment},
		domain.Field{Name: "card", Value: card},
		domain.Field{Name: "order", Value: g.orderDefaults(payment, opts)},
	)
	return g.transaction(ctx, "doAuthorization", args)
}

// DoReAuthorization authorizes again the card of transactionID. The
// request carries no card data, card is accepted for symmetry with
// DoAuthorization and ignored.
func (g *Gateway) DoReAuthorization(ctx context.Context, transactionID string, payment domain.Payment, _ domain.Card, opts domain.Options) (*domain.TransactionResult, error) {
	payment = g.paymentDefaults(payment, domain.ActionAuthorization, opts.Currency)
	args := g.request(
		domain.Field{Name: "transactionID", Value: transactionID},
		domain.Field{Name: "payment", Value: payment},
		domain.Field{Name: "order", Value: g.orderDefaults(payment, opts)},
	)
	return g.transaction(ctx, "doReAuthorization", args)
}

func (g *Gateway) DoCapture(ctx context.Context, transactionID string, payment domain.Payment, opts domain.Options) (*domain.TransactionResult, error) {
	payment = g.paymentDefaults(payment, domain.ActionValidation, opts.Currency)
	args := g.request(
		domain.Field{Name: "transactionID", Value: transactionID},
		domain.Field{Name: "payment", Value: payment},
	)
	return g.transaction(ctx, "doCapture", args)
}

func (g *Gateway) DoReset(ctx context.Context, transactionID string, comment string) (*domain.TransactionResult, error) {
	if comment == "" {
		comment = domain.DefaultResetComment
	}
	args := g.request(
		domain.Field{Name: "transactionID", Value: transactionID},
		domain.Field{Name: "comment", Value: comment},
	)
	return g.transaction(ctx, "doReset", args)
}

func (g *Gateway) DoRefund(ctx context.Context, transactionID string, payment domain.Payment, comment string) (*domain.TransactionResult, error) {
	payment = g.paymentDefaults(payment, domain.ActionRefund, 0)
	args := g.request(
		domain.Field{Name: "transactionID", Value: transactionID},
		domain.Field{Name: "payment", Value: payment},
	)
	if comment != "" {
		args.Set("comment", comment)
	}
	return g.transaction(ctx, "doRefund", args)
}

func (g *Gateway) DoWebPayment(ctx context.Context, payment domain.Payment, req ports.WebPaymentRequest, opts domain.Options) (*domain.WebPaymentResult, error) {
	payment = g.paymentDefaults(payment, domain.ActionPayment, opts.Currency)

	var contracts any
	if len(req.SelectedContractList) > 0 {
		contracts = domain.Fields{{Name: "selectedContract", Value: req.SelectedContractList}}
	}
	buyer := req.Buyer
	if buyer == nil {
		buyer = domain.Fields{}
	}

	args := g.request(
		domain.Field{Name: "payment", Value: payment},
		domain.Field{Name: "returnURL", Value: req.ReturnURL},
		domain.Field{Name: "cancelURL", Value: req.CancelURL},
		domain.Field{Name: "order", Value: g.orderDefaults(payment, opts)},
		domain.Field{Name: "selectedContractList", Value: contracts},
		domain.Field{Name: "buyer", Value: buyer},
	)

	raw, err := g.dispatcher.RunAction(ctx, "doWebPayment", args)
	if err != nil {
		return nil, err
	}
	return &domain.WebPaymentResult{
		Token:       raw.String("token"),
		RedirectURL: raw.String("redirectURL"),
		Raw:         raw,
	}, nil
}

// ValidateCard authorizes at least the minimum amount and resets the
// authorization. A failed authorization is reported in the result, a
// failed reset is returned as an error.
func (g *Gateway) ValidateCard(ctx context.Context, payment domain.Payment, card domain.Card, opts domain.Options) (*domain.ValidationResult, error) {
	payment.Amount = max(payment.Amount, domain.MinValidationAmount)
	if opts.Order != nil {
		order := *opts.Order
		order.Amount = max(order.Amount, domain.MinValidationAmount)
		opts.Order = &order
	}

	auth, err := g.DoAuthorization(ctx, payment, card, opts)
	if err != nil {
		g.log.Info().Err(err).Msg("card validation refused")
		return &domain.ValidationResult{Success: false, Reason: err.Error()}, nil
	}

	reset, err := g.DoReset(ctx, auth.ID, domain.DefaultResetComment)
	if err != nil {
		return nil, err
	}
	return &domain.ValidationResult{Success: true, Authorization: auth, Reset: reset}, nil
}

// ---- Lookups ----

func (g *Gateway) TransactionDetail(ctx context.Context, transactionID string) (*domain.TransactionResult, error) {
	args := g.request(domain.Field{Name: "transactionId", Value: transactionID})
	return g.transaction(ctx, "getTransactionDetails", args)
}

// RunAction calls any declared action with caller-built arguments.
func (g *Gateway) RunAction(ctx context.Context, action string, args domain.Fields) (domain.Response, error) {
	return g.dispatcher.RunAction(ctx, action, args)
}

// ---- Helpers ----

// request prepends the protocol version to fields.
func (g *Gateway) request(fields ...domain.Field) domain.Fields {
	args := make(domain.Fields, 0, len(fields)+1)
	args = append(args, domain.Field{Name: "version", Value: g.cfg.Version})
	return append(args, fields...)
}

func (g *Gateway) transaction(ctx context.Context, action string, args domain.Fields) (*domain.TransactionResult, error) {
	raw, err := g.dispatcher.RunAction(ctx, action, args)
	if err != nil {
		return nil, err
	}
	return &domain.TransactionResult{ID: raw.String("transaction", "id"), Raw: raw}, nil
}

func (g *Gateway) paymentDefaults(p domain.Payment, action domain.ActionCode, currency domain.Currency) domain.Payment {
	p.Action = action
	if p.Mode == "" {
		p.Mode = g.cfg.DefaultMode
	}
	if p.Currency == 0 {
		p.Currency = currency
	}
	if p.Currency == 0 {
		p.Currency = g.cfg.DefaultCurrency
	}
	p.ContractNumber = g.cfg.ContractNumber
	return p
}

func (g *Gateway) orderDefaults(p domain.Payment, opts domain.Options) domain.Order {
	var o domain.Order
	if opts.Order != nil {
		o = *opts.Order
	}
	if o.Ref == "" {
		prefix := opts.ReferencePrefix
		if prefix == "" {
			prefix = g.cfg.ReferencePrefix
		}
		o.Ref = prefix + g.newID()
	}
	if o.Amount == 0 {
		o.Amount = p.Amount
	}
	if o.Currency == 0 {
		o.Currency = p.Currency
	}
	if o.Date.IsZero() {
		o.Date = g.now()
	}
	return o
}
