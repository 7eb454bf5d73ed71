package dto

import (
	"time"

	"payline-connector/internal/core/domain"
	"payline-connector/internal/core/ports"
	"payline-connector/pkg/apperror"
)

// Event is an inbound function call. Field names follow the gateway's
// vocabulary so events can be forwarded unchanged from other callers.
type Event struct {
	// Credential overrides; empty values fall back to configuration.
	MerchantID  string `json:"merchantId,omitempty" binding:"omitempty,safe_id"`
	AccessKey   string `json:"accessKey,omitempty"`
	ContractID  string `json:"contractId,omitempty" binding:"omitempty,safe_id"`
	Environment string `json:"environment,omitempty" binding:"omitempty,oneof=homologation production"`
	Currency    string `json:"currency,omitempty" binding:"omitempty,currency_code"`

	WalletID             string          `json:"walletId,omitempty" binding:"omitempty,safe_id,max=50"`
	Card                 *domain.Card    `json:"card,omitempty"`
	Owner                *domain.Owner   `json:"owner,omitempty"`
	Payment              *domain.Payment `json:"payment,omitempty"`
	Order                *Order          `json:"order,omitempty"`
	TransactionID        string          `json:"transactionID,omitempty" binding:"omitempty,safe_id,max=50"`
	Comment              string          `json:"comment,omitempty" binding:"max=255"`
	ReturnURL            string          `json:"returnURL,omitempty" binding:"safe_url"`
	CancelURL            string          `json:"cancelURL,omitempty" binding:"safe_url"`
	Buyer                domain.Fields   `json:"buyer,omitempty"`
	SelectedContractList []string        `json:"selectedContractList,omitempty" binding:"dive,safe_id"`
	ScheduledDate        string          `json:"scheduledDate,omitempty"`
	ReferencePrefix      string          `json:"referencePrefix,omitempty" binding:"omitempty,safe_id,max=20"`

	// runAction
	Action string        `json:"action,omitempty" binding:"omitempty,action_name"`
	Args   domain.Fields `json:"args,omitempty"`
}

// Order is the event form of domain.Order: the date is free text.
type Order struct {
	Ref      string          `json:"ref,omitempty" binding:"omitempty,max=50"`
	Amount   int64           `json:"amount,omitempty" binding:"gte=0"`
	Currency domain.Currency `json:"currency,omitempty"`
	Date     string          `json:"date,omitempty"`
}

// TimeParser parses event dates.
type TimeParser func(s string) (time.Time, bool)

// Options builds the shared per-call overrides.
func (e *Event) Options(parse TimeParser) (domain.Options, error) {
	opts := domain.Options{ReferencePrefix: e.ReferencePrefix}

	if e.Currency != "" {
		c, err := domain.ParseCurrency(e.Currency)
		if err != nil {
			return opts, apperror.Validation(err.Error())
		}
		opts.Currency = c
	}

	if e.Order != nil {
		order := &domain.Order{Ref: e.Order.Ref, Amount: e.Order.Amount, Currency: e.Order.Currency}
		if e.Order.Date != "" {
			t, ok := parse(e.Order.Date)
			if !ok {
				return opts, apperror.Validation("order.date is not a valid date: " + e.Order.Date)
			}
			order.Date = t
		}
		opts.Order = order
	}
	return opts, nil
}

// ScheduledTime parses ScheduledDate.
func (e *Event) ScheduledTime(parse TimeParser) (time.Time, error) {
	t, ok := parse(e.ScheduledDate)
	if !ok {
		return time.Time{}, apperror.Validation("scheduledDate is not a valid date: " + e.ScheduledDate)
	}
	return t, nil
}

// PaymentOrZero returns the payment, or a zero payment when absent.
func (e *Event) PaymentOrZero() domain.Payment {
	if e.Payment == nil {
		return domain.Payment{}
	}
	return *e.Payment
}

// CardOrZero returns the card, or a zero card when absent.
func (e *Event) CardOrZero() domain.Card {
	if e.Card == nil {
		return domain.Card{}
	}
	return *e.Card
}

// WebPayment builds the hosted page parameters.
func (e *Event) WebPayment() ports.WebPaymentRequest {
	return ports.WebPaymentRequest{
		ReturnURL:            e.ReturnURL,
		CancelURL:            e.CancelURL,
		Buyer:                e.Buyer,
		SelectedContractList: e.SelectedContractList,
	}
}

// FunctionList is the response of GET /api/v1/functions.
type FunctionList struct {
	Functions []string `json:"functions"`
}
