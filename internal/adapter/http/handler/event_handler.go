package handler

import (
	"context"
	"sort"
	"sync"

	"payline-connector/internal/adapter/http/dto"
	"payline-connector/internal/core/domain"
	"payline-connector/internal/core/ports"
	"payline-connector/pkg/apperror"
	"payline-connector/pkg/logger"

	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"
)

// EventDefaults are the configured credentials used when an event does not
// override them.
type EventDefaults struct {
	MerchantID     string
	AccessKey      string
	ContractNumber string
	Environment    domain.Environment
	Currency       domain.Currency
}

// GatewayBuildFunc builds a facade for a credential set and default currency.
type GatewayBuildFunc func(creds domain.Credentials, currency domain.Currency) ports.Gateway

// Callback receives the outcome of a function call. On success err is nil and
// result is the facade's result, unmodified.
type Callback func(err error, result any)

type function struct {
	required []string
	call     func(ctx context.Context, gw ports.Gateway, ev *dto.Event, parse dto.TimeParser) (any, error)
}

// EventHandler is the entry adapter: it maps named functions onto the facade.
type EventHandler struct {
	defaults EventDefaults
	build    GatewayBuildFunc
	parse    dto.TimeParser
	log      zerolog.Logger

	// Only the configured credentials are cached, one facade per currency.
	defaultKey string
	mu         sync.Mutex
	gateways   map[domain.Currency]ports.Gateway
}

// NewEventHandler creates the adapter. parse reads the free-text dates of
// events (order date, scheduled date).
func NewEventHandler(defaults EventDefaults, build GatewayBuildFunc, parse dto.TimeParser, log zerolog.Logger) *EventHandler {
	if defaults.Environment == "" {
		defaults.Environment = domain.EnvironmentHomologation
	}
	if defaults.Currency == 0 {
		defaults.Currency = domain.CurrencyUSD
	}
	h := &EventHandler{
		defaults: defaults,
		build:    build,
		parse:    parse,
		log:      logger.Component(log, "events"),
		gateways: make(map[domain.Currency]ports.Gateway),
	}
	if creds, err := domain.NewCredentials(defaults.MerchantID, defaults.AccessKey, defaults.ContractNumber, defaults.Environment); err == nil {
		h.defaultKey = creds.CacheKey()
	}
	return h
}

// Functions lists the function names Invoke accepts.
func (h *EventHandler) Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs function for ev and hands its outcome to callback.
func (h *EventHandler) Invoke(ctx context.Context, name string, ev *dto.Event, callback Callback) {
	result, err := h.invoke(ctx, name, ev)
	if err != nil {
		h.log.Warn().Err(err).Str("function", name).Msg("function failed")
		callback(err, nil)
		return
	}
	callback(nil, result)
}

// InvokeRaw is Invoke for loosely typed events such as queue payloads.
func (h *EventHandler) InvokeRaw(ctx context.Context, name string, raw map[string]any, callback Callback) {
	ev, err := dto.DecodeEvent(raw)
	if err != nil {
		callback(err, nil)
		return
	}
	h.Invoke(ctx, name, ev, callback)
}

func (h *EventHandler) invoke(ctx context.Context, name string, ev *dto.Event) (any, error) {
	fn, ok := functions[name]
	if !ok {
		return nil, apperror.ErrUnknownFunction(name)
	}
	if ev == nil {
		ev = &dto.Event{}
	}

	dto.TrimStrings(ev)
	if err := binding.Validator.ValidateStruct(ev); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := checkRequired(ev, fn.required); err != nil {
		return nil, err
	}

	gw, err := h.gateway(ev)
	if err != nil {
		return nil, err
	}
	return fn.call(ctx, gw, ev, h.parse)
}

// gateway returns the facade for the event's credentials. Events that
// override the configured credentials get a facade of their own that is
// dropped after the call.
func (h *EventHandler) gateway(ev *dto.Event) (ports.Gateway, error) {
	env := h.defaults.Environment
	if ev.Environment != "" {
		env = domain.ParseEnvironment(ev.Environment)
	}
	creds, err := domain.NewCredentials(
		firstNonEmpty(ev.MerchantID, h.defaults.MerchantID),
		firstNonEmpty(ev.AccessKey, h.defaults.AccessKey),
		firstNonEmpty(ev.ContractID, h.defaults.ContractNumber),
		env,
	)
	if err != nil {
		return nil, err
	}

	currency := h.defaults.Currency
	if ev.Currency != "" {
		if currency, err = domain.ParseCurrency(ev.Currency); err != nil {
			return nil, apperror.Validation(err.Error())
		}
	}

	if h.defaultKey == "" || creds.CacheKey() != h.defaultKey {
		return h.build(creds, currency), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if gw, ok := h.gateways[currency]; ok {
		return gw, nil
	}
	gw := h.build(creds, currency)
	h.gateways[currency] = gw
	return gw, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func checkRequired(ev *dto.Event, fields []string) error {
	for _, f := range fields {
		missing := false
		switch f {
		case "walletId":
			missing = ev.WalletID == ""
		case "transactionID":
			missing = ev.TransactionID == ""
		case "card":
			missing = ev.Card == nil
		case "payment":
			missing = ev.Payment == nil
		case "scheduledDate":
			missing = ev.ScheduledDate == ""
		case "action":
			missing = ev.Action == ""
		}
		if missing {
			return apperror.Validation(f + " is required")
		}
	}
	return nil
}

var functions = map[string]function{
	"createWallet": {
		required: []string{"walletId", "card"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, _ dto.TimeParser) (any, error) {
			return gw.CreateWallet(ctx, ev.WalletID, ev.CardOrZero(), ev.Owner)
		},
	},
	"updateWallet": {
		required: []string{"walletId", "card"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, _ dto.TimeParser) (any, error) {
			return gw.UpdateWallet(ctx, ev.WalletID, ev.CardOrZero(), ev.Owner)
		},
	},
	"getWallet": {
		required: []string{"walletId"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, _ dto.TimeParser) (any, error) {
			return gw.GetWallet(ctx, ev.WalletID)
		},
	},
	"disableWallet": {
		required: []string{"walletId"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, _ dto.TimeParser) (any, error) {
			return gw.DisableWallet(ctx, ev.WalletID)
		},
	},
	"doWalletPayment": {
		required: []string{"walletId", "payment"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, parse dto.TimeParser) (any, error) {
			opts, err := ev.Options(parse)
			if err != nil {
				return nil, err
			}
			return gw.DoWalletPayment(ctx, ev.WalletID, ev.PaymentOrZero(), opts)
		},
	},
	"scheduleWalletPayment": {
		required: []string{"walletId", "payment", "scheduledDate"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, parse dto.TimeParser) (any, error) {
			opts, err := ev.Options(parse)
			if err != nil {
				return nil, err
			}
			at, err := ev.ScheduledTime(parse)
			if err != nil {
				return nil, err
			}
			return gw.ScheduleWalletPayment(ctx, ev.WalletID, ev.PaymentOrZero(), at, opts)
		},
	},
	"doAuthorization": {
		required: []string{"payment", "card"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, parse dto.TimeParser) (any, error) {
			opts, err := ev.Options(parse)
			if err != nil {
				return nil, err
			}
			return gw.DoAuthorization(ctx, ev.PaymentOrZero(), ev.CardOrZero(), opts)
		},
	},
	"doReAuthorization": {
		required: []string{"transactionID", "payment"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, parse dto.TimeParser) (any, error) {
			opts, err := ev.Options(parse)
			if err != nil {
				return nil, err
			}
			return gw.DoReAuthorization(ctx, ev.TransactionID, ev.PaymentOrZero(), ev.CardOrZero(), opts)
		},
	},
	"doCapture": {
		required: []string{"transactionID", "payment"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, parse dto.TimeParser) (any, error) {
			opts, err := ev.Options(parse)
			if err != nil {
				return nil, err
			}
			return gw.DoCapture(ctx, ev.TransactionID, ev.PaymentOrZero(), opts)
		},
	},
	"doReset": {
		required: []string{"transactionID"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, _ dto.TimeParser) (any, error) {
			return gw.DoReset(ctx, ev.TransactionID, ev.Comment)
		},
	},
	"doRefund": {
		required: []string{"transactionID", "payment"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, _ dto.TimeParser) (any, error) {
			return gw.DoRefund(ctx, ev.TransactionID, ev.PaymentOrZero(), ev.Comment)
		},
	},
	"doWebPayment": {
		required: []string{"payment"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, parse dto.TimeParser) (any, error) {
			opts, err := ev.Options(parse)
			if err != nil {
				return nil, err
			}
			return gw.DoWebPayment(ctx, ev.PaymentOrZero(), ev.WebPayment(), opts)
		},
	},
	"validateCard": {
		required: []string{"card"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, parse dto.TimeParser) (any, error) {
			opts, err := ev.Options(parse)
			if err != nil {
				return nil, err
			}
			return gw.ValidateCard(ctx, ev.PaymentOrZero(), ev.CardOrZero(), opts)
		},
	},
	"transactionDetail": {
		required: []string{"transactionID"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, _ dto.TimeParser) (any, error) {
			return gw.TransactionDetail(ctx, ev.TransactionID)
		},
	},
	"runAction": {
		required: []string{"action"},
		call: func(ctx context.Context, gw ports.Gateway, ev *dto.Event, _ dto.TimeParser) (any, error) {
			return gw.RunAction(ctx, ev.Action, ev.Args)
		},
	},
}
