package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"payline-connector/internal/adapter/http/dto"
	"payline-connector/internal/core/domain"
	"payline-connector/internal/core/ports"
	"payline-connector/internal/core/ports/mocks"
	"payline-connector/internal/normalize"
	"payline-connector/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testDefaults = EventDefaults{
	MerchantID:     "merchant",
	AccessKey:      "secret",
	ContractNumber: "CB",
	Currency:       domain.CurrencyEUR,
}

type builtGateway struct {
	creds    domain.Credentials
	currency domain.Currency
}

type eventTestDeps struct {
	gateway *mocks.MockGateway
	events  *EventHandler
	builds  []builtGateway
}

func setupEvents(t *testing.T) *eventTestDeps {
	ctrl := gomock.NewController(t)
	deps := &eventTestDeps{gateway: mocks.NewMockGateway(ctrl)}
	build := func(creds domain.Credentials, currency domain.Currency) ports.Gateway {
		deps.builds = append(deps.builds, builtGateway{creds: creds, currency: currency})
		return deps.gateway
	}
	deps.events = NewEventHandler(testDefaults, build, normalize.New(time.UTC).ParseTime, zerolog.New(io.Discard))
	return deps
}

// invoke runs Invoke synchronously and returns what the callback received.
func invoke(t *testing.T, h *EventHandler, name string, ev *dto.Event) (any, error) {
	t.Helper()
	var (
		gotErr    error
		gotResult any
		called    int
	)
	h.Invoke(context.Background(), name, ev, func(err error, result any) {
		called++
		gotErr, gotResult = err, result
	})
	require.Equal(t, 1, called, "callback must be called exactly once")
	return gotResult, gotErr
}

// --- EventHandler tests ---

func TestEventHandler_Functions(t *testing.T) {
	deps := setupEvents(t)

	names := deps.events.Functions()
	assert.Len(t, names, 15)
	assert.Contains(t, names, "createWallet")
	assert.Contains(t, names, "runAction")
	assert.IsIncreasing(t, names)
}

func TestEventHandler_UnknownFunction(t *testing.T) {
	deps := setupEvents(t)

	_, err := invoke(t, deps.events, "doSomethingElse", &dto.Event{})

	assert.True(t, apperror.HasCode(err, apperror.CodeUnknownFunction))
	assert.Empty(t, deps.builds)
}

func TestEventHandler_CreateWallet(t *testing.T) {
	deps := setupEvents(t)

	card := &domain.Card{Number: "4970100000000154", Type: "CB", ExpirationDate: "1227", Cvx: "123"}
	want := &domain.WalletResult{WalletID: "wallet-1"}
	deps.gateway.EXPECT().CreateWallet(gomock.Any(), "wallet-1", *card, (*domain.Owner)(nil)).Return(want, nil)

	result, err := invoke(t, deps.events, "createWallet", &dto.Event{WalletID: " wallet-1 ", Card: card})

	require.NoError(t, err)
	assert.Same(t, want, result, "result is handed over unmodified")
	require.Len(t, deps.builds, 1)
	assert.Equal(t, "merchant", deps.builds[0].creds.MerchantID())
	assert.Equal(t, "CB", deps.builds[0].creds.ContractNumber())
	assert.Equal(t, domain.EnvironmentHomologation, deps.builds[0].creds.Environment())
	assert.Equal(t, domain.CurrencyEUR, deps.builds[0].currency)
}

func TestEventHandler_ReusesGatewayPerCredentials(t *testing.T) {
	deps := setupEvents(t)

	deps.gateway.EXPECT().GetWallet(gomock.Any(), "wallet-1").Return(&domain.WalletResult{WalletID: "wallet-1"}, nil).Times(4)

	_, err := invoke(t, deps.events, "getWallet", &dto.Event{WalletID: "wallet-1"})
	require.NoError(t, err)
	_, err = invoke(t, deps.events, "getWallet", &dto.Event{WalletID: "wallet-1"})
	require.NoError(t, err)
	_, err = invoke(t, deps.events, "getWallet", &dto.Event{
		WalletID:    "wallet-1",
		MerchantID:  "other",
		AccessKey:   "other-key",
		ContractID:  "AMEX",
		Environment: "production",
	})
	require.NoError(t, err)
	_, err = invoke(t, deps.events, "getWallet", &dto.Event{WalletID: "wallet-1", Currency: "GBP"})
	require.NoError(t, err)

	require.Len(t, deps.builds, 3)
	assert.Equal(t, "other", deps.builds[1].creds.MerchantID())
	assert.Equal(t, "AMEX", deps.builds[1].creds.ContractNumber())
	assert.Equal(t, domain.EnvironmentProduction, deps.builds[1].creds.Environment())
	assert.Equal(t, domain.CurrencyGBP, deps.builds[2].currency)
}

func TestEventHandler_OverrideGatewaysAreNotRetained(t *testing.T) {
	deps := setupEvents(t)

	deps.gateway.EXPECT().GetWallet(gomock.Any(), "wallet-1").Return(&domain.WalletResult{WalletID: "wallet-1"}, nil).Times(4)

	for i := 0; i < 3; i++ {
		_, err := invoke(t, deps.events, "getWallet", &dto.Event{WalletID: "wallet-1", AccessKey: "guess-" + strconv.Itoa(i)})
		require.NoError(t, err)
	}
	_, err := invoke(t, deps.events, "getWallet", &dto.Event{WalletID: "wallet-1", AccessKey: "guess-0"})
	require.NoError(t, err)

	assert.Len(t, deps.builds, 4, "override credentials are built per event")
	assert.Empty(t, deps.events.gateways, "only the configured credentials are cached")
}

func TestEventHandler_ConfiguredCredentialsGivenExplicitlyAreCached(t *testing.T) {
	deps := setupEvents(t)

	deps.gateway.EXPECT().DisableWallet(gomock.Any(), "wallet-1").Return(&domain.SuccessResult{Success: true}, nil).Times(2)

	_, err := invoke(t, deps.events, "disableWallet", &dto.Event{WalletID: "wallet-1"})
	require.NoError(t, err)
	_, err = invoke(t, deps.events, "disableWallet", &dto.Event{
		WalletID:   "wallet-1",
		MerchantID: testDefaults.MerchantID,
		AccessKey:  testDefaults.AccessKey,
	})
	require.NoError(t, err)

	assert.Len(t, deps.builds, 1)
	assert.Len(t, deps.events.gateways, 1)
}

func TestEventHandler_MissingCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	h := NewEventHandler(EventDefaults{}, func(domain.Credentials, domain.Currency) ports.Gateway { return gw },
		normalize.New(time.UTC).ParseTime, zerolog.New(io.Discard))

	_, err := invoke(t, h, "getWallet", &dto.Event{WalletID: "wallet-1"})

	assert.True(t, apperror.HasCode(err, apperror.CodeMissingCredentials))
}

func TestEventHandler_RequiredFields(t *testing.T) {
	tests := []struct {
		function string
		event    dto.Event
		missing  string
	}{
		{"createWallet", dto.Event{Card: &domain.Card{}}, "walletId"},
		{"createWallet", dto.Event{WalletID: "w"}, "card"},
		{"doAuthorization", dto.Event{Card: &domain.Card{}}, "payment"},
		{"doCapture", dto.Event{Payment: &domain.Payment{}}, "transactionID"},
		{"scheduleWalletPayment", dto.Event{WalletID: "w", Payment: &domain.Payment{}}, "scheduledDate"},
		{"runAction", dto.Event{}, "action"},
	}

	for _, tt := range tests {
		t.Run(tt.function+"/"+tt.missing, func(t *testing.T) {
			deps := setupEvents(t)

			_, err := invoke(t, deps.events, tt.function, &tt.event)

			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
			assert.Contains(t, err.Error(), tt.missing)
			assert.Empty(t, deps.builds)
		})
	}
}

func TestEventHandler_InvalidEvent(t *testing.T) {
	deps := setupEvents(t)

	_, err := invoke(t, deps.events, "getWallet", &dto.Event{WalletID: "wallet;DROP"})

	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestEventHandler_PaymentOptions(t *testing.T) {
	deps := setupEvents(t)

	payment := domain.Payment{Amount: 1500}
	deps.gateway.EXPECT().DoAuthorization(gomock.Any(), payment, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Payment, _ domain.Card, opts domain.Options) (*domain.TransactionResult, error) {
			assert.Equal(t, "shop_", opts.ReferencePrefix)
			assert.Equal(t, domain.CurrencyGBP, opts.Currency)
			require.NotNil(t, opts.Order)
			assert.Equal(t, "ORDER-1", opts.Order.Ref)
			assert.Equal(t, time.Date(2024, time.May, 7, 9, 3, 0, 0, time.UTC), opts.Order.Date)
			return &domain.TransactionResult{ID: "T1"}, nil
		})

	result, err := invoke(t, deps.events, "doAuthorization", &dto.Event{
		Payment:         &payment,
		Card:            &domain.Card{Number: "4970100000000154"},
		ReferencePrefix: "shop_",
		Currency:        "GBP",
		Order:           &dto.Order{Ref: "ORDER-1", Date: "2024-05-07T09:03:00Z"},
	})

	require.NoError(t, err)
	assert.Equal(t, "T1", result.(*domain.TransactionResult).ID)
}

func TestEventHandler_ScheduleWalletPayment(t *testing.T) {
	deps := setupEvents(t)

	at := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	deps.gateway.EXPECT().ScheduleWalletPayment(gomock.Any(), "wallet-1", gomock.Any(), at, gomock.Any()).
		Return(&domain.TransactionResult{ID: "P1"}, nil)

	_, err := invoke(t, deps.events, "scheduleWalletPayment", &dto.Event{
		WalletID:      "wallet-1",
		Payment:       &domain.Payment{Amount: 100},
		ScheduledDate: "2024-06-01T00:00:00Z",
	})
	require.NoError(t, err)

	_, err = invoke(t, deps.events, "scheduleWalletPayment", &dto.Event{
		WalletID:      "wallet-1",
		Payment:       &domain.Payment{Amount: 100},
		ScheduledDate: "someday",
	})
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestEventHandler_DoWebPayment(t *testing.T) {
	deps := setupEvents(t)

	deps.gateway.EXPECT().DoWebPayment(gomock.Any(), gomock.Any(), ports.WebPaymentRequest{
		ReturnURL:            "https://shop.example/ok",
		CancelURL:            "https://shop.example/ko",
		SelectedContractList: []string{"CB"},
	}, gomock.Any()).Return(&domain.WebPaymentResult{Token: "tok", RedirectURL: "https://pay"}, nil)

	result, err := invoke(t, deps.events, "doWebPayment", &dto.Event{
		Payment:              &domain.Payment{Amount: 100},
		ReturnURL:            "https://shop.example/ok",
		CancelURL:            "https://shop.example/ko",
		SelectedContractList: []string{"CB"},
	})

	require.NoError(t, err)
	assert.Equal(t, "tok", result.(*domain.WebPaymentResult).Token)
}

func TestEventHandler_RunAction(t *testing.T) {
	deps := setupEvents(t)

	args := domain.Fields{{Name: "transactionId", Value: "T1"}}
	raw := domain.Response{"result": map[string]any{"code": "00000"}}
	deps.gateway.EXPECT().RunAction(gomock.Any(), "getTransactionDetails", args).Return(raw, nil)

	result, err := invoke(t, deps.events, "runAction", &dto.Event{Action: "getTransactionDetails", Args: args})

	require.NoError(t, err)
	assert.Equal(t, raw, result)
}

func TestEventHandler_GatewayErrorReachesCallback(t *testing.T) {
	deps := setupEvents(t)

	rejected := apperror.ErrGatewayRejected("01100", "Do not honor", map[string]any{"result": map[string]any{"code": "01100"}})
	deps.gateway.EXPECT().DoReset(gomock.Any(), "T1", "").Return(nil, rejected)

	result, err := invoke(t, deps.events, "doReset", &dto.Event{TransactionID: "T1"})

	assert.Nil(t, result)
	assert.Same(t, rejected, err)
}

func TestEventHandler_InvokeRaw(t *testing.T) {
	deps := setupEvents(t)

	deps.gateway.EXPECT().DoRefund(gomock.Any(), "T1", domain.Payment{Amount: 250, Currency: domain.CurrencyEUR}, "customer request").
		Return(&domain.TransactionResult{ID: "R1"}, nil)

	var result any
	deps.events.InvokeRaw(context.Background(), "doRefund", map[string]any{
		"transactionID": "T1",
		"payment":       map[string]any{"amount": "250", "currency": "EUR"},
		"comment":       "customer request",
	}, func(err error, r any) {
		require.NoError(t, err)
		result = r
	})

	assert.Equal(t, "R1", result.(*domain.TransactionResult).ID)
}

func TestEventHandler_InvokeRawBadPayload(t *testing.T) {
	deps := setupEvents(t)

	var gotErr error
	deps.events.InvokeRaw(context.Background(), "doRefund", map[string]any{"payment": "250"}, func(err error, _ any) {
		gotErr = err
	})

	assert.True(t, apperror.HasCode(gotErr, apperror.CodeValidation))
}

// --- HTTP tests ---

func newTestRouter(deps *eventTestDeps, extra func(*RouterDeps)) *gin.Engine {
	rd := RouterDeps{Events: deps.events, Logger: zerolog.Nop()}
	if extra != nil {
		extra(&rd)
	}
	r := SetupRouter(rd)
	gin.SetMode(gin.TestMode)
	return r
}

func postFunction(r *gin.Engine, name string, body any, header map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/functions/"+name, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFunctionHandler_Invoke(t *testing.T) {
	deps := setupEvents(t)
	r := newTestRouter(deps, nil)

	deps.gateway.EXPECT().DoCapture(gomock.Any(), "T1", domain.Payment{Amount: 1000}, gomock.Any()).
		Return(&domain.TransactionResult{ID: "T2", Raw: domain.Response{"result": map[string]any{"code": "00000"}}}, nil)

	w := postFunction(r, "doCapture", map[string]any{"transactionID": "T1", "payment": map[string]any{"amount": 1000}}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]any)
	assert.Equal(t, "T2", data["id"])
	assert.NotEmpty(t, resp["request_id"])
	assert.Equal(t, resp["request_id"], w.Header().Get("X-Request-ID"))
}

func TestFunctionHandler_GatewayRejection(t *testing.T) {
	deps := setupEvents(t)
	r := newTestRouter(deps, nil)

	raw := map[string]any{"result": map[string]any{"code": "01100", "longMessage": "Do not honor"}}
	deps.gateway.EXPECT().DoAuthorization(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrGatewayRejected("01100", "Do not honor", raw))

	w := postFunction(r, "doAuthorization", map[string]any{
		"payment": map[string]any{"amount": 1000},
		"card":    map[string]any{"number": "4970100000000154"},
	}, nil)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PAY_001", resp["error_code"])
	assert.Equal(t, "01100", resp["result_code"])
	assert.NotNil(t, resp["raw"])
}

func TestFunctionHandler_MalformedBody(t *testing.T) {
	deps := setupEvents(t)
	r := newTestRouter(deps, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/functions/getWallet", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFunctionHandler_UnknownFunction(t *testing.T) {
	deps := setupEvents(t)
	r := newTestRouter(deps, nil)

	w := postFunction(r, "mintMoney", map[string]any{}, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "DSP_002")
}

func TestFunctionHandler_List(t *testing.T) {
	deps := setupEvents(t)
	r := newTestRouter(deps, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/functions", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data dto.FunctionList `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Functions, 15)
}

func TestFunctionHandler_RequiresToken(t *testing.T) {
	deps := setupEvents(t)
	ctrl := gomock.NewController(t)
	tokenSvc := mocks.NewMockTokenService(ctrl)
	r := newTestRouter(deps, func(rd *RouterDeps) { rd.TokenSvc = tokenSvc })

	w := postFunction(r, "getWallet", map[string]any{"walletId": "wallet-1"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tokenSvc.EXPECT().Validate("tok").Return(&ports.TokenClaims{MerchantID: "shop-1"}, nil)
	deps.gateway.EXPECT().GetWallet(gomock.Any(), "wallet-1").Return(&domain.WalletResult{WalletID: "wallet-1"}, nil)

	w = postFunction(r, "getWallet", map[string]any{"walletId": "wallet-1"}, map[string]string{"Authorization": "Bearer tok"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFunctionHandler_IdempotentReplay(t *testing.T) {
	deps := setupEvents(t)
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockIdempotencyCache(ctrl)
	r := newTestRouter(deps, func(rd *RouterDeps) { rd.IdempotencyCache = cache })

	key := "anonymous:doReset:k1"
	stored := []byte(`{"data":{"id":"T9"},"request_id":"r","timestamp":"t"}`)
	cache.EXPECT().Get(gomock.Any(), key).Return(stored, nil)

	w := postFunction(r, "doReset", map[string]any{"transactionID": "T1"}, map[string]string{"Idempotency-Key": "k1"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, string(stored), w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{"healthy", nil, http.StatusOK, "healthy"},
		{"degraded", errors.New("connection refused"), http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			checker := mocks.NewMockHealthChecker(ctrl)
			checker.EXPECT().Name().Return("payline").AnyTimes()
			checker.EXPECT().Ping(gomock.Any()).Return(tt.pingErr)

			deps := setupEvents(t)
			r := newTestRouter(deps, func(rd *RouterDeps) { rd.HealthCheckers = []ports.HealthChecker{checker} })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantBody, resp["status"])
			assert.Contains(t, resp["dependencies"], "payline")
		})
	}
}
