package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AgentTarik/banco-api/internal/events"
	"github.com/AgentTarik/banco-api/internal/ledger"
)

type testEnv struct {
	router *gin.Engine
	ledger *ledger.Ledger
	events *[]events.TransactionRecorded
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v := validator.New()
	require.NoError(t, v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return ledger.ValidCPF(fl.Field().String())
	}))

	reg := ledger.New()
	captured := &[]events.TransactionRecorded{}
	h := &Handlers{
		Log:    zap.NewNop(),
		Ledger: reg,
		V:      v,
		Enqueue: func(e events.TransactionRecorded) {
			*captured = append(*captured, e)
		},
	}

	r := gin.New()
	v1 := r.Group("/v1")
	v1.GET("/customers", h.ListCustomers)
	v1.POST("/customers", h.CreateCustomer)
	v1.GET("/customers/:id", h.GetCustomer)
	v1.GET("/customers/:id/transactions", h.CustomerHistory)
	v1.POST("/customers/:id/deposit", h.Deposit)
	v1.POST("/customers/:id/withdraw", h.Withdraw)
	v1.POST("/transfers", h.Transfer)
	v1.GET("/transactions", h.ListTransactions)
	r.GET("/health", h.Health)

	return &testEnv{router: r, ledger: reg, events: captured}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateCustomerEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/customers", `{"name":"Ana","cpf":"52998224725"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decodeJSON[CustomerResponse](t, w)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "0.00", got.Balance)
	assert.Equal(t, "500.00", got.CreditLimit)
}

func TestCreateCustomerEndpointErrors(t *testing.T) {
	env := newTestEnv(t)
	_ = env.do(t, http.MethodPost, "/v1/customers", `{"name":"Ana","cpf":"52998224725"}`)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"missing name", `{"cpf":"15350946056"}`, http.StatusUnprocessableEntity},
		{"bad cpf", `{"name":"Bruno","cpf":"11111111111"}`, http.StatusUnprocessableEntity},
		{"bad initial balance", `{"name":"Bruno","cpf":"15350946056","initial_balance":"abc"}`, http.StatusUnprocessableEntity},
		{"duplicate cpf", `{"name":"Impostora","cpf":"52998224725"}`, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/v1/customers", tc.body)
			assert.Equal(t, tc.code, w.Code, w.Body.String())
		})
	}

	custs := env.ledger.Customers()
	assert.Len(t, custs, 1, "failed requests must not create customers")
}

func TestGetCustomerEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_ = env.do(t, http.MethodPost, "/v1/customers", `{"name":"Ana","cpf":"52998224725"}`)

	w := env.do(t, http.MethodGet, "/v1/customers/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeJSON[CustomerResponse](t, w)
	assert.Equal(t, "Ana", got.Name)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/v1/customers/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/v1/customers/0", "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/v1/customers/42", "").Code)
}

func TestDepositEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_ = env.do(t, http.MethodPost, "/v1/customers", `{"name":"Ana","cpf":"52998224725"}`)

	w := env.do(t, http.MethodPost, "/v1/customers/1/deposit", `{"amount":"200"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decodeJSON[BalanceResponse](t, w)
	assert.Equal(t, "200.00", got.Balance)

	require.Len(t, *env.events, 1)
	assert.Equal(t, "deposit", (*env.events)[0].Kind)
	assert.Equal(t, "200.00", (*env.events)[0].Amount)

	assert.Equal(t, http.StatusUnprocessableEntity, env.do(t, http.MethodPost, "/v1/customers/1/deposit", `{"amount":"-1"}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, env.do(t, http.MethodPost, "/v1/customers/1/deposit", `{"amount":"abc"}`).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/v1/customers/9/deposit", `{"amount":"1"}`).Code)
}

func TestWithdrawEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_ = env.do(t, http.MethodPost, "/v1/customers", `{"name":"Ana","cpf":"52998224725"}`)
	_ = env.do(t, http.MethodPost, "/v1/customers/1/deposit", `{"amount":"200"}`)

	// beyond the overdraft limit: declined, balance untouched
	w := env.do(t, http.MethodPost, "/v1/customers/1/withdraw", `{"amount":"800"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient funds")

	// exactly at the limit: allowed
	w = env.do(t, http.MethodPost, "/v1/customers/1/withdraw", `{"amount":"700"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decodeJSON[BalanceResponse](t, w)
	assert.Equal(t, "-500.00", got.Balance)
}

func TestTransferEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_ = env.do(t, http.MethodPost, "/v1/customers", `{"name":"Ana","cpf":"52998224725"}`)
	_ = env.do(t, http.MethodPost, "/v1/customers", `{"name":"Bruno","cpf":"15350946056"}`)
	_ = env.do(t, http.MethodPost, "/v1/customers/2/deposit", `{"amount":"100"}`)

	w := env.do(t, http.MethodPost, "/v1/transfers", `{"source_id":2,"destination_id":1,"amount":"50"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decodeJSON[TransferResponse](t, w)
	assert.Equal(t, "50.00", got.SourceBalance)
	assert.Equal(t, "50.00", got.DestinationBalance)

	// one event per side
	kinds := []string{}
	for _, e := range *env.events {
		kinds = append(kinds, e.Kind)
	}
	assert.Contains(t, kinds, "transfer_out")
	assert.Contains(t, kinds, "transfer_in")

	assert.Equal(t, http.StatusUnprocessableEntity,
		env.do(t, http.MethodPost, "/v1/transfers", `{"source_id":1,"destination_id":1,"amount":"1"}`).Code)
	assert.Equal(t, http.StatusNotFound,
		env.do(t, http.MethodPost, "/v1/transfers", `{"source_id":9,"destination_id":1,"amount":"1"}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity,
		env.do(t, http.MethodPost, "/v1/transfers", `{"source_id":2,"destination_id":1,"amount":"9999"}`).Code)
}

func TestTransactionEndpoints(t *testing.T) {
	env := newTestEnv(t)
	_ = env.do(t, http.MethodPost, "/v1/customers", `{"name":"Ana","cpf":"52998224725"}`)
	_ = env.do(t, http.MethodPost, "/v1/customers", `{"name":"Bruno","cpf":"15350946056"}`)
	_ = env.do(t, http.MethodPost, "/v1/customers/1/deposit", `{"amount":"30"}`)
	_ = env.do(t, http.MethodPost, "/v1/transfers", `{"source_id":1,"destination_id":2,"amount":"10"}`)

	w := env.do(t, http.MethodGet, "/v1/customers/1/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	hist := decodeJSON[[]TransactionView](t, w)
	require.Len(t, hist, 2)
	assert.Equal(t, "deposit", hist[0].Kind)
	assert.Equal(t, "transfer_out", hist[1].Kind)
	assert.Equal(t, int64(2), hist[1].CounterpartyID)

	w = env.do(t, http.MethodGet, "/v1/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	log := decodeJSON[[]TransactionView](t, w)
	assert.Len(t, log, 3)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/v1/customers/9/transactions", "").Code)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
