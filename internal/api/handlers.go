package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/AgentTarik/banco-api/internal/events"
	"github.com/AgentTarik/banco-api/internal/ledger"
	"github.com/AgentTarik/banco-api/telemetry"
)

type Handlers struct {
	Log          *zap.Logger
	Ledger       *ledger.Ledger
	V            *validator.Validate
	KafkaEnabled bool

	// Enqueuer function (send to worker)
	Enqueue func(events.TransactionRecorded)
}

// health handler
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"kafka_enabled": h.KafkaEnabled,
	})
}

// customer handlers

// ListCustomers godoc
// @Summary      List all customers
// @Description  Returns every customer in creation order.
// @Tags         customers
// @Produce      json
// @Success      200  {array}  CustomerResponse
// @Router       /customers [get]
func (h *Handlers) ListCustomers(c *gin.Context) {
	custs := h.Ledger.Customers()
	out := make([]CustomerResponse, 0, len(custs))
	for _, cust := range custs {
		out = append(out, toCustomerResponse(cust))
	}
	c.JSON(http.StatusOK, out)
}

// GetCustomer godoc
// @Summary      Get one customer
// @Tags         customers
// @Produce      json
// @Param        id   path      int  true  "Customer id"
// @Success      200  {object}  CustomerResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /customers/{id} [get]
func (h *Handlers) GetCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		telemetry.IncCustomersGet(false)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	cust, err := h.Ledger.Customer(id)
	if err != nil {
		telemetry.IncCustomersGet(false)
		h.ledgerError(c, err)
		return
	}
	telemetry.IncCustomersGet(true)
	c.JSON(http.StatusOK, toCustomerResponse(cust))
}

// CreateCustomer godoc
// @Summary      Create a customer
// @Description  Registers a customer with a unique, checksum-valid CPF.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateCustomerRequest  true  "Customer payload"
// @Success      201      {object}  CustomerResponse
// @Failure      409      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /customers [post]
func (h *Handlers) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.BindJSON(&req); err != nil {
		telemetry.IncCustomersCreateFailed("validation")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		telemetry.IncCustomersCreateFailed("validation")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	initial := decimal.Zero
	if req.InitialBalance != "" {
		var err error
		initial, err = decimal.NewFromString(req.InitialBalance)
		if err != nil {
			telemetry.IncCustomersCreateFailed("validation")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid initial_balance"})
			return
		}
	}
	limit := ledger.DefaultCreditLimit
	if req.CreditLimit != "" {
		var err error
		limit, err = decimal.NewFromString(req.CreditLimit)
		if err != nil {
			telemetry.IncCustomersCreateFailed("validation")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid credit_limit"})
			return
		}
	}

	cust, err := h.Ledger.CreateCustomer(req.Name, req.CPF, initial, limit)
	if err != nil {
		if errors.Is(err, ledger.ErrCPFAlreadyExists) {
			telemetry.IncCustomersCreateFailed("conflict")
		} else {
			telemetry.IncCustomersCreateFailed("validation")
		}
		h.ledgerError(c, err)
		return
	}
	telemetry.IncCustomersCreated()
	c.JSON(http.StatusCreated, toCustomerResponse(cust))
}

// balance handlers

// Deposit godoc
// @Summary      Deposit into an account
// @Tags         operations
// @Accept       json
// @Produce      json
// @Param        id       path      int            true  "Customer id"
// @Param        payload  body      AmountRequest  true  "Amount payload"
// @Success      200      {object}  BalanceResponse
// @Failure      404      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /customers/{id}/deposit [post]
func (h *Handlers) Deposit(c *gin.Context) {
	id, amount, ok := h.bindAmount(c)
	if !ok {
		return
	}
	rcpt, err := h.Ledger.Deposit(id, amount)
	if err != nil {
		h.ledgerError(c, err)
		return
	}
	telemetry.IncTransactionRecorded(string(ledger.KindDeposit))
	h.Enqueue(events.FromTransaction(rcpt.Tx, rcpt.Balance))
	c.JSON(http.StatusOK, BalanceResponse{CustomerID: id, Balance: rcpt.Balance.StringFixed(2)})
}

// Withdraw godoc
// @Summary      Withdraw from an account
// @Description  Declines with 422 when the overdraft limit would be exceeded.
// @Tags         operations
// @Accept       json
// @Produce      json
// @Param        id       path      int            true  "Customer id"
// @Param        payload  body      AmountRequest  true  "Amount payload"
// @Success      200      {object}  BalanceResponse
// @Failure      404      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /customers/{id}/withdraw [post]
func (h *Handlers) Withdraw(c *gin.Context) {
	id, amount, ok := h.bindAmount(c)
	if !ok {
		return
	}
	rcpt, err := h.Ledger.Withdraw(id, amount)
	if err != nil {
		h.ledgerError(c, err)
		return
	}
	telemetry.IncTransactionRecorded(string(ledger.KindWithdrawal))
	h.Enqueue(events.FromTransaction(rcpt.Tx, rcpt.Balance))
	c.JSON(http.StatusOK, BalanceResponse{CustomerID: id, Balance: rcpt.Balance.StringFixed(2)})
}

// Transfer godoc
// @Summary      Transfer between accounts
// @Description  Debits the source and credits the destination atomically; both sides get a history record.
// @Tags         operations
// @Accept       json
// @Produce      json
// @Param        payload  body      TransferRequest  true  "Transfer payload"
// @Success      200      {object}  TransferResponse
// @Failure      404      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /transfers [post]
func (h *Handlers) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		telemetry.IncOperationDeclined("validation")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		telemetry.IncOperationDeclined("validation")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid amount"})
		return
	}

	rcpt, err := h.Ledger.Transfer(req.SourceID, req.DestinationID, amount)
	if err != nil {
		h.ledgerError(c, err)
		return
	}
	telemetry.IncTransactionRecorded(string(ledger.KindTransferOut))
	telemetry.IncTransactionRecorded(string(ledger.KindTransferIn))
	h.Enqueue(events.FromTransaction(rcpt.Out, rcpt.SourceBalance))
	h.Enqueue(events.FromTransaction(rcpt.In, rcpt.DestBalance))
	c.JSON(http.StatusOK, TransferResponse{
		SourceID:           req.SourceID,
		DestinationID:      req.DestinationID,
		SourceBalance:      rcpt.SourceBalance.StringFixed(2),
		DestinationBalance: rcpt.DestBalance.StringFixed(2),
	})
}

// transaction handlers

// CustomerHistory godoc
// @Summary      List one customer's transactions
// @Tags         transactions
// @Produce      json
// @Param        id   path      int  true  "Customer id"
// @Success      200  {array}   TransactionView
// @Failure      404  {object}  map[string]string
// @Router       /customers/{id}/transactions [get]
func (h *Handlers) CustomerHistory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	txs, err := h.Ledger.History(id)
	if err != nil {
		h.ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransactionViews(txs))
}

// ListTransactions godoc
// @Summary      List the whole transaction log
// @Tags         transactions
// @Produce      json
// @Success      200  {array}  TransactionView
// @Router       /transactions [get]
func (h *Handlers) ListTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, toTransactionViews(h.Ledger.Transactions()))
}

// bindAmount parses the :id path param and the amount body shared by deposit
// and withdraw.
func (h *Handlers) bindAmount(c *gin.Context) (int64, decimal.Decimal, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, decimal.Zero, false
	}
	var req AmountRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return 0, decimal.Zero, false
	}
	if err := h.V.Struct(req); err != nil {
		telemetry.IncOperationDeclined("validation")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return 0, decimal.Zero, false
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		telemetry.IncOperationDeclined("validation")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid amount"})
		return 0, decimal.Zero, false
	}
	return id, amount, true
}

// ledgerError maps domain sentinels to HTTP statuses. InsufficientFunds is an
// expected declined outcome, not a server fault.
func (h *Handlers) ledgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrCustomerNotFound):
		telemetry.IncOperationDeclined("not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrCPFAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrInsufficientFunds):
		telemetry.IncOperationDeclined("insufficient_funds")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrInvalidID),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidName),
		errors.Is(err, ledger.ErrInvalidCPF),
		errors.Is(err, ledger.ErrInvalidLimit),
		errors.Is(err, ledger.ErrInvalidBalance),
		errors.Is(err, ledger.ErrSameCustomer):
		telemetry.IncOperationDeclined("validation")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.Log.Error("unexpected ledger error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func toCustomerResponse(c ledger.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		CPF:         c.CPF,
		Balance:     c.Balance.StringFixed(2),
		CreditLimit: c.CreditLimit.StringFixed(2),
	}
}

func toTransactionViews(txs []ledger.Transaction) []TransactionView {
	out := make([]TransactionView, 0, len(txs))
	for _, t := range txs {
		out = append(out, TransactionView{
			ID:             t.ID,
			Kind:           string(t.Kind),
			Amount:         t.Amount.StringFixed(2),
			Timestamp:      t.Timestamp,
			CustomerID:     t.CustomerID,
			CounterpartyID: t.CounterpartyID,
		})
	}
	return out
}
