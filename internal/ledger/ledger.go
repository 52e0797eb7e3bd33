// Package ledger holds the in-memory account registry and the balance-mutation
// rules: overdraft limit, CPF uniqueness and transaction history. A single
// mutex serializes every check-then-mutate sequence, so operations either
// fully succeed or leave no trace; ids are only consumed on success.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCreditLimit is the overdraft allowed when a customer is created
// without an explicit limit.
var DefaultCreditLimit = decimal.NewFromInt(500)

const maxNameLen = 100

// Ledger implementa o registro de clientes e o log de transações.
type Ledger struct {
	mu        sync.Mutex
	nextID    int64
	nextTxID  int64
	customers map[int64]*Customer
	byCPF     map[string]int64
	order     []int64
	log       []Transaction
}

func New() *Ledger {
	return &Ledger{
		customers: make(map[int64]*Customer),
		byCPF:     make(map[string]int64),
	}
}

// Customers returns snapshots of all customers in creation order.
func (l *Ledger) Customers() []Customer {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Customer, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.customers[id].clone())
	}
	return out
}

// Customer returns a snapshot of one customer.
func (l *Ledger) Customer(id int64) (Customer, error) {
	if id <= 0 {
		return Customer{}, ErrInvalidID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.customers[id]
	if !ok {
		return Customer{}, fmt.Errorf("%w: %d", ErrCustomerNotFound, id)
	}
	return c.clone(), nil
}

// History returns a copy of one customer's transaction records, oldest first.
func (l *Ledger) History(id int64) ([]Transaction, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.customers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrCustomerNotFound, id)
	}
	out := make([]Transaction, len(c.History))
	copy(out, c.History)
	return out, nil
}

// Transactions returns a copy of the ledger-wide log, oldest first.
func (l *Ledger) Transactions() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Transaction, len(l.log))
	copy(out, l.log)
	return out
}

// CreateCustomer registers a new customer. The duplicate-CPF check and the
// insert run under the same lock, so two concurrent requests with the same CPF
// cannot both succeed.
func (l *Ledger) CreateCustomer(name, cpf string, initialBalance, creditLimit decimal.Decimal) (Customer, error) {
	if name == "" || len(name) > maxNameLen {
		return Customer{}, ErrInvalidName
	}
	if !ValidCPF(cpf) {
		return Customer{}, fmt.Errorf("%w: %q", ErrInvalidCPF, cpf)
	}
	if creditLimit.IsNegative() {
		return Customer{}, ErrInvalidLimit
	}
	if initialBalance.LessThan(creditLimit.Neg()) {
		return Customer{}, ErrInvalidBalance
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byCPF[cpf]; ok {
		return Customer{}, fmt.Errorf("%w: %s", ErrCPFAlreadyExists, cpf)
	}
	l.nextID++
	c := &Customer{
		ID:          l.nextID,
		Name:        name,
		CPF:         cpf,
		Balance:     initialBalance,
		CreditLimit: creditLimit,
	}
	l.customers[c.ID] = c
	l.byCPF[cpf] = c.ID
	l.order = append(l.order, c.ID)
	return c.clone(), nil
}

// Deposit credits amount to the customer and records a deposit transaction.
func (l *Ledger) Deposit(id int64, amount decimal.Decimal) (Receipt, error) {
	if id <= 0 {
		return Receipt{}, ErrInvalidID
	}
	if !amount.IsPositive() {
		return Receipt{}, ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.customers[id]
	if !ok {
		return Receipt{}, fmt.Errorf("%w: %d", ErrCustomerNotFound, id)
	}
	c.Balance = c.Balance.Add(amount)
	tx := l.record(c, KindDeposit, amount, 0)
	return Receipt{Tx: tx, Balance: c.Balance}, nil
}

// Withdraw debits amount from the customer. The balance may go negative, but
// never below -CreditLimit; crossing the limit declines the operation with
// ErrInsufficientFunds and changes nothing.
func (l *Ledger) Withdraw(id int64, amount decimal.Decimal) (Receipt, error) {
	if id <= 0 {
		return Receipt{}, ErrInvalidID
	}
	if !amount.IsPositive() {
		return Receipt{}, ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.customers[id]
	if !ok {
		return Receipt{}, fmt.Errorf("%w: %d", ErrCustomerNotFound, id)
	}
	if c.Balance.Sub(amount).LessThan(c.CreditLimit.Neg()) {
		return Receipt{}, ErrInsufficientFunds
	}
	c.Balance = c.Balance.Sub(amount)
	tx := l.record(c, KindWithdrawal, amount, 0)
	return Receipt{Tx: tx, Balance: c.Balance}, nil
}

// Transfer moves amount from source to dest as one atomic unit: debit, credit
// and both history records happen under the same critical section. The
// overdraft rule applies to the source only. When both sides are missing the
// source is reported, since it is checked first.
func (l *Ledger) Transfer(sourceID, destID int64, amount decimal.Decimal) (TransferReceipt, error) {
	if sourceID <= 0 || destID <= 0 {
		return TransferReceipt{}, ErrInvalidID
	}
	if sourceID == destID {
		return TransferReceipt{}, ErrSameCustomer
	}
	if !amount.IsPositive() {
		return TransferReceipt{}, ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	src, ok := l.customers[sourceID]
	if !ok {
		return TransferReceipt{}, fmt.Errorf("%w: source %d", ErrCustomerNotFound, sourceID)
	}
	dst, ok := l.customers[destID]
	if !ok {
		return TransferReceipt{}, fmt.Errorf("%w: destination %d", ErrCustomerNotFound, destID)
	}
	if src.Balance.Sub(amount).LessThan(src.CreditLimit.Neg()) {
		return TransferReceipt{}, ErrInsufficientFunds
	}
	src.Balance = src.Balance.Sub(amount)
	dst.Balance = dst.Balance.Add(amount)
	out := l.record(src, KindTransferOut, amount, dst.ID)
	in := l.record(dst, KindTransferIn, amount, src.ID)
	return TransferReceipt{
		Out:           out,
		In:            in,
		SourceBalance: src.Balance,
		DestBalance:   dst.Balance,
	}, nil
}

// record appends one transaction to the customer history and the global log.
// Caller must hold l.mu.
func (l *Ledger) record(c *Customer, kind Kind, amount decimal.Decimal, counterparty int64) Transaction {
	l.nextTxID++
	tx := Transaction{
		ID:             l.nextTxID,
		Kind:           kind,
		Amount:         amount,
		Timestamp:      time.Now().UTC(),
		CustomerID:     c.ID,
		CounterpartyID: counterparty,
	}
	c.History = append(c.History, tx)
	l.log = append(l.log, tx)
	return tx
}
