package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction record.
type Kind string

const (
	KindDeposit     Kind = "deposit"
	KindWithdrawal  Kind = "withdrawal"
	KindTransferOut Kind = "transfer_out"
	KindTransferIn  Kind = "transfer_in"
)

// Customer is an account holder. Balance may go negative down to -CreditLimit.
type Customer struct {
	ID          int64
	Name        string
	CPF         string
	Balance     decimal.Decimal
	CreditLimit decimal.Decimal
	History     []Transaction
}

// Transaction is one append-only history record. CounterpartyID is zero except
// for transfer records, where it points at the other side.
type Transaction struct {
	ID             int64
	Kind           Kind
	Amount         decimal.Decimal
	Timestamp      time.Time
	CustomerID     int64
	CounterpartyID int64
}

// Receipt is the outcome of a successful deposit or withdrawal.
type Receipt struct {
	Tx      Transaction
	Balance decimal.Decimal
}

// TransferReceipt is the outcome of a successful transfer: one record per side.
type TransferReceipt struct {
	Out           Transaction
	In            Transaction
	SourceBalance decimal.Decimal
	DestBalance   decimal.Decimal
}

func (c *Customer) clone() Customer {
	cp := *c
	cp.History = make([]Transaction, len(c.History))
	copy(cp.History, c.History)
	return cp
}
