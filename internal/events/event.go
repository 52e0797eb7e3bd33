package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AgentTarik/banco-api/internal/ledger"
)

// TransactionRecorded is the payload published after every successful balance
// mutation. Amounts travel as fixed-point decimal strings.
type TransactionRecorded struct {
	EventID        string    `json:"event_id"`
	TransactionID  int64     `json:"transaction_id"`
	CustomerID     int64     `json:"customer_id"`
	CounterpartyID int64     `json:"counterparty_id,omitempty"`
	Kind           string    `json:"kind"`
	Amount         string    `json:"amount"`
	Balance        string    `json:"balance"`
	Timestamp      time.Time `json:"timestamp"`
}

// FromTransaction builds the event for one ledger record and the balance that
// resulted from it.
func FromTransaction(tx ledger.Transaction, balance decimal.Decimal) TransactionRecorded {
	return TransactionRecorded{
		EventID:        uuid.NewString(),
		TransactionID:  tx.ID,
		CustomerID:     tx.CustomerID,
		CounterpartyID: tx.CounterpartyID,
		Kind:           string(tx.Kind),
		Amount:         tx.Amount.StringFixed(2),
		Balance:        balance.StringFixed(2),
		Timestamp:      tx.Timestamp,
	}
}
