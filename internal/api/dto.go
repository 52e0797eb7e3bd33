package api

import "time"

// Entrada para criar cliente
type CreateCustomerRequest struct {
	Name           string `json:"name"            validate:"required,max=100"` // nome
	CPF            string `json:"cpf"             validate:"required,cpf"`     // 11 dígitos
	InitialBalance string `json:"initial_balance" validate:"omitempty"`        // decimal string, default "0"
	CreditLimit    string `json:"credit_limit"    validate:"omitempty"`        // decimal string, default "500"
}

// Entrada para depósito/saque
type AmountRequest struct {
	Amount string `json:"amount" validate:"required"` // decimal string, e.g. "10.50"
}

// Entrada para transferência
type TransferRequest struct {
	SourceID      int64  `json:"source_id"      validate:"required,gt=0"`
	DestinationID int64  `json:"destination_id" validate:"required,gt=0"`
	Amount        string `json:"amount"         validate:"required"`
}

// Resposta de cliente
type CustomerResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CPF         string `json:"cpf"`
	Balance     string `json:"balance"`
	CreditLimit string `json:"credit_limit"`
}

// Resposta de saldo após depósito/saque
type BalanceResponse struct {
	CustomerID int64  `json:"customer_id"`
	Balance    string `json:"balance"`
}

// Resposta de transferência com os dois saldos resultantes
type TransferResponse struct {
	SourceID           int64  `json:"source_id"`
	DestinationID      int64  `json:"destination_id"`
	SourceBalance      string `json:"source_balance"`
	DestinationBalance string `json:"destination_balance"`
}

// Saída de transação
type TransactionView struct {
	ID             int64     `json:"id"`
	Kind           string    `json:"kind"` // deposit | withdrawal | transfer_out | transfer_in
	Amount         string    `json:"amount"`
	Timestamp      time.Time `json:"timestamp"`
	CustomerID     int64     `json:"customer_id"`
	CounterpartyID int64     `json:"counterparty_id,omitempty"`
}
