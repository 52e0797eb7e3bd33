package ledger

import "errors"

var (
	ErrInvalidID         = errors.New("id must be positive")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidName       = errors.New("name must be non-empty and at most 100 characters")
	ErrInvalidCPF        = errors.New("invalid cpf")
	ErrInvalidLimit      = errors.New("credit limit must not be negative")
	ErrInvalidBalance    = errors.New("initial balance below credit limit")
	ErrCPFAlreadyExists  = errors.New("cpf already registered")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrSameCustomer      = errors.New("source and destination are the same customer")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
