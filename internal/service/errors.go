package service

import "errors"

// Business-rule failures. Handlers map these to HTTP statuses and stable
// error codes; nothing here leaks infrastructure detail.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")
	ErrInvalidLineItem   = errors.New("sale line does not match the shop inventory row")
	ErrCustomerRequired  = errors.New("credit sales must be attributed to a customer")
	ErrCustomerHasSales  = errors.New("customer has associated sales and cannot be deleted")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrAlreadyCompleted  = errors.New("payment is already completed")
)
