package services

import (
	"errors"
	"fmt"
)

// ErrMissingDueDate is returned when a debt order is submitted without
// a return date.
var ErrMissingDueDate = errors.New("date_returned is required for debt orders")

// NotFoundError marks a missing referenced entity (client, branch,
// product, order, debtor).
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// ValidationError is a malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InsufficientStockError names the product and the available/requested
// quantities that violated the stock rule.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   float64
	Requested   float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %g, requested %g",
		e.ProductName, e.Available, e.Requested)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsInsufficientStock(err error) bool {
	var is *InsufficientStockError
	return errors.As(err, &is)
}
