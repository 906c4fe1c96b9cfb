package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrOwnerNotFound      = errors.New("ledger owner not found")
	ErrAlreadyPaid        = errors.New("salary already paid for period")
	ErrOrderPaid          = errors.New("order has payments recorded")
	ErrEquipmentBusy      = errors.New("equipment already rented for that period")
	ErrRentalClosed       = errors.New("rental already closed")
	ErrAlreadyReceived    = errors.New("supplier order already received")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("not allowed for this account")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
