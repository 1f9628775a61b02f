package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrSlotUnavailable     = errors.New("slot is no longer available, refresh the slot list")
	ErrInvalidParticipants = errors.New("invalid participants")
	ErrInvalidSlot         = errors.New("slot start time must be in the future")
	ErrUnauthorized        = errors.New("not allowed")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrKindMismatch        = errors.New("booking kind does not match resource kind")
	ErrInvalidInput        = errors.New("invalid input")
)

var domainErrors = []error{
	ErrNotFound,
	ErrSlotUnavailable,
	ErrInvalidParticipants,
	ErrInvalidSlot,
	ErrUnauthorized,
	ErrStoreUnavailable,
	ErrKindMismatch,
	ErrInvalidInput,
}

// storeError passes domain errors through and marks anything else as a store failure.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
