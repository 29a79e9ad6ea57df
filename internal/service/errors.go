package service

import "errors"

var (
	// ErrNotFound maps to 404 at the handler boundary.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyDonated rejects a discount confirmation for a product that
	// already has a donation entry in the ledger. Checked before any write.
	ErrAlreadyDonated = errors.New("product is already marked for donation and cannot be discounted")
)
