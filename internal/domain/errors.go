package domain

import "errors"

var (
	ErrInvalidAmount             = errors.New("invalid amount")
	ErrOverflow                  = errors.New("amount overflow")
	ErrNotFound                  = errors.New("promise not found")
	ErrAssetMismatch             = errors.New("asset mismatch")
	ErrValueMismatch             = errors.New("attached value mismatch")
	ErrTransferFailed            = errors.New("transfer failed")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrAlreadyFulfilled          = errors.New("already fulfilled")
	ErrNotFulfilled              = errors.New("not fulfilled")
	ErrCooldown                  = errors.New("faucet cooldown")
	ErrInsufficientFaucetReserve = errors.New("insufficient faucet reserve")
)
