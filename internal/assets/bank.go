package assets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
)

var (
	// ErrInsufficientFunds is returned when the debited account cannot
	// cover the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Bank is an in-memory asset ledger keyed by (asset kind, principal). It
// backs local development and tests; production deployments swap in an
// adapter over the real payment rails.
type Bank struct {
	mu       sync.Mutex
	balances map[string]map[string]uint64
}

func NewBank() *Bank {
	return &Bank{balances: make(map[string]map[string]uint64)}
}

// Deposit mints amount into principal's balance. Used to seed donor
// balances and the custody faucet reserve.
func (b *Bank) Deposit(asset, principal string, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.credit(asset, principal, amount)
}

// Balance reports the current holding; zero for unknown accounts.
func (b *Bank) Balance(asset, principal string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[asset][principal]
}

// Pull moves amount from the principal into custody.
func (b *Bank) Pull(_ context.Context, asset, from string, amount uint64) error {
	return b.transfer(asset, from, Custody, amount)
}

// Push pays amount out of custody to the recipient.
func (b *Bank) Push(_ context.Context, asset, to string, amount uint64) error {
	return b.transfer(asset, Custody, to, amount)
}

func (b *Bank) transfer(asset, from, to string, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.balances[asset][from] < amount {
		return fmt.Errorf("%w: %s has %d %s, need %d", ErrInsufficientFunds, from, b.balances[asset][from], asset, amount)
	}
	if err := b.credit(asset, to, amount); err != nil {
		return err
	}
	b.balances[asset][from] -= amount
	return nil
}

func (b *Bank) credit(asset, principal string, amount uint64) error {
	accounts := b.balances[asset]
	if accounts == nil {
		accounts = make(map[string]uint64)
		b.balances[asset] = accounts
	}
	if amount > math.MaxUint64-accounts[principal] {
		return fmt.Errorf("balance overflow for %s in %s", principal, asset)
	}
	accounts[principal] += amount
	return nil
}

var _ Adapter = (*Bank)(nil)
