package engine

import (
	"context"
	"fmt"

	"promisecard/internal/domain"
)

// Withdraw pays the promise's accumulated net donations, less anything
// already withdrawn, to its creator. Only the creator may withdraw, and only
// after the promise is fulfilled. Fulfillment itself moves no value; this is
// the separate release step.
//
// The withdrawn counter commits after the payout, with an in-flight guard so
// a withdrawal reentered through the transfer cannot pay out twice.
func (e *Engine) Withdraw(ctx context.Context, id uint64, caller string) (uint64, error) {
	p, ok := e.promises[id]
	if !ok {
		return 0, fmt.Errorf("promise %d: %w", id, domain.ErrNotFound)
	}
	if caller != p.Creator {
		return 0, fmt.Errorf("caller %s: %w", caller, domain.ErrUnauthorized)
	}
	if !p.Fulfilled {
		return 0, fmt.Errorf("promise %d: %w", id, domain.ErrNotFulfilled)
	}
	if e.withdrawing[id] {
		return 0, fmt.Errorf("withdrawal in flight: %w", domain.ErrInvalidAmount)
	}
	due := p.Raised - p.Withdrawn
	if due == 0 {
		return 0, fmt.Errorf("nothing withdrawable: %w", domain.ErrInvalidAmount)
	}

	e.withdrawing[id] = true
	err := e.bank.Push(ctx, p.Asset, p.Creator, due)
	delete(e.withdrawing, id)
	if err != nil {
		return 0, fmt.Errorf("%w: pay out %d %s: %v", domain.ErrTransferFailed, due, p.Asset, err)
	}

	p.Withdrawn += due
	e.logger.Info().Uint64("promise", id).Str("creator", p.Creator).Str("asset", p.Asset).
		Uint64("amount", due).Msg("funds withdrawn")
	return due, nil
}
