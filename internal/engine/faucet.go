package engine

import (
	"context"
	"fmt"

	"promisecard/internal/domain"
)

// ClaimFaucet pays the fixed native faucet amount to the caller, at most
// once per cooldown window. The claim timestamp commits only after the
// payout succeeds, so a failed payout never consumes the caller's window; a
// later retry is allowed once the reserve is replenished.
//
// A per-principal in-flight guard makes a claim reentered through the payout
// transfer fail the cooldown check, the same as claiming too soon.
func (e *Engine) ClaimFaucet(ctx context.Context, caller string) (uint64, error) {
	if e.claiming[caller] {
		return 0, fmt.Errorf("claim in flight for %s: %w", caller, domain.ErrCooldown)
	}
	now := e.Now()
	if last, ok := e.lastClaim[caller]; ok && now.Sub(last) < e.cfg.FaucetCooldown {
		return 0, fmt.Errorf("wait %s: %w", e.cfg.FaucetCooldown-now.Sub(last), domain.ErrCooldown)
	}

	e.claiming[caller] = true
	err := e.bank.Push(ctx, domain.AssetNative, caller, e.cfg.FaucetAmount)
	delete(e.claiming, caller)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInsufficientFaucetReserve, err)
	}

	e.lastClaim[caller] = now
	e.logger.Info().Str("principal", caller).Uint64("amount", e.cfg.FaucetAmount).Msg("faucet claimed")
	return e.cfg.FaucetAmount, nil
}
