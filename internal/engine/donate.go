package engine

import (
	"context"
	"fmt"

	"promisecard/internal/domain"
)

// Donate accepts a gross donation for a promise and returns the net amount
// credited to the caller's ledger entry after the platform fee.
//
// The asset kind must match the promise exactly. For native promises the
// declared attached value must equal the gross amount; for fungible-asset
// promises no native value may be attached and the gross is pulled from the
// caller through the transfer adapter. The fee is forwarded to the platform
// fee recipient in the same asset kind; a failed fee forward fails the whole
// donation. Ledger and reputation commit only after every transfer has
// succeeded, so a reentrant call during a transfer never sees a partially
// credited donation.
func (e *Engine) Donate(ctx context.Context, id uint64, asset string, gross, attached uint64, caller string) (uint64, error) {
	p, ok := e.promises[id]
	if !ok {
		return 0, fmt.Errorf("promise %d: %w", id, domain.ErrNotFound)
	}
	if gross == 0 {
		return 0, fmt.Errorf("gross amount: %w", domain.ErrInvalidAmount)
	}
	if asset != p.Asset {
		return 0, fmt.Errorf("donation in %s to a %s promise: %w", asset, p.Asset, domain.ErrAssetMismatch)
	}
	if p.Asset == domain.AssetNative {
		if attached != gross {
			return 0, fmt.Errorf("attached %d, gross %d: %w", attached, gross, domain.ErrValueMismatch)
		}
	} else if attached != 0 {
		return 0, fmt.Errorf("native value attached to a token donation: %w", domain.ErrValueMismatch)
	}

	fee, net, err := e.fees.Split(gross)
	if err != nil {
		return 0, err
	}

	// Reject any commit that would wrap before touching external rails, so
	// an overflowing donation never strands pulled funds.
	step := e.rep.Step(gross, net)
	key := donationKey{promiseID: id, donor: caller}
	if _, err := domain.AddChecked(e.donations[key], net); err != nil {
		return 0, err
	}
	if _, err := domain.AddChecked(p.Raised, net); err != nil {
		return 0, err
	}
	if _, err := domain.AddChecked(e.reputation[caller], step); err != nil {
		return 0, err
	}

	if err := e.bank.Pull(ctx, asset, caller, gross); err != nil {
		return 0, fmt.Errorf("%w: pull %d %s from %s: %v", domain.ErrTransferFailed, gross, asset, caller, err)
	}
	if fee > 0 {
		if err := e.bank.Push(ctx, asset, e.cfg.FeeRecipient, fee); err != nil {
			// Return the pulled gross; the operation must leave no value
			// stranded in custody when it fails.
			if rerr := e.bank.Push(ctx, asset, caller, gross); rerr != nil {
				e.logger.Error().Err(rerr).Uint64("promise", id).Str("donor", caller).
					Msg("refund after failed fee forward also failed")
			}
			return 0, fmt.Errorf("%w: forward fee %d %s: %v", domain.ErrTransferFailed, fee, asset, err)
		}
	}

	e.donations[key] += net
	p.Raised += net
	e.reputation[caller] += step

	e.logger.Info().Uint64("promise", id).Str("donor", caller).Str("asset", asset).
		Uint64("gross", gross).Uint64("fee", fee).Uint64("net", net).Msg("donation credited")
	return net, nil
}
