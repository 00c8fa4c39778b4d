package domain

import (
	"fmt"
	"math/bits"
)

// BpsDenominator is the number of basis points in the whole.
const BpsDenominator = 10000

// FeePolicy computes the platform cut of a gross donation under a fixed
// basis-point rate. It is pure; callers move the money.
type FeePolicy struct {
	Bps uint64
}

// NewFeePolicy validates the rate. Rates above 10000 bps would take more
// than the gross and are rejected outright.
func NewFeePolicy(bps uint64) (FeePolicy, error) {
	if bps > BpsDenominator {
		return FeePolicy{}, fmt.Errorf("fee rate %d bps out of range [0,%d]", bps, BpsDenominator)
	}
	return FeePolicy{Bps: bps}, nil
}

// Split returns (fee, net) for a gross amount with fee+net == gross exactly.
// The fee floors toward zero: fee = gross*bps/10000 in integer arithmetic.
// The 128-bit intermediate keeps wei-scale amounts from overflowing; the
// quotient always fits because fee <= gross.
func (p FeePolicy) Split(gross uint64) (fee, net uint64, err error) {
	if gross == 0 {
		return 0, 0, ErrInvalidAmount
	}
	hi, lo := bits.Mul64(gross, p.Bps)
	fee, _ = bits.Div64(hi, lo, BpsDenominator)
	return fee, gross - fee, nil
}
