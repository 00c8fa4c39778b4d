package domain

// ReputationPolicy decides how much reputation a donor earns for one
// successful donation. Implementations must return a positive step so that
// reputation becomes non-zero after a first donation.
type ReputationPolicy interface {
	Step(gross, net uint64) uint64
}

// FixedStep awards the same score for every donation regardless of size.
type FixedStep uint64

func (s FixedStep) Step(_, _ uint64) uint64 { return uint64(s) }
