package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"promisecard/internal/assets"
	"promisecard/internal/domain"
)

// Config holds the construction-time parameters of the engine. They are
// immutable for the engine's lifetime; in particular the fee rate cannot be
// changed after deployment.
type Config struct {
	FeeBps         uint64
	FaucetAmount   uint64
	FaucetCooldown time.Duration
	// FeeRecipient receives the platform cut of every donation.
	FeeRecipient string
	// Admin, when non-empty, may fulfill any promise in addition to its
	// creator.
	Admin string
}

// Engine owns all fund-accounting state: the promise registry, the
// per-(promise, donor) donation ledger, the reputation store and the faucet
// claim records. Operations are not internally locked; the hosting layer
// serializes calls. The engine is however written so that a nested call
// reentering through an asset transfer never observes a half-committed
// operation: state commits strictly after every required transfer succeeds.
type Engine struct {
	cfg    Config
	fees   domain.FeePolicy
	rep    domain.ReputationPolicy
	bank   assets.Adapter
	logger zerolog.Logger

	// Now is the engine clock, replaceable in tests.
	Now func() time.Time

	nextID      uint64
	promises    map[uint64]*domain.Promise
	donations   map[donationKey]uint64
	reputation  map[string]uint64
	lastClaim   map[string]time.Time
	claiming    map[string]bool
	withdrawing map[uint64]bool
}

type donationKey struct {
	promiseID uint64
	donor     string
}

// New validates the configuration and builds an engine around the given
// transfer adapter. A nil reputation policy defaults to a fixed +1 step.
func New(cfg Config, bank assets.Adapter, rep domain.ReputationPolicy, logger zerolog.Logger) (*Engine, error) {
	fees, err := domain.NewFeePolicy(cfg.FeeBps)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, errors.New("transfer adapter is required")
	}
	if strings.TrimSpace(cfg.FeeRecipient) == "" {
		return nil, errors.New("fee recipient is required")
	}
	if cfg.FaucetAmount == 0 {
		return nil, errors.New("faucet amount must be positive")
	}
	if cfg.FaucetCooldown <= 0 {
		return nil, errors.New("faucet cooldown must be positive")
	}
	if rep == nil {
		rep = domain.FixedStep(1)
	}
	return &Engine{
		cfg:         cfg,
		fees:        fees,
		rep:         rep,
		bank:        bank,
		logger:      logger,
		Now:         time.Now,
		promises:    make(map[uint64]*domain.Promise),
		donations:   make(map[donationKey]uint64),
		reputation:  make(map[string]uint64),
		lastClaim:   make(map[string]time.Time),
		claiming:    make(map[string]bool),
		withdrawing: make(map[uint64]bool),
	}, nil
}

// CreateParams carries the caller-supplied fields of a new promise. Title,
// description, category and media reference are opaque display strings.
type CreateParams struct {
	Title           string
	Description     string
	Category        string
	MediaRef        string
	Asset           string
	AmountRequested uint64
	Visible         bool
}

// Create registers a new promise and returns its identifier. Identifiers
// start at 1 and are never reused. Any principal may create.
func (e *Engine) Create(creator string, p CreateParams) (uint64, error) {
	if strings.TrimSpace(creator) == "" {
		return 0, fmt.Errorf("creator required: %w", domain.ErrInvalidAmount)
	}
	if p.AmountRequested == 0 {
		return 0, fmt.Errorf("amount requested: %w", domain.ErrInvalidAmount)
	}
	if strings.TrimSpace(p.Asset) == "" {
		return 0, fmt.Errorf("asset kind required: %w", domain.ErrInvalidAmount)
	}
	e.nextID++
	id := e.nextID
	e.promises[id] = &domain.Promise{
		ID:              id,
		Creator:         creator,
		Title:           p.Title,
		Description:     p.Description,
		Category:        p.Category,
		MediaRef:        p.MediaRef,
		Asset:           p.Asset,
		AmountRequested: p.AmountRequested,
		Visible:         p.Visible,
		CreatedAt:       e.Now(),
	}
	e.logger.Info().Uint64("promise", id).Str("creator", creator).Str("asset", p.Asset).
		Uint64("amount_requested", p.AmountRequested).Msg("promise created")
	return id, nil
}

// Get returns a copy of the promise record.
func (e *Engine) Get(id uint64) (domain.Promise, error) {
	p, ok := e.promises[id]
	if !ok {
		return domain.Promise{}, fmt.Errorf("promise %d: %w", id, domain.ErrNotFound)
	}
	return *p, nil
}

// Fulfill transitions a promise from open to fulfilled, exactly once. The
// caller must be the creator or the configured administrator. The recorded
// fulfiller need not equal the caller. No value moves here.
func (e *Engine) Fulfill(id uint64, fulfiller, caller string) error {
	p, ok := e.promises[id]
	if !ok {
		return fmt.Errorf("promise %d: %w", id, domain.ErrNotFound)
	}
	if caller != p.Creator && (e.cfg.Admin == "" || caller != e.cfg.Admin) {
		return fmt.Errorf("caller %s: %w", caller, domain.ErrUnauthorized)
	}
	if p.Fulfilled {
		return fmt.Errorf("promise %d: %w", id, domain.ErrAlreadyFulfilled)
	}
	p.Fulfilled = true
	p.Fulfiller = fulfiller
	e.logger.Info().Uint64("promise", id).Str("fulfiller", fulfiller).Str("caller", caller).Msg("promise fulfilled")
	return nil
}

// Donation returns the cumulative net amount credited to donor for the
// promise; zero when the pair has no ledger entry.
func (e *Engine) Donation(id uint64, donor string) uint64 {
	return e.donations[donationKey{promiseID: id, donor: donor}]
}

// Reputation returns the donor's accumulated score across all promises.
func (e *Engine) Reputation(principal string) uint64 {
	return e.reputation[principal]
}

// LastClaim returns the timestamp of the principal's most recent successful
// faucet claim; the zero time when it never claimed.
func (e *Engine) LastClaim(principal string) time.Time {
	return e.lastClaim[principal]
}
