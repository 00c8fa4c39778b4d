package assets

import "context"

// Custody names the account that holds engine funds on the external ledger.
const Custody = "custody"

// Adapter moves value between principals and the engine's custody account.
// Pull debits from's balance into custody; Push pays out of custody to a
// recipient. Implementations are external rails: either direction can fail,
// and control may run arbitrary code before returning, so callers must not
// commit state they are not prepared to expose mid-call.
type Adapter interface {
	Pull(ctx context.Context, asset, from string, amount uint64) error
	Push(ctx context.Context, asset, to string, amount uint64) error
}
