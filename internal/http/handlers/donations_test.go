package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"promisecard/internal/assets"
	"promisecard/internal/domain"
	"promisecard/internal/engine"
	"promisecard/internal/middleware"
	"promisecard/internal/sqlinline"
)

// journalFake records Exec calls so tests can assert what would have been
// written to the donation journal.
type journalFake struct {
	execs []struct {
		query string
		args  []any
	}
	execErr error
}

func (j *journalFake) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	j.execs = append(j.execs, struct {
		query string
		args  []any
	}{query, args})
	return pgconn.CommandTag{}, j.execErr
}

func (j *journalFake) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return fakeRow{}
}

func (j *journalFake) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

type fakeRow struct{}

func (fakeRow) Scan(dest ...any) error { return pgx.ErrNoRows }

func TestDonationsCreateNative(t *testing.T) {
	app, bank := newTestApp(t)
	bank.Deposit(domain.AssetNative, "bob", 10_000_000_000_000_000)
	id := createPromise(t, app, "alice", `{"title":"t","asset":"native","amount_requested":50000000000000000}`)
	params := map[string]string{"id": "1"}
	if id != 1 {
		t.Fatalf("id = %d", id)
	}

	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, request(t, http.MethodPost, "/", "bob",
		`{"asset":"native","amount":10000000000000000,"attached_value":10000000000000000}`, params))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Gross uint64 `json:"gross"`
		Net   uint64 `json:"net"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 2.5% fee on 0.01 native units.
	if resp.Net != 9_750_000_000_000_000 {
		t.Fatalf("net = %d, want 9750000000000000", resp.Net)
	}
	if got := bank.Balance(domain.AssetNative, "platform"); got != resp.Gross-resp.Net {
		t.Fatalf("platform fee balance = %d, want %d", got, resp.Gross-resp.Net)
	}
}

func TestDonationsCreateErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{
			name:   "unknown promise",
			target: "99",
			body:   `{"asset":"native","amount":10,"attached_value":10}`,
			want:   http.StatusNotFound,
		},
		{
			name:   "zero amount",
			target: "1",
			body:   `{"asset":"native","amount":0}`,
			want:   http.StatusBadRequest,
		},
		{
			name:   "wrong asset",
			target: "1",
			body:   `{"asset":"mck","amount":10}`,
			want:   http.StatusBadRequest,
		},
		{
			name:   "attached value mismatch",
			target: "1",
			body:   `{"asset":"native","amount":10,"attached_value":5}`,
			want:   http.StatusBadRequest,
		},
		{
			name:   "donor cannot cover gross",
			target: "1",
			body:   `{"asset":"native","amount":10,"attached_value":10}`,
			want:   http.StatusBadGateway,
		},
		{
			name:   "malformed payload",
			target: "1",
			body:   `{"asset":`,
			want:   http.StatusBadRequest,
		},
	}

	app, _ := newTestApp(t)
	createPromise(t, app, "alice", `{"title":"t","asset":"native","amount_requested":100}`)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			app.DonationsCreate(rr, request(t, http.MethodPost, "/", "bob", tc.body,
				map[string]string{"id": tc.target}))
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tc.want, rr.Body.String())
			}
		})
	}
}

func TestDonationsCreateJournals(t *testing.T) {
	bank := assets.NewBank()
	bank.Deposit("mck", "bob", 1000)
	eng, err := engine.New(engine.Config{
		FeeBps:         250,
		FaucetAmount:   1,
		FaucetCooldown: 1,
		FeeRecipient:   "platform",
	}, bank, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	journal := &journalFake{}
	app := NewApp(eng, journal, zerolog.Nop())
	createPromise(t, app, "alice", `{"title":"t","asset":"mck","amount_requested":1000}`)

	req := request(t, http.MethodPost, "/", "bob", `{"asset":"mck","amount":200}`,
		map[string]string{"id": "1"})
	req = req.WithContext(context.WithValue(req.Context(), middleware.CountryKey, "ID"))
	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}

	if len(journal.execs) != 1 {
		t.Fatalf("journal execs = %d, want 1", len(journal.execs))
	}
	rec := journal.execs[0]
	if rec.query != sqlinline.QInsertDonation {
		t.Fatalf("journal query = %q", rec.query)
	}
	// promise id, donor, asset, gross, fee, net, props.
	if rec.args[0] != uint64(1) || rec.args[1] != "bob" || rec.args[2] != "mck" {
		t.Fatalf("journal args = %v", rec.args)
	}
	if rec.args[3] != uint64(200) || rec.args[4] != uint64(5) || rec.args[5] != uint64(195) {
		t.Fatalf("journal amounts = %v", rec.args[3:6])
	}
	var props map[string]string
	if err := json.Unmarshal(rec.args[6].([]byte), &props); err != nil {
		t.Fatalf("props: %v", err)
	}
	if props["country"] != "ID" {
		t.Fatalf("props country = %q, want ID", props["country"])
	}
}

func TestDonationsCreateSurvivesJournalFailure(t *testing.T) {
	bank := assets.NewBank()
	bank.Deposit("mck", "bob", 1000)
	eng, err := engine.New(engine.Config{
		FeeBps:         250,
		FaucetAmount:   1,
		FaucetCooldown: 1,
		FeeRecipient:   "platform",
	}, bank, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	app := NewApp(eng, &journalFake{execErr: errors.New("db down")}, zerolog.Nop())
	createPromise(t, app, "alice", `{"title":"t","asset":"mck","amount_requested":1000}`)

	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, request(t, http.MethodPost, "/", "bob", `{"asset":"mck","amount":200}`,
		map[string]string{"id": "1"}))
	// The journal is write-behind: its failure must not fail the donation.
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	if got := eng.Donation(1, "bob"); got != 195 {
		t.Fatalf("ledger net = %d, want 195", got)
	}
}

func TestDonationsGet(t *testing.T) {
	app, bank := newTestApp(t)
	bank.Deposit("mck", "bob", 1000)
	createPromise(t, app, "alice", `{"title":"t","asset":"mck","amount_requested":1000}`)
	params := map[string]string{"id": "1", "principal": "bob"}

	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, request(t, http.MethodPost, "/", "bob", `{"asset":"mck","amount":200}`,
		map[string]string{"id": "1"}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("donate status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	app.DonationsGet(rr, request(t, http.MethodGet, "/", "", "", params))
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d", rr.Code)
	}
	var resp struct {
		TotalNet uint64 `json:"total_net"`
	}
	_ = json.NewDecoder(rr.Body).Decode(&resp)
	if resp.TotalNet != 195 {
		t.Fatalf("total_net = %d, want 195", resp.TotalNet)
	}

	// A principal with no donations reads zero, not an error.
	rr = httptest.NewRecorder()
	app.DonationsGet(rr, request(t, http.MethodGet, "/", "", "",
		map[string]string{"id": "1", "principal": "carol"}))
	if rr.Code != http.StatusOK {
		t.Fatalf("empty donor status = %d", rr.Code)
	}
	_ = json.NewDecoder(rr.Body).Decode(&resp)
	if resp.TotalNet != 0 {
		t.Fatalf("total_net = %d, want 0", resp.TotalNet)
	}
}
