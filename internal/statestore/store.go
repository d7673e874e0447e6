// Package statestore owns the application state and its persistence.
//
// The whole state is stored as a single JSON blob whose field names and
// shape round-trip exactly with blobs written by earlier versions of the
// app: {user:{name,account,pin}, balance, moves:[{date,type,detail,amount}],
// counts:{deposit,withdraw,payment}}.
package statestore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Jonixmax/pokebank-go/internal/domain"
)

type blobUser struct {
	Name    string `json:"name"`
	Account string `json:"account"`
	PIN     string `json:"pin"`
}

type blobMove struct {
	Date   string      `json:"date"`
	Type   string      `json:"type"`
	Detail string      `json:"detail"`
	Amount json.Number `json:"amount"`
}

type blobCounts struct {
	Deposit  int `json:"deposit"`
	Withdraw int `json:"withdraw"`
	Payment  int `json:"payment"`
}

type blob struct {
	User    blobUser    `json:"user"`
	Balance json.Number `json:"balance"`
	Moves   []blobMove  `json:"moves"`
	Counts  blobCounts  `json:"counts"`
}

// DefaultState returns the fresh install state.
func DefaultState() domain.AppState {
	return domain.AppState{
		User: domain.User{
			Name:   "Ash Ketchum",
			Number: "0987654321",
			PIN:    "1234",
		},
		Balance: decimal.RequireFromString("500.00"),
		Moves:   []domain.Transaction{},
	}
}

// Store holds the current state in memory and writes it back as one blob
// after every mutation. Mutations go through Update only, so the ledger
// append and the counter increment cannot diverge.
type Store struct {
	mu    sync.Mutex
	path  string
	state domain.AppState
}

// Open reads the blob at path. A missing or unreadable blob degrades
// silently to the default state; failure never reaches the caller.
func Open(path string) *Store {
	s := &Store{path: path, state: DefaultState()}

	state, err := load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("state blob unreadable, starting from defaults")
		}

		return s
	}

	s.state = state

	return s
}

// State returns a copy of the current application state.
func (s *Store) State() domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneState(s.state)
}

// Update applies fn to a copy of the state and, if fn succeeds, installs
// the copy and persists it. When fn returns an error the state is left
// untouched. Persistence is best effort: a failed write is logged and the
// mutation still succeeds.
func (s *Store) Update(fn func(*domain.AppState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneState(s.state)

	if err := fn(&next); err != nil {
		return err
	}

	s.state = next

	if err := save(s.path, next); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("saving state blob failed")
	}

	return nil
}

func cloneState(state domain.AppState) domain.AppState {
	moves := make([]domain.Transaction, len(state.Moves))
	copy(moves, state.Moves)
	state.Moves = moves

	return state
}

func load(path string) (domain.AppState, error) {
	var state domain.AppState

	f, err := os.Open(path)
	if err != nil {
		return state, err
	}
	defer f.Close()

	var b blob
	if err := json.NewDecoder(f).Decode(&b); err != nil {
		return state, err
	}

	balance, err := decimal.NewFromString(b.Balance.String())
	if err != nil {
		return state, err
	}

	moves := make([]domain.Transaction, len(b.Moves))
	for i, m := range b.Moves {
		moves[i] = domain.Transaction{
			Date:     m.Date,
			Category: domain.Category(m.Type),
			Detail:   m.Detail,
			Amount:   m.Amount.String(),
		}
	}

	state = domain.AppState{
		User: domain.User{
			Name:   b.User.Name,
			Number: b.User.Account,
			PIN:    b.User.PIN,
		},
		Balance: balance,
		Moves:   moves,
		Counts: domain.Counters{
			Deposit:  b.Counts.Deposit,
			Withdraw: b.Counts.Withdraw,
			Payment:  b.Counts.Payment,
		},
	}

	return state, nil
}

// save writes the blob atomically: first to a temp file, then rename over
// the previous one, so an interrupted write cannot corrupt the old blob.
func save(path string, state domain.AppState) error {
	moves := make([]blobMove, len(state.Moves))
	for i, m := range state.Moves {
		moves[i] = blobMove{
			Date:   m.Date,
			Type:   m.Category.String(),
			Detail: m.Detail,
			Amount: json.Number(m.Amount),
		}
	}

	b := blob{
		User: blobUser{
			Name:    state.User.Name,
			Account: state.User.Number,
			PIN:     state.User.PIN,
		},
		Balance: json.Number(state.Balance.StringFixed(2)),
		Moves:   moves,
		Counts: blobCounts{
			Deposit:  state.Counts.Deposit,
			Withdraw: state.Counts.Withdraw,
			Payment:  state.Counts.Payment,
		},
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	if err := enc.Encode(b); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
