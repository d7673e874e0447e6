package statestore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/Jonixmax/pokebank-go/internal/domain"
)

func TestOpenMissingBlob(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")

	store := Open(path)

	if diff := cmp.Diff(DefaultState(), store.State()); diff != "" {
		t.Errorf("store.State() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenCorruptBlob(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		blob string
	}{
		{name: "NotJSON", blob: "{not json"},
		{name: "BadBalance", blob: `{"user":{"name":"a","account":"b","pin":"1234"},"balance":"abc","moves":[],"counts":{}}`},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "state.json")
			if err := os.WriteFile(path, []byte(tc.blob), 0o600); err != nil {
				t.Fatalf("os.WriteFile(%v) returned error: %v", path, err)
			}

			store := Open(path)

			if diff := cmp.Diff(DefaultState(), store.State()); diff != "" {
				t.Errorf("store.State() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadLegacyBlob(t *testing.T) {
	t.Parallel()

	// A blob in the exact shape earlier versions of the app persisted.
	legacy := `{
		"user": {"name": "Ash Ketchum", "account": "0987654321", "pin": "1234"},
		"balance": 379.5,
		"moves": [
			{"date": "9/1/2026, 10:15:00 AM", "type": "Payment", "detail": "Electricity", "amount": -120.5}
		],
		"counts": {"deposit": 0, "withdraw": 0, "payment": 1}
	}`

	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(legacy), 0o600); err != nil {
		t.Fatalf("os.WriteFile(%v) returned error: %v", path, err)
	}

	got := Open(path).State()

	want := domain.AppState{
		User:    domain.User{Name: "Ash Ketchum", Number: "0987654321", PIN: "1234"},
		Balance: decimal.RequireFromString("379.5"),
		Moves: []domain.Transaction{
			{
				Date:     "9/1/2026, 10:15:00 AM",
				Category: domain.CategoryPayment,
				Detail:   "Electricity",
				Amount:   "-120.5",
			},
		},
		Counts: domain.Counters{Payment: 1},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("store.State() mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdatePersistsAndReloads(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	store := Open(path)

	amount := decimal.RequireFromString("150.00")
	tx := domain.Transaction{
		Date:     "9/1/2026, 10:15:00 AM",
		Category: domain.CategoryDeposit,
		Detail:   "Salary",
		Amount:   "150.00",
	}

	err := store.Update(func(state *domain.AppState) error {
		state.Balance = state.Balance.Add(amount)
		state.Moves = append([]domain.Transaction{tx}, state.Moves...)
		state.Counts.Deposit++

		return nil
	})
	if err != nil {
		t.Fatalf("store.Update(deposit) returned error: %v", err)
	}

	reloaded := Open(path).State()

	if diff := cmp.Diff(store.State(), reloaded); diff != "" {
		t.Errorf("reloaded state mismatch (-want +got):\n%s", diff)
	}

	if got, want := reloaded.Balance.StringFixed(2), "650.00"; got != want {
		t.Errorf("reloaded.Balance = %v, want %v", got, want)
	}
}

func TestUpdateLeavesStateUntouchedOnError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	store := Open(path)
	before := store.State()

	wantErr := errors.New("rejected")

	err := store.Update(func(state *domain.AppState) error {
		state.Balance = decimal.Zero
		state.Counts.Withdraw++

		return wantErr
	})
	if err != wantErr {
		t.Fatalf("store.Update() error = %v, want %v", err, wantErr)
	}

	if diff := cmp.Diff(before, store.State()); diff != "" {
		t.Errorf("store.State() mismatch (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("os.Stat(%v) error = %v, want %v", path, err, os.ErrNotExist)
	}
}
