package sessionservice

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Jonixmax/pokebank-go/internal/domain"
	"github.com/Jonixmax/pokebank-go/internal/sessionrepo"
	"github.com/Jonixmax/pokebank-go/internal/statestore"
	"github.com/Jonixmax/pokebank-go/pkg/configpkg"
	"github.com/Jonixmax/pokebank-go/pkg/randompkg"
	"github.com/Jonixmax/pokebank-go/pkg/tokenpkg"
)

var config configpkg.Config

func TestMain(m *testing.M) {
	config = configpkg.Config{
		TokenSymmetricKey:   randompkg.String(32),
		AccessTokenDuration: time.Minute,
	}

	os.Exit(m.Run())
}

func testService(t *testing.T) *Service {
	t.Helper()

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", config.TokenSymmetricKey, err)
	}

	store := statestore.Open(filepath.Join(t.TempDir(), "state.json"))

	return New(sessionrepo.NewRepoMem(), store, config, tokenMaker)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		pin       string
		wantError error
	}{
		{name: "OK", pin: "1234"},
		{name: "Empty", pin: "", wantError: domain.ErrInvalidPIN},
		{name: "TooShort", pin: "12", wantError: domain.ErrInvalidPIN},
		{name: "TooLong", pin: "12345", wantError: domain.ErrInvalidPIN},
		{name: "NotDigits", pin: "12a4", wantError: domain.ErrInvalidPIN},
		{name: "WrongPIN", pin: "9999", wantError: domain.ErrWrongPIN},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service := testService(t)
			ctx := context.Background()

			accessToken, expiresAt, acc, err := service.Login(ctx, tc.pin)
			if err != tc.wantError {
				t.Fatalf("service.Login(%q) error = %v, want %v", tc.pin, err, tc.wantError)
			}

			if tc.wantError != nil {
				if accessToken != "" {
					t.Errorf("accessToken = %q, want empty", accessToken)
				}

				return
			}

			if accessToken == "" {
				t.Error("accessToken is empty")
			}

			if !expiresAt.After(time.Now()) {
				t.Errorf("expiresAt = %v, want in the future", expiresAt)
			}

			if acc.Name != "Ash Ketchum" || acc.Number != "0987654321" || acc.Balance != "500.00" {
				t.Errorf("acc = %+v, want default account", acc)
			}

			// The token must map to a live session.
			payload, err := service.TokenMaker.VerifyToken(accessToken)
			if err != nil {
				t.Fatalf("TokenMaker.VerifyToken(%v) returned error: %v", accessToken, err)
			}

			if err := service.Check(ctx, payload.ID); err != nil {
				t.Errorf("service.Check(%v) returned error: %v", payload.ID, err)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()

	service := testService(t)
	ctx := context.Background()

	accessToken, _, _, err := service.Login(ctx, "1234")
	if err != nil {
		t.Fatalf("service.Login(1234) returned error: %v", err)
	}

	payload, err := service.TokenMaker.VerifyToken(accessToken)
	if err != nil {
		t.Fatalf("TokenMaker.VerifyToken(%v) returned error: %v", accessToken, err)
	}

	if err := service.Logout(ctx, payload.ID); err != nil {
		t.Fatalf("service.Logout(%v) returned error: %v", payload.ID, err)
	}

	if err := service.Check(ctx, payload.ID); err != domain.ErrSessionNotFound {
		t.Errorf("service.Check(%v) error = %v, want %v", payload.ID, err, domain.ErrSessionNotFound)
	}

	if err := service.Logout(ctx, payload.ID); err != domain.ErrSessionNotFound {
		t.Errorf("service.Logout(%v) error = %v, want %v", payload.ID, err, domain.ErrSessionNotFound)
	}
}

func TestCheckUnknownSession(t *testing.T) {
	t.Parallel()

	service := testService(t)

	id := uuid.New()
	if err := service.Check(context.Background(), id); err != domain.ErrSessionNotFound {
		t.Errorf("service.Check(%v) error = %v, want %v", id, err, domain.ErrSessionNotFound)
	}
}
