// Package sessionservice manages business logic layer of sessions.
package sessionservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Jonixmax/pokebank-go/internal/domain"
	"github.com/Jonixmax/pokebank-go/pkg/configpkg"
	"github.com/Jonixmax/pokebank-go/pkg/tokenpkg"
)

// Repo provides data access layer interface needed by session service layer.
type Repo interface {
	Create(ctx context.Context, sess domain.Session) (domain.Session, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StateReader provides read access to the account state for PIN checks.
type StateReader interface {
	State() domain.AppState
}

// Service facilitates session service layer logic.
type Service struct {
	repo       Repo
	reader     StateReader
	config     configpkg.Config
	TokenMaker tokenpkg.Maker
}

// New returns session service struct to manage session bussines logic.
func New(sr Repo, reader StateReader, config configpkg.Config, tokenMaker tokenpkg.Maker) *Service {
	return &Service{
		repo:       sr,
		reader:     reader,
		config:     config,
		TokenMaker: tokenMaker,
	}
}

// Login compares the submitted PIN with the stored one and, on success,
// creates a session and returns its access token. The comparison is a
// plain byte-for-byte equality check against the stored four digit PIN;
// every attempt is independent, there is no lockout.
func (s *Service) Login(ctx context.Context, pin string) (string, time.Time, domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !validPINFormat(pin) {
		l.Info().Err(domain.ErrInvalidPIN).Send()
		return "", time.Time{}, domain.Account{}, domain.ErrInvalidPIN
	}

	state := s.reader.State()

	if pin != state.User.PIN {
		l.Info().Err(domain.ErrWrongPIN).Send()
		return "", time.Time{}, domain.Account{}, domain.ErrWrongPIN
	}

	accessToken, payload, err := s.TokenMaker.CreateToken(state.User.Number, s.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Account{}, err
	}

	sess := domain.Session{
		ID:        payload.ID,
		Account:   state.User.Number,
		ExpiresAt: payload.ExpiredAt,
		CreatedAt: payload.IssuedAt,
	}

	if _, err = s.repo.Create(ctx, sess); err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Account{}, err
	}

	acc := domain.Account{
		Name:    state.User.Name,
		Number:  state.User.Number,
		Balance: state.Balance.StringFixed(2),
	}

	return accessToken, payload.ExpiredAt, acc, nil
}

// Check reports whether the session with the given ID is still live.
func (s *Service) Check(ctx context.Context, id uuid.UUID) error {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if time.Now().After(sess.ExpiresAt) {
		return domain.ErrExpiredSession
	}

	return nil
}

// Logout revokes the session with the given ID.
func (s *Service) Logout(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validPINFormat(pin string) bool {
	if len(pin) != 4 {
		return false
	}

	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}

	return true
}
