// Package accountservice manages business logic layer of the account.
package accountservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Jonixmax/pokebank-go/internal/domain"
	"github.com/Jonixmax/pokebank-go/pkg/servicepkg"
)

// Repo provides data access layer interface needed by account service layer.
// Update must apply the mutation and the persistence as one step.
type Repo interface {
	State() domain.AppState
	Update(fn func(*domain.AppState) error) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
	now  func() time.Time
}

// New returns account service struct to manage account bussines logic.
func New(r Repo) *Service {
	return &Service{repo: r, now: time.Now}
}

// Account returns the account view with the current balance.
func (s *Service) Account(ctx context.Context) domain.Account {
	return accountView(s.repo.State())
}

// Transactions returns the ledger, newest first.
func (s *Service) Transactions(ctx context.Context) []domain.Transaction {
	return s.repo.State().Moves
}

// Counts returns the per-category transaction counters.
func (s *Service) Counts(ctx context.Context) domain.Counters {
	return s.repo.State().Counts
}

// Deposit credits the account and appends a Deposit ledger entry.
// The detail defaults to the category name when empty.
func (s *Service) Deposit(ctx context.Context, amount, detail string) (domain.Transaction, domain.Account, error) {
	l := zerolog.Ctx(ctx)

	amt, err := parseAmount(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Transaction{}, domain.Account{}, err
	}

	if detail == "" {
		detail = domain.CategoryDeposit.String()
	}

	tx := domain.Transaction{
		Date:     s.now().Format(domain.DateDisplayLayout),
		Category: domain.CategoryDeposit,
		Detail:   detail,
		Amount:   amt.StringFixed(2),
	}

	var acc domain.Account

	err = s.repo.Update(func(state *domain.AppState) error {
		state.Balance = state.Balance.Add(amt)
		addMove(state, tx)
		acc = accountView(*state)

		return nil
	})
	if err != nil {
		return domain.Transaction{}, domain.Account{}, err
	}

	return tx, acc, nil
}

// Withdraw debits the account and appends a Withdrawal ledger entry.
// It fails with domain.ErrInsufficientBalance when the amount exceeds the
// balance, leaving the state unchanged.
func (s *Service) Withdraw(ctx context.Context, amount, detail string) (domain.Transaction, domain.Account, error) {
	if detail == "" {
		detail = domain.CategoryWithdrawal.String()
	}

	return s.debit(ctx, domain.CategoryWithdrawal, detail, amount)
}

// Pay debits the account and appends a Payment ledger entry whose detail
// is the service label. The service must be in the payable catalog.
func (s *Service) Pay(ctx context.Context, service, amount string) (domain.Transaction, domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !servicepkg.IsSupportedService(service) {
		l.Info().Str("service", service).Msg(domain.ErrServiceNotSupported.Error())
		return domain.Transaction{}, domain.Account{}, domain.ErrServiceNotSupported
	}

	return s.debit(ctx, domain.CategoryPayment, service, amount)
}

func (s *Service) debit(ctx context.Context, category domain.Category, detail, amount string) (domain.Transaction, domain.Account, error) {
	l := zerolog.Ctx(ctx)

	amt, err := parseAmount(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Transaction{}, domain.Account{}, err
	}

	tx := domain.Transaction{
		Date:     s.now().Format(domain.DateDisplayLayout),
		Category: category,
		Detail:   detail,
		Amount:   amt.Neg().StringFixed(2),
	}

	var acc domain.Account

	err = s.repo.Update(func(state *domain.AppState) error {
		if amt.GreaterThan(state.Balance) {
			return domain.ErrInsufficientBalance
		}

		state.Balance = state.Balance.Sub(amt)
		addMove(state, tx)
		acc = accountView(*state)

		return nil
	})
	if err != nil {
		if err == domain.ErrInsufficientBalance {
			l.Info().Err(err).Send()
		}

		return domain.Transaction{}, domain.Account{}, err
	}

	return tx, acc, nil
}

// addMove prepends the entry and increments its category counter in the
// same mutation, keeping the counters consistent with the ledger.
func addMove(state *domain.AppState, tx domain.Transaction) {
	state.Moves = append([]domain.Transaction{tx}, state.Moves...)

	switch tx.Category {
	case domain.CategoryDeposit:
		state.Counts.Deposit++
	case domain.CategoryWithdrawal:
		state.Counts.Withdraw++
	case domain.CategoryPayment:
		state.Counts.Payment++
	}
}

func accountView(state domain.AppState) domain.Account {
	return domain.Account{
		Name:    state.User.Name,
		Number:  state.User.Number,
		Balance: state.Balance.StringFixed(2),
	}
}

func parseAmount(amount string) (decimal.Decimal, error) {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	if amt.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, domain.ErrNonPositiveAmount
	}

	return amt, nil
}
