// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Jonixmax/pokebank-go/internal/domain"
	"github.com/Jonixmax/pokebank-go/pkg/errorspkg"
	"github.com/Jonixmax/pokebank-go/pkg/web"
)

// EmptyLedgerMessage is returned instead of rows when there are no transactions yet.
const EmptyLedgerMessage = "No transactions yet"

// SummaryLabels are the fixed chart labels for the count triple, in ledger order.
var SummaryLabels = [3]string{"Deposits", "Withdrawals", "Payments"}

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Deposit(ctx context.Context, amount, detail string) (domain.Transaction, domain.Account, error)
	Withdraw(ctx context.Context, amount, detail string) (domain.Transaction, domain.Account, error)
	Pay(ctx context.Context, service, amount string) (domain.Transaction, domain.Account, error)
	Transactions(ctx context.Context) []domain.Transaction
	Counts(ctx context.Context) domain.Counters
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

type data struct {
	Transaction domain.Transaction `json:"transaction"`
	Account     domain.Account     `json:"account"`
}

type depositRequest struct {
	Amount string `json:"amount" binding:"required"`
	Detail string `json:"detail"`
}

// CreateDeposit handles http request to deposit money.
func (h *Handler) CreateDeposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req depositRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		bindError(gctx, err)

		return
	}

	tx, acc, err := h.service.Deposit(ctx, req.Amount, req.Detail)
	if err != nil {
		operationError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{tx, acc}})
}

type withdrawRequest struct {
	Amount string `json:"amount" binding:"required"`
	Detail string `json:"detail"`
}

// CreateWithdrawal handles http request to withdraw money.
func (h *Handler) CreateWithdrawal(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req withdrawRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		bindError(gctx, err)

		return
	}

	tx, acc, err := h.service.Withdraw(ctx, req.Amount, req.Detail)
	if err != nil {
		operationError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{tx, acc}})
}

type paymentRequest struct {
	Service string `json:"service" binding:"required,service"`
	Amount  string `json:"amount" binding:"required"`
}

// CreatePayment handles http request to pay a service.
func (h *Handler) CreatePayment(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req paymentRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		bindError(gctx, err)

		return
	}

	tx, acc, err := h.service.Pay(ctx, req.Service, req.Amount)
	if err != nil {
		operationError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{tx, acc}})
}

type transactionView struct {
	domain.Transaction
	Direction string `json:"direction"`
}

type dataTransactions struct {
	Transactions []transactionView `json:"transactions"`
	Message      string            `json:"message,omitempty"`
}

// List handles http request to list the ledger, newest first. Each entry
// carries a direction so debits render differently from credits.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	txs := h.service.Transactions(ctx)

	views := make([]transactionView, len(txs))
	for i, tx := range txs {
		views[i] = transactionView{Transaction: tx, Direction: direction(tx)}
	}

	res := dataTransactions{Transactions: views}
	if len(views) == 0 {
		res.Message = EmptyLedgerMessage
	}

	gctx.JSON(http.StatusOK, web.Response{Data: res})
}

type dataSummary struct {
	Labels [3]string `json:"labels"`
	Counts [3]int    `json:"counts"`
}

// Summary handles http request for the per-category count triple that
// feeds the chart.
func (h *Handler) Summary(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	counts := h.service.Counts(ctx)

	res := dataSummary{
		Labels: SummaryLabels,
		Counts: [3]int{counts.Deposit, counts.Withdraw, counts.Payment},
	}

	gctx.JSON(http.StatusOK, web.Response{Data: res})
}

func direction(tx domain.Transaction) string {
	if strings.HasPrefix(tx.Amount, "-") {
		return "debit"
	}

	return "credit"
}

func bindError(gctx *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(err))
}

func operationError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrInvalidAmount, domain.ErrNonPositiveAmount, domain.ErrServiceNotSupported:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case domain.ErrInsufficientBalance:
		gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
