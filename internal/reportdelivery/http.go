// Package reportdelivery manages delivery layer of chart and receipt exports.
package reportdelivery

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"github.com/Jonixmax/pokebank-go/internal/domain"
	"github.com/Jonixmax/pokebank-go/internal/transactiondelivery"
	"github.com/Jonixmax/pokebank-go/pkg/errorspkg"
	"github.com/Jonixmax/pokebank-go/pkg/web"
)

// Service provides service layer interface needed by report delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package reportdelivery
type Service interface {
	Account(ctx context.Context) domain.Account
	Transactions(ctx context.Context) []domain.Transaction
	Counts(ctx context.Context) domain.Counters
}

// Handler facilitates report delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns report handler.
func NewHandler(rs Service) Handler {
	return Handler{service: rs}
}

// Chart handles http request to render the per-category transaction count
// bar chart as a self-contained HTML page. The chart is rebuilt from the
// current counts on every request.
func (h *Handler) Chart(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	counts := h.service.Counts(ctx)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Transactions by type"}),
	)

	bar.SetXAxis(transactiondelivery.SummaryLabels[:]).
		AddSeries("Transactions", []opts.BarData{
			{Value: counts.Deposit},
			{Value: counts.Withdraw},
			{Value: counts.Payment},
		})

	gctx.Header("Content-Type", "text/html; charset=utf-8")

	if err := bar.Render(gctx.Writer); err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

// Receipt handles http request to export a PDF receipt of the most recent
// transaction. Offered only when the ledger has at least one entry.
func (h *Handler) Receipt(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	txs := h.service.Transactions(ctx)
	if len(txs) == 0 {
		gctx.JSON(http.StatusConflict, web.Error(domain.ErrNoTransactions))

		return
	}

	acc := h.service.Account(ctx)
	last := txs[0]

	pdf := receiptPDF(acc, last)

	filename := fmt.Sprintf("Receipt_%s_%d.pdf", last.Category, time.Now().Unix())

	gctx.Header("Content-Type", "application/pdf")
	gctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := pdf.Output(gctx.Writer); err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

func receiptPDF(acc domain.Account, tx domain.Transaction) *gofpdf.Fpdf {
	const margin = 50.0

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()

	y := margin

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(margin, y, "Pokemon Bank - Transaction Receipt")
	y += 24

	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(margin, y, "Holder:  "+acc.Name)
	y += 16
	pdf.Text(margin, y, "Account: "+acc.Number)
	y += 16
	pdf.Text(margin, y, "Date:    "+tx.Date)
	y += 24

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(margin, y, "Operation detail")
	y += 14

	pdf.SetLineWidth(0.5)
	pdf.Line(margin, y, 545, y)
	y += 12

	detail := tx.Detail
	if detail == "" {
		detail = "-"
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(margin, y, "Type:    "+tx.Category.String())
	y += 16
	pdf.Text(margin, y, "Detail:  "+detail)
	y += 16
	pdf.Text(margin, y, "Amount:  $"+tx.Amount)
	y += 16
	pdf.Text(margin, y, "Current balance: $"+acc.Balance)
	y += 24

	pdf.SetFont("Helvetica", "I", 10)
	pdf.Text(margin, y, "This receipt is part of an academic project (demo version).")

	return pdf
}
