// Package accountdelivery manages delivery layer of the account.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jonixmax/pokebank-go/internal/domain"
	"github.com/Jonixmax/pokebank-go/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Account(ctx context.Context) domain.Account
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

type data struct {
	Account domain.Account `json:"account"`
}

// Get handles http request to get the account header view: holder,
// account number and the current balance.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	res := web.Response{
		Data: data{h.service.Account(ctx)},
	}

	gctx.JSON(http.StatusOK, res)
}
