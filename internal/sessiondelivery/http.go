// Package sessiondelivery manages delivery layer of sessions.
package sessiondelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Jonixmax/pokebank-go/internal/domain"
	"github.com/Jonixmax/pokebank-go/internal/middleware"
	"github.com/Jonixmax/pokebank-go/pkg/errorspkg"
	"github.com/Jonixmax/pokebank-go/pkg/tokenpkg"
	"github.com/Jonixmax/pokebank-go/pkg/web"
)

// Service provides service layer interface needed by session delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package sessiondelivery
type Service interface {
	Login(ctx context.Context, pin string) (string, time.Time, domain.Account, error)
	Check(ctx context.Context, id uuid.UUID) error
	Logout(ctx context.Context, id uuid.UUID) error
}

// Handler facilitates session delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns session handler.
func NewHandler(ss Service) *Handler {
	return &Handler{service: ss}
}

type loginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

type data struct {
	Account domain.Account `json:"account"`
}

// Login handles http request to start a session with the account PIN.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	accessToken, expiresAt, acc, err := h.service.Login(ctx, req.PIN)
	if err != nil {
		switch err {
		case domain.ErrInvalidPIN:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrWrongPIN:
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt.Format(time.RFC3339),
		Data:                 data{acc},
	}

	gctx.JSON(http.StatusOK, res)
}

type sessionStatus struct {
	Active    bool      `json:"active"`
	Account   string    `json:"account"`
	ExpiresAt time.Time `json:"expires_at"`
}

type statusData struct {
	Session sessionStatus `json:"session"`
}

// Status handles http request to probe whether the current session is
// still live, so a client reload can skip the PIN prompt.
func (h *Handler) Status(gctx *gin.Context) {
	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	res := web.Response{
		Data: statusData{
			Session: sessionStatus{
				Active:    true,
				Account:   authPayload.Username,
				ExpiresAt: authPayload.ExpiredAt,
			},
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type logoutRequest struct {
	Confirm bool `json:"confirm"`
}

// Logout handles http request to end the current session. The caller must
// confirm explicitly; a request without confirmation is rejected, which
// is the cancel path of the confirmation dialog.
func (h *Handler) Logout(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req logoutRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if !req.Confirm {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrConfirmationRequired))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	if err := h.service.Logout(ctx, authPayload.ID); err != nil {
		if err == domain.ErrSessionNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{})
}
