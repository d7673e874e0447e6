// Package httpserver manages server creation and api routing.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Jonixmax/pokebank-go/internal/accountdelivery"
	"github.com/Jonixmax/pokebank-go/internal/accountservice"
	"github.com/Jonixmax/pokebank-go/internal/middleware"
	"github.com/Jonixmax/pokebank-go/internal/reportdelivery"
	"github.com/Jonixmax/pokebank-go/internal/sessiondelivery"
	"github.com/Jonixmax/pokebank-go/internal/sessionrepo"
	"github.com/Jonixmax/pokebank-go/internal/sessionservice"
	"github.com/Jonixmax/pokebank-go/internal/statestore"
	"github.com/Jonixmax/pokebank-go/internal/transactiondelivery"
	"github.com/Jonixmax/pokebank-go/pkg/configpkg"
	"github.com/Jonixmax/pokebank-go/pkg/servicepkg"
	"github.com/Jonixmax/pokebank-go/pkg/tokenpkg"
)

// Server holds the state store, handlers router and configuration.
type Server struct {
	Store  *statestore.Store
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(store *statestore.Store, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	sessionRepo := sessionrepo.NewRepoMem()

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	accountService := accountservice.New(store)
	sessionService := sessionservice.New(sessionRepo, store, config, tokenMaker)

	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(accountService)
	reportHandler := reportdelivery.NewHandler(accountService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/sessions", sessionHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker, sessionService))

	authRoutes.GET("/sessions", sessionHandler.Status)
	authRoutes.DELETE("/sessions", sessionHandler.Logout)

	authRoutes.GET("/account", accountHandler.Get)

	authRoutes.POST("/deposits", transactionHandler.CreateDeposit)
	authRoutes.POST("/withdrawals", transactionHandler.CreateWithdrawal)
	authRoutes.POST("/payments", transactionHandler.CreatePayment)

	authRoutes.GET("/transactions", transactionHandler.List)
	authRoutes.GET("/transactions/summary", transactionHandler.Summary)
	authRoutes.GET("/transactions/chart", reportHandler.Chart)
	authRoutes.GET("/transactions/receipt", reportHandler.Receipt)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("service", servicepkg.ValidService)
		if err != nil {
			return nil, errors.New("cannot register service validator")
		}
	}

	server := &Server{
		Store:  store,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
