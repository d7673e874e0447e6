package main

import (
	"github.com/rs/zerolog/log"

	"github.com/Jonixmax/pokebank-go/cmd/httpserver"
	"github.com/Jonixmax/pokebank-go/internal/middleware"
	"github.com/Jonixmax/pokebank-go/internal/statestore"
	"github.com/Jonixmax/pokebank-go/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	store := statestore.Open(config.StateFile)

	server, err := httpserver.New(store, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
