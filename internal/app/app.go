package app

import (
	"fmt"
	"net/http"

	"github.com/matchscope/matchscope-api/internal/config"
	"github.com/matchscope/matchscope-api/internal/interfaces/httpapi"
	"github.com/matchscope/matchscope-api/internal/platform/logging"
	"github.com/matchscope/matchscope-api/internal/providers/espn"
	"github.com/matchscope/matchscope-api/internal/providers/footballdata"
	"github.com/matchscope/matchscope-api/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	structuredClient := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:        cfg.FootballDataBaseURL,
		Token:          cfg.FootballDataToken,
		Timeout:        cfg.FootballDataTimeout,
		MaxRetries:     cfg.FootballDataMaxRetries,
		Logger:         logger,
		CircuitBreaker: cfg.FootballDataCircuit,
	})

	liveClient := espn.NewClient(espn.ClientConfig{
		BaseURL:        cfg.ESPNBaseURL,
		Timeout:        cfg.ESPNTimeout,
		MaxRetries:     cfg.ESPNMaxRetries,
		Logger:         logger,
		CircuitBreaker: cfg.ESPNCircuit,
	})

	catalogSvc := usecase.NewCatalogService(structuredClient, logger)
	analysisSvc := usecase.NewAnalysisService(structuredClient, cfg.FormWindow, logger)
	feedSvc := usecase.NewFeedService(liveClient, structuredClient, cfg.TrackedLeagues, cfg.ESPNMaxConcurrent, logger)

	handler := httpapi.NewHandler(catalogSvc, analysisSvc, feedSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
