package app

import (
	"context"
	"net/http"

	"integration-service/internal/config"
	"integration-service/internal/integration/handler"
	"integration-service/internal/integration/hubspot"
	"integration-service/internal/kvstore"
	"integration-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

var _ handler.Connector = (*hubspot.Connector)(nil)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	router, err := newRouter(cfg, infra.Store)
	if err != nil {
		_ = infra.Close()
		return nil, nil, err
	}

	return router, infra.Close, nil
}

func newRouter(cfg config.Config, store kvstore.Store) (*gin.Engine, error) {

	// ----------------------------
	// Dependencies
	// ----------------------------

	hubspotConnector, err := hubspot.New(hubspot.Config{
		ClientID:       cfg.HubSpotClientID,
		ClientSecret:   cfg.HubSpotClientSecret,
		RedirectURL:    cfg.HubSpotRedirectURL,
		AuthURL:        cfg.HubSpotAuthURL,
		TokenURL:       cfg.HubSpotTokenURL,
		APIBaseURL:     cfg.HubSpotAPIBaseURL,
		Scopes:         cfg.HubSpotScopes,
		StateTTL:       cfg.StateTTL,
		CredentialsTTL: cfg.CredentialsTTL,
	}, store)
	if err != nil {
		return nil, err
	}

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler.NewHandler(hubspotConnector).RegisterRoutes(router)

	return router, nil
}
