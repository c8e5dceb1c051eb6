package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"integration-service/internal/integration"
	"integration-service/internal/logger"
	"integration-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Connector is the per-provider flow the handler exposes over HTTP.
type Connector interface {
	Name() string
	Authorize(ctx context.Context, userID, orgID string) (string, error)
	Callback(ctx context.Context, p integration.CallbackParams) error
	Credentials(ctx context.Context, userID, orgID string) (*integration.Credentials, error)
	Items(ctx context.Context, creds *integration.Credentials) ([]integration.Item, error)
}

// closeWindowPage ends the popup that hosted the OAuth flow.
const closeWindowPage = `<html>
    <script>
        window.close();
    </script>
</html>
`

type Handler struct {
	connector Connector
}

func NewHandler(connector Connector) *Handler {
	return &Handler{connector: connector}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/integrations/" + h.connector.Name())
	g.POST("/authorize", h.authorize)
	g.GET("/oauth2callback", h.callback)
	g.POST("/credentials", h.credentials)
	g.POST("/load", h.load)
}

func (h *Handler) authorize(c *gin.Context) {
	authURL, err := h.connector.Authorize(
		c.Request.Context(),
		c.PostForm("user_id"),
		c.PostForm("org_id"),
	)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, authURL)
}

func (h *Handler) callback(c *gin.Context) {
	err := h.connector.Callback(c.Request.Context(), integration.CallbackParams{
		Code:             c.Query("code"),
		State:            c.Query("state"),
		Error:            c.Query("error"),
		ErrorDescription: c.Query("error_description"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(closeWindowPage))
}

func (h *Handler) credentials(c *gin.Context) {
	creds, err := h.connector.Credentials(
		c.Request.Context(),
		c.PostForm("user_id"),
		c.PostForm("org_id"),
	)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, creds)
}

func (h *Handler) load(c *gin.Context) {
	var creds integration.Credentials
	if err := json.Unmarshal([]byte(c.PostForm("credentials")), &creds); err != nil {
		h.fail(c, integration.ErrInvalidRequest)
		return
	}

	items, err := h.connector.Items(c.Request.Context(), &creds)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, msg := errorResponse(err)

	fields := map[string]any{
		"provider":   h.connector.Name(),
		"path":       c.FullPath(),
		"status":     status,
		"error":      err.Error(),
		"request_id": middleware.RequestIDFromContext(c.Request.Context()),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("integration request failed", fields)
	} else {
		logger.Warn("integration request rejected", fields)
	}

	c.JSON(status, gin.H{"error": msg})
}

func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, integration.ErrProviderDenied),
		errors.Is(err, integration.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, integration.ErrCSRFMismatch):
		return http.StatusBadRequest, integration.ErrCSRFMismatch.Error()
	case errors.Is(err, integration.ErrMissingCredentials):
		return http.StatusBadRequest, integration.ErrMissingCredentials.Error()
	case errors.Is(err, integration.ErrTokenExchange):
		return http.StatusBadGateway, integration.ErrTokenExchange.Error()
	case errors.Is(err, integration.ErrUpstreamFetch):
		return http.StatusBadGateway, integration.ErrUpstreamFetch.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
