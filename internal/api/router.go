package api

import (
	"net/http"

	"github.com/martinsuchenak/migrateplan/internal/metrics"
)

// RouterConfig collects the pieces served behind one listener.
type RouterConfig struct {
	Handler     *Handler
	Verifier    TokenVerifier
	AuthEnabled bool
	MCP         http.Handler // optional, mounted at /mcp
	UI          http.Handler // optional, mounted at /
}

// NewRouter registers the API, /metrics, /mcp and the UI on one mux and
// wraps it with auth, metrics and security headers.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	cfg.Handler.RegisterRoutes(mux)

	mux.Handle("GET /metrics", metrics.Handler())
	if cfg.MCP != nil {
		mux.Handle("/mcp", cfg.MCP)
	}
	if cfg.UI != nil {
		mux.Handle("/", cfg.UI)
	}

	var handler http.Handler = mux
	handler = AuthMiddleware(cfg.Verifier, cfg.AuthEnabled, handler)
	handler = MetricsMiddleware(mux, handler)
	handler = SecurityHeadersMiddleware(handler)
	return handler
}
