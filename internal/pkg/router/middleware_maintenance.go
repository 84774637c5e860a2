package router

import (
	"net/http"
	"strings"

	"github.com/danudoro/supplyvault/internal/pkg/config"
)

// middlewareMaintenance serves 503 for route patterns listed under
// app.maintenance.endpoints, letting operators fence off endpoints without
// a redeploy.
func middlewareMaintenance(cfg config.Config) Middleware {
	blocked := make(map[string]struct{})
	if cfg != nil {
		for _, endpoint := range cfg.GetArray("app.maintenance.endpoints") {
			if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
				blocked[endpoint] = struct{}{}
			}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, down := blocked[matchedRoutePath(r)]; down {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
