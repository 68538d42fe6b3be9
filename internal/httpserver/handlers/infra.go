package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/planopro/internal/httpserver/deps"
	"github.com/MrSnakeDoc/planopro/internal/logger"
)

type componentStatus struct {
	OK       bool   `json:"ok"`
	Mode     string `json:"mode,omitempty"`
	Links    *int   `json:"links,omitempty"`
	Sessions *int   `json:"sessions,omitempty"`
	Impact   string `json:"impact,omitempty"`
	Error    string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of each component the shell depends on.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links := len(d.Menu.Links())

		components := map[string]componentStatus{
			"navigation": {
				OK:    links > 0,
				Links: &links,
			},
			"state_store": checkStore(r.Context(), d),
			"assets": {
				OK: d.Assets != nil,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if nav, exists := components["navigation"]; exists && !nav.OK {
		return "critical"
	}
	if st, exists := components["state_store"]; exists && !st.OK {
		return "degraded" // pages still render with the default sidebar
	}
	return "ok"
}

func checkStore(parent context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     false,
			Mode:   d.StoreMode,
			Impact: "sidebar-state-not-remembered",
			Error:  "store not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.StoreMode,
			Impact: "sidebar-state-not-remembered",
			Error:  err.Error(),
		}
	}

	status := componentStatus{OK: true, Mode: d.StoreMode}
	if n, err := d.Store.Active(ctx); err == nil {
		status.Sessions = &n
	} else {
		d.Logger.Warn("failed to count sidebar states", logger.Error(err))
	}
	return status
}
