package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/lumenretail/marketing-agent/internal/agent"
	"github.com/lumenretail/marketing-agent/internal/campaign"
	"github.com/lumenretail/marketing-agent/internal/customers"
	"github.com/lumenretail/marketing-agent/internal/deploy"
	"github.com/lumenretail/marketing-agent/internal/email"
	"github.com/lumenretail/marketing-agent/internal/publisher"
	"github.com/lumenretail/marketing-agent/internal/social"
)

// Handlers holds every service the API surfaces.
type Handlers struct {
	agent     *agent.Agent
	campaigns *campaign.Manager
	deploys   *deploy.Service
	customers *customers.Database
	emails    *email.Service
	posts     *social.Service
	publish   publisher.Publisher

	startedAt time.Time
}

// NewHandlers wires the API handlers. pub may be nil; the publish
// endpoint then runs the simulated publisher.
func NewHandlers(a *agent.Agent, cm *campaign.Manager, d *deploy.Service, db *customers.Database, em *email.Service, soc *social.Service, pub publisher.Publisher) *Handlers {
	if pub == nil {
		pub = publisher.Simulated{}
	}
	return &Handlers{
		agent:     a,
		campaigns: cm,
		deploys:   d,
		customers: db,
		emails:    em,
		posts:     soc,
		publish:   pub,
		startedAt: time.Now(),
	}
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// queryInt reads an integer query parameter with a default.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
