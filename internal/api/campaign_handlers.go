package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumenretail/marketing-agent/internal/campaign"
)

// ListCampaigns returns campaigns, optionally filtered by status or
// type query parameters.
func (h *Handlers) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	var list []*campaign.Campaign
	switch {
	case r.URL.Query().Get("status") != "":
		list = h.campaigns.ByStatus(campaign.Status(r.URL.Query().Get("status")))
	case r.URL.Query().Get("type") != "":
		t, err := campaign.ParseType(r.URL.Query().Get("type"))
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		list = h.campaigns.ByType(t)
	case r.URL.Query().Get("active") == "true":
		list = h.campaigns.Active()
	default:
		list = h.campaigns.All()
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"campaigns": list})
}

// CampaignSummary returns aggregate campaign counts.
func (h *Handlers) CampaignSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.campaigns.Summarize())
}

// GetCampaign returns one campaign by ID.
func (h *Handlers) GetCampaign(w http.ResponseWriter, r *http.Request) {
	c := h.campaigns.Get(chi.URLParam(r, "campaignID"))
	if c == nil {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// CampaignOverview returns the merged deployment report for a campaign.
func (h *Handlers) CampaignOverview(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.deploys.CampaignOverview(chi.URLParam(r, "campaignID")))
}

// LaunchCampaign moves a planned campaign to active.
func (h *Handlers) LaunchCampaign(w http.ResponseWriter, r *http.Request) {
	h.transitionCampaign(w, r, h.campaigns.Launch, "campaign must be planned to launch")
}

// PauseCampaign moves an active campaign to paused.
func (h *Handlers) PauseCampaign(w http.ResponseWriter, r *http.Request) {
	h.transitionCampaign(w, r, h.campaigns.Pause, "campaign must be active to pause")
}

// CompleteCampaign marks a campaign completed.
func (h *Handlers) CompleteCampaign(w http.ResponseWriter, r *http.Request) {
	h.transitionCampaign(w, r, h.campaigns.Complete, "campaign not found")
}

func (h *Handlers) transitionCampaign(w http.ResponseWriter, r *http.Request, transition func(string) bool, failMessage string) {
	id := chi.URLParam(r, "campaignID")
	if h.campaigns.Get(id) == nil {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	if !transition(id) {
		respondError(w, http.StatusConflict, failMessage)
		return
	}
	respondJSON(w, http.StatusOK, h.campaigns.Get(id))
}
