package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListEmails returns every sent email.
func (h *Handlers) ListEmails(w http.ResponseWriter, r *http.Request) {
	emails := h.emails.All()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(emails),
		"emails": emails,
	})
}

// RecentEmails returns the newest emails, most recent first.
func (h *Handlers) RecentEmails(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"emails": h.emails.Recent(queryInt(r, "limit", 50)),
	})
}

// CampaignEmails returns a campaign's emails with funnel stats.
func (h *Handlers) CampaignEmails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "campaignID")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"emails": h.emails.CampaignEmails(id),
		"stats":  h.emails.CampaignStats(id),
	})
}
