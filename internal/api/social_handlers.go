package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumenretail/marketing-agent/internal/social"
)

// ListPosts returns every social post.
func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts := h.posts.All()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(posts),
		"posts": posts,
	})
}

// RecentPosts returns the newest posts, most recent first.
func (h *Handlers) RecentPosts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"posts": h.posts.Recent(queryInt(r, "limit", 50)),
	})
}

// CampaignPosts returns a campaign's posts with engagement stats.
func (h *Handlers) CampaignPosts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "campaignID")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"posts": h.posts.CampaignPosts(id),
		"stats": h.posts.CampaignStats(id),
	})
}

// PostComments returns the comments on one post.
func (h *Handlers) PostComments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "postID")
	if h.posts.Get(id) == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"comments": h.posts.PostComments(id),
	})
}

// CampaignSentiment returns comment sentiment across a campaign.
func (h *Handlers) CampaignSentiment(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.posts.CampaignSentiment(chi.URLParam(r, "campaignID")))
}

type updateImageRequest struct {
	ImageURL string `json:"image_url"`
}

// UpdatePostImage replaces the image on a post.
func (h *Handlers) UpdatePostImage(w http.ResponseWriter, r *http.Request) {
	var req updateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageURL == "" {
		respondError(w, http.StatusBadRequest, "image_url is required")
		return
	}

	id := chi.URLParam(r, "postID")
	if !h.posts.UpdatePostImage(id, req.ImageURL) {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	respondJSON(w, http.StatusOK, h.posts.Get(id))
}

// PublishPost pushes one post through the configured publisher.
func (h *Handlers) PublishPost(w http.ResponseWriter, r *http.Request) {
	post := h.posts.Get(chi.URLParam(r, "postID"))
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}

	result, err := h.publish.Publish(r.Context(), post)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

type generateImageRequest struct {
	CampaignID string `json:"campaign_id"`
	Platform   string `json:"platform"`
}

// GenerateImage produces an image for a campaign on one platform using
// the stored campaign context.
func (h *Handlers) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CampaignID == "" || req.Platform == "" {
		respondError(w, http.StatusBadRequest, "campaign_id and platform are required")
		return
	}

	cc, ok := h.deploys.Context(req.CampaignID)
	if !ok {
		cc, ok = h.emails.Campaign(req.CampaignID)
	}
	if !ok {
		respondError(w, http.StatusNotFound, "no context recorded for campaign")
		return
	}

	url := h.posts.GenerateImage(r.Context(), req.CampaignID, social.Platform(req.Platform), cc)
	respondJSON(w, http.StatusOK, map[string]string{
		"campaign_id": req.CampaignID,
		"platform":    req.Platform,
		"image_url":   url,
	})
}
