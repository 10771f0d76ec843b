// Package campaign manages marketing campaign lifecycle: planning,
// launch, tracking, and reporting.
package campaign

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is a campaign lifecycle state
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPlanned   Status = "planned"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every campaign status
func Statuses() []Status {
	return []Status{StatusDraft, StatusPlanned, StatusActive, StatusPaused, StatusCompleted, StatusCancelled}
}

// Type is a campaign category
type Type string

const (
	TypeAcquisition    Type = "acquisition"
	TypeRetention      Type = "retention"
	TypeSeasonal       Type = "seasonal"
	TypeProductLaunch  Type = "product_launch"
	TypeClearance      Type = "clearance"
	TypeEvent          Type = "event"
	TypeBrandAwareness Type = "brand_awareness"
)

// Types lists every campaign type
func Types() []Type {
	return []Type{TypeAcquisition, TypeRetention, TypeSeasonal, TypeProductLaunch, TypeClearance, TypeEvent, TypeBrandAwareness}
}

// ParseType converts a string into a campaign Type
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Types() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("campaign: unknown campaign type %q", s)
}

// Campaign represents a marketing campaign
type Campaign struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Type          Type                   `json:"campaign_type"`
	Description   string                 `json:"description"`
	StartDate     time.Time              `json:"start_date"`
	EndDate       time.Time              `json:"end_date"`
	Budget        float64                `json:"budget"`
	TargetMetrics map[string]interface{} `json:"target_metrics"`
	Status        Status                 `json:"status"`
	Channels      []string               `json:"channels"`
	Assets        map[string]interface{} `json:"assets"`
	Performance   map[string]interface{} `json:"performance"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// AddChannel adds a marketing channel to the campaign (no duplicates)
func (c *Campaign) AddChannel(channel string) {
	for _, ch := range c.Channels {
		if ch == channel {
			return
		}
	}
	c.Channels = append(c.Channels, channel)
	c.UpdatedAt = time.Now()
}

// AddAsset attaches a creative asset (copy, image URL, plan text) to the campaign
func (c *Campaign) AddAsset(assetType string, data interface{}) {
	c.Assets[assetType] = data
	c.UpdatedAt = time.Now()
}

// UpdateStatus sets the campaign status. Any transition is allowed.
func (c *Campaign) UpdateStatus(status Status) {
	c.Status = status
	c.UpdatedAt = time.Now()
}

// UpdatePerformance merges metrics into the campaign's performance record
func (c *Campaign) UpdatePerformance(metrics map[string]interface{}) {
	for k, v := range metrics {
		c.Performance[k] = v
	}
	c.UpdatedAt = time.Now()
}

// DurationDays returns the campaign duration in whole days
func (c *Campaign) DurationDays() int {
	return int(c.EndDate.Sub(c.StartDate).Hours() / 24)
}

// IsActive reports whether the campaign is active and inside its date window
func (c *Campaign) IsActive() bool {
	now := time.Now()
	return c.Status == StatusActive && !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// Context carries the business framing handed to content and image
// generation so prompts stay consistent across channels.
type Context struct {
	CampaignType   string `json:"campaign_type"`
	StoreName      string `json:"store_name"`
	StoreType      string `json:"store_type"`
	Location       string `json:"location"`
	Goal           string `json:"goal"`
	TargetAudience string `json:"target_audience"`
	Offers         string `json:"offers"`
}

func newCampaignID() string {
	return "campaign_" + uuid.NewString()
}
