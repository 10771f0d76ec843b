package campaign

import (
	"math"
	"sync"
	"time"
)

// Manager owns all campaigns for a store. Safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	campaigns map[string]*Campaign
	order     []string // insertion order, map iteration is randomized
}

// NewManager creates an empty campaign manager
func NewManager() *Manager {
	return &Manager{
		campaigns: make(map[string]*Campaign),
	}
}

// Create registers a new campaign in draft status
func (m *Manager) Create(name string, campaignType Type, description string, start, end time.Time, budget float64, targetMetrics map[string]interface{}) *Campaign {
	if targetMetrics == nil {
		targetMetrics = make(map[string]interface{})
	}

	now := time.Now()
	c := &Campaign{
		ID:            newCampaignID(),
		Name:          name,
		Type:          campaignType,
		Description:   description,
		StartDate:     start,
		EndDate:       end,
		Budget:        budget,
		TargetMetrics: targetMetrics,
		Status:        StatusDraft,
		Channels:      []string{},
		Assets:        make(map[string]interface{}),
		Performance:   make(map[string]interface{}),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	m.mu.Lock()
	m.campaigns[c.ID] = c
	m.order = append(m.order, c.ID)
	m.mu.Unlock()

	return c
}

// Get returns a campaign by ID, or nil if not found
func (m *Manager) Get(id string) *Campaign {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.campaigns[id]
}

// Active returns campaigns that are active and inside their date window
func (m *Manager) Active() []*Campaign {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Campaign
	for _, id := range m.order {
		if c := m.campaigns[id]; c.IsActive() {
			out = append(out, c)
		}
	}
	return out
}

// ByType returns campaigns of the given type
func (m *Manager) ByType(t Type) []*Campaign {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Campaign
	for _, id := range m.order {
		if c := m.campaigns[id]; c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// ByStatus returns campaigns in the given status
func (m *Manager) ByStatus(s Status) []*Campaign {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Campaign
	for _, id := range m.order {
		if c := m.campaigns[id]; c.Status == s {
			out = append(out, c)
		}
	}
	return out
}

// All returns every campaign in creation order
func (m *Manager) All() []*Campaign {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Campaign, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.campaigns[id])
	}
	return out
}

// Launch moves a planned campaign to active. Returns false if the
// campaign does not exist or is not in planned status.
func (m *Manager) Launch(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.campaigns[id]
	if !ok || c.Status != StatusPlanned {
		return false
	}
	c.UpdateStatus(StatusActive)
	return true
}

// Pause moves an active campaign to paused
func (m *Manager) Pause(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.campaigns[id]
	if !ok || c.Status != StatusActive {
		return false
	}
	c.UpdateStatus(StatusPaused)
	return true
}

// Complete marks a campaign completed regardless of current status
func (m *Manager) Complete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.campaigns[id]
	if !ok {
		return false
	}
	c.UpdateStatus(StatusCompleted)
	return true
}

// ROI calculates return on investment as a percentage of budget.
// Returns false when the campaign is missing or has no budget.
func (m *Manager) ROI(id string, revenue float64) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.campaigns[id]
	if !ok || c.Budget <= 0 {
		return 0, false
	}
	roi := (revenue - c.Budget) / c.Budget * 100
	return math.Round(roi*100) / 100, true
}

// Summary aggregates counts and budget across all campaigns
type Summary struct {
	TotalCampaigns  int            `json:"total_campaigns"`
	ActiveCampaigns int            `json:"active_campaigns"`
	TotalBudget     float64        `json:"total_budget"`
	ByType          map[Type]int   `json:"campaigns_by_type"`
	ByStatus        map[Status]int `json:"campaigns_by_status"`
}

// Summarize builds a Summary over every campaign
func (m *Manager) Summarize() Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Summary{
		ByType:   make(map[Type]int),
		ByStatus: make(map[Status]int),
	}
	for _, t := range Types() {
		s.ByType[t] = 0
	}
	for _, st := range Statuses() {
		s.ByStatus[st] = 0
	}

	for _, id := range m.order {
		c := m.campaigns[id]
		s.TotalCampaigns++
		s.TotalBudget += c.Budget
		s.ByType[c.Type]++
		s.ByStatus[c.Status]++
		if c.IsActive() {
			s.ActiveCampaigns++
		}
	}
	return s
}
