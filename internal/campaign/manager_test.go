package campaign

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCampaign(t *testing.T, m *Manager, ct Type) *Campaign {
	t.Helper()
	start := time.Now().Add(-time.Hour)
	end := start.AddDate(0, 0, 30)
	return m.Create("Test Campaign", ct, "test description", start, end, 5000, map[string]interface{}{
		"new_customers": 100,
	})
}

func TestCreateCampaign(t *testing.T) {
	m := NewManager()
	c := newTestCampaign(t, m, TypeAcquisition)

	assert.NotEmpty(t, c.ID)
	assert.Contains(t, c.ID, "campaign_")
	assert.Equal(t, StatusDraft, c.Status)
	assert.Equal(t, TypeAcquisition, c.Type)
	assert.Equal(t, 30, c.DurationDays())
	assert.NotNil(t, c.Assets)
	assert.NotNil(t, c.Performance)

	assert.Same(t, c, m.Get(c.ID))
	assert.Nil(t, m.Get("campaign_missing"))
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"acquisition", TypeAcquisition, false},
		{"RETENTION", TypeRetention, false},
		{" product_launch ", TypeProductLaunch, false},
		{"brand_awareness", TypeBrandAwareness, false},
		{"influencer", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseType(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestLaunchRequiresPlanned(t *testing.T) {
	m := NewManager()
	c := newTestCampaign(t, m, TypeRetention)

	// Draft campaigns can't launch
	assert.False(t, m.Launch(c.ID))
	assert.Equal(t, StatusDraft, c.Status)

	c.UpdateStatus(StatusPlanned)
	assert.True(t, m.Launch(c.ID))
	assert.Equal(t, StatusActive, c.Status)
	assert.True(t, c.IsActive())

	// Launching twice fails: already active
	assert.False(t, m.Launch(c.ID))
}

func TestPauseRequiresActive(t *testing.T) {
	m := NewManager()
	c := newTestCampaign(t, m, TypeSeasonal)

	assert.False(t, m.Pause(c.ID))

	c.UpdateStatus(StatusPlanned)
	m.Launch(c.ID)
	assert.True(t, m.Pause(c.ID))
	assert.Equal(t, StatusPaused, c.Status)
}

func TestCompleteFromAnyStatus(t *testing.T) {
	m := NewManager()
	c := newTestCampaign(t, m, TypeEvent)

	assert.True(t, m.Complete(c.ID))
	assert.Equal(t, StatusCompleted, c.Status)
	assert.False(t, m.Complete("campaign_missing"))
}

func TestAddChannelDeduplicates(t *testing.T) {
	m := NewManager()
	c := newTestCampaign(t, m, TypeAcquisition)

	c.AddChannel("email")
	c.AddChannel("social_media")
	c.AddChannel("email")

	assert.Equal(t, []string{"email", "social_media"}, c.Channels)
}

func TestROI(t *testing.T) {
	m := NewManager()
	c := newTestCampaign(t, m, TypeClearance)

	roi, ok := m.ROI(c.ID, 7500)
	require.True(t, ok)
	assert.Equal(t, 50.0, roi)

	roi, ok = m.ROI(c.ID, 2500)
	require.True(t, ok)
	assert.Equal(t, -50.0, roi)

	_, ok = m.ROI("campaign_missing", 1000)
	assert.False(t, ok)

	zero := m.Create("No Budget", TypeEvent, "", time.Now(), time.Now().AddDate(0, 0, 7), 0, nil)
	_, ok = m.ROI(zero.ID, 1000)
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	m := NewManager()
	a := newTestCampaign(t, m, TypeAcquisition)
	newTestCampaign(t, m, TypeAcquisition)
	newTestCampaign(t, m, TypeRetention)

	a.UpdateStatus(StatusPlanned)
	m.Launch(a.ID)

	s := m.Summarize()
	assert.Equal(t, 3, s.TotalCampaigns)
	assert.Equal(t, 1, s.ActiveCampaigns)
	assert.Equal(t, 15000.0, s.TotalBudget)
	assert.Equal(t, 2, s.ByType[TypeAcquisition])
	assert.Equal(t, 1, s.ByType[TypeRetention])
	assert.Equal(t, 0, s.ByType[TypeSeasonal])
	assert.Equal(t, 1, s.ByStatus[StatusActive])
	assert.Equal(t, 2, s.ByStatus[StatusDraft])
}

func TestQueriesPreserveOrder(t *testing.T) {
	m := NewManager()
	first := newTestCampaign(t, m, TypeRetention)
	second := newTestCampaign(t, m, TypeRetention)

	byType := m.ByType(TypeRetention)
	require.Len(t, byType, 2)
	assert.Equal(t, first.ID, byType[0].ID)
	assert.Equal(t, second.ID, byType[1].ID)

	all := m.All()
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
}
