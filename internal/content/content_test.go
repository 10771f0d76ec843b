package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenretail/marketing-agent/internal/config"
)

type fakeGenerator struct {
	text       string
	err        error
	lastSystem string
	lastPrompt string
}

func (f *fakeGenerator) Complete(ctx context.Context, system, prompt string) (string, error) {
	f.lastSystem = system
	f.lastPrompt = prompt
	return f.text, f.err
}

var testStore = config.StoreProfile{
	Name:     "Bright Threads Boutique",
	Type:     "fashion",
	Location: "Portland, OR",
}

func TestCreatePromotionCampaign(t *testing.T) {
	gen := &fakeGenerator{text: "Full campaign plan here."}
	s := NewService(gen, testStore)

	c := s.CreatePromotionCampaign(context.Background(), "young professionals", "seasonal", 2500, 14)

	assert.Equal(t, "Full campaign plan here.", c.Plan)
	assert.Equal(t, "seasonal", c.CampaignType)
	assert.Equal(t, 2500.0, c.Budget)
	assert.Equal(t, "planned", c.Status)
	assert.Equal(t, 14, int(c.EndDate.Sub(c.StartDate).Hours()/24))

	assert.Contains(t, gen.lastPrompt, "Bright Threads Boutique")
	assert.Contains(t, gen.lastPrompt, "Target Audience: young professionals")
	assert.Contains(t, gen.lastPrompt, "Budget: $2500.00")
	assert.Contains(t, gen.lastPrompt, "Duration: 14 days")
	assert.Contains(t, gen.lastSystem, "customer acquisition")
}

func TestPromotionCampaignFallback(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("no providers")}
	s := NewService(gen, testStore)

	c := s.CreatePromotionCampaign(context.Background(), "families", "clearance", 500, 7)

	assert.Contains(t, c.Plan, "Clearance campaign")
	assert.Contains(t, c.Plan, "families")
	assert.Equal(t, "planned", c.Status)
}

func TestNilGeneratorUsesFallbacks(t *testing.T) {
	s := NewService(nil, testStore)

	inc := s.DesignFirstPurchaseIncentive(context.Background(), "discount")
	assert.Equal(t, "designed", inc.Status)
	assert.Contains(t, inc.Design, "Bright Threads Boutique")

	ref := s.CreateReferralProgram(context.Background(), "$10 for both sides")
	assert.Equal(t, "created", ref.Status)
	assert.Contains(t, ref.Program, "$10 for both sides")

	wb := s.CreateWinBackCampaign(context.Background(), "90 days")
	assert.Equal(t, "created", wb.Status)
	assert.Contains(t, wb.Campaign, "90 days")
}

func TestGenerateAdCopy(t *testing.T) {
	gen := &fakeGenerator{text: "Three ad variations."}
	s := NewService(gen, testStore)

	ad := s.GenerateAdCopy(context.Background(), "instagram", "vip", "summer dresses")

	assert.Equal(t, "Three ad variations.", ad.Copy)
	assert.Equal(t, "instagram", ad.Platform)
	assert.Contains(t, gen.lastPrompt, "Product Category: summer dresses")
	assert.Contains(t, gen.lastPrompt, "optimized for instagram")
}

func TestDesignLoyaltyProgram(t *testing.T) {
	gen := &fakeGenerator{text: "Points program design."}
	s := NewService(gen, testStore)

	lp := s.DesignLoyaltyProgram(context.Background(), "points")
	assert.Equal(t, "Points program design.", lp.Program)
	assert.Equal(t, "designed", lp.Status)
	assert.Contains(t, gen.lastPrompt, "Program Type: points")
}

func TestBuildContentCalendar(t *testing.T) {
	gen := &fakeGenerator{text: "Week by week plan."}
	s := NewService(gen, testStore)

	cal := s.BuildContentCalendar(context.Background(), 4, []string{"facebook", "instagram"})

	assert.Equal(t, "Week by week plan.", cal.Calendar)
	assert.Equal(t, 4, cal.DurationWeeks)
	require.Len(t, cal.Platforms, 2)
	assert.Contains(t, gen.lastPrompt, "Platforms: facebook, instagram")
	assert.Contains(t, gen.lastPrompt, "Duration: 4 weeks")
}

func TestDefaultStoreProfile(t *testing.T) {
	s := NewService(nil, config.StoreProfile{})

	ad := s.GenerateAdCopy(context.Background(), "google", "new", "gadgets")
	assert.True(t, strings.Contains(ad.Copy, "Store"))
}
