package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenretail/marketing-agent/internal/campaign"
	"github.com/lumenretail/marketing-agent/internal/config"
	"github.com/lumenretail/marketing-agent/internal/content"
	"github.com/lumenretail/marketing-agent/internal/customers"
	"github.com/lumenretail/marketing-agent/internal/deploy"
	"github.com/lumenretail/marketing-agent/internal/email"
	"github.com/lumenretail/marketing-agent/internal/social"
)

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Complete(ctx context.Context, system, prompt string) (string, error) {
	return f.text, f.err
}

var testStore = config.StoreProfile{
	Name:           "Bright Threads Boutique",
	Type:           "fashion",
	Location:       "Portland, OR",
	HasOnlineStore: true,
}

func newTestAgent(t *testing.T, gen TextGenerator) *Agent {
	t.Helper()
	db := customers.NewDatabase(150, customers.WithSeed(42))
	em := email.NewService(gen, email.WithSeed(42))
	soc := social.NewService(nil, social.WithSeed(42))
	deploys := deploy.NewService(db, em, soc, nil)
	contentSvc := content.NewService(gen, testStore)
	return New(testStore, gen, campaign.NewManager(), deploys, contentSvc)
}

func TestSetGoal(t *testing.T) {
	a := newTestAgent(t, nil)

	g, err := a.SetGoal(GoalCustomerAcquisition, "50 new customers", "30 days", "", nil, 2)
	require.NoError(t, err)

	assert.Equal(t, GoalPending, g.Status)
	assert.Equal(t, "Achieve 50 new customers within 30 days for Bright Threads Boutique", g.Description)
	assert.Equal(t, 2, g.Priority)
	assert.NotEmpty(t, g.ID)
	assert.Len(t, a.Goals(), 1)
	assert.Len(t, a.ActiveGoals(), 1)
	assert.Empty(t, a.CompletedGoals())
}

func TestSetGoalRejectsUnknownType(t *testing.T) {
	a := newTestAgent(t, nil)
	_, err := a.SetGoal(GoalType("world_domination"), "t", "1 week", "", nil, 1)
	assert.Error(t, err)
}

func TestGoalStatusTimestamps(t *testing.T) {
	a := newTestAgent(t, nil)
	g, err := a.SetGoal(GoalAnalyticsInsights, "insights", "1 week", "", nil, 1)
	require.NoError(t, err)

	g.UpdateStatus(GoalInProgress)
	require.NotNil(t, g.StartedAt)
	started := *g.StartedAt

	// Re-entering in_progress keeps the original start time
	g.UpdateStatus(GoalInProgress)
	assert.Equal(t, started, *g.StartedAt)

	g.UpdateStatus(GoalCompleted)
	assert.NotNil(t, g.CompletedAt)
	assert.Len(t, a.CompletedGoals(), 1)
}

func TestPlanParsesNumberedList(t *testing.T) {
	gen := &fakeGenerator{text: `Here is the plan:
1. Audit current marketing channels
This covers email and social baselines.
2) Design launch promotion
3: Step: Deploy campaign assets`}
	a := newTestAgent(t, gen)
	g, err := a.SetGoal(GoalCustomerAcquisition, "growth", "1 month", "", nil, 1)
	require.NoError(t, err)

	result := a.Plan(context.Background(), g)
	require.False(t, result.FellBack)
	require.Len(t, result.Subtasks, 3)

	assert.Equal(t, "task_1", result.Subtasks[0].ID)
	assert.Equal(t, "Audit current marketing channels", result.Subtasks[0].Name)
	assert.Contains(t, result.Subtasks[0].Description, "email and social baselines")
	assert.Equal(t, "Design launch promotion", result.Subtasks[1].Name)
	assert.Equal(t, "Deploy campaign assets", result.Subtasks[2].Name)
	assert.Len(t, g.Subtasks, 3)
}

func TestPlanFallsBackOnUnstructuredText(t *testing.T) {
	gen := &fakeGenerator{text: "I think you should just do some marketing."}
	a := newTestAgent(t, gen)
	g, _ := a.SetGoal(GoalDigitalPresence, "reach", "2 weeks", "", nil, 1)

	result := a.Plan(context.Background(), g)
	assert.True(t, result.FellBack)
	assert.Len(t, result.Subtasks, 5)
	assert.Equal(t, "Plan campaign strategy", result.Subtasks[0].Name)
}

func TestPlanFallsBackOnGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("no providers")}
	a := newTestAgent(t, gen)
	g, _ := a.SetGoal(GoalCustomerRetention, "retention", "1 month", "", nil, 1)

	result := a.Plan(context.Background(), g)
	assert.True(t, result.FellBack)
	assert.Len(t, g.Subtasks, 5)
}

func TestParsePlanStripsTaskPrefixes(t *testing.T) {
	result := parsePlan("1. Task: Build email list\n2. Subtask: Write copy")
	require.Len(t, result.Subtasks, 2)
	assert.Equal(t, "Build email list", result.Subtasks[0].Name)
	assert.Equal(t, "Write copy", result.Subtasks[1].Name)
}

func TestExecuteAcquisitionRunsFullFlow(t *testing.T) {
	a := newTestAgent(t, nil)
	g, _ := a.SetGoal(GoalCustomerAcquisition, "50 new customers", "30 days", "", nil, 1)

	result, evaluation := a.Execute(context.Background(), g)

	assert.Equal(t, "customer_acquisition", result.Strategy)
	require.NotEmpty(t, result.CampaignID)
	require.NotNil(t, result.Deployment)
	assert.Contains(t, result.Deployment.ChannelsDeployed, "email")

	c := a.campaigns.Get(result.CampaignID)
	require.NotNil(t, c)
	assert.Equal(t, campaign.StatusActive, c.Status)
	assert.Equal(t, campaign.TypeAcquisition, c.Type)
	assert.Contains(t, c.Channels, "instagram")
	assert.Equal(t, result.Deployment.TotalReach, c.Performance["total_reach"])

	// Goal keeps running while the campaign is live
	assert.Equal(t, GoalInProgress, g.Status)
	assert.Contains(t, g.Results, "execution")
	assert.Contains(t, g.Results, "evaluation")
	assert.Equal(t, g.ID, evaluation.GoalID)
	assert.NotEmpty(t, g.Subtasks)
}

func TestExecuteRetention(t *testing.T) {
	a := newTestAgent(t, nil)
	g, _ := a.SetGoal(GoalCustomerRetention, "75% retention", "30 days", "", nil, 1)

	result, _ := a.Execute(context.Background(), g)

	assert.Equal(t, "customer_retention", result.Strategy)
	require.NotNil(t, result.Deployment)
	assert.Positive(t, result.Deployment.Email.Sent)

	c := a.campaigns.Get(result.CampaignID)
	require.NotNil(t, c)
	assert.Equal(t, campaign.TypeRetention, c.Type)
}

func TestExecuteDigitalPresenceSkipsEmail(t *testing.T) {
	a := newTestAgent(t, nil)
	g, _ := a.SetGoal(GoalDigitalPresence, "50k impressions", "30 days", "", nil, 1)

	result, _ := a.Execute(context.Background(), g)

	assert.Equal(t, "digital_presence", result.Strategy)
	require.NotNil(t, result.Deployment)
	assert.Equal(t, 0, result.Deployment.Email.Sent)
	assert.Equal(t, 3, result.Deployment.SocialMedia.PostsCreated)
}

func TestExecuteAnalyticsComputesInsights(t *testing.T) {
	a := newTestAgent(t, nil)
	g, _ := a.SetGoal(GoalAnalyticsInsights, "customer insights", "1 week", "", nil, 1)

	result, _ := a.Execute(context.Background(), g)

	assert.Equal(t, "analytics_insights", result.Strategy)
	assert.Nil(t, result.Deployment)

	insights, ok := result.Details["insights_generated"].([]string)
	require.True(t, ok)
	assert.NotEmpty(t, insights)

	recs, ok := result.Details["recommendations"].([]string)
	require.True(t, ok)
	assert.NotEmpty(t, recs)
}

func TestExecutePreparedPlanStrategies(t *testing.T) {
	tests := []struct {
		goalType GoalType
		strategy string
	}{
		{GoalInstoreMarketing, "instore_marketing"},
		{GoalSeasonalCampaign, "seasonal_campaign"},
		{GoalCommunityEngagement, "community_engagement"},
	}

	for _, tt := range tests {
		t.Run(string(tt.goalType), func(t *testing.T) {
			a := newTestAgent(t, nil)
			g, _ := a.SetGoal(tt.goalType, "target", "2 weeks", "", nil, 1)

			result, _ := a.Execute(context.Background(), g)
			assert.Equal(t, tt.strategy, result.Strategy)
			assert.Empty(t, result.CampaignID)
			assert.NotEmpty(t, result.Message)
		})
	}
}

func TestEvaluateUsesGeneratedText(t *testing.T) {
	gen := &fakeGenerator{text: "**Success Score:** 88/100\n\n**Key Achievements:**\n- Strong performance"}
	a := newTestAgent(t, gen)
	g, _ := a.SetGoal(GoalCustomerAcquisition, "growth", "1 month", "", nil, 1)

	ev := a.Evaluate(context.Background(), g, ExecutionResult{Strategy: "customer_acquisition"})
	assert.Contains(t, ev.Text, "88/100")
}

func TestEvaluateFallbackIncludesRealNumbers(t *testing.T) {
	a := newTestAgent(t, nil)
	g, _ := a.SetGoal(GoalCustomerAcquisition, "growth", "1 month", "", nil, 1)

	result, ev := a.Execute(context.Background(), g)

	assert.Contains(t, ev.Text, "75/100")
	if result.Deployment.Email.Sent > 0 {
		assert.Contains(t, ev.Text, "Emails Sent")
	}
}

func TestReport(t *testing.T) {
	a := newTestAgent(t, nil)
	g, _ := a.SetGoal(GoalDigitalPresence, "reach", "2 weeks", "", nil, 1)
	a.Execute(context.Background(), g)

	report := a.Report()
	assert.Equal(t, "Bright Threads Boutique", report.ClientName)
	assert.Equal(t, 1, report.TotalGoals)
	assert.Equal(t, 1, report.ActiveGoals)
	assert.Equal(t, 150, report.CustomerStats.TotalCustomers)
	assert.Len(t, report.Campaigns, 1)
}
