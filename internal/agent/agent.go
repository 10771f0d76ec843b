package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lumenretail/marketing-agent/internal/campaign"
	"github.com/lumenretail/marketing-agent/internal/config"
	"github.com/lumenretail/marketing-agent/internal/content"
	"github.com/lumenretail/marketing-agent/internal/customers"
	"github.com/lumenretail/marketing-agent/internal/deploy"
	"github.com/lumenretail/marketing-agent/internal/pkg/logger"
)

// TextGenerator produces plan and evaluation text. The provider chain
// in internal/textgen satisfies this.
type TextGenerator interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Agent orchestrates marketing goals for one store.
type Agent struct {
	mu    sync.RWMutex
	goals []*Goal

	store     config.StoreProfile
	text      TextGenerator
	campaigns *campaign.Manager
	deploys   *deploy.Service
	content   *content.Service
}

// New creates an agent wired to its campaign manager, deployment
// service and content service. gen may be nil; planning and evaluation
// then use their canned fallbacks.
func New(store config.StoreProfile, gen TextGenerator, campaigns *campaign.Manager, deploys *deploy.Service, contentSvc *content.Service) *Agent {
	if store.Name == "" {
		store.Name = "Store"
	}
	if store.Type == "" {
		store.Type = "retail"
	}
	return &Agent{
		store:     store,
		text:      gen,
		campaigns: campaigns,
		deploys:   deploys,
		content:   contentSvc,
	}
}

// SetGoal registers a new marketing goal. An empty description is
// derived from the target and timeframe.
func (a *Agent) SetGoal(goalType GoalType, target, timeframe, description string, metrics map[string]interface{}, priority int) (*Goal, error) {
	if _, err := ParseGoalType(string(goalType)); err != nil {
		return nil, err
	}
	if description == "" {
		description = fmt.Sprintf("Achieve %s within %s for %s", target, timeframe, a.store.Name)
	}
	if metrics == nil {
		metrics = make(map[string]interface{})
	}

	goal := &Goal{
		ID:          newGoalID(),
		Type:        goalType,
		Description: description,
		Target:      target,
		Timeframe:   timeframe,
		Metrics:     metrics,
		Priority:    priority,
		Status:      GoalPending,
		CreatedAt:   time.Now(),
		Results:     make(map[string]interface{}),
	}

	a.mu.Lock()
	a.goals = append(a.goals, goal)
	a.mu.Unlock()

	logger.Info("agent: goal set",
		"goal_id", goal.ID,
		"goal_type", string(goalType),
		"target", target)
	return goal, nil
}

// Goal returns a goal by ID, or nil.
func (a *Agent) Goal(id string) *Goal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, g := range a.goals {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// Goals returns every goal in creation order.
func (a *Agent) Goals() []*Goal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]*Goal(nil), a.goals...)
}

// ActiveGoals returns pending and in-progress goals.
func (a *Agent) ActiveGoals() []*Goal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var out []*Goal
	for _, g := range a.goals {
		if g.Status == GoalPending || g.Status == GoalInProgress {
			out = append(out, g)
		}
	}
	return out
}

// CompletedGoals returns goals marked completed.
func (a *Agent) CompletedGoals() []*Goal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var out []*Goal
	for _, g := range a.goals {
		if g.Status == GoalCompleted {
			out = append(out, g)
		}
	}
	return out
}

const plannerSystem = `You are a professional retail business marketing consultant creating legitimate business strategies.

Business Context:
- Client Business: %s
- Industry: %s
- Online Presence: %t
- Location: %s

Your role is to develop ethical, professional marketing strategies focusing on:
- Building customer relationships through quality service
- Digital marketing and social media best practices
- Data-driven insights and analytics
- Professional promotional campaigns
- Community engagement and partnerships

Always provide business-appropriate, ethical marketing recommendations.`

// Plan drafts an execution plan for a goal and attaches the subtasks.
// The parse falls back to a default five-step plan when generation is
// unavailable or returns no numbered list.
func (a *Agent) Plan(ctx context.Context, goal *Goal) PlanResult {
	result := PlanResult{Subtasks: defaultPlan(), FellBack: true}

	if a.text != nil {
		system := fmt.Sprintf(plannerSystem, a.store.Name, a.store.Type, a.store.HasOnlineStore, a.store.Location)
		prompt := fmt.Sprintf(`Business Marketing Goal:
Type: %s
Objective: %s
Timeline: %s
Details: %s

Please create a professional business execution plan with 5-8 actionable steps.
For each step, include:
1. Step title
2. Clear description
3. Expected business outcome
4. Resources needed
5. Timeline

Provide your response as a numbered list of business tasks.`,
			string(goal.Type), goal.Target, goal.Timeframe, goal.Description)

		text, err := a.text.Complete(ctx, system, prompt)
		if err != nil {
			logger.Warn("agent: planning generation failed, using default plan",
				"goal_id", goal.ID,
				"error", err.Error())
		} else {
			result = parsePlan(text)
		}
	}

	a.mu.Lock()
	for _, task := range result.Subtasks {
		goal.AddSubtask(task)
	}
	a.mu.Unlock()

	return result
}

// ExecutionResult is the outcome of running one goal.
type ExecutionResult struct {
	Strategy       string                 `json:"strategy"`
	CampaignID     string                 `json:"campaign_id,omitempty"`
	CampaignName   string                 `json:"campaign_name,omitempty"`
	CampaignStatus string                 `json:"status,omitempty"`
	Deployment     *deploy.Result         `json:"deployment,omitempty"`
	Details        map[string]interface{} `json:"details,omitempty"`
	Message        string                 `json:"message"`
}

// Execute runs a goal: plans it if needed, executes the strategy for
// its type, and evaluates the outcome. The goal stays in progress while
// its campaign runs; it is never auto-failed.
func (a *Agent) Execute(ctx context.Context, goal *Goal) (ExecutionResult, Evaluation) {
	goal.UpdateStatus(GoalInProgress)

	if len(goal.Subtasks) == 0 {
		a.Plan(ctx, goal)
	}

	var result ExecutionResult
	switch goal.Type {
	case GoalCustomerAcquisition:
		result = a.executeAcquisition(ctx, goal)
	case GoalCustomerRetention:
		result = a.executeRetention(ctx, goal)
	case GoalDigitalPresence:
		result = a.executeDigitalPresence(ctx, goal)
	case GoalInstoreMarketing:
		result = a.executeInstore(goal)
	case GoalSeasonalCampaign:
		result = a.executeSeasonal(goal)
	case GoalAnalyticsInsights:
		result = a.executeAnalytics(goal)
	case GoalCommunityEngagement:
		result = a.executeCommunity(goal)
	default:
		result = ExecutionResult{
			Strategy: string(goal.Type),
			Message:  fmt.Sprintf("no execution strategy for %s", goal.Type),
		}
	}

	goal.AddResult("execution", result)
	evaluation := a.Evaluate(ctx, goal, result)
	goal.AddResult("evaluation", evaluation)

	return result, evaluation
}

func (a *Agent) executeAcquisition(ctx context.Context, goal *Goal) ExecutionResult {
	const durationDays = 30
	const budget = 5000.0

	campaignData := a.content.CreatePromotionCampaign(ctx, "new customers in local area", "acquisition", budget, durationDays)

	now := time.Now()
	c := a.campaigns.Create(
		fmt.Sprintf("%s - Customer Acquisition", a.store.Name),
		campaign.TypeAcquisition,
		goal.Description,
		now, now.AddDate(0, 0, durationDays),
		budget,
		map[string]interface{}{
			"new_customers":        100,
			"conversion_rate":      5.0,
			"cost_per_acquisition": 50.0,
		},
	)

	for _, ch := range []string{"email", "facebook", "instagram", "twitter"} {
		c.AddChannel(ch)
	}
	c.UpdateStatus(campaign.StatusPlanned)
	a.campaigns.Launch(c.ID)

	cc := campaign.Context{
		CampaignType:   "Customer Acquisition",
		StoreName:      a.store.Name,
		StoreType:      a.store.Type,
		Location:       a.store.Location,
		Goal:           goal.Description,
		TargetAudience: "new customers in local area",
		Offers:         "exclusive offers and promotions",
	}

	deployment := a.deploys.DeployAcquisition(ctx, c.ID,
		deploy.Content{CampaignType: campaignData.CampaignType, Plan: campaignData.Plan},
		customers.SegmentNew, &cc)

	c.UpdatePerformance(map[string]interface{}{
		"emails_sent":     deployment.Email.Sent,
		"social_posts":    deployment.SocialMedia.PostsCreated,
		"total_reach":     deployment.TotalReach,
		"deployment_date": deployment.DeployedAt,
	})

	return ExecutionResult{
		Strategy:       "customer_acquisition",
		CampaignID:     c.ID,
		CampaignName:   c.Name,
		CampaignStatus: string(c.Status),
		Deployment:     &deployment,
		Details: map[string]interface{}{
			"start_date":    c.StartDate,
			"end_date":      c.EndDate,
			"duration_days": c.DurationDays(),
			"budget":        c.Budget,
		},
		Message: "Campaign deployed and active across email and social media",
	}
}

func (a *Agent) executeRetention(ctx context.Context, goal *Goal) ExecutionResult {
	const durationDays = 30

	now := time.Now()
	c := a.campaigns.Create(
		fmt.Sprintf("%s - Customer Retention", a.store.Name),
		campaign.TypeRetention,
		goal.Description,
		now, now.AddDate(0, 0, durationDays),
		3000,
		map[string]interface{}{"retention_rate": 75.0, "repeat_purchases": 50},
	)

	c.AddChannel("email")
	c.AddChannel("facebook")
	c.UpdateStatus(campaign.StatusPlanned)
	a.campaigns.Launch(c.ID)

	cc := campaign.Context{
		CampaignType: "Customer Retention",
		StoreName:    a.store.Name,
		StoreType:    a.store.Type,
		Location:     a.store.Location,
		Goal:         goal.Description,
	}

	deployment := a.deploys.DeployRetention(ctx, c.ID,
		deploy.Content{CampaignType: "retention", Plan: "Loyalty rewards and exclusive offers"}, &cc)

	c.UpdatePerformance(map[string]interface{}{
		"emails_sent": deployment.Email.Sent,
		"total_reach": deployment.TotalReach,
	})

	return ExecutionResult{
		Strategy:       "customer_retention",
		CampaignID:     c.ID,
		CampaignStatus: string(c.Status),
		Deployment:     &deployment,
		Message:        "Retention campaign deployed, loyalty emails sent and social posts live",
	}
}

func (a *Agent) executeDigitalPresence(ctx context.Context, goal *Goal) ExecutionResult {
	const durationDays = 30

	now := time.Now()
	c := a.campaigns.Create(
		fmt.Sprintf("%s - Digital Presence", a.store.Name),
		campaign.TypeBrandAwareness,
		goal.Description,
		now, now.AddDate(0, 0, durationDays),
		4000,
		map[string]interface{}{"impressions": 50000, "engagement_rate": 5.0},
	)

	for _, ch := range []string{"facebook", "instagram", "twitter"} {
		c.AddChannel(ch)
	}
	c.UpdateStatus(campaign.StatusPlanned)
	a.campaigns.Launch(c.ID)

	cc := campaign.Context{
		CampaignType: "Digital Presence",
		StoreName:    a.store.Name,
		StoreType:    a.store.Type,
		Location:     a.store.Location,
		Goal:         goal.Description,
	}

	deployment := a.deploys.DeployDigital(ctx, c.ID,
		deploy.Content{CampaignType: "brand awareness", Plan: "Social media content and engagement"}, 1, &cc)

	c.UpdatePerformance(map[string]interface{}{
		"social_posts": deployment.SocialMedia.PostsCreated,
		"total_reach":  deployment.TotalReach,
	})

	return ExecutionResult{
		Strategy:       "digital_presence",
		CampaignID:     c.ID,
		CampaignStatus: string(c.Status),
		Deployment:     &deployment,
		Message:        "Digital presence campaign active, posts live on all platforms",
	}
}

func (a *Agent) executeInstore(goal *Goal) ExecutionResult {
	return ExecutionResult{
		Strategy: "instore_marketing",
		Details: map[string]interface{}{
			"visual_merchandising": "planned",
			"pos_displays":         "designed",
			"events":               "scheduled",
		},
		Message: "In-store marketing materials and events prepared",
	}
}

func (a *Agent) executeSeasonal(goal *Goal) ExecutionResult {
	return ExecutionResult{
		Strategy: "seasonal_campaign",
		Details: map[string]interface{}{
			"campaign_theme":      "planned",
			"promotional_offers":  "created",
			"marketing_materials": "designed",
		},
		Message: "Seasonal campaign fully planned and ready",
	}
}

// executeAnalytics computes real customer population insights instead
// of a canned placeholder.
func (a *Agent) executeAnalytics(goal *Goal) ExecutionResult {
	stats := a.deploys.CustomerStats()

	var insights []string
	var recommendations []string

	if stats.TotalCustomers > 0 {
		optInRate := float64(stats.EmailOptIn) / float64(stats.TotalCustomers) * 100
		insights = append(insights,
			fmt.Sprintf("%d customers on file with $%.2f total revenue", stats.TotalCustomers, stats.TotalRevenue),
			fmt.Sprintf("average spend per customer is $%.2f", stats.AverageSpent),
			fmt.Sprintf("%.1f%% of customers accept email marketing", optInRate),
		)

		largest := customers.SegmentNew
		for seg, n := range stats.BySegment {
			if n > stats.BySegment[largest] {
				largest = seg
			}
		}
		insights = append(insights, fmt.Sprintf("largest segment is %q with %d customers", largest, stats.BySegment[largest]))

		if stats.BySegment[customers.SegmentNew] > stats.BySegment[customers.SegmentFrequent] {
			recommendations = append(recommendations, "run a first-purchase incentive to convert new customers into repeat buyers")
		}
		if stats.BySegment[customers.SegmentVIP] > 0 {
			recommendations = append(recommendations, "launch a VIP experience program for top spenders")
		}
		recommendations = append(recommendations, "target win-back campaigns at occasional customers with lapsed purchase dates")
	}

	return ExecutionResult{
		Strategy: "analytics_insights",
		Details: map[string]interface{}{
			"data_analyzed":      true,
			"customer_stats":     stats,
			"insights_generated": insights,
			"recommendations":    recommendations,
		},
		Message: "Customer insights and analytics completed",
	}
}

func (a *Agent) executeCommunity(goal *Goal) ExecutionResult {
	return ExecutionResult{
		Strategy: "community_engagement",
		Details: map[string]interface{}{
			"partnerships": "identified",
			"events":       "planned",
			"influencers":  "contacted",
		},
		Message: "Community engagement initiatives launched",
	}
}

// StatusReport summarizes all goals, campaigns and the customer base.
type StatusReport struct {
	ClientName     string              `json:"client_name"`
	StoreType      string              `json:"store_type"`
	TotalGoals     int                 `json:"total_goals"`
	ActiveGoals    int                 `json:"active_goals"`
	CompletedGoals int                 `json:"completed_goals"`
	Goals          []*Goal             `json:"goals"`
	CustomerStats  customers.Stats     `json:"customer_stats"`
	Campaigns      []*campaign.Campaign `json:"all_campaigns"`
}

// Report builds a full status report.
func (a *Agent) Report() StatusReport {
	goals := a.Goals()
	return StatusReport{
		ClientName:     a.store.Name,
		StoreType:      a.store.Type,
		TotalGoals:     len(goals),
		ActiveGoals:    len(a.ActiveGoals()),
		CompletedGoals: len(a.CompletedGoals()),
		Goals:          goals,
		CustomerStats:  a.deploys.CustomerStats(),
		Campaigns:      a.campaigns.All(),
	}
}
