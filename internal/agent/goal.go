// Package agent coordinates marketing goals: planning with a text
// provider, executing per goal type through the campaign manager and
// deployment service, and evaluating outcomes.
package agent

import (
	"fmt"
	"time"
)

// GoalType classifies a marketing goal.
type GoalType string

const (
	GoalCustomerAcquisition GoalType = "customer_acquisition"
	GoalCustomerRetention   GoalType = "customer_retention"
	GoalInstoreMarketing    GoalType = "instore_marketing"
	GoalDigitalPresence     GoalType = "digital_presence"
	GoalSeasonalCampaign    GoalType = "seasonal_campaign"
	GoalAnalyticsInsights   GoalType = "analytics_insights"
	GoalCommunityEngagement GoalType = "community_engagement"
)

// GoalTypes lists every goal type.
func GoalTypes() []GoalType {
	return []GoalType{
		GoalCustomerAcquisition,
		GoalCustomerRetention,
		GoalInstoreMarketing,
		GoalDigitalPresence,
		GoalSeasonalCampaign,
		GoalAnalyticsInsights,
		GoalCommunityEngagement,
	}
}

// ParseGoalType converts a string into a GoalType.
func ParseGoalType(s string) (GoalType, error) {
	t := GoalType(s)
	for _, known := range GoalTypes() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("agent: unknown goal type %q", s)
}

// GoalStatus is a goal's lifecycle state.
type GoalStatus string

const (
	GoalPending    GoalStatus = "pending"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
	GoalFailed     GoalStatus = "failed"
	GoalCancelled  GoalStatus = "cancelled"
)

// Subtask is one step of a goal's execution plan.
type Subtask struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// Goal is a marketing objective tracked by the agent.
type Goal struct {
	ID          string                 `json:"id"`
	Type        GoalType               `json:"goal_type"`
	Description string                 `json:"description"`
	Target      string                 `json:"target"`
	Timeframe   string                 `json:"timeframe"`
	Metrics     map[string]interface{} `json:"metrics"`
	Priority    int                    `json:"priority"`
	Status      GoalStatus             `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	StartedAt   *time.Time             `json:"started_at"`
	CompletedAt *time.Time             `json:"completed_at"`
	Results     map[string]interface{} `json:"results"`
	Subtasks    []Subtask              `json:"subtasks"`
}

// UpdateStatus moves the goal to any state. Started and completed
// timestamps are stamped on the first transition into each.
func (g *Goal) UpdateStatus(status GoalStatus) {
	g.Status = status
	now := time.Now()
	switch {
	case status == GoalInProgress && g.StartedAt == nil:
		g.StartedAt = &now
	case status == GoalCompleted:
		g.CompletedAt = &now
	}
}

// AddResult records a named execution result on the goal.
func (g *Goal) AddResult(key string, value interface{}) {
	if g.Results == nil {
		g.Results = make(map[string]interface{})
	}
	g.Results[key] = value
}

// AddSubtask appends a plan step.
func (g *Goal) AddSubtask(task Subtask) {
	g.Subtasks = append(g.Subtasks, task)
}

func newGoalID() string {
	return fmt.Sprintf("goal_%s", time.Now().Format("20060102_150405.000000"))
}
