package agent

import (
	"fmt"
	"regexp"
	"strings"
)

// PlanResult is a parsed execution plan. FellBack reports that the
// provider output had no usable numbered list and the default plan was
// substituted.
type PlanResult struct {
	Subtasks []Subtask
	FellBack bool
}

var planItemRe = regexp.MustCompile(`^(\d+)[.):]\s*(.+)`)

var taskPrefixes = []string{"Task:", "Subtask:", "Step:"}

// parsePlan extracts numbered tasks from generated plan text. Lines
// under a numbered item extend its description. An empty parse yields
// the default plan.
func parsePlan(planText string) PlanResult {
	var subtasks []Subtask
	var current *Subtask

	flush := func() {
		if current != nil && current.Name != "" {
			current.ID = fmt.Sprintf("task_%d", len(subtasks)+1)
			subtasks = append(subtasks, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(planText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := planItemRe.FindStringSubmatch(line); m != nil {
			flush()
			name := strings.TrimSpace(m[2])
			for _, prefix := range taskPrefixes {
				if strings.HasPrefix(name, prefix) {
					name = strings.TrimSpace(strings.TrimPrefix(name, prefix))
				}
			}
			current = &Subtask{Name: name, Status: "pending", Description: name}
			continue
		}

		if current != nil && !strings.HasPrefix(line, "#") {
			current.Description += " " + line
		}
	}
	flush()

	if len(subtasks) == 0 {
		return PlanResult{Subtasks: defaultPlan(), FellBack: true}
	}
	return PlanResult{Subtasks: subtasks}
}

// defaultPlan is the canned five-step plan used when generation is
// unavailable or unparseable.
func defaultPlan() []Subtask {
	return []Subtask{
		{ID: "task_1", Name: "Plan campaign strategy", Status: "pending", Description: "Develop comprehensive campaign strategy"},
		{ID: "task_2", Name: "Create marketing content", Status: "pending", Description: "Design promotional materials and messaging"},
		{ID: "task_3", Name: "Deploy across channels", Status: "pending", Description: "Launch campaign on email and social media"},
		{ID: "task_4", Name: "Monitor performance", Status: "pending", Description: "Track metrics and engagement"},
		{ID: "task_5", Name: "Optimize and adjust", Status: "pending", Description: "Make improvements based on results"},
	}
}
