package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumenretail/marketing-agent/internal/agent"
)

// AgentReport returns the full agent status report.
func (h *Handlers) AgentReport(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.agent.Report())
}

type setGoalRequest struct {
	GoalType    string                 `json:"goal_type"`
	Target      string                 `json:"target"`
	Timeframe   string                 `json:"timeframe"`
	Description string                 `json:"description"`
	Metrics     map[string]interface{} `json:"metrics"`
	Priority    int                    `json:"priority"`
}

// SetGoal registers a new marketing goal.
func (h *Handlers) SetGoal(w http.ResponseWriter, r *http.Request) {
	var req setGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Target == "" || req.Timeframe == "" {
		respondError(w, http.StatusBadRequest, "target and timeframe are required")
		return
	}
	if req.Priority == 0 {
		req.Priority = 1
	}

	goal, err := h.agent.SetGoal(agent.GoalType(req.GoalType), req.Target, req.Timeframe, req.Description, req.Metrics, req.Priority)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, goal)
}

// ListGoals returns all goals.
func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"goals": h.agent.Goals(),
	})
}

// GetGoal returns one goal by ID.
func (h *Handlers) GetGoal(w http.ResponseWriter, r *http.Request) {
	goal := h.agent.Goal(chi.URLParam(r, "goalID"))
	if goal == nil {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// PlanGoal drafts an execution plan for a goal.
func (h *Handlers) PlanGoal(w http.ResponseWriter, r *http.Request) {
	goal := h.agent.Goal(chi.URLParam(r, "goalID"))
	if goal == nil {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}

	plan := h.agent.Plan(r.Context(), goal)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"goal_id":   goal.ID,
		"subtasks":  plan.Subtasks,
		"fell_back": plan.FellBack,
	})
}

// EvaluateGoal re-runs the evaluation for an already-executed goal.
func (h *Handlers) EvaluateGoal(w http.ResponseWriter, r *http.Request) {
	goal := h.agent.Goal(chi.URLParam(r, "goalID"))
	if goal == nil {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}
	result, ok := goal.Results["execution"].(agent.ExecutionResult)
	if !ok {
		respondError(w, http.StatusConflict, "goal has not been executed")
		return
	}

	evaluation := h.agent.Evaluate(r.Context(), goal, result)
	respondJSON(w, http.StatusOK, evaluation)
}

// ExecuteGoal runs a goal's strategy and returns execution plus
// evaluation.
func (h *Handlers) ExecuteGoal(w http.ResponseWriter, r *http.Request) {
	goal := h.agent.Goal(chi.URLParam(r, "goalID"))
	if goal == nil {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}

	execution, evaluation := h.agent.Execute(r.Context(), goal)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"goal_id":    goal.ID,
		"execution":  execution,
		"evaluation": evaluation,
	})
}
