package memotask

import (
	"time"

	"github.com/skawahara/memoflow/pkg/memoflow/state"
)

// Suggested status values, one per drafting branch.
const (
	StatusProject    = "project"
	StatusNextAction = "next_action"
	StatusWaitingFor = "waiting_for"
	StatusCalendar   = "calendar"
	StatusInbox      = "inbox"
	StatusReference  = "reference"
)

// Classification is the model's judgment of what a memo needs.
type Classification struct {
	RequiresAction       bool `json:"requires_action"`
	IsQuickAction        bool `json:"is_quick_action"`
	ShouldDelegate       bool `json:"should_delegate"`
	RequiresSpecificDate bool `json:"requires_specific_date"`
	RequiresProject      bool `json:"requires_project"`
}

// TaskDraft is one proposed task extracted from a memo.
type TaskDraft struct {
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Priority    string               `json:"priority,omitempty"`
	DueDate     state.Opt[time.Time] `json:"due_date"`
	Route       state.Opt[string]    `json:"route"`
}

// State is the working memory of one memo-to-task run.
//
// Memo, ExistingTags, and CurrentDatetime are the required inputs;
// the rest is populated progressively as the graph advances.
type State struct {
	Memo            string          `json:"memo"`
	ExistingTags    []string        `json:"existing_tags,omitempty"`
	CurrentDatetime time.Time       `json:"current_datetime"`
	Classification  *Classification `json:"classification,omitempty"`
	Drafts          []TaskDraft     `json:"task_drafts,omitempty"`
	SuggestedStatus string          `json:"suggested_status,omitempty"`
	NoAction        bool            `json:"no_action,omitempty"`
}

// Has reports presence of a named state field. Backs the graph's
// required-field checks.
func (s State) Has(field string) bool {
	switch field {
	case "memo":
		return s.Memo != ""
	case "current_datetime":
		return !s.CurrentDatetime.IsZero()
	case "classification":
		return s.Classification != nil
	case "task_drafts":
		return s.Drafts != nil
	default:
		return false
	}
}
