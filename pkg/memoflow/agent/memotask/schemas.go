package memotask

import (
	"github.com/skawahara/memoflow/pkg/memoflow/schema"
)

// classificationSchema is the structured output the classify node
// requests from the provider.
var classificationSchema = &schema.Schema{
	Name: "memo_classification",
	Fields: []schema.Field{
		{Name: "requires_action", Type: schema.KindBool, Required: true,
			Description: "the memo asks for something to be done"},
		{Name: "is_quick_action", Type: schema.KindBool, Required: true,
			Description: "doable in a couple of minutes"},
		{Name: "should_delegate", Type: schema.KindBool, Required: true,
			Description: "someone else should do it"},
		{Name: "requires_specific_date", Type: schema.KindBool, Required: true,
			Description: "tied to a date or deadline"},
		{Name: "requires_project", Type: schema.KindBool, Required: true,
			Description: "needs to be broken into multiple tasks"},
	},
}

// draftSchema is the structured output each single-task draft node
// requests.
var draftSchema = &schema.Schema{
	Name: "task_draft",
	Fields: []schema.Field{
		{Name: "title", Type: schema.KindString, Required: true},
		{Name: "description", Type: schema.KindString},
		{Name: "priority", Type: schema.KindString,
			Description: "one of high, medium, low"},
		{Name: "due_date", Type: schema.KindTime,
			Description: "deadline when the memo implies one"},
	},
}

// projectPlanSchema is the structured output of plan_project: a short
// plan broken into ordered tasks.
var projectPlanSchema = &schema.Schema{
	Name: "project_plan",
	Fields: []schema.Field{
		{Name: "project_title", Type: schema.KindString, Required: true},
		{Name: "tasks", Type: schema.KindAny, Required: true,
			Description: "ordered list of {title, description} steps"},
	},
}

// OutputSchema is the agent's declared output contract.
var OutputSchema = &schema.Schema{
	Name: "memo_to_task_output",
	Fields: []schema.Field{
		{Name: "task_drafts", Type: schema.KindAny, Required: true},
		{Name: "suggested_status", Type: schema.KindString},
		{Name: "no_action", Type: schema.KindBool, Required: true},
	},
}
