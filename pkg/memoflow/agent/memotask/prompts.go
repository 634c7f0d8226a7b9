package memotask

import (
	"github.com/skawahara/memoflow/pkg/memoflow/prompt"
)

var classifyPrompt = prompt.Template{
	System: "You triage memos for a task manager. Current time: ${current_datetime}. " +
		"Judge what the memo needs, strictly from its text.",
	User: "${memo}",
}

var quickTaskPrompt = prompt.Template{
	System: "Draft a single small task from the memo. It should be finishable in " +
		"a few minutes. Current time: ${current_datetime}.",
	User: "${memo}",
}

var delegationPrompt = prompt.Template{
	System: "Draft a delegation task from the memo: what to hand off and to whom, " +
		"if named. Current time: ${current_datetime}.",
	User: "${memo}",
}

var scheduledTaskPrompt = prompt.Template{
	System: "Draft a deadline task from the memo. Resolve relative dates " +
		"(tomorrow, Monday, next week) against the current time and set due_date. " +
		"Current time: ${current_datetime}.",
	User: "${memo}",
}

var genericTaskPrompt = prompt.Template{
	System: "Draft a single actionable task from the memo. " +
		"Current time: ${current_datetime}.",
	User: "${memo}",
}

var projectPlanPrompt = prompt.Template{
	System: "The memo describes work too large for one task. Break it into a short " +
		"ordered plan of concrete tasks. Current time: ${current_datetime}.",
	User: "${memo}",
}
