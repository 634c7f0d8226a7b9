// Package agent wraps a compiled memoflow graph into a single-call
// façade with output validation, thread persistence, and streaming.
//
// An agent owns a graph, a model provider, and an output schema. Invoke
// runs the graph and returns an Outcome holding either a validated
// TypedOutput or an ErrorOutput; engine failures (missing fields, step
// limits, provider errors) surface as ErrorOutput, never as Go errors,
// so callers handle exactly one shape.
//
//	outcome := a.Invoke(ctx, in, agent.WithThread("thread-42"))
//	if outcome.Err != nil {
//	    // outcome.Err.Message, outcome.Err.Field
//	}
//	drafts, _ := outcome.Output.Get("task_drafts")
//
// With WithCheckpoints, runs on a thread fold the previous snapshot
// into the input and persist the final state afterwards, giving
// conversational agents memory across invocations.
//
// Concrete agents (chat, splitter, memo-to-task, weekly review,
// one-liner) live in the subpackages.
package agent
