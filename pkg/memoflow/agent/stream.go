package agent

import (
	"context"
)

// Event is one item of a streamed run. Node events carry the node ID
// and the state after that node; the final event carries the outcome
// and Final set to true.
type Event[S any] struct {
	NodeID  string
	State   S
	Outcome Outcome
	Final   bool
}

// Stream runs the agent like Invoke but emits an Event after every
// node, then a final Event with the outcome. The channel is closed
// after the final event.
//
// The run executes in its own goroutine. Consumers that stop reading
// must cancel ctx; events are dropped once ctx is done, so the run
// never blocks on an abandoned channel.
func (a *Agent[S]) Stream(ctx context.Context, in S, opts ...InvokeOption) <-chan Event[S] {
	ch := make(chan Event[S], 8)

	emit := func(ev Event[S]) {
		select {
		case ch <- ev:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(ch)

		outcome := a.invoke(ctx, in, func(nodeID string, state S) {
			emit(Event[S]{NodeID: nodeID, State: state})
		}, opts...)

		emit(Event[S]{Outcome: outcome, Final: true})
	}()

	return ch
}
