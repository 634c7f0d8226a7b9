package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// InvokeFunc is the shape middleware wraps.
type InvokeFunc[S any] func(ctx context.Context, in S, opts ...InvokeOption) Outcome

// Middleware decorates an InvokeFunc.
type Middleware[S any] func(next InvokeFunc[S]) InvokeFunc[S]

// Chain applies middleware around fn, first listed outermost.
func Chain[S any](fn InvokeFunc[S], mws ...Middleware[S]) InvokeFunc[S] {
	for i := len(mws) - 1; i >= 0; i-- {
		fn = mws[i](fn)
	}
	return fn
}

// Timing logs the call duration and whether it produced an output or
// an error.
func Timing[S any](name string, logger *slog.Logger) Middleware[S] {
	return func(next InvokeFunc[S]) InvokeFunc[S] {
		return func(ctx context.Context, in S, opts ...InvokeOption) Outcome {
			start := time.Now()
			outcome := next(ctx, in, opts...)
			logger.Info("agent invoked",
				slog.String("agent", name),
				slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
				slog.Bool("success", outcome.Err == nil),
			)
			return outcome
		}
	}
}

// Spinner writes a progress indicator to w while the call runs.
// Meant for interactive CLI use; w is typically os.Stderr.
func Spinner[S any](w io.Writer) Middleware[S] {
	frames := []string{"|", "/", "-", "\\"}
	return func(next InvokeFunc[S]) InvokeFunc[S] {
		return func(ctx context.Context, in S, opts ...InvokeOption) Outcome {
			done := make(chan struct{})
			go func() {
				ticker := time.NewTicker(120 * time.Millisecond)
				defer ticker.Stop()
				i := 0
				for {
					select {
					case <-done:
						fmt.Fprint(w, "\r \r")
						return
					case <-ticker.C:
						fmt.Fprintf(w, "\r%s", frames[i%len(frames)])
						i++
					}
				}
			}()

			outcome := next(ctx, in, opts...)
			close(done)
			return outcome
		}
	}
}
