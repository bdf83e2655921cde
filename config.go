// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowrt

import "time"

// DefaultPushAttemptTimeout is the producer retry window used by
// OutputPort.Send when no WithPushAttemptTimeout option overrides it. The
// external SendMessage injector does not use it. A push that fails after this
// window re-checks should_run before retrying, so termination is observed
// within roughly this bound (spec.md §8 invariant 5).
const DefaultPushAttemptTimeout = 100 * time.Millisecond

// Wake event bits. Distinct, unexported, and accumulate on a wakeTarget's
// bitmask rather than queuing — a wakeTarget can only ever be "woken for
// reason X", not "woken for X twice".
const (
	evProcessStart uint64 = 1 << iota
	evProcessShutdown
	evMessageArrival
)

// componentConfig holds the options collected by ComponentOption.
type componentConfig struct {
	logger             *Logger
	pushAttemptTimeout time.Duration
}

func newComponentConfig(opts []ComponentOption) componentConfig {
	c := componentConfig{
		logger:             defaultLogger(),
		pushAttemptTimeout: DefaultPushAttemptTimeout,
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// ComponentOption configures a Component at construction time, in the
// functional-options style the teacher uses for its queue Builder.
type ComponentOption func(*componentConfig)

// WithComponentLogger overrides the structured logger a Component uses for
// lifecycle diagnostics (Initialize or Process returning an error).
func WithComponentLogger(l *Logger) ComponentOption {
	return func(c *componentConfig) { c.logger = l }
}

// WithPushAttemptTimeout overrides the retry window OutputPort.Send uses
// per attempt before re-checking should_run. Panics if d <= 0.
func WithPushAttemptTimeout(d time.Duration) ComponentOption {
	if d <= 0 {
		panic("flowrt: push attempt timeout must be positive")
	}
	return func(c *componentConfig) { c.pushAttemptTimeout = d }
}

// runtimeConfig holds the options collected by RuntimeOption.
type runtimeConfig struct {
	logger *Logger
}

func newRuntimeConfig(opts []RuntimeOption) runtimeConfig {
	c := runtimeConfig{logger: defaultLogger()}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// RuntimeOption configures a Runtime at construction time.
type RuntimeOption func(*runtimeConfig)

// WithRuntimeLogger overrides the structured logger a Runtime uses for
// registry diagnostics (AddEdge with an unresolved source or target name).
func WithRuntimeLogger(l *Logger) RuntimeOption {
	return func(c *runtimeConfig) { c.logger = l }
}
