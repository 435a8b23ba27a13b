package logging

import (
	"time"
)

// TimingContext holds timing information for manual Start/End tracking
type TimingContext struct {
	name      string
	startTime time.Time
}

// Time executes the given function and logs its execution time.
//
// Example:
//
//	logging.Time("load module definitions", func() {
//	    defs = loadDefinitions(dir)
//	})
func Time(name string, fn func()) {
	Get().Time(name, fn)
}

// TimeWithResult executes the given function and logs its execution time,
// returning the function's result.
func TimeWithResult[T any](name string, fn func() T) T {
	if !IsEnabled() {
		return fn()
	}

	start := time.Now()
	result := fn()
	logDuration(Get(), name, time.Since(start))

	return result
}

// Start begins a timing measurement for manual control.
// Must be paired with End() to log the duration.
func Start(name string) TimingContext {
	return TimingContext{
		name:      name,
		startTime: time.Now(),
	}
}

// Elapsed returns the time since Start
func (c TimingContext) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// End completes a timing measurement started with Start() and logs the duration.
func End(ctx TimingContext) {
	if !IsEnabled() {
		return
	}
	logDuration(Get(), ctx.name, ctx.Elapsed())
}

// EndWithCount completes a timing measurement and logs the duration with an item count.
//
// Example:
//
//	ctx := logging.Start("apply modules")
//	results := registry.ApplyAll(ctx, scheme, cfg)
//	logging.EndWithCount(ctx, len(results))
func EndWithCount(ctx TimingContext, count int) {
	if !IsEnabled() {
		return
	}

	duration := ctx.Elapsed()
	Get().Debug(ctx.name,
		"duration", duration.String(),
		"ms", duration.Milliseconds(),
		"count", count,
	)
}

// Time is the Logger-bound variant of the package-level Time
func (l *Logger) Time(name string, fn func()) {
	if !l.IsEnabled() {
		fn()
		return
	}

	start := time.Now()
	fn()
	logDuration(l, name, time.Since(start))
}

func logDuration(l *Logger, name string, d time.Duration) {
	l.Debug(name,
		"duration", d.String(),
		"ms", d.Milliseconds(),
	)
}
