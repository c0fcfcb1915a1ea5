// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"fmt"
	"runtime/trace"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Phase names a step of a run.
type Phase string

// Phases of a run.
const (
	PhaseRead  Phase = "read"
	PhaseScan  Phase = "scan"
	PhaseMerge Phase = "merge"
	PhaseWrite Phase = "write"
)

// Span represents a run phase in flight.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration

	Phase Phase
	Lang  string
	Path  string
	Items int
	Bytes int
	Error error
}

// Begin starts timing the span and opens a runtime/trace task for it.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "i18ntidy."+string(span.Phase))

	return ctx
}

// End stops the span. Calling End more than once has no effect.
func (span *Span) End() {
	if span.task != nil {
		span.duration = time.Since(span.start)
		span.task.End()

		span.task = nil
	}
}

// Duration returns the time between Begin and End.
func (span Span) Duration() time.Duration {
	return span.duration
}

// Log writes the span at debug level.
func (span Span) Log() {
	event := log.Debug()

	event.Str("sys", "phase")
	event.Str("phase", string(span.Phase))
	event.Int("items", span.Items)
	event.Str("len", humanizeSize(span.Bytes))
	event.Dur("dur", span.duration)

	if span.Lang != "" {
		event.Str("lang", span.Lang)
	}

	if span.Path != "" {
		event.Str("path", span.Path)
	}

	if span.Error != nil {
		event.Err(span.Error)
	}

	event.Send()
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
	bytesInGB = bytesInMB * bytesInKB
)

func humanizeSize(x int) string {
	if x < bytesInKB {
		return strconv.Itoa(x)
	}

	if x < bytesInMB {
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	}

	if x < bytesInGB {
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	}

	return fmt.Sprintf("%.2fG", float64(x)/bytesInGB)
}
