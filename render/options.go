// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "runtime"

// DefaultBandHeight is the number of rows shaded per work item.
const DefaultBandHeight = 32

// Option configures a Renderer during creation.
//
// Example:
//
//	r := render.NewRenderer(render.WithWorkers(4), render.WithBandHeight(16))
type Option func(*options)

type options struct {
	workers    int
	bandHeight int
}

func defaultOptions() options {
	return options{
		workers:    runtime.GOMAXPROCS(0),
		bandHeight: DefaultBandHeight,
	}
}

// WithWorkers limits the number of row bands shaded concurrently.
// Values below 1 select a single worker.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = max(n, 1)
	}
}

// WithBandHeight sets the number of rows per band.
// Values below 1 select one row per band.
func WithBandHeight(rows int) Option {
	return func(o *options) {
		o.bandHeight = max(rows, 1)
	}
}
