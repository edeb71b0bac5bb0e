/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"fmt"
	"runtime"
)

// Options configures compiling and decompiling gvar tables. A nil *Options means
// DefaultOptions.
type Options struct {
	// Workers is the number of goroutines (de)compiling glyphs. Zero or less uses
	// runtime.NumCPU.
	Workers int

	// DisableSharedPoints makes every tuple variation carry its own point numbers.
	DisableSharedPoints bool

	// AlwaysEmbedIntermediate embeds the start and end tuples even when they equal the
	// region implied by the peak.
	AlwaysEmbedIntermediate bool

	// MaxSharedTuples limits the shared tuple pool. Zero or less means MaxSharedTuples.
	MaxSharedTuples int
}

// DefaultOptions returns the default options.
func DefaultOptions() *Options {
	return &Options{
		Workers:         runtime.NumCPU(),
		MaxSharedTuples: MaxSharedTuples,
	}
}

// withDefaults returns a copy of `opts` with unset fields filled in.
func (opts *Options) withDefaults() (Options, error) {
	if opts == nil {
		return *DefaultOptions(), nil
	}
	o := *opts
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.MaxSharedTuples <= 0 {
		o.MaxSharedTuples = MaxSharedTuples
	}
	if o.MaxSharedTuples > MaxSharedTuples {
		return o, fmt.Errorf("%w: shared tuple limit %d exceeds %d", ErrRange, o.MaxSharedTuples, MaxSharedTuples)
	}
	return o, nil
}
