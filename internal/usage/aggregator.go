// Package usage fuses shell history, OS usage metadata and file access
// times into one canonical usage estimate per installed item.
package usage

import (
	"context"
	"sync"
	"time"

	"github.com/blackwell-systems/macsweep/internal/history"
	"github.com/blackwell-systems/macsweep/internal/scanner"
	"github.com/blackwell-systems/macsweep/internal/signals"
)

// Aggregator applies the fixed signal-precedence pipeline to packages. It
// performs no writes and keeps no state between runs beyond a run-scoped
// cache of parsed history, so repeated calls over unchanged inputs return
// identical estimates. A single Aggregator is safe for concurrent use.
type Aggregator struct {
	spotlight   func(ctx context.Context, path string) (*time.Time, *int)
	atime       func(path string) *time.Time
	loadHistory func() []history.Entry

	historyOnce sync.Once
	entries     []history.Entry
}

// New returns an Aggregator wired to the real signal sources: the given
// collector and the given history logs.
func New(collector *signals.Collector, logs []history.Log) *Aggregator {
	return &Aggregator{
		spotlight:   collector.SpotlightUsage,
		atime:       collector.AccessTime,
		loadHistory: func() []history.Entry { return history.ParseAll(logs) },
	}
}

// signalStep applies one evidence source to an estimate. Steps run in a
// fixed order and may only raise the estimate, except the access-time step
// which fills a gap only.
type signalStep func(ctx context.Context, pkg *scanner.Package, est *Estimate)

// Aggregate computes the usage estimate for a single package by applying,
// in order: OS usage metadata (bundles only), shell history correlation
// (items with a known binary), and file access time (only when the first
// two left last-used unset).
func (a *Aggregator) Aggregate(ctx context.Context, pkg *scanner.Package) Estimate {
	var est Estimate

	steps := []signalStep{
		a.applyOSMetadata,
		a.applyShellHistory,
		a.applyAccessTime,
	}
	for _, step := range steps {
		step(ctx, pkg, &est)
	}

	return est
}

// AggregateAll computes estimates for all packages with at most workers
// concurrent aggregations. Each goroutine writes to a unique index, so no
// coordination beyond the WaitGroup is needed. progress, when non-nil, is
// called once per completed package from the worker goroutines.
func (a *Aggregator) AggregateAll(ctx context.Context, pkgs []*scanner.Package, workers int, progress func()) []Estimate {
	if workers <= 0 {
		workers = 1
	}

	estimates := make([]Estimate, len(pkgs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range pkgs {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			estimates[idx] = a.Aggregate(ctx, pkgs[idx])
			if progress != nil {
				progress()
			}
		}(i)
	}

	wg.Wait()
	return estimates
}

// applyOSMetadata consults Spotlight bookkeeping for bundle-style installs.
// The OS count is authoritative: it replaces the running count outright.
func (a *Aggregator) applyOSMetadata(ctx context.Context, pkg *scanner.Package, est *Estimate) {
	if !pkg.Source.IsBundle() || pkg.BinaryPath == "" {
		return
	}

	lastUsed, count := a.spotlight(ctx, pkg.BinaryPath)
	if lastUsed == nil && count == nil {
		return
	}

	sig := Signal{Source: SignalOSMetadata, LastUsed: lastUsed}
	if lastUsed != nil {
		est.LastUsed = lastUsed
	}
	if count != nil {
		est.UsageCount = *count
		sig.Count = *count
	}
	est.Signals = append(est.Signals, sig)
}

// applyShellHistory counts history entries that invoke the package's binary
// name. Matches add to the count; last-used moves only strictly forward.
func (a *Aggregator) applyShellHistory(ctx context.Context, pkg *scanner.Package, est *Estimate) {
	if pkg.BinaryPath == "" {
		return
	}

	var (
		count  int
		newest *time.Time
	)

	entries := a.historyEntries()
	for i := range entries {
		if !entries[i].InvokesBinary(pkg.Name) {
			continue
		}
		count++
		if ts := entries[i].Timestamp; ts != nil && (newest == nil || ts.After(*newest)) {
			newest = ts
		}
	}

	if count == 0 {
		return
	}

	est.UsageCount += count
	if newest != nil && (est.LastUsed == nil || newest.After(*est.LastUsed)) {
		est.LastUsed = newest
	}
	est.Signals = append(est.Signals, Signal{
		Source:   SignalShellHistory,
		LastUsed: newest,
		Count:    count,
	})
}

// applyAccessTime is the last-resort signal: it only fills last-used when
// the preceding steps left it unset, and never touches the count.
func (a *Aggregator) applyAccessTime(_ context.Context, pkg *scanner.Package, est *Estimate) {
	if est.LastUsed != nil || pkg.BinaryPath == "" {
		return
	}

	at := a.atime(pkg.BinaryPath)
	if at == nil {
		return
	}

	est.LastUsed = at
	est.Signals = append(est.Signals, Signal{Source: SignalFileAccessTime, LastUsed: at})
}

// historyEntries loads the merged history once per Aggregator. The explicit
// sort keeps match order independent of log enumeration order even when the
// loader does not sort.
func (a *Aggregator) historyEntries() []history.Entry {
	a.historyOnce.Do(func() {
		a.entries = a.loadHistory()
		history.Sort(a.entries)
	})
	return a.entries
}
