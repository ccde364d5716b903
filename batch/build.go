// Package batch renders many data pages concurrently. Each page is fetched,
// extracted and rendered independently and written as one fragment.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/fwojciec/flexlist"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages built at once when Builder
// leaves Concurrency unset.
const DefaultConcurrency = 4

// RenderFunc writes the fragment of one page. On extraction failure ext
// holds the trail so far and err is the failure.
type RenderFunc func(w io.Writer, ext *flexlist.Extraction, err error) error

// Builder renders pages into fragments.
type Builder struct {
	Sources     flexlist.PageSource
	Extractor   flexlist.Extractor
	Render      RenderFunc
	Writer      flexlist.FragmentWriter
	Concurrency int
}

// Result holds the outcome of a build.
type Result struct {
	Written int
	Failed  int
	Bytes   int
}

// ProgressEvent reports progress during a build.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Page      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting build progress.
type ProgressFunc func(event ProgressEvent)

type pageResult struct {
	page  string
	bytes int
	err   error
}

// Build renders every named page. A page whose source cannot be found or
// extracted still gets a fragment holding the error block, and counts as
// failed. Build fails only when ctx is cancelled or a fragment cannot be
// written.
func (b *Builder) Build(ctx context.Context, pages []string, progress ProgressFunc) (*Result, error) {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(pages)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan pageResult, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, page := range pages {
			g.Go(func() error {
				r, err := b.buildPage(gctx, page)
				if err != nil {
					return err
				}
				resultCh <- r
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	result := &Result{}
	for r := range resultCh {
		completed.Add(1)
		result.Bytes += r.bytes
		if r.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					Page:      r.page,
					Error:     r.err,
				})
			}
			continue
		}
		result.Written++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				Page:      r.page,
			})
		}
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return result, nil
}

// buildPage renders one page. The returned error aborts the build; page
// level failures are reported in the result instead.
func (b *Builder) buildPage(ctx context.Context, page string) (pageResult, error) {
	if err := ctx.Err(); err != nil {
		return pageResult{}, err
	}
	r := pageResult{page: page}

	var ext *flexlist.Extraction
	source, err := b.Sources.FindSource(ctx, page)
	if err == nil {
		ext, err = b.Extractor.Extract(ctx, source)
	}
	if ctx.Err() != nil {
		return pageResult{}, ctx.Err()
	}
	if ext == nil {
		ext = &flexlist.Extraction{}
	}
	r.err = err

	var buf bytes.Buffer
	if rerr := b.Render(&buf, ext, err); rerr != nil {
		return pageResult{}, fmt.Errorf("render %s: %w", page, rerr)
	}
	if werr := b.Writer.WriteFragment(ctx, page, buf.Bytes()); werr != nil {
		return pageResult{}, fmt.Errorf("write %s: %w", page, werr)
	}
	r.bytes = buf.Len()
	return r, nil
}
