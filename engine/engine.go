// Package engine serves markdown-to-bitmap render requests through a
// bounded LRU cache and a de-duplicating asynchronous queue. Requests
// sharing a render key are coalesced into one pipeline execution whose
// result every waiter receives; completed bitmaps are cached and their
// resources released on eviction.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ByLCY/noteraster/layout"
	"github.com/ByLCY/noteraster/markdown"
	"github.com/ByLCY/noteraster/renderer"
)

// ErrRenderFailed reports that the pipeline produced no bitmap for a
// request. Callers are expected to fall back to displaying the raw
// source text.
var ErrRenderFailed = errors.New("engine: render failed")

// task is one queued render pass with every callback waiting on it.
// It exists only between submission and completion.
type task struct {
	key     string
	opts    layout.Options
	waiters []func(handle string)
}

// Engine owns the render cache, the pending-task map and the FIFO work
// list. A single runner goroutine drains the list, so no two render
// passes execute concurrently and tasks are serviced strictly in
// submission order.
type Engine struct {
	renderer renderer.Renderer
	measurer layout.Measurer
	blobs    *blobStore

	mu      sync.Mutex // guards the fields below
	cache   *renderCache
	pending map[string]*task
	fifo    []*task
	running bool
	tick    uint64
}

// Option configures an Engine.
type Option func(*config)

type config struct {
	capacity int
}

// WithCacheCapacity overrides the render cache bound.
func WithCacheCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

// New creates an engine around a renderer. When the renderer also
// implements layout.Measurer (the canvas renderer does), layout wraps
// against its real font metrics; otherwise the heuristic estimate is
// used for every run.
func New(r renderer.Renderer, opts ...Option) *Engine {
	cfg := config{capacity: DefaultCacheCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{
		renderer: r,
		blobs:    newBlobStore(),
		pending:  map[string]*task{},
	}
	e.cache = newRenderCache(cfg.capacity, e.blobs.release)

	if m, ok := r.(layout.Measurer); ok {
		e.measurer = m
	} else {
		e.measurer = estimateMeasurer{}
	}
	return e
}

// estimateMeasurer is the headless fallback measurer.
type estimateMeasurer struct{}

func (estimateMeasurer) RunWidth(text string, _ layout.RunStyle, opts layout.Options) float64 {
	return layout.EstimateWidth(text, opts.FontSize.Px())
}

// Enqueue requests a bitmap for opts. On a cache hit done is invoked
// synchronously with the cached handle. Otherwise the request joins the
// pending task for its key, or creates a new one at the tail of the
// work list. done fires exactly once per request, with the resource
// handle or the empty string on failure.
func (e *Engine) Enqueue(opts layout.Options, done func(handle string)) {
	opts = opts.Normalized()
	key := opts.Key()

	e.mu.Lock()
	e.tick++
	if handle, ok := e.cache.get(key, e.tick); ok {
		e.mu.Unlock()
		done(handle)
		return
	}
	if t, ok := e.pending[key]; ok {
		t.waiters = append(t.waiters, done)
		e.mu.Unlock()
		return
	}

	t := &task{key: key, opts: opts, waiters: []func(string){done}}
	e.pending[key] = t
	e.fifo = append(e.fifo, t)
	start := !e.running
	if start {
		e.running = true
	}
	e.mu.Unlock()

	if start {
		go e.run()
	}
}

// Render is the blocking form of Enqueue. Cancelling the context
// abandons the wait but never aborts an in-flight render pass.
func (e *Engine) Render(ctx context.Context, opts layout.Options) (string, error) {
	result := make(chan string, 1)
	e.Enqueue(opts, func(handle string) { result <- handle })

	select {
	case handle := <-result:
		if handle == "" {
			return "", ErrRenderFailed
		}
		return handle, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Lookup resolves a resource handle to its PNG bytes. It reports false
// once the handle has been released by cache eviction or replacement.
func (e *Engine) Lookup(handle string) ([]byte, bool) {
	return e.blobs.get(handle)
}

// run drains the FIFO list one task at a time and exits when it is
// empty. A successful pass stores its handle in the cache before any
// waiter is notified; a failed pass notifies waiters with the empty
// string and the runner proceeds to the next task regardless.
func (e *Engine) run() {
	for {
		e.mu.Lock()
		if len(e.fifo) == 0 {
			e.running = false
			e.mu.Unlock()
			return
		}
		t := e.fifo[0]
		e.fifo = e.fifo[1:]
		e.mu.Unlock()

		handle, err := e.renderTask(t.opts)
		if err != nil {
			handle = ""
		}

		e.mu.Lock()
		if handle != "" {
			e.tick++
			e.cache.set(t.key, handle, e.tick)
		}
		delete(e.pending, t.key)
		waiters := t.waiters
		e.mu.Unlock()

		for _, done := range waiters {
			done(handle)
		}
	}
}

// renderTask runs the full pipeline for one request: normalize and
// tokenize, lay out, paint and encode, then register the bitmap in the
// blob store. Panics in the paint backend fail the pass instead of
// killing the runner.
func (e *Engine) renderTask(opts layout.Options) (handle string, err error) {
	defer func() {
		if r := recover(); r != nil {
			handle = ""
			err = fmt.Errorf("engine: render pass panicked: %v", r)
		}
	}()

	tokens := markdown.Tokenize(opts.Text)
	lines := layout.BuildLines(tokens, opts, e.measurer)
	data, err := e.renderer.Render(lines, opts)
	if err != nil {
		return "", err
	}
	return e.blobs.put(data), nil
}
