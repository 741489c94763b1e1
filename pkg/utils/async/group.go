package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Group runs named workers concurrently and joins them, collecting one
// error per worker. A panicking worker is recovered and reported as that
// worker's error without disturbing its siblings.
type Group struct {
	mu   sync.Mutex
	wg   sync.WaitGroup
	errs map[string]error
}

func NewGroup() *Group {
	return &Group{errs: make(map[string]error)}
}

// Go starts handler in a new goroutine under the given name. The context
// is passed through unchanged so cancellation reaches every worker.
func (g *Group) Go(ctx context.Context, name string, handler func(ctx context.Context) error) {
	g.wg.Add(1)

	go func() {
		defer g.wg.Done()

		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				ctxlog.From(ctx).Error("panic in worker",
					"worker", name,
					"recover", r,
					"stack", string(stack),
				)
				g.record(name, goerr.New("worker panicked", goerr.V("worker", name), goerr.V("recover", r)))
			}
		}()

		if err := handler(ctx); err != nil {
			g.record(name, err)
		}
	}()
}

func (g *Group) record(name string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errs[name] = err
}

// Wait blocks until every worker finished and returns the errors of the
// failed ones, keyed by worker name. An empty map means full success.
func (g *Group) Wait() map[string]error {
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	out := make(map[string]error, len(g.errs))
	for name, err := range g.errs {
		out[name] = err
	}
	return out
}
