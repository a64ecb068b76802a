// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cypherstack/cs-monero/cs"
	"github.com/cypherstack/cs-monero/native"
	"github.com/cypherstack/cs-monero/task"
)

// Client is the caller-side endpoint of a Worker. It correlates results back
// to callers by task id and fans polling events out to subscribers. A Client
// is safe for concurrent use; any number of goroutines may send tasks, and
// the worker executes them one at a time in arrival order.
type Client struct {
	log    cs.Logger
	worker *Worker
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	pendingMtx sync.Mutex
	pending    map[string]chan *task.Result

	feedMtx    sync.Mutex
	feeds      map[uint64]chan Event
	lastFeedID uint64

	disposed atomic.Bool
}

// ErrClientDisposed is returned for tasks sent after Dispose.
var ErrClientDisposed = cs.NewError(cs.ErrWalletClosed, "worker client disposed")

// Spawn creates a Client and starts its Worker. The worker goroutine and the
// client's pumps run until Dispose is called or ctx is canceled. Spawn does
// not return until the worker is accepting tasks.
func Spawn(ctx context.Context, mgr native.Manager, log cs.Logger) *Client {
	ctx, cancel := context.WithCancel(ctx)
	c := &Client{
		log:     log,
		worker:  newWorker(mgr, log),
		ctx:     ctx,
		cancel:  cancel,
		pending: make(map[string]chan *task.Result),
		feeds:   make(map[uint64]chan Event),
	}

	c.wg.Add(3)
	go func() {
		defer c.wg.Done()
		c.worker.run(ctx)
	}()
	go func() {
		defer c.wg.Done()
		c.resultPump(ctx)
	}()
	go func() {
		defer c.wg.Done()
		c.eventPump(ctx)
	}()

	<-c.worker.ready
	return c
}

// Dispose stops the worker and the pumps. In-flight tasks are abandoned;
// their result channels never receive. Dispose is idempotent.
func (c *Client) Dispose() {
	if !c.disposed.CompareAndSwap(false, true) {
		return
	}
	c.cancel()
	c.wg.Wait()
	c.feedMtx.Lock()
	for id, feed := range c.feeds {
		close(feed)
		delete(c.feeds, id)
	}
	c.feedMtx.Unlock()
}

// Send queues a task for the worker and returns a channel that receives the
// result exactly once. The pending entry is registered before the task is
// handed to the worker, so the result cannot arrive unclaimed.
func (c *Client) Send(t *task.Task) (<-chan *task.Result, error) {
	if c.disposed.Load() {
		return nil, ErrClientDisposed
	}
	resC := make(chan *task.Result, 1)
	c.pendingMtx.Lock()
	c.pending[t.ID] = resC
	c.pendingMtx.Unlock()

	select {
	case c.worker.tasks <- t:
	case <-c.ctx.Done():
		c.pendingMtx.Lock()
		delete(c.pending, t.ID)
		c.pendingMtx.Unlock()
		return nil, ErrClientDisposed
	}
	return resC, nil
}

// RunTask sends a task built from fn and args and waits for its result. The
// wait ends early if ctx is canceled or the client is disposed; the task
// itself is not recalled and may still run on the worker.
func (c *Client) RunTask(ctx context.Context, fn task.Func, args any) (any, error) {
	t := task.New(fn, args)
	resC, err := c.Send(t)
	if err != nil {
		return nil, err
	}
	select {
	case res := <-resC:
		return res.Value, res.Err
	case <-ctx.Done():
		c.pendingMtx.Lock()
		delete(c.pending, t.ID)
		c.pendingMtx.Unlock()
		return nil, ctx.Err()
	case <-c.ctx.Done():
		return nil, ErrClientDisposed
	}
}

// resultPump moves results from the worker to their waiting callers. A
// result is delivered at most once; results with no pending entry, including
// duplicates, are dropped silently.
func (c *Client) resultPump(ctx context.Context) {
	for {
		select {
		case res := <-c.worker.results:
			c.pendingMtx.Lock()
			resC, found := c.pending[res.ID]
			if found {
				delete(c.pending, res.ID)
			}
			c.pendingMtx.Unlock()
			if found {
				resC <- res
			}
		case <-ctx.Done():
			return
		}
	}
}

// eventPump broadcasts worker events to every subscribed feed.
func (c *Client) eventPump(ctx context.Context) {
	for {
		select {
		case ev := <-c.worker.events:
			c.feedMtx.Lock()
			for _, feed := range c.feeds {
				select {
				case feed <- ev:
				default:
					c.log.Warnf("blocking event feed, dropping %s", ev.Type())
				}
			}
			c.feedMtx.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// EventFeed returns a new receiver of polling events. Call the returned
// EventFeed's ReturnFeed when done to unsubscribe. A slow receiver does not
// block the worker; events beyond the feed's buffer are dropped for that
// receiver only.
func (c *Client) EventFeed() *EventFeed {
	feed := make(chan Event, eventBuffSize)
	c.feedMtx.Lock()
	c.lastFeedID++
	id := c.lastFeedID
	c.feeds[id] = feed
	c.feedMtx.Unlock()
	return &EventFeed{
		C: feed,
		returnFeed: func() {
			c.feedMtx.Lock()
			if _, found := c.feeds[id]; found {
				delete(c.feeds, id)
				close(feed)
			}
			c.feedMtx.Unlock()
		},
	}
}

// EventFeed is a subscription to a Client's polling events.
type EventFeed struct {
	// C receives events until ReturnFeed is called or the client is
	// disposed, after which it is closed.
	C         <-chan Event
	returnMtx sync.Mutex
	returned  bool

	returnFeed func()
}

// ReturnFeed unsubscribes and closes C. Idempotent.
func (f *EventFeed) ReturnFeed() {
	f.returnMtx.Lock()
	defer f.returnMtx.Unlock()
	if f.returned {
		return
	}
	f.returned = true
	f.returnFeed()
}
