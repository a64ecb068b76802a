// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

// Package worker implements the background task worker and its caller-side
// client. A Worker is a single goroutine that owns every native handle it
// mints; tasks reach it over a FIFO channel and are executed strictly in
// arrival order, so native access needs no further locking. The worker also
// runs the polling timer that diffs wallet state into Events.
package worker

import (
	"context"
	"time"

	"github.com/cypherstack/cs-monero/cs"
	"github.com/cypherstack/cs-monero/native"
	"github.com/cypherstack/cs-monero/task"
)

const (
	// taskBuffSize is the buffer size of the worker's task channel.
	taskBuffSize = 32
	// eventBuffSize is the buffer size of the worker's event channel.
	eventBuffSize = 16
)

// Worker owns native wallet handles and executes tasks against them, one at
// a time. Create one with the Client; the zero value is not usable.
type Worker struct {
	log cs.Logger
	mgr native.Manager

	tasks   chan *task.Task
	results chan *task.Result
	events  chan Event
	ready   chan struct{}

	// Everything below is owned by the run goroutine.
	handles    map[task.Handle]any
	lastHandle task.Handle
	poll       *pollState
	pollTicker *time.Ticker
}

func newWorker(mgr native.Manager, log cs.Logger) *Worker {
	return &Worker{
		log:     log,
		mgr:     mgr,
		tasks:   make(chan *task.Task, taskBuffSize),
		results: make(chan *task.Result, taskBuffSize),
		events:  make(chan Event, eventBuffSize),
		ready:   make(chan struct{}),
		handles: make(map[task.Handle]any),
	}
}

// run is the worker's only goroutine. All native calls happen here.
func (w *Worker) run(ctx context.Context) {
	close(w.ready)
	defer w.stopTicker()
	for {
		select {
		case t := <-w.tasks:
			select {
			case w.results <- w.process(t):
			case <-ctx.Done():
				return
			}
		case <-w.tickC():
			w.pollTick()
		case <-ctx.Done():
			return
		}
	}
}

// tickC returns the polling ticker's channel, or nil (which never receives)
// when polling is not active.
func (w *Worker) tickC() <-chan time.Time {
	if w.pollTicker == nil {
		return nil
	}
	return w.pollTicker.C
}

func (w *Worker) stopTicker() {
	if w.pollTicker != nil {
		w.pollTicker.Stop()
		w.pollTicker = nil
	}
}

// process executes one task and produces its result. The reserved polling
// operations are handled here, before the dispatch table; everything else
// goes through dispatch. A handler failure becomes an error result, never a
// dead worker.
func (w *Worker) process(t *task.Task) *task.Result {
	switch t.Fn {
	case task.FnStartPolling:
		return w.startPolling(t)
	case task.FnStopPolling:
		return w.stopPolling(t)
	}

	h, found := dispatch[t.Fn]
	if !found {
		return &task.Result{ID: t.ID, Err: cs.NewError(cs.ErrUnknownFunc, string(t.Fn))}
	}
	v, err := h(w, t)
	if err != nil {
		w.log.Debugf("task %s (%s) failed: %v", t.Fn, t.ID, err)
		return &task.Result{ID: t.ID, Err: err}
	}
	return &task.Result{ID: t.ID, Value: v}
}

// startPolling arms the polling timer. Any previous timer is cancelled and
// the polling state reset, so the first tick after a restart re-reports
// current values as changes.
func (w *Worker) startPolling(t *task.Task) *task.Result {
	args, err := decode[*task.StartPollingArgs](t)
	if err != nil {
		return &task.Result{ID: t.ID, Err: err}
	}
	if _, err := w.wallet(args.Handle); err != nil {
		return &task.Result{ID: t.ID, Err: err}
	}
	w.stopTicker()
	w.poll = &pollState{handle: args.Handle}
	w.pollTicker = time.NewTicker(args.Interval)
	w.log.Debugf("polling started for handle %d every %s", args.Handle, args.Interval)
	return &task.Result{ID: t.ID}
}

// stopPolling cancels the polling timer and clears the polling state. With
// no active timer it is a no-op acknowledgement.
func (w *Worker) stopPolling(t *task.Task) *task.Result {
	if _, err := decode[*task.StopPollingArgs](t); err != nil {
		return &task.Result{ID: t.ID, Err: err}
	}
	w.stopTicker()
	w.poll = nil
	return &task.Result{ID: t.ID}
}

// emit queues an event for the client's fan-out. The channel is buffered; a
// full channel drops the event rather than stalling the worker.
func (w *Worker) emit(ev Event) {
	select {
	case w.events <- ev:
	default:
		w.log.Warnf("event channel full, dropping %s", ev.Type())
	}
}

// mint registers a native object and returns its opaque handle. Handles are
// arena-index tokens, never raw native pointers, and are only resolved back
// to objects on this worker's goroutine.
func (w *Worker) mint(obj any) task.Handle {
	w.lastHandle++
	w.handles[w.lastHandle] = obj
	return w.lastHandle
}

// release forgets a handle. Releasing an unknown handle is harmless.
func (w *Worker) release(h task.Handle) {
	delete(w.handles, h)
}

// wallet resolves a wallet handle.
func (w *Worker) wallet(h task.Handle) (native.Wallet, error) {
	if nw, found := w.handles[h].(native.Wallet); found {
		return nw, nil
	}
	return nil, cs.NewError(cs.ErrBadHandle, handleDetail("wallet", h))
}

// history resolves a transaction-history handle.
func (w *Worker) history(h task.Handle) (native.History, error) {
	if oh, found := w.handles[h].(*ownedHistory); found {
		return oh.hist, nil
	}
	return nil, cs.NewError(cs.ErrBadHandle, handleDetail("history", h))
}

// pendingTx resolves a pending-transaction handle.
func (w *Worker) pendingTx(h task.Handle) (native.PendingTx, error) {
	if ot, found := w.handles[h].(*ownedTx); found {
		return ot.tx, nil
	}
	return nil, cs.NewError(cs.ErrBadHandle, handleDetail("pending transaction", h))
}
