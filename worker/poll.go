// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

package worker

import "github.com/cypherstack/cs-monero/task"

// pollState is the last-seen wallet state, diffed against fresh reads on
// every tick. A fresh pollState is all zeros, so the first tick after
// start-polling reports any nonzero value as a change.
type pollState struct {
	handle       task.Handle
	full         uint64
	unlocked     uint64
	daemonHeight uint64
	syncHeight   uint64
}

// pollTick runs one polling pass: balances, then daemon height, then sync
// progress. A native error aborts the remainder of the tick, but state
// already stored and events already emitted stand; the next tick retries.
func (w *Worker) pollTick() {
	st := w.poll
	if st == nil {
		w.stopTicker()
		return
	}
	nw, err := w.wallet(st.handle)
	if err != nil {
		// The polled wallet was closed out from under the timer.
		w.log.Debugf("polling stopped: %v", err)
		w.stopTicker()
		w.poll = nil
		return
	}

	// Step 1: balances. Both values are read and stored together, so a
	// single event carries a consistent pair.
	full, err := nw.Balance(0)
	if err != nil {
		w.log.Debugf("balance poll error: %v", err)
		return
	}
	unlocked, err := nw.UnlockedBalance(0)
	if err != nil {
		w.log.Debugf("unlocked balance poll error: %v", err)
		return
	}
	if full != st.full || unlocked != st.unlocked {
		st.full, st.unlocked = full, unlocked
		w.emit(BalancesChanged{Full: full, Unlocked: unlocked})
	}

	// Step 2: daemon height.
	daemonHeight, err := nw.DaemonHeight()
	if err != nil {
		w.log.Debugf("daemon height poll error: %v", err)
		return
	}
	heightChanged := daemonHeight != st.daemonHeight
	if heightChanged {
		st.daemonHeight = daemonHeight
		w.emit(NewBlock{DaemonHeight: daemonHeight})
	}

	// Step 3: sync progress. Suppressed when the wallet claims to be ahead
	// of the daemon, which happens transiently around daemon reconnects, but
	// the last-seen sync height is stored regardless.
	syncHeight, err := nw.SyncHeight()
	if err != nil {
		w.log.Debugf("sync height poll error: %v", err)
		return
	}
	if syncHeight <= daemonHeight && (heightChanged || syncHeight != st.syncHeight) {
		w.emit(SyncUpdate{SyncHeight: syncHeight, DaemonHeight: daemonHeight})
	}
	st.syncHeight = syncHeight
}
