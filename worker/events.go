// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

package worker

// Event is an unsolicited notification emitted by the worker's polling loop.
// Events are not correlated to any task id and are broadcast to all current
// subscribers. Within the event channel, emission order equals detection
// order in the polling loop.
type Event interface {
	// Type is a string ID unique to the concrete type.
	Type() string
}

// BalancesChanged is emitted when either the full or the unlocked balance of
// account 0 changed since the last polling tick. Both values are always
// carried together.
type BalancesChanged struct {
	Full     uint64
	Unlocked uint64
}

// Type implements Event.
func (BalancesChanged) Type() string { return "balances-changed" }

// NewBlock is emitted when the daemon's blockchain height changed since the
// last polling tick.
type NewBlock struct {
	DaemonHeight uint64
}

// Type implements Event.
func (NewBlock) Type() string { return "new-block" }

// SyncUpdate is emitted while the wallet is scanning, whenever the daemon
// height or the wallet's sync height moved. It is suppressed when the sync
// height is ahead of the daemon height, which happens transiently during
// daemon reconnection.
type SyncUpdate struct {
	SyncHeight   uint64
	DaemonHeight uint64
}

// Type implements Event.
func (SyncUpdate) Type() string { return "sync-update" }
