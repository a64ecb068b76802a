// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

// Package task defines the protocol that crosses the worker boundary: a
// closed set of named operations, each with a typed argument struct, plus the
// Task and Result envelopes that carry them. Argument validation happens here
// so a malformed call fails before any native code runs.
package task

import (
	"fmt"

	"github.com/google/uuid"
)

// Func is a task's function tag. The set of tags is closed; the worker keeps
// one handler per tag.
type Func string

const (
	FnCreateWallet        Func = "create-wallet"
	FnOpenWallet          Func = "open-wallet"
	FnRestoreFromSeed     Func = "restore-from-seed"
	FnRestoreFromKeys     Func = "restore-from-keys"
	FnRestoreFromSpendKey Func = "restore-from-spend-key"
	FnWalletExists        Func = "wallet-exists"
	FnInitDaemon          Func = "init-daemon"
	FnBalance             Func = "balance"
	FnHeights             Func = "heights"
	FnAddress             Func = "address"
	FnKeys                Func = "keys"
	FnTransactionHistory  Func = "transaction-history"
	FnTransactions        Func = "transactions"
	FnCoins               Func = "coins"
	FnFreezeOutput        Func = "freeze-output"
	FnThawOutput          Func = "thaw-output"
	FnCreateTransaction   Func = "create-transaction"
	FnCommitTransaction   Func = "commit-transaction"
	FnSignMessage         Func = "sign-message"
	FnVerifyMessage       Func = "verify-message"
	FnValidateAddress     Func = "validate-address"
	FnChangePassword      Func = "change-password"
	FnSave                Func = "save"
	FnCloseWallet         Func = "close-wallet"

	// FnStartPolling and FnStopPolling are reserved. They are handled by the
	// worker loop itself and must never appear in the generic dispatch table.
	FnStartPolling Func = "start-polling"
	FnStopPolling  Func = "stop-polling"
)

// Handle is an opaque token identifying a native-side object (wallet,
// transaction history, pending transaction). Handles are minted by the worker
// that created the object and are meaningless to any other worker. A Handle
// is never dereferenced outside the worker goroutine.
type Handle uint64

// Task is a single operation request. A Task is created by the facade,
// consumed exactly once by the worker, and discarded.
type Task struct {
	// ID is a fresh UUID-v4, so concurrent in-flight requests never collide.
	ID string
	// Fn selects the handler.
	Fn Func
	// Args is the argument struct for Fn, one of the types defined in this
	// package. The worker rejects a mismatched type before any native call.
	Args any
}

// New creates a Task with a fresh random id.
func New(fn Func, args any) *Task {
	id, err := uuid.NewRandom()
	if err != nil {
		// uuid.NewRandom only fails if the system entropy source does, which
		// is not a condition the caller can handle.
		panic(fmt.Sprintf("could not create random uuid: %v", err))
	}
	return &Task{
		ID:   id.String(),
		Fn:   fn,
		Args: args,
	}
}

// Result is the worker's response to a Task. Exactly one of Value and Err is
// meaningful. Results exist only in transit and are not persisted.
type Result struct {
	// ID matches the originating Task's ID.
	ID string
	// Value is the operation's typed result, nil for acknowledgement-only
	// operations.
	Value any
	// Err carries a decoding error or the native operation's error.
	Err error
}
