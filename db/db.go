// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

// Package db defines the wallet metadata store. The native library persists
// the wallet itself; this store keeps the bookkeeping the native file cannot
// hold, such as the restore height a wallet was recovered at and when it was
// last opened.
package db

import (
	"time"

	"github.com/cypherstack/cs-monero/cs"
)

// ErrNoWallet is returned when no metadata exists for the named wallet.
const ErrNoWallet = cs.ErrorKind("no wallet metadata")

// WalletMeta is the stored metadata for one wallet, keyed by Name.
type WalletMeta struct {
	Name string     `json:"name"`
	Net  cs.Network `json:"net"`
	// RestoreHeight is the blockchain height scanning starts from. Zero for
	// wallets created fresh before any metadata existed.
	RestoreHeight uint64 `json:"restoreHeight"`
	// Birthday is when the wallet was created or restored here.
	Birthday time.Time `json:"birthday"`
	// Recovered is set for wallets restored from a seed or keys rather than
	// created fresh.
	Recovered  bool      `json:"recovered"`
	LastOpened time.Time `json:"lastOpened"`
}

// DB is the wallet metadata store.
type DB interface {
	// StoreWalletMeta inserts or replaces the metadata for meta.Name.
	StoreWalletMeta(meta *WalletMeta) error
	// WalletMeta retrieves the metadata for the named wallet, or ErrNoWallet.
	WalletMeta(name string) (*WalletMeta, error)
	// SetLastOpened updates the last-open time for the named wallet. Unknown
	// names are a no-op; the wallet may predate the store.
	SetLastOpened(name string, when time.Time) error
	// Wallets lists all stored metadata.
	Wallets() ([]*WalletMeta, error)
	// DeleteWalletMeta removes the named wallet's metadata, if any.
	DeleteWalletMeta(name string) error
	// Close releases the store.
	Close() error
}
