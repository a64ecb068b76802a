// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

// Package native defines the contracts a wallet2-family native binding must
// satisfy. The worker is written against these interfaces, so one worker core
// serves any currency variant that ships the same C API (Monero, Wownero);
// each variant is just another Manager implementation. The cwallet2
// subpackage is the CGO-backed Monero implementation.
package native

import "github.com/cypherstack/cs-monero/cs"

// Priority is a transaction fee priority level.
type Priority int

const (
	PriorityDefault Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityLast
)

// Direction is a transaction direction.
type Direction int

const (
	DirectionIn Direction = iota
	DirectionOut
)

// Manager creates and opens wallets. Implementations wrap the native
// library's process-wide wallet manager; there is exactly one per process,
// initialized on first use and never torn down.
type Manager interface {
	// CreateWallet creates a brand new wallet with a fresh seed.
	CreateWallet(path, password, language string, net cs.Network) (Wallet, error)
	// OpenWallet opens an existing wallet file.
	OpenWallet(path, password string, net cs.Network) (Wallet, error)
	// RecoverFromSeed restores a wallet from a mnemonic.
	RecoverFromSeed(path, password, mnemonic string, net cs.Network, restoreHeight uint64) (Wallet, error)
	// RecoverFromKeys restores a watch-only or full wallet from address and
	// keys. SpendKey may be empty for a watch-only wallet.
	RecoverFromKeys(path, password, language string, net cs.Network, restoreHeight uint64, address, viewKey, spendKey string) (Wallet, error)
	// RecoverFromSpendKey restores a deterministic wallet from a spend key.
	RecoverFromSpendKey(path, password, language string, net cs.Network, restoreHeight uint64, spendKey string) (Wallet, error)
	// CloseWallet closes the wallet, optionally storing it first. The Wallet
	// is invalid afterward.
	CloseWallet(w Wallet, save bool) error
	// WalletExists reports whether a wallet file exists at path.
	WalletExists(path string) bool
	// ValidateAddress reports whether the address is valid on the network.
	ValidateAddress(address string, net cs.Network) bool
}

// Wallet is a live native wallet object. All calls are synchronous and
// blocking; the worker serializes access by being the only caller.
//
// The native layer reports many failures out-of-band: a call returns
// normally, and a follow-up status check carries the authoritative error.
// Implementations perform that check and surface it as the returned error.
type Wallet interface {
	// InitDaemon configures and checks the connection to a daemon.
	InitDaemon(address, username, password string, useSSL, trusted bool, proxy string) error
	// Balance returns the full balance of the account, in atomic units.
	Balance(account uint32) (uint64, error)
	// UnlockedBalance returns the spendable balance of the account.
	UnlockedBalance(account uint32) (uint64, error)
	// SyncHeight returns the wallet's scanned blockchain height.
	SyncHeight() (uint64, error)
	// DaemonHeight returns the connected daemon's blockchain height.
	DaemonHeight() (uint64, error)
	// Address returns the subaddress for the account and index.
	Address(account, index uint64) (string, error)
	// Seed returns the wallet's mnemonic.
	Seed() (string, error)
	// SecretViewKey, PublicViewKey, SecretSpendKey and PublicSpendKey return
	// the wallet's keys as hex strings.
	SecretViewKey() (string, error)
	PublicViewKey() (string, error)
	SecretSpendKey() (string, error)
	PublicSpendKey() (string, error)
	// History returns the wallet's transaction history object.
	History() (History, error)
	// Coins enumerates every output the wallet knows about.
	Coins() ([]Coin, error)
	// FreezeOutput marks the output with the given key image unspendable.
	FreezeOutput(keyImage string) error
	// ThawOutput reverses FreezeOutput.
	ThawOutput(keyImage string) error
	// CreateTransaction constructs an unrelayed transaction.
	CreateTransaction(spec TxSpec) (PendingTx, error)
	// SignMessage signs a message with the wallet's spend key.
	SignMessage(message string) (string, error)
	// VerifyMessage checks a signature produced by SignMessage.
	VerifyMessage(message, address, signature string) (bool, error)
	// SetPassword changes the wallet password.
	SetPassword(password string) error
	// Store saves the wallet file.
	Store() error
}

// History is a native transaction-history object, owned by the same worker
// as the wallet that produced it.
type History interface {
	// Refresh reloads the history from the wallet.
	Refresh() error
	// Count returns the number of transactions.
	Count() int
	// Transaction returns the transaction at index i.
	Transaction(i int) (*TxInfo, error)
}

// PendingTx is a constructed, not-yet-broadcast transaction.
type PendingTx interface {
	// Commit broadcasts the transaction to the network.
	Commit() error
	// TxID returns the transaction id(s), comma separated for split
	// transactions.
	TxID() string
	// Amount returns the total transferred amount in atomic units.
	Amount() uint64
	// Fee returns the total fee in atomic units.
	Fee() uint64
	// Count returns the number of transactions the transfer was split into.
	Count() uint64
}

// TxSpec describes a transaction to construct.
type TxSpec struct {
	Dest     string
	Amount   uint64
	Priority Priority
	Account  uint32
	// SweepAll sends the entire unlocked balance minus fee; Amount is
	// ignored.
	SweepAll bool
}

// Coin describes a single wallet output.
type Coin struct {
	KeyImage string
	Amount   uint64
	Spent    bool
	Unlocked bool
	Frozen   bool
	Account  uint32
}

// TxInfo describes one transaction from the wallet's history.
type TxInfo struct {
	Hash          string
	Direction     Direction
	Amount        uint64
	Fee           uint64
	BlockHeight   uint64
	Confirmations uint64
	Timestamp     uint64
	Pending       bool
	Failed        bool
}
