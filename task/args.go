// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

package task

import (
	"fmt"
	"time"

	"github.com/cypherstack/cs-monero/cs"
)

// Validator is implemented by every argument struct. A Validate failure is a
// decoding error, produced before any native call.
type Validator interface {
	Validate() error
}

func badArgs(fn Func, format string, args ...any) error {
	return cs.NewError(cs.ErrBadArguments, string(fn)+": "+fmt.Sprintf(format, args...))
}

// CreateWalletArgs are the arguments for FnCreateWallet. The result value is
// a wallet Handle.
type CreateWalletArgs struct {
	Path     string
	Password string
	Language string
	Net      cs.Network
}

func (a *CreateWalletArgs) Validate() error {
	if a.Path == "" {
		return badArgs(FnCreateWallet, "empty wallet path")
	}
	return nil
}

// OpenWalletArgs are the arguments for FnOpenWallet. The result value is a
// wallet Handle.
type OpenWalletArgs struct {
	Path     string
	Password string
	Net      cs.Network
}

func (a *OpenWalletArgs) Validate() error {
	if a.Path == "" {
		return badArgs(FnOpenWallet, "empty wallet path")
	}
	return nil
}

// RestoreFromSeedArgs are the arguments for FnRestoreFromSeed. The result
// value is a wallet Handle.
type RestoreFromSeedArgs struct {
	Path          string
	Password      string
	Mnemonic      string
	Net           cs.Network
	RestoreHeight uint64
}

func (a *RestoreFromSeedArgs) Validate() error {
	if a.Path == "" {
		return badArgs(FnRestoreFromSeed, "empty wallet path")
	}
	if a.Mnemonic == "" {
		return badArgs(FnRestoreFromSeed, "empty mnemonic")
	}
	return nil
}

// RestoreFromKeysArgs are the arguments for FnRestoreFromKeys. The result
// value is a wallet Handle.
type RestoreFromKeysArgs struct {
	Path          string
	Password      string
	Language      string
	Net           cs.Network
	RestoreHeight uint64
	Address       string
	ViewKey       string
	SpendKey      string
}

func (a *RestoreFromKeysArgs) Validate() error {
	if a.Path == "" {
		return badArgs(FnRestoreFromKeys, "empty wallet path")
	}
	if a.Address == "" {
		return badArgs(FnRestoreFromKeys, "empty address")
	}
	if a.ViewKey == "" {
		return badArgs(FnRestoreFromKeys, "empty view key")
	}
	return nil
}

// RestoreFromSpendKeyArgs are the arguments for FnRestoreFromSpendKey. The
// result value is a wallet Handle.
type RestoreFromSpendKeyArgs struct {
	Path          string
	Password      string
	Language      string
	Net           cs.Network
	RestoreHeight uint64
	SpendKey      string
}

func (a *RestoreFromSpendKeyArgs) Validate() error {
	if a.Path == "" {
		return badArgs(FnRestoreFromSpendKey, "empty wallet path")
	}
	if a.SpendKey == "" {
		return badArgs(FnRestoreFromSpendKey, "empty spend key")
	}
	return nil
}

// WalletExistsArgs are the arguments for FnWalletExists. The result value is
// a bool.
type WalletExistsArgs struct {
	Path string
}

func (a *WalletExistsArgs) Validate() error {
	if a.Path == "" {
		return badArgs(FnWalletExists, "empty wallet path")
	}
	return nil
}

// InitDaemonArgs are the arguments for FnInitDaemon, which connects a wallet
// to its daemon. Acknowledgement-only result.
type InitDaemonArgs struct {
	Handle   Handle
	Address  string
	Username string
	Password string
	UseSSL   bool
	Trusted  bool
	Proxy    string
}

func (a *InitDaemonArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnInitDaemon, "zero wallet handle")
	}
	if a.Address == "" {
		return badArgs(FnInitDaemon, "empty daemon address")
	}
	return nil
}

// BalanceArgs are the arguments for FnBalance. The result value is a
// *BalanceResult.
type BalanceArgs struct {
	Handle  Handle
	Account uint32
}

func (a *BalanceArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnBalance, "zero wallet handle")
	}
	return nil
}

// BalanceResult is the result value for FnBalance. Amounts are atomic units.
type BalanceResult struct {
	Full     uint64
	Unlocked uint64
}

// HeightsArgs are the arguments for FnHeights. The result value is a
// *HeightsResult.
type HeightsArgs struct {
	Handle Handle
}

func (a *HeightsArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnHeights, "zero wallet handle")
	}
	return nil
}

// HeightsResult is the result value for FnHeights.
type HeightsResult struct {
	SyncHeight   uint64
	DaemonHeight uint64
}

// AddressArgs are the arguments for FnAddress. The result value is the
// address string.
type AddressArgs struct {
	Handle  Handle
	Account uint64
	Index   uint64
}

func (a *AddressArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnAddress, "zero wallet handle")
	}
	return nil
}

// KeysArgs are the arguments for FnKeys. The result value is a *KeysResult.
type KeysArgs struct {
	Handle Handle
}

func (a *KeysArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnKeys, "zero wallet handle")
	}
	return nil
}

// KeysResult is the result value for FnKeys.
type KeysResult struct {
	Mnemonic       string
	SecretViewKey  string
	PublicViewKey  string
	SecretSpendKey string
	PublicSpendKey string
}

// TransactionHistoryArgs are the arguments for FnTransactionHistory. The
// result value is a history Handle, usable with FnTransactions.
type TransactionHistoryArgs struct {
	Handle Handle
}

func (a *TransactionHistoryArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnTransactionHistory, "zero wallet handle")
	}
	return nil
}

// TransactionsArgs are the arguments for FnTransactions. History is a handle
// minted by FnTransactionHistory. The result value is []*native.TxInfo.
type TransactionsArgs struct {
	History Handle
}

func (a *TransactionsArgs) Validate() error {
	if a.History == 0 {
		return badArgs(FnTransactions, "zero history handle")
	}
	return nil
}

// CoinsArgs are the arguments for FnCoins. The result value is
// []native.Coin.
type CoinsArgs struct {
	Handle Handle
}

func (a *CoinsArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnCoins, "zero wallet handle")
	}
	return nil
}

// FreezeOutputArgs are the arguments for FnFreezeOutput. Acknowledgement-only
// result.
type FreezeOutputArgs struct {
	Handle   Handle
	KeyImage string
}

func (a *FreezeOutputArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnFreezeOutput, "zero wallet handle")
	}
	if a.KeyImage == "" {
		return badArgs(FnFreezeOutput, "empty key image")
	}
	return nil
}

// ThawOutputArgs are the arguments for FnThawOutput. Acknowledgement-only
// result.
type ThawOutputArgs struct {
	Handle   Handle
	KeyImage string
}

func (a *ThawOutputArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnThawOutput, "zero wallet handle")
	}
	if a.KeyImage == "" {
		return badArgs(FnThawOutput, "empty key image")
	}
	return nil
}

// CreateTransactionArgs are the arguments for FnCreateTransaction. The result
// value is a *CreateTransactionResult. Amount is ignored when SweepAll is
// set.
type CreateTransactionArgs struct {
	Handle   Handle
	Dest     string
	Amount   uint64
	Priority int
	Account  uint32
	SweepAll bool
}

func (a *CreateTransactionArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnCreateTransaction, "zero wallet handle")
	}
	if a.Dest == "" {
		return badArgs(FnCreateTransaction, "empty destination address")
	}
	if a.Amount == 0 && !a.SweepAll {
		return badArgs(FnCreateTransaction, "zero amount without sweep-all")
	}
	return nil
}

// CreateTransactionResult is the result value for FnCreateTransaction. Tx is
// a pending-transaction handle for FnCommitTransaction.
type CreateTransactionResult struct {
	Tx     Handle
	TxID   string
	Amount uint64
	Fee    uint64
	Count  uint64
}

// CommitTransactionArgs are the arguments for FnCommitTransaction. The result
// value is the broadcast transaction id string. The pending-transaction
// handle is released whether or not the commit succeeds.
type CommitTransactionArgs struct {
	Tx Handle
}

func (a *CommitTransactionArgs) Validate() error {
	if a.Tx == 0 {
		return badArgs(FnCommitTransaction, "zero pending transaction handle")
	}
	return nil
}

// SignMessageArgs are the arguments for FnSignMessage. The result value is
// the signature string.
type SignMessageArgs struct {
	Handle  Handle
	Message string
}

func (a *SignMessageArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnSignMessage, "zero wallet handle")
	}
	if a.Message == "" {
		return badArgs(FnSignMessage, "empty message")
	}
	return nil
}

// VerifyMessageArgs are the arguments for FnVerifyMessage. The result value
// is a bool.
type VerifyMessageArgs struct {
	Handle    Handle
	Message   string
	Address   string
	Signature string
}

func (a *VerifyMessageArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnVerifyMessage, "zero wallet handle")
	}
	if a.Signature == "" {
		return badArgs(FnVerifyMessage, "empty signature")
	}
	return nil
}

// ValidateAddressArgs are the arguments for FnValidateAddress. The result
// value is a bool.
type ValidateAddressArgs struct {
	Address string
	Net     cs.Network
}

func (a *ValidateAddressArgs) Validate() error {
	if a.Address == "" {
		return badArgs(FnValidateAddress, "empty address")
	}
	return nil
}

// ChangePasswordArgs are the arguments for FnChangePassword.
// Acknowledgement-only result.
type ChangePasswordArgs struct {
	Handle   Handle
	Password string
}

func (a *ChangePasswordArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnChangePassword, "zero wallet handle")
	}
	return nil
}

// SaveArgs are the arguments for FnSave. Acknowledgement-only result.
type SaveArgs struct {
	Handle Handle
}

func (a *SaveArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnSave, "zero wallet handle")
	}
	return nil
}

// CloseWalletArgs are the arguments for FnCloseWallet. Acknowledgement-only
// result. The wallet handle and any history handles minted from it are
// released.
type CloseWalletArgs struct {
	Handle Handle
	Save   bool
}

func (a *CloseWalletArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnCloseWallet, "zero wallet handle")
	}
	return nil
}

// StartPollingArgs are the arguments for the reserved FnStartPolling
// operation. Acknowledgement-only result.
type StartPollingArgs struct {
	Handle   Handle
	Interval time.Duration
}

func (a *StartPollingArgs) Validate() error {
	if a.Handle == 0 {
		return badArgs(FnStartPolling, "zero wallet handle")
	}
	if a.Interval <= 0 {
		return badArgs(FnStartPolling, "non-positive interval %s", a.Interval)
	}
	return nil
}

// StopPollingArgs are the arguments for the reserved FnStopPolling operation.
// Acknowledgement-only result. Stopping with no active timer is a no-op.
type StopPollingArgs struct{}

func (a *StopPollingArgs) Validate() error { return nil }
