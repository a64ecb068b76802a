// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

// Package wallet is the caller-facing facade. A Wallet wraps one native
// wallet handle owned by a background worker; every method converts its
// arguments to a task, runs it on the worker, and converts the result back
// to a domain value. Wallets are only constructed through a Loader's factory
// methods, and a Wallet belongs to the worker that minted its handle for
// life.
package wallet

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/cypherstack/cs-monero/cs"
	"github.com/cypherstack/cs-monero/db"
	"github.com/cypherstack/cs-monero/native"
	"github.com/cypherstack/cs-monero/task"
	"github.com/cypherstack/cs-monero/worker"
)

// Listener receives polling events translated to domain values. Methods are
// called from a single goroutine, in event order.
type Listener interface {
	// BalancesChanged reports a change to either balance of account 0.
	BalancesChanged(full, unlocked cs.Amount)
	// NewBlock reports a daemon blockchain height change.
	NewBlock(daemonHeight uint64)
	// SyncUpdate reports wallet scanning progress.
	SyncUpdate(syncHeight, daemonHeight uint64)
}

// Loader constructs Wallets on a worker client. The metadata store is
// optional; with one, factories record each wallet's provenance.
type Loader struct {
	cl   *worker.Client
	meta db.DB
	log  cs.Logger
}

// NewLoader creates a Loader. meta may be nil to skip metadata bookkeeping.
func NewLoader(cl *worker.Client, meta db.DB, log cs.Logger) *Loader {
	return &Loader{cl: cl, meta: meta, log: log}
}

// CreateOpts are the options for Loader.Create.
type CreateOpts struct {
	Path     string
	Password string
	Language string
	Net      cs.Network
}

// OpenOpts are the options for Loader.Open.
type OpenOpts struct {
	Path     string
	Password string
	Net      cs.Network
}

// SeedOpts are the options for Loader.RestoreFromSeed.
type SeedOpts struct {
	Path          string
	Password      string
	Mnemonic      string
	Net           cs.Network
	RestoreHeight uint64
}

// KeysOpts are the options for Loader.RestoreFromKeys. SpendKey may be empty
// for a watch-only wallet.
type KeysOpts struct {
	Path          string
	Password      string
	Language      string
	Net           cs.Network
	RestoreHeight uint64
	Address       string
	ViewKey       string
	SpendKey      string
}

// SpendKeyOpts are the options for Loader.RestoreFromSpendKey.
type SpendKeyOpts struct {
	Path          string
	Password      string
	Language      string
	Net           cs.Network
	RestoreHeight uint64
	SpendKey      string
}

// bind runs a wallet factory task, records metadata, and wraps the returned
// handle.
func (l *Loader) bind(ctx context.Context, fn task.Func, args any, meta *db.WalletMeta) (*Wallet, error) {
	h, err := call[task.Handle](ctx, l.cl, fn, args)
	if err != nil {
		return nil, err
	}
	w := &Wallet{cl: l.cl, log: l.log, handle: h}
	if meta != nil {
		w.name, w.net = meta.Name, meta.Net
		if l.meta != nil {
			if err := l.meta.StoreWalletMeta(meta); err != nil {
				l.log.Errorf("error storing metadata for wallet %s: %v", meta.Name, err)
			}
		}
	}
	return w, nil
}

// Create creates a brand new wallet with a fresh seed.
func (l *Loader) Create(ctx context.Context, opts *CreateOpts) (*Wallet, error) {
	return l.bind(ctx, task.FnCreateWallet, &task.CreateWalletArgs{
		Path:     opts.Path,
		Password: opts.Password,
		Language: opts.Language,
		Net:      opts.Net,
	}, &db.WalletMeta{
		Name:     filepath.Base(opts.Path),
		Net:      opts.Net,
		Birthday: time.Now(),
	})
}

// Open opens an existing wallet file.
func (l *Loader) Open(ctx context.Context, opts *OpenOpts) (*Wallet, error) {
	w, err := l.bind(ctx, task.FnOpenWallet, &task.OpenWalletArgs{
		Path:     opts.Path,
		Password: opts.Password,
		Net:      opts.Net,
	}, nil)
	if err != nil {
		return nil, err
	}
	w.name = filepath.Base(opts.Path)
	w.net = opts.Net
	if l.meta != nil {
		if err := l.meta.SetLastOpened(w.name, time.Now()); err != nil {
			l.log.Errorf("error updating last-open time for wallet %s: %v", w.name, err)
		}
	}
	return w, nil
}

// RestoreFromSeed restores a wallet from its mnemonic.
func (l *Loader) RestoreFromSeed(ctx context.Context, opts *SeedOpts) (*Wallet, error) {
	return l.bind(ctx, task.FnRestoreFromSeed, &task.RestoreFromSeedArgs{
		Path:          opts.Path,
		Password:      opts.Password,
		Mnemonic:      opts.Mnemonic,
		Net:           opts.Net,
		RestoreHeight: opts.RestoreHeight,
	}, &db.WalletMeta{
		Name:          filepath.Base(opts.Path),
		Net:           opts.Net,
		RestoreHeight: opts.RestoreHeight,
		Birthday:      time.Now(),
		Recovered:     true,
	})
}

// RestoreFromKeys restores a wallet from an address and keys.
func (l *Loader) RestoreFromKeys(ctx context.Context, opts *KeysOpts) (*Wallet, error) {
	return l.bind(ctx, task.FnRestoreFromKeys, &task.RestoreFromKeysArgs{
		Path:          opts.Path,
		Password:      opts.Password,
		Language:      opts.Language,
		Net:           opts.Net,
		RestoreHeight: opts.RestoreHeight,
		Address:       opts.Address,
		ViewKey:       opts.ViewKey,
		SpendKey:      opts.SpendKey,
	}, &db.WalletMeta{
		Name:          filepath.Base(opts.Path),
		Net:           opts.Net,
		RestoreHeight: opts.RestoreHeight,
		Birthday:      time.Now(),
		Recovered:     true,
	})
}

// RestoreFromSpendKey restores a deterministic wallet from its spend key.
func (l *Loader) RestoreFromSpendKey(ctx context.Context, opts *SpendKeyOpts) (*Wallet, error) {
	return l.bind(ctx, task.FnRestoreFromSpendKey, &task.RestoreFromSpendKeyArgs{
		Path:          opts.Path,
		Password:      opts.Password,
		Language:      opts.Language,
		Net:           opts.Net,
		RestoreHeight: opts.RestoreHeight,
		SpendKey:      opts.SpendKey,
	}, &db.WalletMeta{
		Name:          filepath.Base(opts.Path),
		Net:           opts.Net,
		RestoreHeight: opts.RestoreHeight,
		Birthday:      time.Now(),
		Recovered:     true,
	})
}

// WalletExists reports whether a wallet file exists at path.
func (l *Loader) WalletExists(ctx context.Context, path string) (bool, error) {
	return call[bool](ctx, l.cl, task.FnWalletExists, &task.WalletExistsArgs{Path: path})
}

// ValidateAddress reports whether the address is valid on the network.
func (l *Loader) ValidateAddress(ctx context.Context, address string, net cs.Network) (bool, error) {
	return call[bool](ctx, l.cl, task.FnValidateAddress, &task.ValidateAddressArgs{Address: address, Net: net})
}

// call runs a task and asserts the result type.
func call[T any](ctx context.Context, cl *worker.Client, fn task.Func, args any) (T, error) {
	var zero T
	v, err := cl.RunTask(ctx, fn, args)
	if err != nil {
		return zero, err
	}
	res, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%s: unexpected result type %T", fn, v)
	}
	return res, nil
}

// ack runs an acknowledgement-only task.
func ack(ctx context.Context, cl *worker.Client, fn task.Func, args any) error {
	_, err := cl.RunTask(ctx, fn, args)
	return err
}

// Wallet is a facade over one native wallet handle.
type Wallet struct {
	cl   *worker.Client
	log  cs.Logger
	name string
	net  cs.Network

	mtx         sync.Mutex
	handle      task.Handle // 0 after Close
	feed        *worker.EventFeed
	watcherDone chan struct{}
}

// Name is the wallet's file name.
func (w *Wallet) Name() string { return w.name }

// Net is the network the wallet was opened on.
func (w *Wallet) Net() cs.Network { return w.net }

// hndl returns the wallet's handle, or ErrWalletClosed after Close.
func (w *Wallet) hndl() (task.Handle, error) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if w.handle == 0 {
		return 0, cs.NewError(cs.ErrWalletClosed, w.name)
	}
	return w.handle, nil
}

// DaemonSpec describes a daemon connection.
type DaemonSpec struct {
	Address  string
	Username string
	Password string
	UseSSL   bool
	Trusted  bool
	// Proxy is a SOCKS5 address, or empty for a direct connection.
	Proxy string
}

// ConnectDaemon configures and checks the wallet's daemon connection.
func (w *Wallet) ConnectDaemon(ctx context.Context, spec *DaemonSpec) error {
	h, err := w.hndl()
	if err != nil {
		return err
	}
	return ack(ctx, w.cl, task.FnInitDaemon, &task.InitDaemonArgs{
		Handle:   h,
		Address:  spec.Address,
		Username: spec.Username,
		Password: spec.Password,
		UseSSL:   spec.UseSSL,
		Trusted:  spec.Trusted,
		Proxy:    spec.Proxy,
	})
}

// Balance is a wallet balance pair.
type Balance struct {
	Full     cs.Amount
	Unlocked cs.Amount
}

// Balance retrieves the balances of account 0.
func (w *Wallet) Balance(ctx context.Context) (*Balance, error) {
	h, err := w.hndl()
	if err != nil {
		return nil, err
	}
	res, err := call[*task.BalanceResult](ctx, w.cl, task.FnBalance, &task.BalanceArgs{Handle: h})
	if err != nil {
		return nil, err
	}
	return &Balance{Full: cs.Amount(res.Full), Unlocked: cs.Amount(res.Unlocked)}, nil
}

// Heights retrieves the wallet's sync height and the daemon's height.
func (w *Wallet) Heights(ctx context.Context) (syncHeight, daemonHeight uint64, err error) {
	h, err := w.hndl()
	if err != nil {
		return 0, 0, err
	}
	res, err := call[*task.HeightsResult](ctx, w.cl, task.FnHeights, &task.HeightsArgs{Handle: h})
	if err != nil {
		return 0, 0, err
	}
	return res.SyncHeight, res.DaemonHeight, nil
}

// Address retrieves the subaddress for the account and index. (0, 0) is the
// primary address.
func (w *Wallet) Address(ctx context.Context, account, index uint64) (string, error) {
	h, err := w.hndl()
	if err != nil {
		return "", err
	}
	return call[string](ctx, w.cl, task.FnAddress, &task.AddressArgs{Handle: h, Account: account, Index: index})
}

// Keys is the wallet's key material.
type Keys struct {
	Mnemonic       string
	SecretViewKey  string
	PublicViewKey  string
	SecretSpendKey string
	PublicSpendKey string
}

// Seed retrieves the wallet's mnemonic.
func (w *Wallet) Seed(ctx context.Context) (string, error) {
	keys, err := w.Keys(ctx)
	if err != nil {
		return "", err
	}
	return keys.Mnemonic, nil
}

// Keys retrieves the wallet's key material.
func (w *Wallet) Keys(ctx context.Context) (*Keys, error) {
	h, err := w.hndl()
	if err != nil {
		return nil, err
	}
	res, err := call[*task.KeysResult](ctx, w.cl, task.FnKeys, &task.KeysArgs{Handle: h})
	if err != nil {
		return nil, err
	}
	return &Keys{
		Mnemonic:       res.Mnemonic,
		SecretViewKey:  res.SecretViewKey,
		PublicViewKey:  res.PublicViewKey,
		SecretSpendKey: res.SecretSpendKey,
		PublicSpendKey: res.PublicSpendKey,
	}, nil
}

// Transaction is one entry from the wallet's history.
type Transaction struct {
	Hash          string
	Incoming      bool
	Amount        cs.Amount
	Fee           cs.Amount
	BlockHeight   uint64
	Confirmations uint64
	Timestamp     time.Time
	Pending       bool
	Failed        bool
}

// History retrieves the wallet's transaction history.
func (w *Wallet) History(ctx context.Context) ([]*Transaction, error) {
	h, err := w.hndl()
	if err != nil {
		return nil, err
	}
	histH, err := call[task.Handle](ctx, w.cl, task.FnTransactionHistory, &task.TransactionHistoryArgs{Handle: h})
	if err != nil {
		return nil, err
	}
	infos, err := call[[]*native.TxInfo](ctx, w.cl, task.FnTransactions, &task.TransactionsArgs{History: histH})
	if err != nil {
		return nil, err
	}
	txns := make([]*Transaction, 0, len(infos))
	for _, info := range infos {
		txns = append(txns, &Transaction{
			Hash:          info.Hash,
			Incoming:      info.Direction == native.DirectionIn,
			Amount:        cs.Amount(info.Amount),
			Fee:           cs.Amount(info.Fee),
			BlockHeight:   info.BlockHeight,
			Confirmations: info.Confirmations,
			Timestamp:     time.Unix(int64(info.Timestamp), 0),
			Pending:       info.Pending,
			Failed:        info.Failed,
		})
	}
	return txns, nil
}

// Output is one wallet output.
type Output struct {
	KeyImage string
	Amount   cs.Amount
	Spent    bool
	Unlocked bool
	Frozen   bool
	Account  uint32
}

// Outputs enumerates every output the wallet knows about.
func (w *Wallet) Outputs(ctx context.Context) ([]*Output, error) {
	h, err := w.hndl()
	if err != nil {
		return nil, err
	}
	coins, err := call[[]native.Coin](ctx, w.cl, task.FnCoins, &task.CoinsArgs{Handle: h})
	if err != nil {
		return nil, err
	}
	outputs := make([]*Output, 0, len(coins))
	for _, c := range coins {
		outputs = append(outputs, &Output{
			KeyImage: c.KeyImage,
			Amount:   cs.Amount(c.Amount),
			Spent:    c.Spent,
			Unlocked: c.Unlocked,
			Frozen:   c.Frozen,
			Account:  c.Account,
		})
	}
	return outputs, nil
}

// FreezeOutput makes the output with the given key image unspendable until
// thawed.
func (w *Wallet) FreezeOutput(ctx context.Context, keyImage string) error {
	h, err := w.hndl()
	if err != nil {
		return err
	}
	return ack(ctx, w.cl, task.FnFreezeOutput, &task.FreezeOutputArgs{Handle: h, KeyImage: keyImage})
}

// ThawOutput reverses FreezeOutput.
func (w *Wallet) ThawOutput(ctx context.Context, keyImage string) error {
	h, err := w.hndl()
	if err != nil {
		return err
	}
	return ack(ctx, w.cl, task.FnThawOutput, &task.ThawOutputArgs{Handle: h, KeyImage: keyImage})
}

// SendSpec describes a transfer to construct.
type SendSpec struct {
	Dest     string
	Amount   cs.Amount
	Priority native.Priority
	Account  uint32
	// SweepAll sends the entire unlocked balance minus fee; Amount is
	// ignored.
	SweepAll bool
}

// PendingTransaction is a constructed, not-yet-broadcast transfer. Commit it
// once, or let it drop; the native object is released either way.
type PendingTransaction struct {
	w      *Wallet
	mtx    sync.Mutex
	handle task.Handle

	TxID   string
	Amount cs.Amount
	Fee    cs.Amount
	// Count is the number of transactions the transfer was split into.
	Count uint64
}

// CreateTransaction constructs an unrelayed transaction.
func (w *Wallet) CreateTransaction(ctx context.Context, spec *SendSpec) (*PendingTransaction, error) {
	h, err := w.hndl()
	if err != nil {
		return nil, err
	}
	res, err := call[*task.CreateTransactionResult](ctx, w.cl, task.FnCreateTransaction, &task.CreateTransactionArgs{
		Handle:   h,
		Dest:     spec.Dest,
		Amount:   uint64(spec.Amount),
		Priority: int(spec.Priority),
		Account:  spec.Account,
		SweepAll: spec.SweepAll,
	})
	if err != nil {
		return nil, err
	}
	return &PendingTransaction{
		w:      w,
		handle: res.Tx,
		TxID:   res.TxID,
		Amount: cs.Amount(res.Amount),
		Fee:    cs.Amount(res.Fee),
		Count:  res.Count,
	}, nil
}

// Commit broadcasts the transaction and returns its id. A
// PendingTransaction is single-use; Commit on an already-committed
// transaction fails, as does committing after the wallet closed.
func (tx *PendingTransaction) Commit(ctx context.Context) (string, error) {
	if _, err := tx.w.hndl(); err != nil {
		return "", err
	}
	tx.mtx.Lock()
	h := tx.handle
	tx.handle = 0
	tx.mtx.Unlock()
	if h == 0 {
		return "", cs.NewError(cs.ErrBadHandle, "transaction already committed")
	}
	return call[string](ctx, tx.w.cl, task.FnCommitTransaction, &task.CommitTransactionArgs{Tx: h})
}

// SignMessage signs a message with the wallet's spend key.
func (w *Wallet) SignMessage(ctx context.Context, message string) (string, error) {
	h, err := w.hndl()
	if err != nil {
		return "", err
	}
	return call[string](ctx, w.cl, task.FnSignMessage, &task.SignMessageArgs{Handle: h, Message: message})
}

// VerifyMessage checks a signature produced by SignMessage.
func (w *Wallet) VerifyMessage(ctx context.Context, message, address, signature string) (bool, error) {
	h, err := w.hndl()
	if err != nil {
		return false, err
	}
	return call[bool](ctx, w.cl, task.FnVerifyMessage, &task.VerifyMessageArgs{
		Handle:    h,
		Message:   message,
		Address:   address,
		Signature: signature,
	})
}

// ValidateAddress reports whether the address is valid on this wallet's
// network.
func (w *Wallet) ValidateAddress(ctx context.Context, address string) (bool, error) {
	if _, err := w.hndl(); err != nil {
		return false, err
	}
	return call[bool](ctx, w.cl, task.FnValidateAddress, &task.ValidateAddressArgs{Address: address, Net: w.net})
}

// ChangePassword changes the wallet password.
func (w *Wallet) ChangePassword(ctx context.Context, password string) error {
	h, err := w.hndl()
	if err != nil {
		return err
	}
	return ack(ctx, w.cl, task.FnChangePassword, &task.ChangePasswordArgs{Handle: h, Password: password})
}

// Save stores the wallet file.
func (w *Wallet) Save(ctx context.Context) error {
	h, err := w.hndl()
	if err != nil {
		return err
	}
	return ack(ctx, w.cl, task.FnSave, &task.SaveArgs{Handle: h})
}

// WatchEvents starts polling this wallet at the given interval and delivers
// change events to the Listener. A second call replaces the previous
// listener and restarts polling, so current values are re-reported as
// changes.
func (w *Wallet) WatchEvents(ctx context.Context, interval time.Duration, l Listener) error {
	h, err := w.hndl()
	if err != nil {
		return err
	}
	w.stopWatcher()
	// Subscribe before polling starts so the first tick's snapshot events
	// cannot slip past the feed.
	feed := w.cl.EventFeed()
	if err := ack(ctx, w.cl, task.FnStartPolling, &task.StartPollingArgs{Handle: h, Interval: interval}); err != nil {
		feed.ReturnFeed()
		return err
	}
	done := make(chan struct{})
	w.mtx.Lock()
	w.feed, w.watcherDone = feed, done
	w.mtx.Unlock()
	go func() {
		defer close(done)
		for ev := range feed.C {
			switch e := ev.(type) {
			case worker.BalancesChanged:
				l.BalancesChanged(cs.Amount(e.Full), cs.Amount(e.Unlocked))
			case worker.NewBlock:
				l.NewBlock(e.DaemonHeight)
			case worker.SyncUpdate:
				l.SyncUpdate(e.SyncHeight, e.DaemonHeight)
			}
		}
	}()
	return nil
}

// StopWatching cancels polling and releases the Listener. A no-op without a
// prior WatchEvents.
func (w *Wallet) StopWatching(ctx context.Context) error {
	if _, err := w.hndl(); err != nil {
		return err
	}
	w.stopWatcher()
	return ack(ctx, w.cl, task.FnStopPolling, &task.StopPollingArgs{})
}

// stopWatcher unsubscribes the event feed and waits for the listener
// goroutine to drain.
func (w *Wallet) stopWatcher() {
	w.mtx.Lock()
	feed, done := w.feed, w.watcherDone
	w.feed, w.watcherDone = nil, nil
	w.mtx.Unlock()
	if feed == nil {
		return
	}
	feed.ReturnFeed()
	<-done
}

// Close stops watching and closes the native wallet, optionally saving it
// first. Close is idempotent; every other method fails with ErrWalletClosed
// afterward.
func (w *Wallet) Close(ctx context.Context, save bool) error {
	w.mtx.Lock()
	h := w.handle
	w.handle = 0
	w.mtx.Unlock()
	if h == 0 {
		return nil
	}
	w.stopWatcher()
	// Closing the handle also cancels any polling the worker is running for
	// it.
	return ack(ctx, w.cl, task.FnCloseWallet, &task.CloseWalletArgs{Handle: h, Save: save})
}
