// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

// Package nativetest provides an in-memory native.Manager for tests. Every
// value a fake wallet reports is a plain field, and any call can be made to
// fail by setting the corresponding error.
package nativetest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cypherstack/cs-monero/cs"
	"github.com/cypherstack/cs-monero/native"
)

// Manager is a fake native.Manager. The zero value is usable.
type Manager struct {
	mtx sync.Mutex
	// Wallets tracks every wallet created or opened, keyed by path.
	Wallets map[string]*Wallet
	// FailNext, when set, causes the next factory call to fail with this
	// error and clears itself.
	FailNext error
	// Exists is the set of paths for which WalletExists reports true.
	Exists map[string]bool
	// ValidAddrs is the set of addresses ValidateAddress accepts. A nil map
	// accepts everything.
	ValidAddrs map[string]bool
}

// NewManager creates a fake Manager.
func NewManager() *Manager {
	return &Manager{
		Wallets: make(map[string]*Wallet),
		Exists:  make(map[string]bool),
	}
}

func (m *Manager) newWallet(path, mnemonic string) (native.Wallet, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.FailNext != nil {
		err := m.FailNext
		m.FailNext = nil
		return nil, err
	}
	w := &Wallet{
		Path:     path,
		Mnemonic: mnemonic,
		Addrs:    map[[2]uint64]string{{0, 0}: "4fake" + path},
	}
	m.Wallets[path] = w
	m.Exists[path] = true
	return w, nil
}

func (m *Manager) CreateWallet(path, password, language string, net cs.Network) (native.Wallet, error) {
	return m.newWallet(path, "fake seed words")
}

func (m *Manager) OpenWallet(path, password string, net cs.Network) (native.Wallet, error) {
	m.mtx.Lock()
	existing := m.Wallets[path]
	m.mtx.Unlock()
	if existing != nil {
		return existing, nil
	}
	return m.newWallet(path, "fake seed words")
}

func (m *Manager) RecoverFromSeed(path, password, mnemonic string, net cs.Network, restoreHeight uint64) (native.Wallet, error) {
	return m.newWallet(path, mnemonic)
}

func (m *Manager) RecoverFromKeys(path, password, language string, net cs.Network, restoreHeight uint64, address, viewKey, spendKey string) (native.Wallet, error) {
	return m.newWallet(path, "")
}

func (m *Manager) RecoverFromSpendKey(path, password, language string, net cs.Network, restoreHeight uint64, spendKey string) (native.Wallet, error) {
	return m.newWallet(path, "")
}

func (m *Manager) CloseWallet(nw native.Wallet, save bool) error {
	w, ok := nw.(*Wallet)
	if !ok {
		return fmt.Errorf("foreign wallet type %T", nw)
	}
	w.mtx.Lock()
	w.Closed = true
	w.SavedOnClose = save
	w.mtx.Unlock()
	return nil
}

func (m *Manager) WalletExists(path string) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.Exists[path]
}

func (m *Manager) ValidateAddress(address string, net cs.Network) bool {
	if m.ValidAddrs == nil {
		return address != ""
	}
	return m.ValidAddrs[address]
}

var _ native.Manager = (*Manager)(nil)

// Wallet is a fake native.Wallet.
type Wallet struct {
	mtx sync.Mutex

	Path     string
	Mnemonic string
	Addrs    map[[2]uint64]string

	FullBalance      uint64
	SpendableBalance uint64
	WalletHeight     uint64
	ChainHeight      uint64

	CoinSet []native.Coin
	Txns    []*native.TxInfo

	Password     string
	Stores       int
	Closed       bool
	SavedOnClose bool
	Daemon       string

	// Errs maps a method name to the error it should return.
	Errs map[string]error
	// Blocks maps a method name to a channel the method waits on before
	// proceeding.
	Blocks map[string]chan struct{}
}

var _ native.Wallet = (*Wallet)(nil)

// SetState updates the balances and heights reported by the wallet.
func (w *Wallet) SetState(full, unlocked, syncHeight, daemonHeight uint64) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.FullBalance, w.SpendableBalance = full, unlocked
	w.WalletHeight, w.ChainHeight = syncHeight, daemonHeight
}

// Fail makes the named method return err until cleared with Fail(method,
// nil).
func (w *Wallet) Fail(method string, err error) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if w.Errs == nil {
		w.Errs = make(map[string]error)
	}
	if err == nil {
		delete(w.Errs, method)
		return
	}
	w.Errs[method] = err
}

func (w *Wallet) err(method string) error {
	return w.Errs[method]
}

// Block makes the named method stall until release is closed.
func (w *Wallet) Block(method string, release chan struct{}) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if w.Blocks == nil {
		w.Blocks = make(map[string]chan struct{})
	}
	w.Blocks[method] = release
}

func (w *Wallet) wait(method string) {
	w.mtx.Lock()
	release := w.Blocks[method]
	w.mtx.Unlock()
	if release != nil {
		<-release
	}
}

func (w *Wallet) InitDaemon(address, username, password string, useSSL, trusted bool, proxy string) error {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if err := w.err("InitDaemon"); err != nil {
		return err
	}
	w.Daemon = address
	return nil
}

func (w *Wallet) Balance(account uint32) (uint64, error) {
	w.wait("Balance")
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.FullBalance, w.err("Balance")
}

func (w *Wallet) UnlockedBalance(account uint32) (uint64, error) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.SpendableBalance, w.err("UnlockedBalance")
}

func (w *Wallet) SyncHeight() (uint64, error) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.WalletHeight, w.err("SyncHeight")
}

func (w *Wallet) DaemonHeight() (uint64, error) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.ChainHeight, w.err("DaemonHeight")
}

func (w *Wallet) Address(account, index uint64) (string, error) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if err := w.err("Address"); err != nil {
		return "", err
	}
	addr, found := w.Addrs[[2]uint64{account, index}]
	if !found {
		addr = fmt.Sprintf("4fake-%d-%d", account, index)
	}
	return addr, nil
}

func (w *Wallet) Seed() (string, error) {
	return w.Mnemonic, w.err("Seed")
}

func (w *Wallet) SecretViewKey() (string, error)  { return "svk", w.err("SecretViewKey") }
func (w *Wallet) PublicViewKey() (string, error)  { return "pvk", w.err("PublicViewKey") }
func (w *Wallet) SecretSpendKey() (string, error) { return "ssk", w.err("SecretSpendKey") }
func (w *Wallet) PublicSpendKey() (string, error) { return "psk", w.err("PublicSpendKey") }

func (w *Wallet) History() (native.History, error) {
	if err := w.err("History"); err != nil {
		return nil, err
	}
	return &History{w: w}, nil
}

func (w *Wallet) Coins() ([]native.Coin, error) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.CoinSet, w.err("Coins")
}

func (w *Wallet) findCoin(keyImage string) (int, error) {
	for i, c := range w.CoinSet {
		if c.KeyImage == keyImage {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no output with key image %s", keyImage)
}

func (w *Wallet) FreezeOutput(keyImage string) error {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if err := w.err("FreezeOutput"); err != nil {
		return err
	}
	i, err := w.findCoin(keyImage)
	if err != nil {
		return err
	}
	w.CoinSet[i].Frozen = true
	return nil
}

func (w *Wallet) ThawOutput(keyImage string) error {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if err := w.err("ThawOutput"); err != nil {
		return err
	}
	i, err := w.findCoin(keyImage)
	if err != nil {
		return err
	}
	w.CoinSet[i].Frozen = false
	return nil
}

func (w *Wallet) CreateTransaction(spec native.TxSpec) (native.PendingTx, error) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if err := w.err("CreateTransaction"); err != nil {
		return nil, err
	}
	amt := spec.Amount
	if spec.SweepAll {
		amt = w.SpendableBalance
	}
	if amt > w.SpendableBalance {
		return nil, errors.New("not enough money")
	}
	return &PendingTx{ID: "fake-txid", Amt: amt, TxFee: 1e9, W: w}, nil
}

func (w *Wallet) SignMessage(message string) (string, error) {
	if err := w.err("SignMessage"); err != nil {
		return "", err
	}
	return "Sig" + message, nil
}

func (w *Wallet) VerifyMessage(message, address, signature string) (bool, error) {
	if err := w.err("VerifyMessage"); err != nil {
		return false, err
	}
	return signature == "Sig"+message, nil
}

func (w *Wallet) SetPassword(password string) error {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if err := w.err("SetPassword"); err != nil {
		return err
	}
	w.Password = password
	return nil
}

func (w *Wallet) Store() error {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if err := w.err("Store"); err != nil {
		return err
	}
	w.Stores++
	return nil
}

// History is a fake native.History backed by the wallet's Txns field.
type History struct {
	w *Wallet
}

func (h *History) Refresh() error { return h.w.err("HistoryRefresh") }

func (h *History) Count() int {
	h.w.mtx.Lock()
	defer h.w.mtx.Unlock()
	return len(h.w.Txns)
}

func (h *History) Transaction(i int) (*native.TxInfo, error) {
	h.w.mtx.Lock()
	defer h.w.mtx.Unlock()
	if i < 0 || i >= len(h.w.Txns) {
		return nil, fmt.Errorf("no transaction at index %d", i)
	}
	return h.w.Txns[i], nil
}

// PendingTx is a fake native.PendingTx.
type PendingTx struct {
	ID        string
	Amt       uint64
	TxFee     uint64
	W         *Wallet
	Committed bool
	FailWith  error
}

func (tx *PendingTx) Commit() error {
	if tx.FailWith != nil {
		return tx.FailWith
	}
	tx.Committed = true
	return nil
}

func (tx *PendingTx) TxID() string   { return tx.ID }
func (tx *PendingTx) Amount() uint64 { return tx.Amt }
func (tx *PendingTx) Fee() uint64    { return tx.TxFee }
func (tx *PendingTx) Count() uint64  { return 1 }
