// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

//go:build xmr

package cwallet2

/*
#cgo LDFLAGS: -lwallet2_api_c
#cgo linux,amd64 LDFLAGS: -L${SRCDIR}/../lib/linux-amd64 -Wl,-rpath,$ORIGIN
#cgo darwin,amd64 LDFLAGS: -L${SRCDIR}/../lib/darwin-amd64
#cgo darwin,arm64 LDFLAGS: -L${SRCDIR}/../lib/darwin-arm64
#cgo windows,amd64 LDFLAGS: -L${SRCDIR}/../lib/windows-amd64

// Network types
#define NetworkType_MAINNET  0
#define NetworkType_TESTNET  1
#define NetworkType_STAGENET 2

// Wallet status
#define WalletStatus_Ok       0
#define WalletStatus_Error    1
#define WalletStatus_Critical 2

// Connection status
#define WalletConnectionStatus_Disconnected  0
#define WalletConnectionStatus_Connected     1
#define WalletConnectionStatus_WrongVersion  2

#include <stdint.h>
#include <stdbool.h>
#include <stdlib.h>

// WalletManagerFactory
extern void* MONERO_WalletManagerFactory_getWalletManager();
extern void MONERO_WalletManagerFactory_setLogLevel(int level);

// WalletManager
extern void* MONERO_WalletManager_createWallet(void* wm_ptr, const char* path, const char* password, const char* language, int networkType);
extern void* MONERO_WalletManager_openWallet(void* wm_ptr, const char* path, const char* password, int networkType);
extern void* MONERO_WalletManager_recoveryWallet(void* wm_ptr, const char* path, const char* password, const char* mnemonic, int networkType, uint64_t restoreHeight, uint64_t kdfRounds, const char* seedOffset);
extern void* MONERO_WalletManager_createWalletFromKeys(void* wm_ptr, const char* path, const char* password, const char* language, int nettype, uint64_t restoreHeight, const char* addressString, const char* viewKeyString, const char* spendKeyString, uint64_t kdf_rounds);
extern void* MONERO_WalletManager_createDeterministicWalletFromSpendKey(void* wm_ptr, const char* path, const char* password, const char* language, int nettype, uint64_t restoreHeight, const char* spendKeyString, uint64_t kdf_rounds);
extern bool MONERO_WalletManager_closeWallet(void* wm_ptr, void* wallet_ptr, bool store);
extern bool MONERO_WalletManager_walletExists(void* wm_ptr, const char* path);
extern const char* MONERO_WalletManager_errorString(void* wm_ptr);

// Wallet - Status/Error
extern int MONERO_Wallet_status(void* wallet_ptr);
extern const char* MONERO_Wallet_errorString(void* wallet_ptr);

// Wallet - Connection/Sync
extern bool MONERO_Wallet_init(void* wallet_ptr, const char* daemon_address, uint64_t upper_transaction_size_limit, const char* daemon_username, const char* daemon_password, bool use_ssl, bool lightWallet, const char* proxy_address);
extern int MONERO_Wallet_connected(void* wallet_ptr);
extern void MONERO_Wallet_setTrustedDaemon(void* wallet_ptr, bool arg);
extern void MONERO_Wallet_startRefresh(void* wallet_ptr);
extern uint64_t MONERO_Wallet_blockChainHeight(void* wallet_ptr);
extern uint64_t MONERO_Wallet_daemonBlockChainHeight(void* wallet_ptr);
extern void MONERO_Wallet_setRefreshFromBlockHeight(void* wallet_ptr, uint64_t refresh_from_block_height);
extern void MONERO_Wallet_setRecoveringFromSeed(void* wallet_ptr, bool recoveringFromSeed);

// Wallet - Balance
extern uint64_t MONERO_Wallet_balance(void* wallet_ptr, uint32_t accountIndex);
extern uint64_t MONERO_Wallet_unlockedBalance(void* wallet_ptr, uint32_t accountIndex);

// Wallet - Addresses
extern const char* MONERO_Wallet_address(void* wallet_ptr, uint64_t accountIndex, uint64_t addressIndex);
extern bool MONERO_Wallet_addressValid(const char* str, int nettype);

// Wallet - Keys/Seed
extern const char* MONERO_Wallet_seed(void* wallet_ptr, const char* seed_offset);
extern const char* MONERO_Wallet_secretViewKey(void* wallet_ptr);
extern const char* MONERO_Wallet_publicViewKey(void* wallet_ptr);
extern const char* MONERO_Wallet_secretSpendKey(void* wallet_ptr);
extern const char* MONERO_Wallet_publicSpendKey(void* wallet_ptr);

// Wallet - Storage
extern bool MONERO_Wallet_store(void* wallet_ptr, const char* path);
extern bool MONERO_Wallet_setPassword(void* wallet_ptr, const char* password);

// Wallet - Messages
extern const char* MONERO_Wallet_signMessage(void* wallet_ptr, const char* message, const char* address);
extern bool MONERO_Wallet_verifySignedMessage(void* wallet_ptr, const char* message, const char* address, const char* signature);

// Wallet - Transactions
extern void* MONERO_Wallet_createTransaction(void* wallet_ptr, const char* dst_addr, const char* payment_id, uint64_t amount, uint32_t mixin_count, int pendingTransactionPriority, uint32_t subaddr_account, const char* preferredInputs, const char* separator);
extern void* MONERO_Wallet_createTransactionMultDest(void* wallet_ptr, const char* dst_addr_list, const char* dst_addr_list_separator, const char* payment_id, bool amount_sweep_all, const char* amount_list, const char* amount_list_separator, uint32_t mixin_count, int pendingTransactionPriority, uint32_t subaddr_account, const char* preferredInputs, const char* preferredInputs_separator);
extern void* MONERO_Wallet_history(void* wallet_ptr);

// PendingTransaction
extern int MONERO_PendingTransaction_status(void* pendingTx_ptr);
extern const char* MONERO_PendingTransaction_errorString(void* pendingTx_ptr);
extern bool MONERO_PendingTransaction_commit(void* pendingTx_ptr, const char* filename, bool overwrite);
extern uint64_t MONERO_PendingTransaction_amount(void* pendingTx_ptr);
extern uint64_t MONERO_PendingTransaction_fee(void* pendingTx_ptr);
extern const char* MONERO_PendingTransaction_txid(void* pendingTx_ptr, const char* separator);
extern uint64_t MONERO_PendingTransaction_txCount(void* pendingTx_ptr);

// TransactionHistory
extern int MONERO_TransactionHistory_count(void* txHistory_ptr);
extern void* MONERO_TransactionHistory_transaction(void* txHistory_ptr, int index);
extern void MONERO_TransactionHistory_refresh(void* txHistory_ptr);

// TransactionInfo
extern int MONERO_TransactionInfo_direction(void* txInfo_ptr);
extern bool MONERO_TransactionInfo_isPending(void* txInfo_ptr);
extern bool MONERO_TransactionInfo_isFailed(void* txInfo_ptr);
extern uint64_t MONERO_TransactionInfo_amount(void* txInfo_ptr);
extern uint64_t MONERO_TransactionInfo_fee(void* txInfo_ptr);
extern uint64_t MONERO_TransactionInfo_blockHeight(void* txInfo_ptr);
extern uint64_t MONERO_TransactionInfo_confirmations(void* txInfo_ptr);
extern const char* MONERO_TransactionInfo_hash(void* txInfo_ptr);
extern uint64_t MONERO_TransactionInfo_timestamp(void* txInfo_ptr);

// Coins
extern void* MONERO_Wallet_coins(void* wallet_ptr);
extern void MONERO_Coins_refresh(void* coins_ptr);
extern int MONERO_Coins_count(void* coins_ptr);
extern void* MONERO_Coins_coin(void* coins_ptr, int index);
extern void MONERO_Coins_setFrozen(void* coins_ptr, int index);
extern void MONERO_Coins_thaw(void* coins_ptr, int index);
extern const char* MONERO_CoinsInfo_keyImage(void* coinsInfo_ptr);
extern uint64_t MONERO_CoinsInfo_amount(void* coinsInfo_ptr);
extern bool MONERO_CoinsInfo_spent(void* coinsInfo_ptr);
extern bool MONERO_CoinsInfo_unlocked(void* coinsInfo_ptr);
extern bool MONERO_CoinsInfo_frozen(void* coinsInfo_ptr);
extern uint32_t MONERO_CoinsInfo_subaddrAccount(void* coinsInfo_ptr);
*/
import "C"
import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/cypherstack/cs-monero/cs"
	"github.com/cypherstack/cs-monero/native"
)

// Available reports whether this binary was built with native wallet
// support.
const Available = true

// kdfRounds is passed to every wallet-creation entry point.
const kdfRounds = 1

func cgoNet(net cs.Network) C.int {
	switch net {
	case cs.Testnet:
		return C.NetworkType_TESTNET
	case cs.Stagenet:
		return C.NetworkType_STAGENET
	default:
		return C.NetworkType_MAINNET
	}
}

// manager wraps the native library's process-wide wallet manager.
type manager struct {
	ptr unsafe.Pointer
}

var (
	theManager  *manager
	managerOnce sync.Once
)

// TheManager returns the process-wide native.Manager. The underlying native
// allocation is made once, on first call, and lives for the process lifetime.
func TheManager() native.Manager {
	managerOnce.Do(func() {
		theManager = &manager{ptr: C.MONERO_WalletManagerFactory_getWalletManager()}
	})
	return theManager
}

// SetLogLevel sets the native library's log level, -1 (silent) through 4.
func SetLogLevel(level int) {
	C.MONERO_WalletManagerFactory_setLogLevel(C.int(level))
}

func (m *manager) errorString() string {
	return C.GoString(C.MONERO_WalletManager_errorString(m.ptr))
}

// wrap checks the freshly-created wallet's status. The native layer reports
// creation failures through the wallet object's status, not the manager
// call's return value.
func (m *manager) wrap(ptr unsafe.Pointer) (native.Wallet, error) {
	if ptr == nil {
		return nil, errors.New(m.errorString())
	}
	w := &wallet{ptr: ptr}
	if err := w.statusError(); err != nil {
		return nil, err
	}
	return w, nil
}

func (m *manager) CreateWallet(path, password, language string, net cs.Network) (native.Wallet, error) {
	cPath := C.CString(path)
	cPassword := C.CString(password)
	cLanguage := C.CString(language)
	defer C.free(unsafe.Pointer(cPath))
	defer C.free(unsafe.Pointer(cPassword))
	defer C.free(unsafe.Pointer(cLanguage))

	return m.wrap(C.MONERO_WalletManager_createWallet(m.ptr, cPath, cPassword, cLanguage, cgoNet(net)))
}

func (m *manager) OpenWallet(path, password string, net cs.Network) (native.Wallet, error) {
	cPath := C.CString(path)
	cPassword := C.CString(password)
	defer C.free(unsafe.Pointer(cPath))
	defer C.free(unsafe.Pointer(cPassword))

	return m.wrap(C.MONERO_WalletManager_openWallet(m.ptr, cPath, cPassword, cgoNet(net)))
}

func (m *manager) RecoverFromSeed(path, password, mnemonic string, net cs.Network, restoreHeight uint64) (native.Wallet, error) {
	cPath := C.CString(path)
	cPassword := C.CString(password)
	cMnemonic := C.CString(mnemonic)
	cSeedOffset := C.CString("")
	defer C.free(unsafe.Pointer(cPath))
	defer C.free(unsafe.Pointer(cPassword))
	defer C.free(unsafe.Pointer(cMnemonic))
	defer C.free(unsafe.Pointer(cSeedOffset))

	w, err := m.wrap(C.MONERO_WalletManager_recoveryWallet(
		m.ptr, cPath, cPassword, cMnemonic,
		cgoNet(net), C.uint64_t(restoreHeight), kdfRounds, cSeedOffset,
	))
	if err != nil {
		return nil, err
	}
	w.(*wallet).setRestorePoint(restoreHeight)
	return w, nil
}

func (m *manager) RecoverFromKeys(path, password, language string, net cs.Network, restoreHeight uint64, address, viewKey, spendKey string) (native.Wallet, error) {
	cPath := C.CString(path)
	cPassword := C.CString(password)
	cLanguage := C.CString(language)
	cAddress := C.CString(address)
	cViewKey := C.CString(viewKey)
	cSpendKey := C.CString(spendKey)
	defer C.free(unsafe.Pointer(cPath))
	defer C.free(unsafe.Pointer(cPassword))
	defer C.free(unsafe.Pointer(cLanguage))
	defer C.free(unsafe.Pointer(cAddress))
	defer C.free(unsafe.Pointer(cViewKey))
	defer C.free(unsafe.Pointer(cSpendKey))

	w, err := m.wrap(C.MONERO_WalletManager_createWalletFromKeys(
		m.ptr, cPath, cPassword, cLanguage,
		cgoNet(net), C.uint64_t(restoreHeight),
		cAddress, cViewKey, cSpendKey, kdfRounds,
	))
	if err != nil {
		return nil, err
	}
	w.(*wallet).setRestorePoint(restoreHeight)
	return w, nil
}

func (m *manager) RecoverFromSpendKey(path, password, language string, net cs.Network, restoreHeight uint64, spendKey string) (native.Wallet, error) {
	cPath := C.CString(path)
	cPassword := C.CString(password)
	cLanguage := C.CString(language)
	cSpendKey := C.CString(spendKey)
	defer C.free(unsafe.Pointer(cPath))
	defer C.free(unsafe.Pointer(cPassword))
	defer C.free(unsafe.Pointer(cLanguage))
	defer C.free(unsafe.Pointer(cSpendKey))

	w, err := m.wrap(C.MONERO_WalletManager_createDeterministicWalletFromSpendKey(
		m.ptr, cPath, cPassword, cLanguage,
		cgoNet(net), C.uint64_t(restoreHeight), cSpendKey, kdfRounds,
	))
	if err != nil {
		return nil, err
	}
	w.(*wallet).setRestorePoint(restoreHeight)
	return w, nil
}

func (m *manager) CloseWallet(nw native.Wallet, save bool) error {
	w, ok := nw.(*wallet)
	if !ok {
		return fmt.Errorf("foreign wallet type %T", nw)
	}
	if !C.MONERO_WalletManager_closeWallet(m.ptr, w.ptr, C.bool(save)) {
		return errors.New(m.errorString())
	}
	w.ptr = nil
	return nil
}

func (m *manager) WalletExists(path string) bool {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	return bool(C.MONERO_WalletManager_walletExists(m.ptr, cPath))
}

func (m *manager) ValidateAddress(address string, net cs.Network) bool {
	cAddr := C.CString(address)
	defer C.free(unsafe.Pointer(cAddr))
	return bool(C.MONERO_Wallet_addressValid(cAddr, cgoNet(net)))
}

// wallet implements native.Wallet over a wallet2 instance.
type wallet struct {
	ptr unsafe.Pointer
}

// statusError returns the wallet's last-operation error, or nil if the
// status is OK. wallet2 reports errors out-of-band from the call that caused
// them, so this runs after every fallible native call.
func (w *wallet) statusError() error {
	if C.MONERO_Wallet_status(w.ptr) == C.WalletStatus_Ok {
		return nil
	}
	return errors.New(C.GoString(C.MONERO_Wallet_errorString(w.ptr)))
}

// setRestorePoint marks the wallet as recovering so wallet2 scans from the
// restore height instead of the chain tip.
func (w *wallet) setRestorePoint(restoreHeight uint64) {
	C.MONERO_Wallet_setRecoveringFromSeed(w.ptr, C.bool(true))
	C.MONERO_Wallet_setRefreshFromBlockHeight(w.ptr, C.uint64_t(restoreHeight))
}

func (w *wallet) InitDaemon(address, username, password string, useSSL, trusted bool, proxy string) error {
	cAddr := C.CString(address)
	cUser := C.CString(username)
	cPass := C.CString(password)
	cProxy := C.CString(proxy)
	defer C.free(unsafe.Pointer(cAddr))
	defer C.free(unsafe.Pointer(cUser))
	defer C.free(unsafe.Pointer(cPass))
	defer C.free(unsafe.Pointer(cProxy))

	if !C.MONERO_Wallet_init(w.ptr, cAddr, 0, cUser, cPass, C.bool(useSSL), C.bool(false), cProxy) {
		if err := w.statusError(); err != nil {
			return err
		}
		return errors.New("daemon init failed")
	}
	if trusted {
		C.MONERO_Wallet_setTrustedDaemon(w.ptr, C.bool(true))
	}
	if C.MONERO_Wallet_connected(w.ptr) == C.WalletConnectionStatus_Disconnected {
		return errors.New("failed to connect to daemon: disconnected")
	}
	// Start the background refresh thread so heights and balances advance.
	C.MONERO_Wallet_startRefresh(w.ptr)
	return nil
}

func (w *wallet) Balance(account uint32) (uint64, error) {
	return uint64(C.MONERO_Wallet_balance(w.ptr, C.uint32_t(account))), nil
}

func (w *wallet) UnlockedBalance(account uint32) (uint64, error) {
	return uint64(C.MONERO_Wallet_unlockedBalance(w.ptr, C.uint32_t(account))), nil
}

func (w *wallet) SyncHeight() (uint64, error) {
	return uint64(C.MONERO_Wallet_blockChainHeight(w.ptr)), nil
}

func (w *wallet) DaemonHeight() (uint64, error) {
	return uint64(C.MONERO_Wallet_daemonBlockChainHeight(w.ptr)), nil
}

func (w *wallet) Address(account, index uint64) (string, error) {
	addr := C.GoString(C.MONERO_Wallet_address(w.ptr, C.uint64_t(account), C.uint64_t(index)))
	return addr, w.statusError()
}

func (w *wallet) Seed() (string, error) {
	cOffset := C.CString("")
	defer C.free(unsafe.Pointer(cOffset))
	seed := C.GoString(C.MONERO_Wallet_seed(w.ptr, cOffset))
	return seed, w.statusError()
}

func (w *wallet) SecretViewKey() (string, error) {
	return C.GoString(C.MONERO_Wallet_secretViewKey(w.ptr)), w.statusError()
}

func (w *wallet) PublicViewKey() (string, error) {
	return C.GoString(C.MONERO_Wallet_publicViewKey(w.ptr)), w.statusError()
}

func (w *wallet) SecretSpendKey() (string, error) {
	return C.GoString(C.MONERO_Wallet_secretSpendKey(w.ptr)), w.statusError()
}

func (w *wallet) PublicSpendKey() (string, error) {
	return C.GoString(C.MONERO_Wallet_publicSpendKey(w.ptr)), w.statusError()
}

func (w *wallet) History() (native.History, error) {
	ptr := C.MONERO_Wallet_history(w.ptr)
	if ptr == nil {
		return nil, errors.New("no transaction history object")
	}
	return &history{ptr: ptr, w: w}, nil
}

// findCoin returns the coins object and the index of the coin with the given
// key image.
func (w *wallet) findCoin(keyImage string) (unsafe.Pointer, int, error) {
	coinsPtr := C.MONERO_Wallet_coins(w.ptr)
	C.MONERO_Coins_refresh(coinsPtr)
	count := int(C.MONERO_Coins_count(coinsPtr))
	for i := 0; i < count; i++ {
		ci := C.MONERO_Coins_coin(coinsPtr, C.int(i))
		if ci == nil {
			continue
		}
		if C.GoString(C.MONERO_CoinsInfo_keyImage(ci)) == keyImage {
			return coinsPtr, i, nil
		}
	}
	return nil, 0, fmt.Errorf("no output with key image %s", keyImage)
}

func (w *wallet) Coins() ([]native.Coin, error) {
	coinsPtr := C.MONERO_Wallet_coins(w.ptr)
	C.MONERO_Coins_refresh(coinsPtr)
	count := int(C.MONERO_Coins_count(coinsPtr))

	coins := make([]native.Coin, 0, count)
	for i := 0; i < count; i++ {
		ci := C.MONERO_Coins_coin(coinsPtr, C.int(i))
		if ci == nil {
			continue
		}
		coins = append(coins, native.Coin{
			KeyImage: C.GoString(C.MONERO_CoinsInfo_keyImage(ci)),
			Amount:   uint64(C.MONERO_CoinsInfo_amount(ci)),
			Spent:    bool(C.MONERO_CoinsInfo_spent(ci)),
			Unlocked: bool(C.MONERO_CoinsInfo_unlocked(ci)),
			Frozen:   bool(C.MONERO_CoinsInfo_frozen(ci)),
			Account:  uint32(C.MONERO_CoinsInfo_subaddrAccount(ci)),
		})
	}
	return coins, nil
}

func (w *wallet) FreezeOutput(keyImage string) error {
	coinsPtr, i, err := w.findCoin(keyImage)
	if err != nil {
		return err
	}
	C.MONERO_Coins_setFrozen(coinsPtr, C.int(i))
	return w.statusError()
}

func (w *wallet) ThawOutput(keyImage string) error {
	coinsPtr, i, err := w.findCoin(keyImage)
	if err != nil {
		return err
	}
	C.MONERO_Coins_thaw(coinsPtr, C.int(i))
	return w.statusError()
}

func (w *wallet) CreateTransaction(spec native.TxSpec) (native.PendingTx, error) {
	var ptr unsafe.Pointer
	if spec.SweepAll {
		cDest := C.CString(spec.Dest)
		cDestSep := C.CString(",")
		cPaymentID := C.CString("")
		cAmounts := C.CString("")
		cAmountSep := C.CString(",")
		cInputs := C.CString("")
		cInputSep := C.CString(",")
		defer C.free(unsafe.Pointer(cDest))
		defer C.free(unsafe.Pointer(cDestSep))
		defer C.free(unsafe.Pointer(cPaymentID))
		defer C.free(unsafe.Pointer(cAmounts))
		defer C.free(unsafe.Pointer(cAmountSep))
		defer C.free(unsafe.Pointer(cInputs))
		defer C.free(unsafe.Pointer(cInputSep))

		ptr = C.MONERO_Wallet_createTransactionMultDest(
			w.ptr, cDest, cDestSep, cPaymentID,
			C.bool(true), cAmounts, cAmountSep,
			0, // mixin_count (0 = use default)
			C.int(spec.Priority), C.uint32_t(spec.Account),
			cInputs, cInputSep,
		)
	} else {
		cDest := C.CString(spec.Dest)
		cPaymentID := C.CString("")
		cInputs := C.CString("")
		cSep := C.CString(",")
		defer C.free(unsafe.Pointer(cDest))
		defer C.free(unsafe.Pointer(cPaymentID))
		defer C.free(unsafe.Pointer(cInputs))
		defer C.free(unsafe.Pointer(cSep))

		ptr = C.MONERO_Wallet_createTransaction(
			w.ptr, cDest, cPaymentID, C.uint64_t(spec.Amount),
			0, // mixin_count (0 = use default)
			C.int(spec.Priority), C.uint32_t(spec.Account),
			cInputs, cSep,
		)
	}
	if ptr == nil {
		if err := w.statusError(); err != nil {
			return nil, err
		}
		return nil, errors.New("transaction creation failed")
	}
	tx := &pendingTx{ptr: ptr}
	if err := tx.statusError(); err != nil {
		return nil, err
	}
	return tx, nil
}

func (w *wallet) SignMessage(message string) (string, error) {
	cMsg := C.CString(message)
	cAddr := C.CString("")
	defer C.free(unsafe.Pointer(cMsg))
	defer C.free(unsafe.Pointer(cAddr))
	sig := C.GoString(C.MONERO_Wallet_signMessage(w.ptr, cMsg, cAddr))
	return sig, w.statusError()
}

func (w *wallet) VerifyMessage(message, address, signature string) (bool, error) {
	cMsg := C.CString(message)
	cAddr := C.CString(address)
	cSig := C.CString(signature)
	defer C.free(unsafe.Pointer(cMsg))
	defer C.free(unsafe.Pointer(cAddr))
	defer C.free(unsafe.Pointer(cSig))
	ok := bool(C.MONERO_Wallet_verifySignedMessage(w.ptr, cMsg, cAddr, cSig))
	return ok, nil
}

func (w *wallet) SetPassword(password string) error {
	cPass := C.CString(password)
	defer C.free(unsafe.Pointer(cPass))
	if !C.MONERO_Wallet_setPassword(w.ptr, cPass) {
		return w.statusErrorOr("password change failed")
	}
	return nil
}

func (w *wallet) Store() error {
	cPath := C.CString("")
	defer C.free(unsafe.Pointer(cPath))
	if !C.MONERO_Wallet_store(w.ptr, cPath) {
		return w.statusErrorOr("wallet store failed")
	}
	return nil
}

func (w *wallet) statusErrorOr(msg string) error {
	if err := w.statusError(); err != nil {
		return err
	}
	return errors.New(msg)
}

// history implements native.History.
type history struct {
	ptr unsafe.Pointer
	w   *wallet
}

func (h *history) Refresh() error {
	C.MONERO_TransactionHistory_refresh(h.ptr)
	return h.w.statusError()
}

func (h *history) Count() int {
	return int(C.MONERO_TransactionHistory_count(h.ptr))
}

func (h *history) Transaction(i int) (*native.TxInfo, error) {
	ti := C.MONERO_TransactionHistory_transaction(h.ptr, C.int(i))
	if ti == nil {
		return nil, fmt.Errorf("no transaction at index %d", i)
	}
	return &native.TxInfo{
		Hash:          C.GoString(C.MONERO_TransactionInfo_hash(ti)),
		Direction:     native.Direction(C.MONERO_TransactionInfo_direction(ti)),
		Amount:        uint64(C.MONERO_TransactionInfo_amount(ti)),
		Fee:           uint64(C.MONERO_TransactionInfo_fee(ti)),
		BlockHeight:   uint64(C.MONERO_TransactionInfo_blockHeight(ti)),
		Confirmations: uint64(C.MONERO_TransactionInfo_confirmations(ti)),
		Timestamp:     uint64(C.MONERO_TransactionInfo_timestamp(ti)),
		Pending:       bool(C.MONERO_TransactionInfo_isPending(ti)),
		Failed:        bool(C.MONERO_TransactionInfo_isFailed(ti)),
	}, nil
}

// pendingTx implements native.PendingTx.
type pendingTx struct {
	ptr unsafe.Pointer
}

func (tx *pendingTx) statusError() error {
	if C.MONERO_PendingTransaction_status(tx.ptr) == 0 {
		return nil
	}
	return errors.New(C.GoString(C.MONERO_PendingTransaction_errorString(tx.ptr)))
}

func (tx *pendingTx) Commit() error {
	cFilename := C.CString("")
	defer C.free(unsafe.Pointer(cFilename))
	if !C.MONERO_PendingTransaction_commit(tx.ptr, cFilename, C.bool(false)) {
		if err := tx.statusError(); err != nil {
			return err
		}
		return errors.New("transaction commit failed")
	}
	return nil
}

func (tx *pendingTx) TxID() string {
	cSep := C.CString(",")
	defer C.free(unsafe.Pointer(cSep))
	return C.GoString(C.MONERO_PendingTransaction_txid(tx.ptr, cSep))
}

func (tx *pendingTx) Amount() uint64 {
	return uint64(C.MONERO_PendingTransaction_amount(tx.ptr))
}

func (tx *pendingTx) Fee() uint64 {
	return uint64(C.MONERO_PendingTransaction_fee(tx.ptr))
}

func (tx *pendingTx) Count() uint64 {
	return uint64(C.MONERO_PendingTransaction_txCount(tx.ptr))
}
