// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

package worker

import (
	"errors"
	"testing"
	"time"

	"github.com/cypherstack/cs-monero/cs"
	"github.com/cypherstack/cs-monero/native"
	nativetest "github.com/cypherstack/cs-monero/native/test"
	"github.com/cypherstack/cs-monero/task"
)

func newTestWorker() (*Worker, *nativetest.Manager) {
	mgr := nativetest.NewManager()
	return newWorker(mgr, cs.Disabled), mgr
}

// mustRun processes a task and fails the test on an error result.
func mustRun(t *testing.T, w *Worker, fn task.Func, args any) any {
	t.Helper()
	res := w.process(task.New(fn, args))
	if res.Err != nil {
		t.Fatalf("%s error: %v", fn, res.Err)
	}
	return res.Value
}

func openTestWallet(t *testing.T, w *Worker, mgr *nativetest.Manager, path string) (task.Handle, *nativetest.Wallet) {
	t.Helper()
	v := mustRun(t, w, task.FnCreateWallet, &task.CreateWalletArgs{
		Path: path, Password: "pw", Language: "English", Net: cs.Mainnet,
	})
	h, ok := v.(task.Handle)
	if !ok {
		t.Fatalf("create-wallet returned %T, not a handle", v)
	}
	return h, mgr.Wallets[path]
}

// drainEvents empties the worker's event channel.
func drainEvents(w *Worker) []Event {
	var evs []Event
	for {
		select {
		case ev := <-w.events:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

func TestProcessResultID(t *testing.T) {
	w, _ := newTestWorker()
	tsk := task.New(task.FnWalletExists, &task.WalletExistsArgs{Path: "nowhere"})
	res := w.process(tsk)
	if res.ID != tsk.ID {
		t.Fatalf("result id %s != task id %s", res.ID, tsk.ID)
	}
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if exists, _ := res.Value.(bool); exists {
		t.Fatal("nonexistent wallet reported as existing")
	}
}

func TestProcessUnknownFunc(t *testing.T) {
	w, _ := newTestWorker()
	res := w.process(task.New(task.Func("frobnicate"), nil))
	if !errors.Is(res.Err, cs.ErrUnknownFunc) {
		t.Fatalf("expected ErrUnknownFunc, got %v", res.Err)
	}
}

func TestProcessBadArgs(t *testing.T) {
	w, _ := newTestWorker()
	// Wrong argument type.
	res := w.process(task.New(task.FnBalance, &task.HeightsArgs{Handle: 1}))
	if !errors.Is(res.Err, cs.ErrBadArguments) {
		t.Fatalf("wrong args type: expected ErrBadArguments, got %v", res.Err)
	}
	// Right type, failed validation.
	res = w.process(task.New(task.FnCreateWallet, &task.CreateWalletArgs{}))
	if !errors.Is(res.Err, cs.ErrBadArguments) {
		t.Fatalf("empty path: expected ErrBadArguments, got %v", res.Err)
	}
}

func TestValidationPrecedesNative(t *testing.T) {
	w, mgr := newTestWorker()
	h, fw := openTestWallet(t, w, mgr, "w1")

	// An empty key image fails validation; the native call never happens even
	// though the method is primed to fail loudly.
	fw.Fail("FreezeOutput", errors.New("native call reached"))
	res := w.process(task.New(task.FnFreezeOutput, &task.FreezeOutputArgs{Handle: h}))
	if !errors.Is(res.Err, cs.ErrBadArguments) {
		t.Fatalf("expected ErrBadArguments, got %v", res.Err)
	}

	// The worker stays usable.
	if res := w.process(task.New(task.FnHeights, &task.HeightsArgs{Handle: h})); res.Err != nil {
		t.Fatalf("worker unusable after validation failure: %v", res.Err)
	}
}

func TestBadHandle(t *testing.T) {
	w, _ := newTestWorker()
	res := w.process(task.New(task.FnBalance, &task.BalanceArgs{Handle: 42}))
	if !errors.Is(res.Err, cs.ErrBadHandle) {
		t.Fatalf("expected ErrBadHandle, got %v", res.Err)
	}
}

func TestWalletLifecycle(t *testing.T) {
	w, mgr := newTestWorker()
	h, fw := openTestWallet(t, w, mgr, "w1")

	fw.SetState(5e12, 4e12, 100, 100)
	fw.CoinSet = []native.Coin{{KeyImage: "ki0", Amount: 5e12, Unlocked: true}}
	fw.Txns = []*native.TxInfo{{Hash: "aa", Amount: 5e12}}

	mustRun(t, w, task.FnInitDaemon, &task.InitDaemonArgs{Handle: h, Address: "localhost:18081"})
	if fw.Daemon != "localhost:18081" {
		t.Fatalf("daemon address not set: %q", fw.Daemon)
	}

	bal := mustRun(t, w, task.FnBalance, &task.BalanceArgs{Handle: h}).(*task.BalanceResult)
	if bal.Full != 5e12 || bal.Unlocked != 4e12 {
		t.Fatalf("wrong balances: %+v", bal)
	}

	hts := mustRun(t, w, task.FnHeights, &task.HeightsArgs{Handle: h}).(*task.HeightsResult)
	if hts.SyncHeight != 100 || hts.DaemonHeight != 100 {
		t.Fatalf("wrong heights: %+v", hts)
	}

	addr := mustRun(t, w, task.FnAddress, &task.AddressArgs{Handle: h}).(string)
	if addr == "" {
		t.Fatal("empty address")
	}

	keys := mustRun(t, w, task.FnKeys, &task.KeysArgs{Handle: h}).(*task.KeysResult)
	if keys.Mnemonic == "" || keys.SecretViewKey == "" {
		t.Fatalf("missing keys: %+v", keys)
	}

	histH := mustRun(t, w, task.FnTransactionHistory, &task.TransactionHistoryArgs{Handle: h}).(task.Handle)
	txns := mustRun(t, w, task.FnTransactions, &task.TransactionsArgs{History: histH}).([]*native.TxInfo)
	if len(txns) != 1 || txns[0].Hash != "aa" {
		t.Fatalf("wrong history: %+v", txns)
	}

	coins := mustRun(t, w, task.FnCoins, &task.CoinsArgs{Handle: h}).([]native.Coin)
	if len(coins) != 1 {
		t.Fatalf("expected 1 coin, got %d", len(coins))
	}
	mustRun(t, w, task.FnFreezeOutput, &task.FreezeOutputArgs{Handle: h, KeyImage: "ki0"})
	if !fw.CoinSet[0].Frozen {
		t.Fatal("output not frozen")
	}
	mustRun(t, w, task.FnThawOutput, &task.ThawOutputArgs{Handle: h, KeyImage: "ki0"})
	if fw.CoinSet[0].Frozen {
		t.Fatal("output not thawed")
	}

	sig := mustRun(t, w, task.FnSignMessage, &task.SignMessageArgs{Handle: h, Message: "hi"}).(string)
	ok := mustRun(t, w, task.FnVerifyMessage, &task.VerifyMessageArgs{
		Handle: h, Message: "hi", Address: addr, Signature: sig,
	}).(bool)
	if !ok {
		t.Fatal("good signature rejected")
	}

	mustRun(t, w, task.FnChangePassword, &task.ChangePasswordArgs{Handle: h, Password: "newpw"})
	if fw.Password != "newpw" {
		t.Fatal("password not changed")
	}

	mustRun(t, w, task.FnSave, &task.SaveArgs{Handle: h})
	if fw.Stores != 1 {
		t.Fatalf("expected 1 store, got %d", fw.Stores)
	}

	mustRun(t, w, task.FnCloseWallet, &task.CloseWalletArgs{Handle: h, Save: true})
	if !fw.Closed || !fw.SavedOnClose {
		t.Fatal("wallet not closed with save")
	}
	// The wallet handle and its history handle are both dead now.
	if res := w.process(task.New(task.FnBalance, &task.BalanceArgs{Handle: h})); !errors.Is(res.Err, cs.ErrBadHandle) {
		t.Fatalf("closed wallet handle still live: %v", res.Err)
	}
	if res := w.process(task.New(task.FnTransactions, &task.TransactionsArgs{History: histH})); !errors.Is(res.Err, cs.ErrBadHandle) {
		t.Fatalf("history handle outlived its wallet: %v", res.Err)
	}
}

func TestCreateAndCommitTransaction(t *testing.T) {
	w, mgr := newTestWorker()
	h, fw := openTestWallet(t, w, mgr, "w1")
	fw.SetState(5e12, 4e12, 100, 100)

	res := mustRun(t, w, task.FnCreateTransaction, &task.CreateTransactionArgs{
		Handle: h, Dest: "4dest", Amount: 1e12,
	}).(*task.CreateTransactionResult)
	if res.Tx == 0 || res.Amount != 1e12 || res.TxID == "" {
		t.Fatalf("bad pending tx result: %+v", res)
	}

	txid := mustRun(t, w, task.FnCommitTransaction, &task.CommitTransactionArgs{Tx: res.Tx}).(string)
	if txid != res.TxID {
		t.Fatalf("commit txid %q != pending txid %q", txid, res.TxID)
	}

	// The pending handle is single-use.
	if res2 := w.process(task.New(task.FnCommitTransaction, &task.CommitTransactionArgs{Tx: res.Tx})); !errors.Is(res2.Err, cs.ErrBadHandle) {
		t.Fatalf("pending tx handle reusable after commit: %v", res2.Err)
	}
}

func TestCommitFailureReleasesHandle(t *testing.T) {
	w, mgr := newTestWorker()
	h, fw := openTestWallet(t, w, mgr, "w1")
	fw.SetState(5e12, 4e12, 100, 100)

	res := mustRun(t, w, task.FnCreateTransaction, &task.CreateTransactionArgs{
		Handle: h, Dest: "4dest", SweepAll: true,
	}).(*task.CreateTransactionResult)
	if res.Amount != 4e12 {
		t.Fatalf("sweep amount %d, want full unlocked balance", res.Amount)
	}

	w.handles[res.Tx].(*ownedTx).tx.(*nativetest.PendingTx).FailWith = errors.New("relay failed")
	if cRes := w.process(task.New(task.FnCommitTransaction, &task.CommitTransactionArgs{Tx: res.Tx})); cRes.Err == nil {
		t.Fatal("expected commit error")
	}
	if cRes := w.process(task.New(task.FnCommitTransaction, &task.CommitTransactionArgs{Tx: res.Tx})); !errors.Is(cRes.Err, cs.ErrBadHandle) {
		t.Fatalf("handle survived failed commit: %v", cRes.Err)
	}
}

func TestHandlerErrorKeepsWorkerUsable(t *testing.T) {
	w, mgr := newTestWorker()
	h, fw := openTestWallet(t, w, mgr, "w1")
	fw.SetState(5e12, 4e12, 100, 100)

	fw.Fail("Balance", errors.New("no connection to daemon"))
	if res := w.process(task.New(task.FnBalance, &task.BalanceArgs{Handle: h})); res.Err == nil {
		t.Fatal("expected balance error")
	}
	fw.Fail("Balance", nil)
	bal := mustRun(t, w, task.FnBalance, &task.BalanceArgs{Handle: h}).(*task.BalanceResult)
	if bal.Full != 5e12 {
		t.Fatalf("worker unusable after handler error: %+v", bal)
	}
}

func TestValidateAddress(t *testing.T) {
	w, mgr := newTestWorker()
	mgr.ValidAddrs = map[string]bool{"4good": true}
	if ok := mustRun(t, w, task.FnValidateAddress, &task.ValidateAddressArgs{Address: "4good"}).(bool); !ok {
		t.Fatal("valid address rejected")
	}
	if ok := mustRun(t, w, task.FnValidateAddress, &task.ValidateAddressArgs{Address: "junk"}).(bool); ok {
		t.Fatal("invalid address accepted")
	}
}

func TestStartStopPolling(t *testing.T) {
	w, mgr := newTestWorker()
	h, _ := openTestWallet(t, w, mgr, "w1")

	// Stop with no active timer is a clean ack.
	if res := w.process(task.New(task.FnStopPolling, &task.StopPollingArgs{})); res.Err != nil {
		t.Fatalf("stop without start: %v", res.Err)
	}

	mustRun(t, w, task.FnStartPolling, &task.StartPollingArgs{Handle: h, Interval: time.Second})
	if w.pollTicker == nil || w.poll == nil || w.poll.handle != h {
		t.Fatal("polling not armed")
	}
	if w.tickC() == nil {
		t.Fatal("no tick channel while polling")
	}

	mustRun(t, w, task.FnStopPolling, &task.StopPollingArgs{})
	if w.pollTicker != nil || w.poll != nil {
		t.Fatal("polling not disarmed")
	}
	if w.tickC() != nil {
		t.Fatal("tick channel lingering after stop")
	}

	// Bad handle rejected.
	if res := w.process(task.New(task.FnStartPolling, &task.StartPollingArgs{Handle: 99, Interval: time.Second})); !errors.Is(res.Err, cs.ErrBadHandle) {
		t.Fatalf("expected ErrBadHandle, got %v", res.Err)
	}
}

func TestPollTickDiffing(t *testing.T) {
	w, mgr := newTestWorker()
	h, fw := openTestWallet(t, w, mgr, "w1")
	fw.SetState(5e12, 4e12, 90, 100)
	mustRun(t, w, task.FnStartPolling, &task.StartPollingArgs{Handle: h, Interval: time.Second})

	// First tick diffs against the zero state: every nonzero value is a
	// change.
	w.pollTick()
	evs := drainEvents(w)
	if len(evs) != 3 {
		t.Fatalf("first tick: expected 3 events, got %d: %+v", len(evs), evs)
	}
	if bc, ok := evs[0].(BalancesChanged); !ok || bc.Full != 5e12 || bc.Unlocked != 4e12 {
		t.Fatalf("expected BalancesChanged first, got %+v", evs[0])
	}
	if nb, ok := evs[1].(NewBlock); !ok || nb.DaemonHeight != 100 {
		t.Fatalf("expected NewBlock second, got %+v", evs[1])
	}
	if su, ok := evs[2].(SyncUpdate); !ok || su.SyncHeight != 90 || su.DaemonHeight != 100 {
		t.Fatalf("expected SyncUpdate third, got %+v", evs[2])
	}

	// Steady state: nothing changed, nothing emitted.
	w.pollTick()
	if evs := drainEvents(w); len(evs) != 0 {
		t.Fatalf("steady state emitted %+v", evs)
	}

	// Balance-only change.
	fw.SetState(6e12, 4e12, 90, 100)
	w.pollTick()
	evs = drainEvents(w)
	if len(evs) != 1 {
		t.Fatalf("balance change: expected 1 event, got %+v", evs)
	}
	if bc := evs[0].(BalancesChanged); bc.Full != 6e12 || bc.Unlocked != 4e12 {
		t.Fatalf("wrong BalancesChanged: %+v", bc)
	}

	// New block plus sync progress.
	fw.SetState(6e12, 4e12, 95, 101)
	w.pollTick()
	evs = drainEvents(w)
	if len(evs) != 2 {
		t.Fatalf("new block: expected 2 events, got %+v", evs)
	}
	if _, ok := evs[0].(NewBlock); !ok {
		t.Fatalf("expected NewBlock, got %+v", evs[0])
	}
	if su := evs[1].(SyncUpdate); su.SyncHeight != 95 || su.DaemonHeight != 101 {
		t.Fatalf("wrong SyncUpdate: %+v", su)
	}

	// Sync-height-only change also produces a SyncUpdate.
	fw.SetState(6e12, 4e12, 101, 101)
	w.pollTick()
	evs = drainEvents(w)
	if len(evs) != 1 {
		t.Fatalf("sync progress: expected 1 event, got %+v", evs)
	}
	if su := evs[0].(SyncUpdate); su.SyncHeight != 101 {
		t.Fatalf("wrong SyncUpdate: %+v", su)
	}
}

func TestPollTickSyncAheadSuppressed(t *testing.T) {
	w, mgr := newTestWorker()
	h, fw := openTestWallet(t, w, mgr, "w1")
	fw.SetState(0, 0, 100, 100)
	mustRun(t, w, task.FnStartPolling, &task.StartPollingArgs{Handle: h, Interval: time.Second})
	w.pollTick()
	drainEvents(w)

	// Daemon reports a lower height than the wallet has scanned, as happens
	// transiently when switching daemons. No SyncUpdate, but the NewBlock
	// for the height change still fires.
	fw.SetState(0, 0, 100, 80)
	w.pollTick()
	evs := drainEvents(w)
	if len(evs) != 1 {
		t.Fatalf("expected only NewBlock, got %+v", evs)
	}
	if _, ok := evs[0].(NewBlock); !ok {
		t.Fatalf("expected NewBlock, got %+v", evs[0])
	}
}

func TestPollTickErrorAbortsTick(t *testing.T) {
	w, mgr := newTestWorker()
	h, fw := openTestWallet(t, w, mgr, "w1")
	fw.SetState(5e12, 4e12, 90, 100)
	mustRun(t, w, task.FnStartPolling, &task.StartPollingArgs{Handle: h, Interval: time.Second})

	// Balances read fine, heights fail: the balance diff stands, the rest of
	// the tick is skipped.
	fw.Fail("DaemonHeight", errors.New("daemon gone"))
	w.pollTick()
	evs := drainEvents(w)
	if len(evs) != 1 {
		t.Fatalf("expected only BalancesChanged, got %+v", evs)
	}
	if _, ok := evs[0].(BalancesChanged); !ok {
		t.Fatalf("expected BalancesChanged, got %+v", evs[0])
	}

	// Next tick recovers and reports the heights. No balance re-report; that
	// state was already stored.
	fw.Fail("DaemonHeight", nil)
	w.pollTick()
	evs = drainEvents(w)
	if len(evs) != 2 {
		t.Fatalf("expected NewBlock and SyncUpdate, got %+v", evs)
	}
	if _, ok := evs[0].(NewBlock); !ok {
		t.Fatalf("expected NewBlock, got %+v", evs[0])
	}
	if _, ok := evs[1].(SyncUpdate); !ok {
		t.Fatalf("expected SyncUpdate, got %+v", evs[1])
	}
}

func TestPollRestartResets(t *testing.T) {
	w, mgr := newTestWorker()
	h, fw := openTestWallet(t, w, mgr, "w1")
	fw.SetState(5e12, 4e12, 100, 100)
	mustRun(t, w, task.FnStartPolling, &task.StartPollingArgs{Handle: h, Interval: time.Second})
	w.pollTick()
	drainEvents(w)

	// Restarting clears the last-seen state, so the first tick after the
	// restart re-reports current values.
	mustRun(t, w, task.FnStartPolling, &task.StartPollingArgs{Handle: h, Interval: time.Second})
	w.pollTick()
	evs := drainEvents(w)
	if len(evs) != 3 {
		t.Fatalf("restart: expected 3 events, got %+v", evs)
	}
}

func TestPollStopsWhenWalletCloses(t *testing.T) {
	w, mgr := newTestWorker()
	h, _ := openTestWallet(t, w, mgr, "w1")
	mustRun(t, w, task.FnStartPolling, &task.StartPollingArgs{Handle: h, Interval: time.Second})
	mustRun(t, w, task.FnCloseWallet, &task.CloseWalletArgs{Handle: h})
	if w.pollTicker != nil || w.poll != nil {
		t.Fatal("polling survived wallet close")
	}
}
