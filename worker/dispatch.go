// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

package worker

import (
	"fmt"

	"github.com/cypherstack/cs-monero/cs"
	"github.com/cypherstack/cs-monero/native"
	"github.com/cypherstack/cs-monero/task"
)

// handler executes one task on the worker goroutine and returns the result
// value.
type handler func(*Worker, *task.Task) (any, error)

// dispatch maps every non-reserved Func to its handler. The reserved polling
// operations are handled in Worker.process and must never appear here.
var dispatch = map[task.Func]handler{
	task.FnCreateWallet:        (*Worker).createWallet,
	task.FnOpenWallet:          (*Worker).openWallet,
	task.FnRestoreFromSeed:     (*Worker).restoreFromSeed,
	task.FnRestoreFromKeys:     (*Worker).restoreFromKeys,
	task.FnRestoreFromSpendKey: (*Worker).restoreFromSpendKey,
	task.FnWalletExists:        (*Worker).walletExists,
	task.FnInitDaemon:          (*Worker).initDaemon,
	task.FnBalance:             (*Worker).balance,
	task.FnHeights:             (*Worker).heights,
	task.FnAddress:             (*Worker).address,
	task.FnKeys:                (*Worker).keys,
	task.FnTransactionHistory:  (*Worker).transactionHistory,
	task.FnTransactions:        (*Worker).transactions,
	task.FnCoins:               (*Worker).coins,
	task.FnFreezeOutput:        (*Worker).freezeOutput,
	task.FnThawOutput:          (*Worker).thawOutput,
	task.FnCreateTransaction:   (*Worker).createTransaction,
	task.FnCommitTransaction:   (*Worker).commitTransaction,
	task.FnSignMessage:         (*Worker).signMessage,
	task.FnVerifyMessage:       (*Worker).verifyMessage,
	task.FnValidateAddress:     (*Worker).validateAddress,
	task.FnChangePassword:      (*Worker).changePassword,
	task.FnSave:                (*Worker).save,
	task.FnCloseWallet:         (*Worker).closeWallet,
}

func init() {
	for _, fn := range []task.Func{task.FnStartPolling, task.FnStopPolling} {
		if _, found := dispatch[fn]; found {
			panic(fmt.Sprintf("reserved func %s in dispatch table", fn))
		}
	}
}

// decode asserts the task's argument type and validates it. A wrong type or
// failed validation is an ErrBadArguments error result.
func decode[T task.Validator](t *task.Task) (T, error) {
	args, ok := t.Args.(T)
	if !ok {
		var zero T
		return zero, cs.NewError(cs.ErrBadArguments,
			fmt.Sprintf("%s: args type %T, expected %T", t.Fn, t.Args, zero))
	}
	if err := args.Validate(); err != nil {
		var zero T
		return zero, err
	}
	return args, nil
}

func handleDetail(kind string, h task.Handle) string {
	return fmt.Sprintf("no %s with handle %d", kind, h)
}

// ownedHistory ties a history handle to the wallet that produced it, so
// closing the wallet releases the history too.
type ownedHistory struct {
	owner task.Handle
	hist  native.History
}

// ownedTx ties a pending-transaction handle to its wallet.
type ownedTx struct {
	owner task.Handle
	tx    native.PendingTx
}

func (w *Worker) createWallet(t *task.Task) (any, error) {
	args, err := decode[*task.CreateWalletArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.mgr.CreateWallet(args.Path, args.Password, args.Language, args.Net)
	if err != nil {
		return nil, err
	}
	return w.mint(nw), nil
}

func (w *Worker) openWallet(t *task.Task) (any, error) {
	args, err := decode[*task.OpenWalletArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.mgr.OpenWallet(args.Path, args.Password, args.Net)
	if err != nil {
		return nil, err
	}
	return w.mint(nw), nil
}

func (w *Worker) restoreFromSeed(t *task.Task) (any, error) {
	args, err := decode[*task.RestoreFromSeedArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.mgr.RecoverFromSeed(args.Path, args.Password, args.Mnemonic, args.Net, args.RestoreHeight)
	if err != nil {
		return nil, err
	}
	return w.mint(nw), nil
}

func (w *Worker) restoreFromKeys(t *task.Task) (any, error) {
	args, err := decode[*task.RestoreFromKeysArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.mgr.RecoverFromKeys(args.Path, args.Password, args.Language, args.Net,
		args.RestoreHeight, args.Address, args.ViewKey, args.SpendKey)
	if err != nil {
		return nil, err
	}
	return w.mint(nw), nil
}

func (w *Worker) restoreFromSpendKey(t *task.Task) (any, error) {
	args, err := decode[*task.RestoreFromSpendKeyArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.mgr.RecoverFromSpendKey(args.Path, args.Password, args.Language, args.Net,
		args.RestoreHeight, args.SpendKey)
	if err != nil {
		return nil, err
	}
	return w.mint(nw), nil
}

func (w *Worker) walletExists(t *task.Task) (any, error) {
	args, err := decode[*task.WalletExistsArgs](t)
	if err != nil {
		return nil, err
	}
	return w.mgr.WalletExists(args.Path), nil
}

func (w *Worker) initDaemon(t *task.Task) (any, error) {
	args, err := decode[*task.InitDaemonArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	return nil, nw.InitDaemon(args.Address, args.Username, args.Password, args.UseSSL, args.Trusted, args.Proxy)
}

func (w *Worker) balance(t *task.Task) (any, error) {
	args, err := decode[*task.BalanceArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	full, err := nw.Balance(args.Account)
	if err != nil {
		return nil, err
	}
	unlocked, err := nw.UnlockedBalance(args.Account)
	if err != nil {
		return nil, err
	}
	return &task.BalanceResult{Full: full, Unlocked: unlocked}, nil
}

func (w *Worker) heights(t *task.Task) (any, error) {
	args, err := decode[*task.HeightsArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	syncHeight, err := nw.SyncHeight()
	if err != nil {
		return nil, err
	}
	daemonHeight, err := nw.DaemonHeight()
	if err != nil {
		return nil, err
	}
	return &task.HeightsResult{SyncHeight: syncHeight, DaemonHeight: daemonHeight}, nil
}

func (w *Worker) address(t *task.Task) (any, error) {
	args, err := decode[*task.AddressArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	return nw.Address(args.Account, args.Index)
}

func (w *Worker) keys(t *task.Task) (any, error) {
	args, err := decode[*task.KeysArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	res := new(task.KeysResult)
	for _, v := range []struct {
		dst *string
		get func() (string, error)
	}{
		{&res.Mnemonic, nw.Seed},
		{&res.SecretViewKey, nw.SecretViewKey},
		{&res.PublicViewKey, nw.PublicViewKey},
		{&res.SecretSpendKey, nw.SecretSpendKey},
		{&res.PublicSpendKey, nw.PublicSpendKey},
	} {
		if *v.dst, err = v.get(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (w *Worker) transactionHistory(t *task.Task) (any, error) {
	args, err := decode[*task.TransactionHistoryArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	hist, err := nw.History()
	if err != nil {
		return nil, err
	}
	if err := hist.Refresh(); err != nil {
		return nil, err
	}
	return w.mint(&ownedHistory{owner: args.Handle, hist: hist}), nil
}

func (w *Worker) transactions(t *task.Task) (any, error) {
	args, err := decode[*task.TransactionsArgs](t)
	if err != nil {
		return nil, err
	}
	hist, err := w.history(args.History)
	if err != nil {
		return nil, err
	}
	n := hist.Count()
	txns := make([]*native.TxInfo, 0, n)
	for i := 0; i < n; i++ {
		tx, err := hist.Transaction(i)
		if err != nil {
			return nil, err
		}
		txns = append(txns, tx)
	}
	return txns, nil
}

func (w *Worker) coins(t *task.Task) (any, error) {
	args, err := decode[*task.CoinsArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	return nw.Coins()
}

func (w *Worker) freezeOutput(t *task.Task) (any, error) {
	args, err := decode[*task.FreezeOutputArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	return nil, nw.FreezeOutput(args.KeyImage)
}

func (w *Worker) thawOutput(t *task.Task) (any, error) {
	args, err := decode[*task.ThawOutputArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	return nil, nw.ThawOutput(args.KeyImage)
}

func (w *Worker) createTransaction(t *task.Task) (any, error) {
	args, err := decode[*task.CreateTransactionArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	tx, err := nw.CreateTransaction(native.TxSpec{
		Dest:     args.Dest,
		Amount:   args.Amount,
		Priority: native.Priority(args.Priority),
		Account:  args.Account,
		SweepAll: args.SweepAll,
	})
	if err != nil {
		return nil, err
	}
	return &task.CreateTransactionResult{
		Tx:     w.mint(&ownedTx{owner: args.Handle, tx: tx}),
		TxID:   tx.TxID(),
		Amount: tx.Amount(),
		Fee:    tx.Fee(),
		Count:  tx.Count(),
	}, nil
}

func (w *Worker) commitTransaction(t *task.Task) (any, error) {
	args, err := decode[*task.CommitTransactionArgs](t)
	if err != nil {
		return nil, err
	}
	tx, err := w.pendingTx(args.Tx)
	if err != nil {
		return nil, err
	}
	// One shot. The handle is dead even if the broadcast fails.
	w.release(args.Tx)
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return tx.TxID(), nil
}

func (w *Worker) signMessage(t *task.Task) (any, error) {
	args, err := decode[*task.SignMessageArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	return nw.SignMessage(args.Message)
}

func (w *Worker) verifyMessage(t *task.Task) (any, error) {
	args, err := decode[*task.VerifyMessageArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	return nw.VerifyMessage(args.Message, args.Address, args.Signature)
}

func (w *Worker) validateAddress(t *task.Task) (any, error) {
	args, err := decode[*task.ValidateAddressArgs](t)
	if err != nil {
		return nil, err
	}
	return w.mgr.ValidateAddress(args.Address, args.Net), nil
}

func (w *Worker) changePassword(t *task.Task) (any, error) {
	args, err := decode[*task.ChangePasswordArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	return nil, nw.SetPassword(args.Password)
}

func (w *Worker) save(t *task.Task) (any, error) {
	args, err := decode[*task.SaveArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	return nil, nw.Store()
}

func (w *Worker) closeWallet(t *task.Task) (any, error) {
	args, err := decode[*task.CloseWalletArgs](t)
	if err != nil {
		return nil, err
	}
	nw, err := w.wallet(args.Handle)
	if err != nil {
		return nil, err
	}
	if w.poll != nil && w.poll.handle == args.Handle {
		w.stopTicker()
		w.poll = nil
	}
	// Drop the wallet's child handles before the native close.
	for h, obj := range w.handles {
		switch o := obj.(type) {
		case *ownedHistory:
			if o.owner == args.Handle {
				w.release(h)
			}
		case *ownedTx:
			if o.owner == args.Handle {
				w.release(h)
			}
		}
	}
	w.release(args.Handle)
	return nil, w.mgr.CloseWallet(nw, args.Save)
}
