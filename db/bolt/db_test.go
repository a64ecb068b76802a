// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

package bolt

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cypherstack/cs-monero/cs"
	"github.com/cypherstack/cs-monero/db"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := NewDB(filepath.Join(t.TempDir(), "meta.db"), cs.Disabled)
	if err != nil {
		t.Fatalf("error opening test DB: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestWalletMetaRoundTrip(t *testing.T) {
	d := newTestDB(t)

	if _, err := d.WalletMeta("nobody"); !errors.Is(err, db.ErrNoWallet) {
		t.Fatalf("expected ErrNoWallet, got %v", err)
	}

	birthday := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	meta := &db.WalletMeta{
		Name:          "primary",
		Net:           cs.Stagenet,
		RestoreHeight: 3100000,
		Birthday:      birthday,
		Recovered:     true,
	}
	if err := d.StoreWalletMeta(meta); err != nil {
		t.Fatalf("store error: %v", err)
	}

	reMeta, err := d.WalletMeta("primary")
	if err != nil {
		t.Fatalf("retrieve error: %v", err)
	}
	if reMeta.Net != cs.Stagenet || reMeta.RestoreHeight != 3100000 ||
		!reMeta.Recovered || !reMeta.Birthday.Equal(birthday) {
		t.Fatalf("metadata mangled: %+v", reMeta)
	}

	// Replacement, not duplication.
	meta.RestoreHeight = 3200000
	if err := d.StoreWalletMeta(meta); err != nil {
		t.Fatalf("re-store error: %v", err)
	}
	wallets, err := d.Wallets()
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(wallets) != 1 || wallets[0].RestoreHeight != 3200000 {
		t.Fatalf("unexpected wallet list: %+v", wallets)
	}

	if err := d.StoreWalletMeta(&db.WalletMeta{}); !errors.Is(err, cs.ErrBadArguments) {
		t.Fatalf("empty name accepted: %v", err)
	}
}

func TestSetLastOpened(t *testing.T) {
	d := newTestDB(t)

	// Unknown name is a no-op.
	if err := d.SetLastOpened("nobody", time.Now()); err != nil {
		t.Fatalf("no-op update error: %v", err)
	}

	if err := d.StoreWalletMeta(&db.WalletMeta{Name: "primary"}); err != nil {
		t.Fatalf("store error: %v", err)
	}
	when := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if err := d.SetLastOpened("primary", when); err != nil {
		t.Fatalf("update error: %v", err)
	}
	meta, err := d.WalletMeta("primary")
	if err != nil {
		t.Fatalf("retrieve error: %v", err)
	}
	if !meta.LastOpened.Equal(when) {
		t.Fatalf("last-opened %s, want %s", meta.LastOpened, when)
	}
}

func TestDeleteWalletMeta(t *testing.T) {
	d := newTestDB(t)
	if err := d.StoreWalletMeta(&db.WalletMeta{Name: "primary"}); err != nil {
		t.Fatalf("store error: %v", err)
	}
	if err := d.DeleteWalletMeta("primary"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, err := d.WalletMeta("primary"); !errors.Is(err, db.ErrNoWallet) {
		t.Fatalf("expected ErrNoWallet after delete, got %v", err)
	}
	// Deleting again is fine.
	if err := d.DeleteWalletMeta("primary"); err != nil {
		t.Fatalf("re-delete error: %v", err)
	}
}
