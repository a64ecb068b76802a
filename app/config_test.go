// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cypherstack/cs-monero/cs"
)

func TestResolveConfig(t *testing.T) {
	appData := t.TempDir()

	cfg := DefaultConfig
	cfg.Stagenet = true
	if err := ResolveConfig(appData, &cfg); err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if cfg.Net != cs.Stagenet {
		t.Fatalf("wrong network: %s", cfg.Net)
	}
	wantWalletDir := filepath.Join(appData, "stagenet", "wallets")
	if cfg.WalletDir != wantWalletDir {
		t.Fatalf("wallet dir %q, want %q", cfg.WalletDir, wantWalletDir)
	}
	if fi, err := os.Stat(cfg.WalletDir); err != nil || !fi.IsDir() {
		t.Fatalf("wallet dir not created: %v", err)
	}
	if cfg.MetaDBPath == "" || cfg.LogPath == "" {
		t.Fatalf("paths not defaulted: %+v", cfg.WalletConfig)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("poll interval %s, want %s", cfg.PollInterval, defaultPollInterval)
	}

	cfg = DefaultConfig
	cfg.Testnet, cfg.Stagenet = true, true
	if err := ResolveConfig(appData, &cfg); err == nil {
		t.Fatal("conflicting networks accepted")
	}
}

func TestLoadDaemonOverride(t *testing.T) {
	appData := t.TempDir()

	// No file at all.
	cfg, err := LoadDaemonOverride(appData, "primary")
	if err != nil || cfg != nil {
		t.Fatalf("missing file: %+v, %v", cfg, err)
	}

	data := `[primary]
daemon = node.example.com:18081
daemonuser = rpcuser
daemonssl = true

[other]
daemon = localhost:18081
`
	if err := os.WriteFile(filepath.Join(appData, daemonsFilename), []byte(data), 0600); err != nil {
		t.Fatalf("write error: %v", err)
	}

	cfg, err = LoadDaemonOverride(appData, "primary")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg == nil || cfg.DaemonAddr != "node.example.com:18081" || cfg.DaemonUser != "rpcuser" || !cfg.DaemonSSL {
		t.Fatalf("wrong override: %+v", cfg)
	}
	spec := cfg.Spec()
	if spec.Address != cfg.DaemonAddr || !spec.UseSSL {
		t.Fatalf("wrong spec: %+v", spec)
	}

	// No section for this wallet.
	cfg, err = LoadDaemonOverride(appData, "nobody")
	if err != nil || cfg != nil {
		t.Fatalf("missing section: %+v, %v", cfg, err)
	}
}
