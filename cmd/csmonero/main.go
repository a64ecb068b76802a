// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

// csmonero is a small command-line demonstration of the wallet stack. It
// opens (or creates) a wallet, connects it to a daemon, and logs balance and
// sync events until interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/cypherstack/cs-monero/app"
	"github.com/cypherstack/cs-monero/cs"
	"github.com/cypherstack/cs-monero/db/bolt"
	"github.com/cypherstack/cs-monero/native/cwallet2"
	"github.com/cypherstack/cs-monero/wallet"
	"github.com/cypherstack/cs-monero/worker"
	"golang.org/x/sync/errgroup"
)

const version = "0.1.0"

type config struct {
	app.Config
	WalletName     string `long:"wallet" description:"Wallet name to open, or create if missing."`
	WalletPassword string `long:"walletpassword" description:"Wallet file password."`
}

func main() {
	os.Exit(mainCore())
}

func mainCore() int {
	cfg := config{Config: app.DefaultConfig, WalletName: "primary"}
	if err := app.ParseCLIConfig(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	appData, configPath := app.ResolveCLIConfigPaths(&cfg.Config)
	if err := app.ParseFileConfig(configPath, &cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := app.ResolveConfig(appData, &cfg.Config); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if cfg.ShowVer {
		fmt.Printf("csmonero version %s (%s)\n", version, runtime.Version())
		return 0
	}
	if !cwallet2.Available {
		fmt.Fprintln(os.Stderr, "built without native wallet support, rebuild with -tags xmr")
		return 1
	}

	lm, closeLogger := app.InitLogging(cfg.LogPath, cfg.DebugLevel, true, !cfg.LocalLogs)
	defer closeLogger()
	log := lm.NewLogger("MAIN")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &cfg, lm, log); err != nil {
		log.Errorf("%v", err)
		return 1
	}
	return 0
}

// logListener logs polling events.
type logListener struct {
	log cs.Logger
}

func (l *logListener) BalancesChanged(full, unlocked cs.Amount) {
	l.log.Infof("balance: %s (%s unlocked)", full, unlocked)
}

func (l *logListener) NewBlock(daemonHeight uint64) {
	l.log.Infof("new block at height %d", daemonHeight)
}

func (l *logListener) SyncUpdate(syncHeight, daemonHeight uint64) {
	l.log.Infof("sync progress: %d / %d", syncHeight, daemonHeight)
}

func run(ctx context.Context, cfg *config, lm *cs.LoggerMaker, log cs.Logger) error {
	mdb, err := bolt.NewDB(cfg.MetaDBPath, lm.NewLogger("DB"))
	if err != nil {
		return err
	}
	defer mdb.Close()

	cl := worker.Spawn(ctx, cwallet2.TheManager(), lm.NewLogger("WORK"))
	defer cl.Dispose()
	loader := wallet.NewLoader(cl, mdb, lm.NewLogger("WLLT"))

	walletPath := filepath.Join(cfg.WalletDir, cfg.WalletName)
	exists, err := loader.WalletExists(ctx, walletPath)
	if err != nil {
		return err
	}
	var w *wallet.Wallet
	if exists {
		w, err = loader.Open(ctx, &wallet.OpenOpts{
			Path:     walletPath,
			Password: cfg.WalletPassword,
			Net:      cfg.Net,
		})
	} else {
		log.Infof("creating new wallet %s", cfg.WalletName)
		w, err = loader.Create(ctx, &wallet.CreateOpts{
			Path:     walletPath,
			Password: cfg.WalletPassword,
			Net:      cfg.Net,
		})
	}
	if err != nil {
		return err
	}

	addr, err := w.Address(ctx, 0, 0)
	if err != nil {
		return err
	}
	log.Infof("wallet %s ready, primary address %s", w.Name(), addr)

	daemonCfg := &cfg.DaemonConfig
	if override, err := app.LoadDaemonOverride(cfg.AppData, cfg.WalletName); err != nil {
		return err
	} else if override != nil {
		daemonCfg = override
	}

	var g errgroup.Group
	g.Go(func() error {
		if daemonCfg.DaemonAddr == "" {
			log.Warnf("no daemon configured, running offline")
			return nil
		}
		if err := w.ConnectDaemon(ctx, daemonCfg.Spec()); err != nil {
			return fmt.Errorf("error connecting to daemon %s: %w", daemonCfg.DaemonAddr, err)
		}
		return w.WatchEvents(ctx, cfg.PollInterval, &logListener{log: lm.NewLogger("POLL")})
	})
	g.Go(func() error {
		<-ctx.Done()
		// The signal context is done; close with a fresh context so the
		// wallet still saves.
		return w.Close(context.Background(), true)
	})
	return g.Wait()
}
