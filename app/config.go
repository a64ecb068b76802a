// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

// Package app holds the configuration and logging bootstrap shared by
// programs built on this module.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cypherstack/cs-monero/cs"
	"github.com/cypherstack/cs-monero/cs/config"
	"github.com/cypherstack/cs-monero/wallet"
	"github.com/jessevdk/go-flags"
)

const (
	defaultLogLevel     = "debug"
	defaultPollInterval = 10 * time.Second
	configFilename      = "csmonero.conf"
	daemonsFilename     = "daemons.conf"
)

var (
	defaultApplicationDirectory = applicationDirectory()
	defaultConfigPath           = filepath.Join(defaultApplicationDirectory, configFilename)
)

// applicationDirectory returns the default app data directory,
// ~/.csmonero or the OS equivalent under the user config dir.
func applicationDirectory() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "csmonero")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".csmonero")
}

// DaemonConfig encapsulates the settings for the daemon connection.
type DaemonConfig struct {
	DaemonAddr    string `long:"daemon" ini:"daemon" description:"Daemon RPC address (host:port)."`
	DaemonUser    string `long:"daemonuser" ini:"daemonuser" description:"Daemon RPC user name."`
	DaemonPass    string `long:"daemonpass" ini:"daemonpass" description:"Daemon RPC password."`
	DaemonSSL     bool   `long:"daemonssl" ini:"daemonssl" description:"Use SSL for the daemon connection."`
	DaemonTrusted bool   `long:"daemontrusted" ini:"daemontrusted" description:"Treat the daemon as trusted, enabling operations that disclose wallet data to it."`
	Proxy         string `long:"proxy" ini:"proxy" description:"SOCKS5 proxy for daemon connections (eg. 127.0.0.1:9050)."`
}

// Spec converts the configuration to a daemon connection spec.
func (cfg *DaemonConfig) Spec() *wallet.DaemonSpec {
	return &wallet.DaemonSpec{
		Address:  cfg.DaemonAddr,
		Username: cfg.DaemonUser,
		Password: cfg.DaemonPass,
		UseSSL:   cfg.DaemonSSL,
		Trusted:  cfg.DaemonTrusted,
		Proxy:    cfg.Proxy,
	}
}

// WalletConfig encapsulates the settings for wallet storage and polling.
type WalletConfig struct {
	WalletDir    string        `long:"walletdir" description:"Directory holding wallet files."`
	MetaDBPath   string        `long:"db" description:"Wallet metadata database filepath. Created if it does not exist."`
	PollInterval time.Duration `long:"pollinterval" description:"Wallet event polling interval."`
	// Net is a derivative field set by ResolveConfig.
	Net cs.Network
}

// LogConfig encapsulates the logging-related settings.
type LogConfig struct {
	LogPath    string `long:"logpath" description:"A file to save app logs"`
	DebugLevel string `long:"log" description:"Logging level {trace, debug, info, warn, error, critical}"`
	LocalLogs  bool   `long:"loglocal" description:"Use local time zone time stamps in log entries."`
}

// Config is the common application configuration definition.
type Config struct {
	WalletConfig
	DaemonConfig
	LogConfig
	// AppData and ConfigPath should be parsed from the command-line, as it
	// makes no sense to set these in the config file itself. If no values
	// are assigned, defaults will be used.
	AppData    string `long:"appdata" description:"Path to application directory."`
	ConfigPath string `long:"config" description:"Path to an INI configuration file."`
	// Testnet and Stagenet are used to set the derivative WalletConfig.Net
	// field.
	Testnet  bool `long:"testnet" description:"use testnet"`
	Stagenet bool `long:"stagenet" description:"use stagenet"`
	ShowVer  bool `short:"V" long:"version" description:"Display version information and exit"`
}

// DefaultConfig is the app configuration before file and CLI values apply.
var DefaultConfig = Config{
	AppData:    defaultApplicationDirectory,
	ConfigPath: defaultConfigPath,
	LogConfig:  LogConfig{DebugLevel: defaultLogLevel},
	WalletConfig: WalletConfig{
		PollInterval: defaultPollInterval,
	},
}

// ParseCLIConfig parses the command-line arguments into the provided struct
// with go-flags tags. If the --help flag has been passed, the struct is
// described back to the terminal and the program exits using os.Exit.
func ParseCLIConfig(cfg any) error {
	preParser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	_, flagerr := preParser.Parse()

	if flagerr != nil {
		e, ok := flagerr.(*flags.Error)
		if !ok || e.Type != flags.ErrHelp {
			preParser.WriteHelp(os.Stderr)
		}
		if ok && e.Type == flags.ErrHelp {
			preParser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		return flagerr
	}
	return nil
}

// ResolveCLIConfigPaths resolves the app data directory path and the
// configuration file path from the CLI config, (presumably parsed with
// ParseCLIConfig).
func ResolveCLIConfigPaths(cfg *Config) (appData, configPath string) {
	// If the app directory has been changed, replace shortcut chars such
	// as "~" with the full path.
	if cfg.AppData != defaultApplicationDirectory {
		cfg.AppData = cs.CleanAndExpandPath(cfg.AppData)
		// If the app directory has been changed, but the config file path
		// hasn't, reform the config file path with the new directory.
		if cfg.ConfigPath == defaultConfigPath {
			cfg.ConfigPath = filepath.Join(cfg.AppData, configFilename)
		}
	}
	cfg.ConfigPath = cs.CleanAndExpandPath(cfg.ConfigPath)
	return cfg.AppData, cfg.ConfigPath
}

// ParseFileConfig parses the INI file into the provided struct with go-flags
// tags. The CLI args are then parsed, and take precedence over the file
// values.
func ParseFileConfig(path string, cfg any) error {
	parser := flags.NewParser(cfg, flags.Default)
	err := flags.NewIniParser(parser).ParseFile(path)
	if err != nil {
		if _, ok := err.(*os.PathError); !ok {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
			return err
		}
		// Missing file is not an error.
	}

	// Parse command line options again to ensure they take precedence.
	_, err = parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return err
	}
	return nil
}

// ResolveConfig sets derivative fields of the Config struct using the
// specified app data directory (presumably returned from
// ResolveCLIConfigPaths). Some unset values are given defaults.
func ResolveConfig(appData string, cfg *Config) error {
	if cfg.Testnet && cfg.Stagenet {
		return fmt.Errorf("testnet and stagenet cannot both be specified")
	}

	cfg.AppData = appData

	switch {
	case cfg.Testnet:
		cfg.Net = cs.Testnet
	case cfg.Stagenet:
		cfg.Net = cs.Stagenet
	default:
		cfg.Net = cs.Mainnet
	}
	defaultWalletDir, defaultDBPath, defaultLogPath := setNet(appData, cfg.Net.String())

	if cfg.WalletDir == "" {
		cfg.WalletDir = defaultWalletDir
	}
	if cfg.MetaDBPath == "" {
		cfg.MetaDBPath = defaultDBPath
	}
	if cfg.LogPath == "" {
		cfg.LogPath = defaultLogPath
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	return nil
}

// setNet creates the filesystem layout for the network directory and returns
// suggested paths for the wallet directory, the metadata database and the
// log file. If using a file rotator, the directory of the log filepath as
// parsed by filepath.Dir is suitable for use.
func setNet(applicationDirectory, net string) (walletDir, dbPath, logPath string) {
	netDirectory := filepath.Join(applicationDirectory, net)
	walletDirectory := filepath.Join(netDirectory, "wallets")
	logDirectory := filepath.Join(netDirectory, "logs")
	logFilename := filepath.Join(logDirectory, "csmonero.log")
	for _, dir := range []string{netDirectory, walletDirectory, logDirectory} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create directory %s: %v\n", dir, err)
			os.Exit(1)
		}
	}
	return walletDirectory, filepath.Join(netDirectory, "csmonero.db"), logFilename
}

// LoadDaemonOverride reads the per-wallet daemon settings file in the app
// data directory, if present, and returns the daemon config for the named
// wallet. The file is INI with one section per wallet name; keys match the
// ini tags of DaemonConfig. A missing file or section returns nil.
func LoadDaemonOverride(appData, walletName string) (*DaemonConfig, error) {
	path := filepath.Join(appData, daemonsFilename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	sections, err := config.SectionOptions(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	opts, found := sections[walletName]
	if !found {
		return nil, nil
	}
	cfg := new(DaemonConfig)
	if err := config.Parse(config.OptionsMapToINIData(opts), cfg); err != nil {
		return nil, fmt.Errorf("error parsing daemon settings for %s: %w", walletName, err)
	}
	return cfg, nil
}
