// cascade-sim drives the AMM keeper against a local persistent store. It
// exists for operating testnets and for poking at pool behavior without a
// full node: every boundary operation of the module is exposed as a
// subcommand.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	"cosmossdk.io/store/dbadapter"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cascade-dex/cascade/x/amm/keeper"
)

func main() {
	root := &cobra.Command{
		Use:          "cascade-sim",
		Short:        "Local AMM pool simulator",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("home", defaultHome(), "state directory")
	root.PersistentFlags().String("authority", "sim-authority", "module authority account")
	root.PersistentFlags().String("actor", "sim-authority", "account acting in transactions")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newCreatePoolCmd(),
		newProvideCmd(),
		newWithdrawCmd(),
		newSwapCmd(),
		newSimulateCmd(),
		newSimulateReverseCmd(),
		newPricesCmd(),
		newPoolsCmd(),
		newResumeCmd(),
		newFeesCmd(),
		newWithdrawFeesCmd(),
		newExportCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cascade-sim"
	}
	return filepath.Join(home, ".cascade-sim")
}

// simConfig merges config file, environment, and flags.
type simConfig struct {
	Home      string
	Authority string
	Actor     string
	LogLevel  string
}

func loadConfig(flags *pflag.FlagSet) (simConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("CASCADE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return simConfig{}, fmt.Errorf("bind flags: %w", err)
	}

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return simConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	return simConfig{
		Home:      v.GetString("home"),
		Authority: v.GetString("authority"),
		Actor:     v.GetString("actor"),
		LogLevel:  v.GetString("log-level"),
	}, nil
}

// openKeeper builds a keeper over a goleveldb-backed store in the home
// directory. The returned closer flushes the database.
func openKeeper(cmd *cobra.Command) (*keeper.Keeper, simConfig, func(), error) {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return nil, simConfig{}, nil, err
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, simConfig{}, nil, fmt.Errorf("create home directory: %w", err)
	}

	db, err := dbm.NewGoLevelDB("amm", cfg.Home, nil)
	if err != nil {
		return nil, simConfig{}, nil, fmt.Errorf("open state database: %w", err)
	}

	logger := log.NewLogger(os.Stderr)
	if cfg.LogLevel == "error" || cfg.LogLevel == "warn" {
		logger = log.NewNopLogger()
	}

	k := keeper.NewKeeper(dbadapter.Store{DB: db}, sysClock{}, cfg.Authority, logger)
	closer := func() { _ = db.Close() }
	return k, cfg, closer, nil
}
