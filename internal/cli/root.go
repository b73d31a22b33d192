package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"simtrader/internal/config"
	"simtrader/internal/logging"
	"simtrader/internal/market"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-06-01"
)

// deferConfigErrors marks commands that report configuration errors
// themselves instead of failing before they run.
const deferConfigErrors = "defer-config-errors"

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger

	configErr error
}

// NewRootCmd creates the root command for the CLI. Configuration and the
// logger are resolved once flags are parsed.
func NewRootCmd() *cobra.Command {
	app := &App{
		Config: config.Default(),
		Logger: zerolog.Nop(),
	}

	rootCmd := &cobra.Command{
		Use:   "simtrader",
		Short: "Stock Trading Platform - an interactive trading simulator",
		Long: `simtrader is a single-user stock trading simulator.

Open an account with a starting balance, then buy and sell from a small
simulated market whose prices move on request. Nothing is persisted; every
session starts fresh.

Run 'simtrader' or 'simtrader play' to start a session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSession(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/simtrader/config.toml)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	addSeedFlag(rootCmd)

	rootCmd.AddCommand(newPlayCmd(app))
	rootCmd.AddCommand(newMarketCmd(app))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newExamplesCmd())

	return rootCmd
}

func addSeedFlag(cmd *cobra.Command) {
	cmd.Flags().Int64("seed", 0, "seed for market price updates (0 = use config, then random)")
}

// setup loads configuration and builds the logger.
func (a *App) setup(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		if cmd.Annotations[deferConfigErrors] == "" {
			return err
		}
		a.configErr = err
	} else {
		a.Config = cfg
	}

	logCfg := a.Config.LogConfig()
	logCfg.ConsoleOut = cmd.ErrOrStderr()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
	}
	a.Logger = logging.NewLoggerWithConfig(logCfg)
	a.Logger.Debug().Str("command", cmd.CommandPath()).Msg("Configuration loaded")
	return nil
}

func (a *App) newMarket() (*market.Market, error) {
	return market.New(a.Config.Listings(), market.WithVolatility(a.Config.Market.VolatilityPercent))
}

// runSession plays one interactive session on the command's streams.
func (a *App) runSession(cmd *cobra.Command) error {
	m, err := a.newMarket()
	if err != nil {
		return err
	}

	seed := a.Config.Market.Seed
	if cmd.Flags().Changed("seed") {
		seed, _ = cmd.Flags().GetInt64("seed")
	}
	a.Logger.Debug().Int64("seed", seed).Int("stocks", m.Len()).Msg("Starting session")

	session := NewSession(SessionConfig{
		Market: m,
		Rand:   market.NewRand(seed),
		In:     cmd.InOrStdin(),
		Out:    NewOutput(cmd, a.Config.UI.ColorEnabled, a.Config.UI.Currency),
		Logger: a.Logger,
	})
	return session.Run(cmd.Context())
}

func newPlayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start an interactive trading session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSession(cmd)
		},
	}
	addSeedFlag(cmd)
	return cmd
}

// listingView is the JSON shape of one listing.
type listingView struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Price  string `json:"price"`
}

func newMarketCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "Show the opening market listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.newMarket()
			if err != nil {
				return err
			}
			output := NewOutput(cmd, app.Config.UI.ColorEnabled, app.Config.UI.Currency)
			if output.IsJSON() {
				views := make([]listingView, 0, m.Len())
				for _, s := range m.Stocks() {
					views = append(views, listingView{
						Symbol: s.Symbol(),
						Name:   s.Name(),
						Price:  s.Price().StringFixed(2),
					})
				}
				return output.JSON(views)
			}
			renderMarket(output, m)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, false, "")
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			}
			output.Printf("simtrader v%s\n", Version)
			output.Dim("Build date: %s", BuildDate)
			return nil
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and check application configuration. The file is never written by simtrader.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled, app.Config.UI.Currency)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, false, "")
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			}
			output.Println(config.DefaultConfigDir())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:         "validate",
		Short:       "Validate the configuration file",
		Annotations: map[string]string{deferConfigErrors: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled, app.Config.UI.Currency)
			if app.configErr != nil {
				if output.IsJSON() {
					_ = output.JSON(map[string]interface{}{"valid": false, "error": app.configErr.Error()})
				} else {
					output.Error("Configuration validation failed: %v", app.configErr)
				}
				return app.configErr
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("Configuration is valid")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "template",
		Short: "Print a commented configuration file with all defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.WriteTemplate(cmd.OutOrStdout())
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Market")
	output.Printf("  Volatility:  %.2f%%\n", cfg.Market.VolatilityPercent)
	seed := "random"
	if cfg.Market.Seed != 0 {
		seed = fmt.Sprintf("%d", cfg.Market.Seed)
	}
	output.Printf("  Seed:        %s\n", seed)
	output.Printf("  Stocks:      %d\n", len(cfg.Market.Stocks))
	output.Println()

	output.Bold("UI")
	output.Printf("  Color:       %v\n", cfg.UI.ColorEnabled)
	output.Printf("  Currency:    %s\n", cfg.UI.Currency)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:       %s\n", cfg.Logging.Level)
	output.Printf("  File:        %v\n", cfg.Logging.File)
	if cfg.Logging.File {
		output.Printf("  Path:        %s\n", cfg.Logging.FilePath)
	}
}
