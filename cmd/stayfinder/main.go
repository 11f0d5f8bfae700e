package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/stayfinder/stayfinder/internal/auth"
	"github.com/stayfinder/stayfinder/internal/bookings"
	"github.com/stayfinder/stayfinder/internal/config"
	"github.com/stayfinder/stayfinder/internal/hotels"
	"github.com/stayfinder/stayfinder/internal/logger"
	"github.com/stayfinder/stayfinder/internal/server"
)

func main() {
	Execute()
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "stayfinder",
	Short: "A hotel-booking web service",
	Long: `Stayfinder is a consumer hotel-booking web service: hotel listing and
search, room selection, checkout and booking history, with login through a
third-party identity provider.`,
	Run: runServer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	config.InitFlags()
	rootCmd.Flags().AddFlagSet(pflag.CommandLine)
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")
}

func runServer(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Printf("Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitLogger(&cfg.Logging); err != nil {
		pterm.Error.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	app := fx.New(
		fx.Supply(cfg),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.GetLogger()}
		}),
		hotels.Module,
		bookings.Module,
		auth.Module,
		server.Module,
		fx.Invoke(registerServer),
	)

	app.Run()
}

// registerServer ties the HTTP server to the fx lifecycle: it runs in the
// background from OnStart and is drained on OnStop.
func registerServer(lc fx.Lifecycle, srv *server.Server, shutdowner fx.Shutdowner) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := srv.Start(runCtx); err != nil {
					logger.Error("Server exited", zap.Error(err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
