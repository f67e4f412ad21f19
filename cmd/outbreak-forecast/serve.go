package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/outbreak-forecast/internal/clock"
	"github.com/iwvelando/outbreak-forecast/internal/controller"
	"github.com/iwvelando/outbreak-forecast/internal/server"
	"github.com/iwvelando/outbreak-forecast/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live dashboard over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverConfigLocation, _ := cmd.Flags().GetString("server-config")
			configLocation, _ := cmd.Flags().GetString("config")
			address, _ := cmd.Flags().GetString("address")
			logLevel, _ := cmd.Flags().GetString("log-level")

			srvCfg, err := server.LoadConfig(serverConfigLocation)
			if err != nil {
				return err
			}
			if address != "" {
				srvCfg.Address = address
			}

			logger, err := initializeLogger(srvCfg.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			explicit := cmd.Flags().Changed("config")
			if !explicit && srvCfg.SimulationConfig != "" {
				configLocation = srvCfg.SimulationConfig
				explicit = true
			}
			conf, err := loadSimulationConfig(configLocation, explicit)
			if err != nil {
				return err
			}
			logWarnings(logger, conf)

			opts, err := conf.ControllerOptions(logger, clock.System())
			if err != nil {
				return err
			}
			ctrl, err := controller.New(logger, opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			defer ctrl.Pause()

			handler := server.NewHandler(ctx, logger, ctrl, conf, server.Options{
				MaxMessageSize: srvCfg.MessageLimit(),
				Version:        version,
			})

			logger.Info("starting dashboard",
				zap.String("op", "main.serve"),
				zap.String("address", srvCfg.Address),
				zap.String("run", ctrl.Snapshot().RunID),
			)
			return server.Serve(ctx, logger, srvCfg.Address, handler)
		},
	}

	cmd.Flags().String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().String("config", constants.DefaultConfigFile, "path to simulation configuration file")
	cmd.Flags().String("address", "", "listen address override (e.g. :8080)")
	return cmd
}
