package main

import (
	"fmt"

	"github.com/iwvelando/outbreak-forecast/internal/forecast"
	"github.com/iwvelando/outbreak-forecast/pkg/constants"
	"github.com/iwvelando/outbreak-forecast/pkg/output"
	"github.com/iwvelando/outbreak-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation to its final day and print the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			configLocation, _ := cmd.Flags().GetString("config")
			outputFormatFlag, _ := cmd.Flags().GetString("output-format")
			logLevel, _ := cmd.Flags().GetString("log-level")

			conf, err := loadSimulationConfig(configLocation, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}

			logger, err := initializeLogger(conf.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			// Determine output format (CLI override takes precedence over config)
			outputFormat := conf.Output.Format
			if outputFormatFlag != "" {
				outputFormat = outputFormatFlag
			}
			if outputFormat == "" {
				outputFormat = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(outputFormat); err != nil {
				return err
			}

			logWarnings(logger, conf)

			result, err := forecast.GetForecast(logger, *conf)
			if err != nil {
				logger.Error("failed to compute forecast",
					zap.String("op", "main.run"),
					zap.Error(err),
				)
				return err
			}

			switch outputFormat {
			case constants.OutputFormatPretty:
				output.WritePretty(cmd.OutOrStdout(), result)
			case constants.OutputFormatCSV:
				output.WriteCsv(cmd.OutOrStdout(), result)
			}
			return nil
		},
	}

	cmd.Flags().String("config", constants.DefaultConfigFile, "path to configuration file")
	cmd.Flags().String("output-format", "", "type of output override: pretty, csv")
	return cmd
}
