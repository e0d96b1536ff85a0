package cli

import (
	"fmt"

	"github.com/compozy/toolkit/pkg/config"
	"github.com/compozy/toolkit/pkg/logger"
	"github.com/compozy/toolkit/pkg/version"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "toolbox.yaml"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "toolbox",
		Short:         "Collection, key-value and timer utilities",
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return SetupGlobalConfig(cmd)
		},
	}
	addGlobalFlags(root)
	root.AddCommand(
		KVCmd(),
		RecordsCmd(),
		NamesCmd(),
		QueryCmd(),
		JSONCmd(),
		StreamCmd(),
		ConfigCmd(),
	)
	return root
}

func addGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", defaultConfigFile, "Path to the configuration file")
	flags.String("env-file", ".env", "Path to an environment file loaded before configuration")
	flags.String("log-level", "info", "Log level (debug, info, warn, error, disabled)")
	flags.Bool("log-json", false, "Output logs in JSON format")
	flags.Bool("log-source", false, "Include source file and line in logs")
	flags.String("storage-driver", "memory", "Key-value store driver (memory, redis)")
	flags.String("redis-url", "", "Redis connection URL")
	flags.String("prefix", "toolbox", "Key prefix scoping the store")
	flags.Bool("cache", false, "Enable the in-process read cache")
}

// SetupGlobalConfig loads configuration from defaults, the config file, the
// environment and changed flags, then stores it and the configured logger in
// the command context.
func SetupGlobalConfig(cmd *cobra.Command) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.SetupLogger(cfg.Runtime.LogLevel, cfg.Runtime.LogJSON, cfg.Runtime.LogSource)
	ctx := config.ContextWithConfig(cmd.Context(), cfg)
	ctx = logger.ContextWithLogger(ctx, log)
	cmd.SetContext(ctx)
	log.Debug("Configuration loaded", "storage_driver", cfg.Storage.Driver, "prefix", cfg.Storage.Prefix)
	return nil
}

// loadConfig returns the effective configuration and the service that
// tracked where each value came from.
func loadConfig(cmd *cobra.Command) (*config.Config, config.Service, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if err := loadEnvFile(envFile); err != nil {
		return nil, nil, err
	}
	sources := []config.Source{}
	if configFile != "" {
		sources = append(sources, config.NewYAMLProvider(configFile))
	}
	if flags := extractCLIFlags(cmd); len(flags) > 0 {
		sources = append(sources, config.NewCLIProvider(flags))
	}
	service := config.NewService()
	cfg, err := service.Load(cmd.Context(), sources...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, service, nil
}
