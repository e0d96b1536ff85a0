package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/compozy/toolkit/pkg/config"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

const redactedValue = "[REDACTED]"

func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	cmd.AddCommand(configShowCmd(), configEnvCmd())
	return cmd
}

// configEntry is one flattened setting with the source that provided it.
type configEntry struct {
	Value  any               `json:"value"`
	Source config.SourceType `json:"source"`
}

func configShowCmd() *cobra.Command {
	var showSources bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, service, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !showSources {
				return writeJSON(cmd, cfg)
			}
			entries, err := configEntries(cfg, service)
			if err != nil {
				return err
			}
			return writeJSON(cmd, entries)
		},
	}
	cmd.Flags().BoolVarP(&showSources, "sources", "s", false, "Show which source provided each value")
	return cmd
}

// configEntries flattens cfg into dotted keys, redacting sensitive values.
func configEntries(cfg *config.Config, service config.Service) (map[string]configEntry, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to flatten configuration: %w", err)
	}
	entries := make(map[string]configEntry, len(k.Keys()))
	for _, key := range k.Keys() {
		value := k.Get(key)
		if config.IsSensitiveConfigPath(key) {
			value = redactedValue
		}
		entries[key] = configEntry{Value: value, Source: service.GetSource(key)}
	}
	return entries, nil
}

func configEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables the configuration reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mappings := config.GenerateEnvMappings()
			lines := make([]string, 0, len(mappings))
			for _, m := range mappings {
				lines = append(lines, fmt.Sprintf("%s\t%s", m.EnvVar, m.ConfigPath))
			}
			sort.Strings(lines)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			return err
		},
	}
}
