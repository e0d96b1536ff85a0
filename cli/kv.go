package cli

import (
	"encoding/json"
	"fmt"

	"github.com/compozy/toolkit/pkg/config"
	"github.com/compozy/toolkit/pkg/kvstore"
	"github.com/spf13/cobra"
)

func KVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kv",
		Short: "Read and write the key-value store",
	}
	cmd.AddCommand(
		kvSetCmd(),
		kvGetCmd(),
		kvRemoveCmd(),
		kvEnsureCmd(),
		kvClearCmd(),
	)
	return cmd
}

// withStore opens the configured store for the duration of fn.
func withStore(cmd *cobra.Command, fn func(s *kvstore.Store) error) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	s, err := kvstore.Open(ctx, &cfg.Storage)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func kvSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a value; VALUE is JSON or a plain string",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *kvstore.Store) error {
				return s.Set(cmd.Context(), args[0], parseValue(args[1]))
			})
		},
	}
}

func kvGetCmd() *cobra.Command {
	var def string
	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print a stored value, or the default when absent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *kvstore.Store) error {
				fallback, err := json.Marshal(parseValue(def))
				if err != nil {
					return fmt.Errorf("invalid default: %w", err)
				}
				v, err := kvstore.Get(cmd.Context(), s, args[0], json.RawMessage(fallback))
				if err != nil {
					return err
				}
				return writeRaw(cmd.OutOrStdout(), v)
			})
		},
	}
	cmd.Flags().StringVar(&def, "default", "null", "Value printed when the key is absent")
	return cmd
}

func kvRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove KEY",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *kvstore.Store) error {
				return s.Remove(cmd.Context(), args[0])
			})
		},
	}
}

func kvEnsureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure KEY VALUE",
		Short: "Store a value only if the key is absent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *kvstore.Store) error {
				written, err := s.Ensure(cmd.Context(), args[0], parseValue(args[1]))
				if err != nil {
					return err
				}
				return writeJSON(cmd, map[string]bool{"written": written})
			})
		},
	}
}

func kvClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every key under the configured prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(s *kvstore.Store) error {
				return s.Clear(cmd.Context())
			})
		},
	}
}
