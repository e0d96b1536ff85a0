package cli

import (
	"github.com/compozy/toolkit/pkg/collection"
	"github.com/spf13/cobra"
)

func NamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names",
		Short: "Derive collision-free names",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "unique BASE [EXISTING...]",
		Short: "Print BASE, or BASE with the smallest free numeric suffix",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd, collection.UniqueName(args[1:], args[0]))
		},
	})
	return cmd
}

func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Work with URL query strings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "parse QUERY",
		Short: "Decode a query string into a JSON object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := collection.ParseQuery(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, values)
		},
	})
	return cmd
}

func JSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "json",
		Short: "Edit JSON documents",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "edit DOC KEY VALUE",
		Short: "Set a top-level key of a JSON object; VALUE is JSON or a plain string",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := collection.EditJSONValue(args[0], args[1], parseValue(args[2]))
			if err != nil {
				return err
			}
			return writeRaw(cmd.OutOrStdout(), []byte(out))
		},
	})
	return cmd
}
