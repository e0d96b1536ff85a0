package cli

import (
	"fmt"

	"github.com/compozy/toolkit/pkg/collection"
	"github.com/spf13/cobra"
)

func RecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Normalize a JSON array of records read from stdin",
	}
	cmd.AddCommand(
		recordsUniqueCmd(),
		recordsUniqueValuesCmd(),
		recordsGroupCmd(),
		recordsSortCmd(),
		recordsPickCmd(),
		recordsIDsCmd(),
		recordsShuffleCmd(),
		recordsCompactCmd(),
	)
	return cmd
}

// runRecords decodes a record array from stdin, applies fn and prints the
// result.
func runRecords(cmd *cobra.Command, fn func([]collection.Record) (any, error)) error {
	var records []collection.Record
	if err := readJSON(cmd, &records); err != nil {
		return err
	}
	out, err := fn(records)
	if err != nil {
		return err
	}
	return writeJSON(cmd, out)
}

func addFieldFlag(cmd *cobra.Command, field *string, def string) {
	cmd.Flags().StringVarP(field, "field", "f", def, "Record field to compare")
	if def == "" {
		_ = cmd.MarkFlagRequired("field")
	}
}

func recordsUniqueCmd() *cobra.Command {
	var field string
	cmd := &cobra.Command{
		Use:   "unique",
		Short: "Keep the first record for each value of a field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecords(cmd, func(records []collection.Record) (any, error) {
				return collection.UniqueByField(records, field), nil
			})
		},
	}
	addFieldFlag(cmd, &field, "")
	return cmd
}

func recordsUniqueValuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unique-values",
		Short: "Drop records structurally equal to an earlier one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecords(cmd, func(records []collection.Record) (any, error) {
				return collection.UniqueByValue(records)
			})
		},
	}
}

func recordsGroupCmd() *cobra.Command {
	var field string
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Group records by the value of a field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecords(cmd, func(records []collection.Record) (any, error) {
				return collection.GroupByField(records, field), nil
			})
		},
	}
	addFieldFlag(cmd, &field, "")
	return cmd
}

func recordsSortCmd() *cobra.Command {
	var (
		field string
		front string
	)
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Stably sort records by a field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecords(cmd, func(records []collection.Record) (any, error) {
				sorted := collection.SortByField(records, field)
				if front == "" {
					return sorted, nil
				}
				moved, _ := collection.MoveToFrontFunc(sorted, func(r collection.Record) bool {
					v, ok := r[field]
					return ok && fmt.Sprint(v) == front
				})
				return moved, nil
			})
		},
	}
	addFieldFlag(cmd, &field, "")
	cmd.Flags().StringVar(&front, "front", "", "Move the first record whose field equals this value to the front")
	return cmd
}

func recordsPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick KEY...",
		Short: "Keep only the named keys of a JSON object",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var record collection.Record
			if err := readJSON(cmd, &record); err != nil {
				return err
			}
			return writeJSON(cmd, collection.Pick(record, args...))
		},
	}
}

func recordsIDsCmd() *cobra.Command {
	var field string
	cmd := &cobra.Command{
		Use:   "ids",
		Short: "Pair each record with its ID, numbering records without one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecords(cmd, func(records []collection.Record) (any, error) {
				return collection.AssignIDs(records, collection.RecordID(field)), nil
			})
		},
	}
	addFieldFlag(cmd, &field, "id")
	return cmd
}

func recordsShuffleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shuffle",
		Short: "Randomly reorder records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecords(cmd, func(records []collection.Record) (any, error) {
				return collection.Shuffle(records), nil
			})
		},
	}
}

func recordsCompactCmd() *cobra.Command {
	var field string
	cmd := &cobra.Command{
		Use:   "compact",
		Short: "Drop records whose field is missing or empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecords(cmd, func(records []collection.Record) (any, error) {
				out := make([]collection.Record, 0, len(records))
				for _, r := range records {
					if v, ok := r[field]; ok && !collection.IsEmpty(v) {
						out = append(out, r)
					}
				}
				return out, nil
			})
		},
	}
	addFieldFlag(cmd, &field, "")
	return cmd
}
