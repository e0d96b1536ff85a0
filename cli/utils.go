package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/compozy/toolkit/pkg/config"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// extractCLIFlags collects changed flags that map onto configuration paths.
func extractCLIFlags(cmd *cobra.Command) map[string]any {
	flags := make(map[string]any)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if _, ok := config.CLIFlagPath(f.Name); !ok {
			return
		}
		switch f.Value.Type() {
		case "bool":
			if v, err := cmd.Flags().GetBool(f.Name); err == nil {
				flags[f.Name] = v
			}
		default:
			flags[f.Name] = f.Value.String()
		}
	})
	return flags
}

// readJSON decodes the command input into v. Numbers are kept as
// json.Number so they round-trip without loss.
func readJSON(cmd *cobra.Command, v any) error {
	dec := json.NewDecoder(bufio.NewReader(cmd.InOrStdin()))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode input: %w", err)
	}
	return nil
}

// writeJSON prints v as indented JSON.
func writeJSON(cmd *cobra.Command, v any) error {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return writeRaw(cmd.OutOrStdout(), b.Bytes())
}

// writeRaw pretty-prints JSON, colorized when w is a terminal.
func writeRaw(w io.Writer, data []byte) error {
	out := pretty.Pretty(data)
	if isTerminal(w) {
		out = pretty.Color(out, nil)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// loadEnvFile loads variables from path into the environment without
// overriding ones already set. A missing file is ignored.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// parseValue treats text that is valid JSON as JSON and anything else as a
// plain string.
func parseValue(text string) any {
	if gjson.Valid(text) {
		return json.RawMessage(text)
	}
	return text
}
