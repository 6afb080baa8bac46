package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"ticktick-cli/internal/config"
	"ticktick-cli/internal/ticktick"
)

// stdout is swapped out in tests
var stdout io.Writer = os.Stdout

// writeJSON prints v as indented JSON on stdout.
func writeJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}

// newClient builds the unified client from environment credentials.
func newClient() (*ticktick.Client, error) {
	return ticktick.New(config.Load())
}

// expandNewlines converts literal \n sequences in flag values to real
// newlines, since shells pass them through verbatim.
func expandNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
