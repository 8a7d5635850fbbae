package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// writeOutput replaces the file name with data. As special cases, <STDOUT>
// and <STDERR> write to the command's standard streams.
func writeOutput(name string, data []byte, opts *options) error {
	switch name {
	case "<STDOUT>":
		_, err := opts.stdout.Write(data)
		return err
	case "<STDERR>":
		_, err := opts.stderr.Write(data)
		return err
	}

	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", name, err)
		}
	}

	if err := renameio.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}
