// Command dbpf is a multi-call CLI for inspecting, extracting, and exporting DBPF package
// files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "dbpf",
		Short: "Inspect, extract, and export DBPF package files",
	}
	root.AddCommand(inspectCmd(), extractCmd(), exportCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openPackage(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, 0, err
	}

	return f, info.Size(), nil
}
