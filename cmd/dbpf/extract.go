package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/deadbeef/dbpf/container"
	"github.com/deadbeef/dbpf/typeid"
)

func extractCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "extract <package-file>",
		Short: "Decompress every resource and write each one to its own file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return extract(args[0], outDir)
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write extracted resource files into")

	return cmd
}

func extract(path, outDir string) error {
	f, size, err := openPackage(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pkg, err := container.Open(f, size, container.WithDecodeAll())
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	names := typeid.NewRegistry()

	for _, res := range pkg.All() {
		key := res.Key()
		name := fmt.Sprintf("%s_%08x_%08x_%08x.bin", names.Name(key.Type), key.Type, key.Group, key.Instance)

		if err := os.WriteFile(filepath.Join(outDir, name), res.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	fmt.Printf("extracted %d resources to %s\n", len(pkg.All()), outDir)

	return nil
}
