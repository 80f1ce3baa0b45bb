package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deadbeef/dbpf/container"
	"github.com/deadbeef/dbpf/exportbundle"
	"github.com/deadbeef/dbpf/typeid"
)

func exportCmd() *cobra.Command {
	var outPath, codec string

	cmd := &cobra.Command{
		Use:   "export <package-file>",
		Short: "Bundle every resource into a single compressed archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return export(args[0], outPath, exportbundle.Kind(codec))
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "export.bundle", "path to write the bundle to")
	cmd.Flags().StringVar(&codec, "codec", string(exportbundle.KindZstd), "bundle codec: none, zstd, s2, or lz4")

	return cmd
}

func export(path, outPath string, kind exportbundle.Kind) error {
	f, size, err := openPackage(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pkg, err := container.Open(f, size, container.WithDecodeAll())
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	names := typeid.NewRegistry()

	entries := make([]exportbundle.Entry, 0, len(pkg.All()))
	for _, res := range pkg.All() {
		key := res.Key()
		name := fmt.Sprintf("%s_%08x_%08x_%08x.bin", names.Name(key.Type), key.Type, key.Group, key.Instance)
		entries = append(entries, exportbundle.Entry{Name: name, Data: res.Bytes()})
	}

	bundle, err := exportbundle.Write(kind, entries)
	if err != nil {
		return fmt.Errorf("building bundle: %w", err)
	}

	if err := os.WriteFile(outPath, bundle, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Printf("exported %d resources to %s (%s codec)\n", len(entries), outPath, kind)

	return nil
}
