// Command sorter rewrites the sortindex property of every binary-index (BINX) resource in a
// package file to a single given value.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/deadbeef/dbpf/container"
	"github.com/deadbeef/dbpf/resource"
	"github.com/deadbeef/dbpf/section"
)

func main() {
	var index int32
	var binxType string

	cmd := &cobra.Command{
		Use:   "sorter <package-file>",
		Short: "Set every BINX resource's sortindex to a single value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeID, err := strconv.ParseUint(binxType, 16, 32)
			if err != nil {
				return fmt.Errorf("--binx-type %q: %w", binxType, err)
			}

			return run(args[0], index, uint32(typeID)) //nolint:gosec
		},
	}
	cmd.Flags().Int32Var(&index, "index", 0, "sort index to assign to every BINX resource")
	cmd.Flags().StringVar(&binxType, "binx-type", "", "hex type ID of the BINX resource in this package")
	_ = cmd.MarkFlagRequired("binx-type")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(path string, index int32, binxType uint32) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	registry := resource.NewRegistry()
	registry.Register(binxType, "BINX", func(entry section.IndexEntry, data []byte) (resource.Resource, error) {
		return resource.ParseBinaryIndex(entry, data)
	})

	pkg, err := container.Open(f, info.Size(),
		container.WithRegistry(registry),
		container.WithDecodeTypes(binxType),
	)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	f.Close()

	changed := 0
	for _, res := range pkg.All() {
		binx, ok := res.(*resource.BinaryIndex)
		if !ok {
			continue
		}
		if binx.SetSortIndex(index) {
			changed++
		}
	}

	if err := container.WriteFile(path, pkg); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Printf("set sortindex on %d resources in %s\n", changed, path)

	return nil
}
