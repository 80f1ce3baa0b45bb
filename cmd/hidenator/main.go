// Command hidenator hides named clothing/object items from in-game selection by clearing the
// family membership of their property-set resources.
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
	var names []string
	var gzpsType string

	cmd := &cobra.Command{
		Use:   "hidenator <package-file>",
		Short: "Clear the family property of named property sets, hiding them from selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeID, err := strconv.ParseUint(gzpsType, 16, 32)
			if err != nil {
				return fmt.Errorf("--gzps-type %q: %w", gzpsType, err)
			}

			return run(args[0], names, uint32(typeID)) //nolint:gosec
		},
	}
	cmd.Flags().StringSliceVar(&names, "name", nil, "display name of a property set to hide (repeatable)")
	cmd.Flags().StringVar(&gzpsType, "gzps-type", "", "hex type ID of the property-set resource in this package")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("gzps-type")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(path string, names []string, gzpsType uint32) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	registry := resource.NewRegistry()
	registry.Register(gzpsType, "GZPS", func(entry section.IndexEntry, data []byte) (resource.Resource, error) {
		return resource.ParsePropertySet(entry, data)
	})

	pkg, err := container.Open(f, info.Size(),
		container.WithRegistry(registry),
		container.WithDecodeTypes(gzpsType),
	)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	f.Close()

	hidden := 0
	for _, res := range pkg.All() {
		ps, ok := res.(*resource.PropertySet)
		if !ok || !want[ps.Name()] {
			continue
		}
		if ps.SetFamily("") {
			hidden++
		}
	}

	if err := container.WriteFile(path, pkg); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Printf("hid %d of %d named property sets in %s\n", hidden, len(names), path)

	return nil
}
