package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deadbeef/dbpf/container"
	"github.com/deadbeef/dbpf/typeid"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <package-file>",
		Short: "List every resource in a package: type, key, compression, and size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(cmd, args[0])
		},
	}
}

func inspect(cmd *cobra.Command, path string) error {
	f, size, err := openPackage(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pkg, err := container.Open(f, size)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	names := typeid.NewRegistry()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "TYPE\tGROUP\tINSTANCE\tRESOURCE\tCOMPRESSED\tBYTES")
	for _, res := range pkg.All() {
		key := res.Key()

		compressed := "no"
		if _, decompLen, ok := res.IsCompressed(); ok {
			compressed = fmt.Sprintf("yes (%d decompressed)", decompLen)
		}

		fmt.Fprintf(w, "%s\t%08x\t%08x\t%08x\t%s\t%d\n",
			names.Name(key.Type), key.Group, key.Instance, key.Resource, compressed, len(res.Bytes()))
	}

	return nil
}
