// Command texref points a material's texture references at a shared reference texture instead
// of a private one, then removes the now-unused private texture resources.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deadbeef/dbpf/container"
	"github.com/deadbeef/dbpf/resource"
)

func main() {
	root := &cobra.Command{Use: "texref"}
	root.AddCommand(referenceCmd(), getIDCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func referenceCmd() *cobra.Command {
	var texID, subset string
	var replaceBumpmap bool

	cmd := &cobra.Command{
		Use:   "set <package-file>",
		Short: "Repoint a subset's materials at a shared texture ID and drop the private textures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reference(args[0], texID, subset, replaceBumpmap)
		},
	}
	cmd.Flags().StringVar(&texID, "tex-id", "", "8 hex digit ID of the shared reference texture")
	cmd.Flags().StringVar(&subset, "subset", "", "subset name to replace")
	cmd.Flags().BoolVar(&replaceBumpmap, "replace-bumpmap", false, "also repoint stdMatNormalMapTextureName")
	_ = cmd.MarkFlagRequired("tex-id")
	_ = cmd.MarkFlagRequired("subset")

	return cmd
}

func reference(path, texID, subset string, replaceBumpmap bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	pkg, err := container.Open(f, info.Size(), container.WithDecodeAll())
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	f.Close()

	var toRemove []resource.Resource

	for _, res := range pkg.All() {
		switch r := res.(type) {
		case *resource.Material:
			name, ok := r.SubsetName()
			if !ok {
				return fmt.Errorf("%s: material %q has no stdMatBaseTextureName subset", path, r.Name())
			}
			if name != subset {
				continue
			}

			base := "##0x" + texID + "!" + subset + "~stdMatBaseTextureName"
			r.SetProperty("stdMatBaseTextureName", base)

			if replaceBumpmap {
				bump := "##0x" + texID + "!" + subset + "~stdMatNormalMapTextureName"
				r.SetProperty("stdMatNormalMapTextureName", bump)
			}

		case *resource.Texture:
			name, ok := r.SubsetName()
			if !ok || name != subset {
				continue
			}

			kind, ok := r.TextureType()
			if !ok {
				continue
			}
			if kind == "Base" || (replaceBumpmap && kind == "NormalMap") {
				toRemove = append(toRemove, r)
			}
		}
	}

	for _, r := range toRemove {
		pkg.Remove(r.Key())
	}

	if err := container.WriteFile(path, pkg); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Printf("referenced subset %q to texture %s, removed %d private textures\n", subset, texID, len(toRemove))

	return nil
}

func getIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-id <package-file>",
		Short: "Print the 8 hex digit texture ID prefix used by the file's materials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := getID(args[0])
			if err != nil {
				return err
			}
			fmt.Println(id)

			return nil
		},
	}
}

// getID returns the 8 hex digit ID embedded in the first material it finds carrying a
// stdMatBaseTextureName property of the form "##0x<id>!<subset>~stdMat...TextureName".
func getID(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	pkg, err := container.Open(f, info.Size(), container.WithDecodeAll())
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	const prefixLen, idLen = 4, 8

	for _, res := range pkg.All() {
		mat, ok := res.(*resource.Material)
		if !ok {
			continue
		}

		v, ok := mat.Properties.Get("stdMatBaseTextureName")
		if !ok || len(v) < prefixLen+idLen {
			continue
		}

		return v[prefixLen : prefixLen+idLen], nil
	}

	return "", fmt.Errorf("%s: no material carries a stdMatBaseTextureName property", path)
}
