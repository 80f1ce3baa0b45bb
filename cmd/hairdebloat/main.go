// Command hairdebloat strips a custom hair package down to a single recolor: it repoints the
// hair material at a shared Maxis reference texture instead of a bundled one, drops the now
// redundant materials and textures, and rewires the remaining reference tables to point at
// what's left.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deadbeef/dbpf/container"
	"github.com/deadbeef/dbpf/resource"
	"github.com/deadbeef/dbpf/section"
	"github.com/deadbeef/dbpf/typeid"
)

// legacyTypeIDs are the caller-supplied numeric type IDs for the resource kinds this driver
// needs beyond the two typeid pre-registers (TXTR, TXMT): this format's GZPS/XHTN/3IDR IDs
// aren't independently verifiable from a package's own bytes, so the operator supplies them.
type legacyTypeIDs struct {
	propertySet, hairTone, refTable uint32
}

// Age-group bitmask values the property-set and hair-tone resources carry in their "age"
// property.
const (
	ageToddler        = 1
	ageElder          = 0x10
	ageAllButToddler  = 0x5e
	maxisHairTexture  = "ufhairlong-"
	maxisAlphaGroups  = 8
)

var hairColorNames = map[string]int{
	"black": resource.HairBlack,
	"brown": resource.HairBrown,
	"blond": resource.HairBlond,
	"red":   resource.HairRed,
	"grey":  resource.HairGrey,
}

func main() {
	var color, family, hatTexture string
	var gzpsType, xhtnType, idrType string

	cmd := &cobra.Command{
		Use:   "hairdebloat <package-file>",
		Short: "Strip a custom hair package down to a single Maxis-referenced recolor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hairColor, ok := hairColorNames[strings.ToLower(color)]
			if !ok {
				return fmt.Errorf("unknown --color %q (want black, brown, blond, red, or grey)", color)
			}

			ids, err := parseLegacyTypeIDs(gzpsType, xhtnType, idrType)
			if err != nil {
				return err
			}

			return run(args[0], hairColor, family, hatTexture, ids)
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "hair color: black, brown, blond, red, or grey")
	cmd.Flags().StringVar(&family, "family", "", "family name to stamp onto the hair's property sets")
	cmd.Flags().StringVar(&hatTexture, "hat-texture", "", "base name of the hat/frame/lens texture to keep")
	cmd.Flags().StringVar(&gzpsType, "gzps-type", "", "hex type ID of the property-set resource in this package")
	cmd.Flags().StringVar(&xhtnType, "xhtn-type", "", "hex type ID of the hair-tone resource in this package")
	cmd.Flags().StringVar(&idrType, "3idr-type", "", "hex type ID of the reference-table resource in this package")
	_ = cmd.MarkFlagRequired("color")
	_ = cmd.MarkFlagRequired("family")
	_ = cmd.MarkFlagRequired("hat-texture")
	_ = cmd.MarkFlagRequired("gzps-type")
	_ = cmd.MarkFlagRequired("xhtn-type")
	_ = cmd.MarkFlagRequired("3idr-type")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseLegacyTypeIDs(gzps, xhtn, idr string) (legacyTypeIDs, error) {
	var ids legacyTypeIDs

	for _, f := range []struct {
		name string
		hex  string
		dst  *uint32
	}{
		{"gzps-type", gzps, &ids.propertySet},
		{"xhtn-type", xhtn, &ids.hairTone},
		{"3idr-type", idr, &ids.refTable},
	} {
		v, err := strconv.ParseUint(f.hex, 16, 32)
		if err != nil {
			return legacyTypeIDs{}, fmt.Errorf("--%s %q: %w", f.name, f.hex, err)
		}
		*f.dst = uint32(v) //nolint:gosec
	}

	return ids, nil
}

func run(path string, hairColor int, family, hatTexture string, ids legacyTypeIDs) error {
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
	registry.Register(ids.propertySet, "GZPS", func(entry section.IndexEntry, data []byte) (resource.Resource, error) {
		return resource.ParsePropertySet(entry, data)
	})
	registry.Register(ids.hairTone, "XHTN", func(entry section.IndexEntry, data []byte) (resource.Resource, error) {
		return resource.ParseHairTone(entry, data)
	})
	registry.Register(ids.refTable, "3IDR", func(entry section.IndexEntry, data []byte) (resource.Resource, error) {
		return resource.ParseRefTable(entry, data)
	})

	pkg, err := container.Open(f, info.Size(),
		container.WithRegistry(registry),
		container.WithDecodeTypes(ids.propertySet, ids.hairTone, ids.refTable, typeid.Material, typeid.Texture),
	)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	f.Close()

	recolorHairResources(pkg, hairColor, family)

	anchors := pruneMaterials(pkg, hairColor, hatTexture)
	elder1, elder2 := pruneAges(pkg, hairColor)
	pruneTextures(pkg, hairColor, hatTexture)
	rewireRefTables(pkg, hairColor, anchors, elder1, elder2)

	out := outputPath(path)
	if err := container.WriteFile(out, pkg); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Printf("wrote debloated hair package to %s\n", out)

	return nil
}

// recolorHairResources sets the hair color, family, and (for XHTN) the age-group bitmask on
// every hair-tone and property-set resource. A GZPS already flagged elder keeps its hair grey
// regardless of the requested color.
func recolorHairResources(pkg *container.Package, hairColor int, family string) {
	for _, res := range pkg.All() {
		switch r := res.(type) {
		case *resource.HairTone:
			r.SetHairColor(hairColor)
			r.SetFamily(family)
			r.SetAge(ageAllButToddler)

		case *resource.PropertySet:
			color := hairColor
			if age, ok := r.Age(); ok && age == ageElder {
				color = resource.HairGrey
			}
			r.SetHairColor(color)
			r.SetFamily(family)
		}
	}
}

// tgirAnchors holds the (type, group, instance) of the one material kept for each role, so the
// reference-table rewiring pass can redirect every entry at whichever anchor survived pruning.
type tgirAnchors struct {
	hairAdult, hairAlphaAdult section.Key
	hairElder, hairAlphaElder section.Key
	frame, lens               section.Key

	haveHairAdult, haveHairAlphaAdult bool
	haveHairElder, haveHairAlphaElder bool
	haveFrame, haveLens               bool
}

// pruneMaterials keeps one adult hair material, one adult hair-alpha material, one frame
// material, one lens material, and (for black hair) one elder hair and hair-alpha material,
// repointing each survivor's base texture at the shared Maxis reference or hat texture and
// removing every other material. It returns the surviving anchors, for the reference-table
// pass.
func pruneMaterials(pkg *container.Package, hairColor int, hatTexture string) tgirAnchors {
	var anchors tgirAnchors
	var toRemove []section.Key

	for _, res := range pkg.All() {
		mat, ok := res.(*resource.Material)
		if !ok {
			continue
		}

		name := mat.Name()
		keep := false
		greyHair := false

		if !anchors.haveHairAdult || !anchors.haveHairAlphaAdult || !anchors.haveFrame || !anchors.haveLens {
			if strings.Contains(name, "afhair") {
				switch {
				case !anchors.haveFrame && strings.Contains(name, "~frame"):
					anchors.frame, anchors.haveFrame, keep = mat.Key(), true, true
				case !anchors.haveLens && strings.Contains(name, "~lens"):
					anchors.lens, anchors.haveLens, keep = mat.Key(), true, true
				case !anchors.haveHairAlphaAdult && strings.Contains(name, "alpha"):
					anchors.hairAlphaAdult, anchors.haveHairAlphaAdult, keep = mat.Key(), true, true
				case !anchors.haveHairAdult && strings.Contains(name, "~hair"):
					anchors.hairAdult, anchors.haveHairAdult, keep = mat.Key(), true, true
				}
			}
		}

		if hairColor == resource.HairBlack && (!anchors.haveHairElder || !anchors.haveHairAlphaElder) {
			if strings.Contains(name, "efhair") {
				greyHair = true
				switch {
				case !anchors.haveHairAlphaElder && strings.Contains(name, "alpha"):
					anchors.hairAlphaElder, anchors.haveHairAlphaElder, keep = mat.Key(), true, true
				case !anchors.haveHairElder && strings.Contains(name, "~hair"):
					anchors.hairElder, anchors.haveHairElder, keep = mat.Key(), true, true
				}
			}
		}

		if keep {
			texName := hatTexture
			if strings.Contains(name, "~hair") {
				suffix := "black"
				if greyHair {
					suffix = "grey"
				} else {
					switch hairColor {
					case resource.HairBlack:
						suffix = "black"
					case resource.HairBrown:
						suffix = "brown"
					case resource.HairBlond:
						suffix = "blond"
					case resource.HairRed:
						suffix = "red"
					}
				}
				texName = maxisHairTexture + suffix
			}

			mat.SetProperty("stdMatBaseTextureName", texName)
		} else {
			toRemove = append(toRemove, mat.Key())
		}
	}

	for _, key := range toRemove {
		pkg.Remove(key)
	}

	return anchors
}

// pruneAges removes the toddler-age property set and, for anything but black hair, the
// elder-age property sets. It returns the instance IDs of the (up to two) elder property sets
// it found, black hair or not, so the reference-table pass can tell which 3IDR entries used to
// point at an elder GZPS.
func pruneAges(pkg *container.Package, hairColor int) (elder1, elder2 uint32) {
	var toRemove []section.Key

	for _, res := range pkg.All() {
		ps, ok := res.(*resource.PropertySet)
		if !ok {
			continue
		}

		age, ok := ps.Age()
		if !ok {
			continue
		}

		switch {
		case age == ageToddler:
			toRemove = append(toRemove, ps.Key())
		case age == ageElder:
			if elder1 == 0 {
				elder1 = ps.Key().Instance
			} else {
				elder2 = ps.Key().Instance
			}
			if hairColor != resource.HairBlack {
				toRemove = append(toRemove, ps.Key())
			}
		}
	}

	for _, key := range toRemove {
		pkg.Remove(key)
	}

	return elder1, elder2
}

// pruneTextures removes every texture except, for black hair, the one matching hatTexture's
// "_txtr"-suffixed name: non-black hair uses the Maxis reference texture for the hair itself and
// never needs a bundled hat texture either, since black is the only variant that keeps its own
// elder materials and therefore its own hat texture reference.
func pruneTextures(pkg *container.Package, hairColor int, hatTexture string) {
	keepName := hatTexture + "_txtr"
	var toRemove []section.Key

	for _, res := range pkg.All() {
		tex, ok := res.(*resource.Texture)
		if !ok {
			continue
		}

		keep := hairColor == resource.HairBlack && tex.Name() == keepName
		if !keep {
			toRemove = append(toRemove, tex.Key())
		}
	}

	for _, key := range toRemove {
		pkg.Remove(key)
	}
}

// rewireRefTables repoints every material entry in every surviving reference table at the
// anchor material for its role: the first material entry is the hair itself, the next
// maxisAlphaGroups are its alpha layers, the one after that is the frame, and anything past
// that is the lens. A table whose own instance matches one of the two elder property sets
// pruneAges found is rewired to the elder anchors instead of the adult ones, but only when the
// hair stayed black (the only color that kept an elder material to rewire to).
func rewireRefTables(pkg *container.Package, hairColor int, anchors tgirAnchors, elder1, elder2 uint32) {
	for _, res := range pkg.All() {
		rt, ok := res.(*resource.RefTable)
		if !ok {
			continue
		}

		inst := rt.Key().Instance
		useElder := hairColor == resource.HairBlack && (inst == elder1 || inst == elder2)

		materialCount := 0
		for i := 0; i < len(rt.Entries); i++ {
			entry, _ := rt.GetEntry(i)
			if entry.Type != typeid.Material {
				continue
			}
			materialCount++

			var anchor section.Key
			switch {
			case materialCount == 1:
				if useElder {
					anchor = anchors.hairElder
				} else {
					anchor = anchors.hairAdult
				}
			case materialCount <= maxisAlphaGroups+1:
				if useElder {
					anchor = anchors.hairAlphaElder
				} else {
					anchor = anchors.hairAlphaAdult
				}
			case materialCount == maxisAlphaGroups+2:
				anchor = anchors.frame
			default:
				anchor = anchors.lens
			}

			rt.SetEntry(i, resource.RefEntry{
				Type:     anchor.Type,
				Group:    anchor.Group,
				Instance: anchor.Instance,
				Resource: entry.Resource,
			})
		}
	}
}

// outputPath inserts "_HAIR" before the extension, matching a debloat pass's output naming.
func outputPath(path string) string {
	ext := ""
	base := path
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		ext = path[idx:]
		base = path[:idx]
	}

	return base + "_HAIR" + ext
}
