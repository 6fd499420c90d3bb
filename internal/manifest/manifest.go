// Package manifest synthesizes the two metadata documents a Bedrock skin pack
// carries: the pack manifest and the skin definition. Field names, nesting,
// and the fixed string values are parsed by the consuming game engine and must
// not change.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Fixed in-archive file names. The texture name is used regardless of the
// original upload's filename.
const (
	ManifestFileName = "manifest.json"
	SkinsFileName    = "skins.json"
	TextureFileName  = "zombie.png"
)

const (
	packName        = "Zombie Skin Pack"
	packDescription = "Skin pack generated by lskinbot"
	packAuthor      = "lskinbot"
	packSerialize   = "lskinbot"

	skinName     = "Zombie"
	skinGeometry = "geometry.humanoid.custom"
	skinType     = "free"
)

// Manifest is the top-level package description document.
type Manifest struct {
	FormatVersion int      `json:"format_version"`
	Header        Header   `json:"header"`
	Modules       []Module `json:"modules"`
	Metadata      Metadata `json:"metadata"`
}

// Header identifies the pack to the engine.
type Header struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UUID        string `json:"uuid"`
	Version     [3]int `json:"version"`
}

// Module declares the single skin_pack module.
type Module struct {
	Type    string `json:"type"`
	UUID    string `json:"uuid"`
	Version [3]int `json:"version"`
}

// Metadata carries the authors list.
type Metadata struct {
	Authors []string `json:"authors"`
}

// Skins is the skin definition document.
type Skins struct {
	Skins            []Skin `json:"skins"`
	SerializeName    string `json:"serialize_name"`
	LocalizationName string `json:"localization_name"`
}

// Skin maps the uploaded texture to an in-engine model and animation set.
type Skin struct {
	LocalizationName string     `json:"localization_name"`
	Geometry         string     `json:"geometry"`
	Texture          string     `json:"texture"`
	Animations       Animations `json:"animations"`
	Type             string     `json:"type"`
}

// Animations binds the three fixed animation slots. A struct rather than a map
// keeps the serialized key order stable.
type Animations struct {
	MoveArms        string `json:"move.arms"`
	AttackRotations string `json:"attack.rotations"`
	Holding         string `json:"holding"`
}

// Documents bundles one run's generated pair.
type Documents struct {
	Manifest Manifest
	Skins    Skins
}

// New produces the document pair with two freshly generated, independent
// identifiers (header and module).
func New() Documents {
	return Documents{
		Manifest: Manifest{
			FormatVersion: 1,
			Header: Header{
				Name:        packName,
				Description: packDescription,
				UUID:        uuid.NewString(),
				Version:     [3]int{1, 0, 0},
			},
			Modules: []Module{{
				Type:    "skin_pack",
				UUID:    uuid.NewString(),
				Version: [3]int{1, 0, 0},
			}},
			Metadata: Metadata{Authors: []string{packAuthor}},
		},
		Skins: Skins{
			Skins: []Skin{{
				LocalizationName: skinName,
				Geometry:         skinGeometry,
				Texture:          TextureFileName,
				Animations: Animations{
					MoveArms:        "animation.player.move.arms.zombie",
					AttackRotations: "animation.player.holding.zombie",
					Holding:         "animation.zombie.attack_bare_hand",
				},
				Type: skinType,
			}},
			SerializeName:    packSerialize,
			LocalizationName: packSerialize,
		},
	}
}

// Write serializes both documents into dir with 4-space indentation.
func (d Documents) Write(dir string) error {
	if err := writeJSON(filepath.Join(dir, ManifestFileName), d.Manifest); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, SkinsFileName), d.Skins)
}

func writeJSON(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
