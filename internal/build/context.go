// Package build joins the name registries with the loaded data files and
// writes the resulting rows.
package build

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/meur/mhwdb/internal/loader"
	"github.com/meur/mhwdb/internal/translate"
)

// Paths of the data tree, relative to the data directory.
const (
	MonsterNamesFile       = "monsters/monster_names.json"
	MonsterDescriptionsDir = "monsters/monster_descriptions"
	SkillNamesFile         = "skills/skill_names.json"
	SkillDetailsDir        = "skills/skills"
	ItemNamesFile          = "items/item_names.json"
	ArmorNamesFile         = "armors/armor_names.json"
	ArmorDataFile          = "armors/armor_data.json"
	DecorationNamesFile    = "decorations/decoration_names.json"
	DecorationDataFile     = "decorations/decoration_data.json"
)

// Context carries everything the builders share: the data directory, the
// supported languages and one name registry per category. It is built once
// per run and read-only afterwards.
type Context struct {
	DataDir   string
	Languages []string
	Log       *zap.Logger

	Monsters *translate.Map
	Skills   *translate.Map
	Items    *translate.Map
	Armor    *translate.Map

	// Decorations is nil when the data tree has no decorations.
	Decorations *translate.Map
}

// NewContext loads every category's name registry from dataDir.
//
// Precondition: languages must be non-empty; log must be non-nil.
// Postcondition: returns a Context with validated registries, or a non-nil error.
func NewContext(dataDir string, languages []string, log *zap.Logger) (*Context, error) {
	bc := &Context{DataDir: dataDir, Languages: languages, Log: log}

	registries := []struct {
		file string
		dst  **translate.Map
	}{
		{MonsterNamesFile, &bc.Monsters},
		{SkillNamesFile, &bc.Skills},
		{ItemNamesFile, &bc.Items},
		{ArmorNamesFile, &bc.Armor},
	}
	for _, r := range registries {
		m, err := loader.LoadTranslateMap(bc.path(r.file), languages)
		if err != nil {
			return nil, fmt.Errorf("loading name registry: %w", err)
		}
		*r.dst = m
		log.Debug("loaded name registry", zap.String("file", r.file), zap.Int("entries", m.Len()))
	}

	decorations, err := loader.LoadTranslateMap(bc.path(DecorationNamesFile), languages)
	switch {
	case err == nil:
		bc.Decorations = decorations
		log.Debug("loaded name registry", zap.String("file", DecorationNamesFile), zap.Int("entries", decorations.Len()))
	case errors.Is(err, os.ErrNotExist):
		log.Info("no decoration names, decorations will be skipped", zap.String("file", DecorationNamesFile))
	default:
		return nil, fmt.Errorf("loading name registry: %w", err)
	}

	return bc, nil
}

func (bc *Context) path(rel string) string {
	return filepath.Join(bc.DataDir, filepath.FromSlash(rel))
}
