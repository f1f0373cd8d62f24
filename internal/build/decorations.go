package build

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/meur/mhwdb/internal/loader"
	"github.com/meur/mhwdb/internal/models"
	"github.com/meur/mhwdb/internal/process"
	"github.com/meur/mhwdb/internal/storage"
)

// LoadDecorations joins decoration data with the decoration and skill
// registries and computes each decoration's drop-table chances.
func LoadDecorations(bc *Context) ([]*models.DecorationEntry, error) {
	data, err := loader.LoadDataMap[loader.DecorationData](bc.Decorations, bc.path(DecorationDataFile))
	if err != nil {
		return nil, fmt.Errorf("loading decoration data: %w", err)
	}

	var decorations []*models.DecorationEntry
	for row := range bc.Decorations.All() {
		d, ok := data[row.ID]
		if !ok {
			return nil, fmt.Errorf("decoration %q: %w: not in %s", row.Name(loader.CanonicalLanguage),
				loader.ErrMissingDetail, DecorationDataFile)
		}
		skillID, err := bc.Skills.IDOf(loader.CanonicalLanguage, d.SkillEn)
		if err != nil {
			return nil, fmt.Errorf("decoration %q: %w: skill: %w", d.NameEn, loader.ErrInvalidName, err)
		}
		decorations = append(decorations, &models.DecorationEntry{
			Decoration: models.Decoration{
				ID:          row.ID,
				Rarity:      d.Rarity,
				Slot:        d.Slot,
				SkillTreeID: skillID,
			},
		})
	}

	if err := process.ExtendDecorationChances(decorations); err != nil {
		return nil, err
	}
	return decorations, nil
}

// BuildDecorations writes decoration, decoration_text and decoration_chance
// rows. It does nothing when the data tree has no decorations.
func BuildDecorations(bc *Context, tx *storage.Tx) error {
	if bc.Decorations == nil {
		return nil
	}
	decorations, err := LoadDecorations(bc)
	if err != nil {
		return err
	}

	var chances []models.DecorationChance
	for _, d := range decorations {
		if err := tx.InsertDecoration(d.Decoration); err != nil {
			return fmt.Errorf("inserting decoration %d: %w", d.ID, err)
		}
		for _, lang := range bc.Languages {
			text := models.DecorationText{ID: d.ID, LangID: lang, Name: bc.Decorations.Name(d.ID, lang)}
			if err := tx.InsertDecorationText(text); err != nil {
				return fmt.Errorf("inserting decoration %d text (%s): %w", d.ID, lang, err)
			}
		}
		for _, feystone := range process.Feystones {
			chances = append(chances, models.DecorationChance{
				DecorationID: d.ID,
				Feystone:     feystone,
				Probability:  d.Chances[feystone].InexactFloat64(),
			})
		}
	}
	if err := tx.BulkCreateDecorationChances(chances); err != nil {
		return fmt.Errorf("inserting decoration chances: %w", err)
	}

	bc.Log.Info("built decorations", zap.Int("count", len(decorations)), zap.Int("chances", len(chances)))
	return nil
}
