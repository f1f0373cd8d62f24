package build

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/meur/mhwdb/internal/loader"
	"github.com/meur/mhwdb/internal/models"
	"github.com/meur/mhwdb/internal/storage"
)

// BuildMonsters writes one monster row and one text row per language for
// every registered monster. Descriptions come from the per-language files.
func BuildMonsters(bc *Context, tx *storage.Tx) error {
	descriptions, err := loader.LoadLanguageData(bc.Monsters, bc.path(MonsterDescriptionsDir),
		bc.Languages, loader.DecodeMonsterDetail)
	if err != nil {
		return fmt.Errorf("loading monster descriptions: %w", err)
	}

	for row := range bc.Monsters.All() {
		if err := tx.InsertMonster(models.Monster{ID: row.ID}); err != nil {
			return fmt.Errorf("inserting monster %d: %w", row.ID, err)
		}
		for _, lang := range bc.Languages {
			detail, err := descriptions.Lookup(row.ID, lang)
			if err != nil {
				return fmt.Errorf("monster %q: %w", row.Name(lang), err)
			}
			text := models.MonsterText{
				ID:          row.ID,
				LangID:      lang,
				Name:        row.Name(lang),
				Description: detail.Description,
			}
			if err := tx.InsertMonsterText(text); err != nil {
				return fmt.Errorf("inserting monster %d text (%s): %w", row.ID, lang, err)
			}
		}
	}

	bc.Log.Info("built monsters", zap.Int("count", bc.Monsters.Len()))
	return nil
}
