package build

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/meur/mhwdb/internal/models"
	"github.com/meur/mhwdb/internal/storage"
)

// BuildItems writes an item row and a name-only text row per language.
// Items have no detail files.
func BuildItems(bc *Context, tx *storage.Tx) error {
	for row := range bc.Items.All() {
		if err := tx.InsertItem(models.Item{ID: row.ID}); err != nil {
			return fmt.Errorf("inserting item %d: %w", row.ID, err)
		}
		for _, lang := range bc.Languages {
			text := models.ItemText{ID: row.ID, LangID: lang, Name: row.Name(lang)}
			if err := tx.InsertItemText(text); err != nil {
				return fmt.Errorf("inserting item %d text (%s): %w", row.ID, lang, err)
			}
		}
	}

	bc.Log.Info("built items", zap.Int("count", bc.Items.Len()))
	return nil
}
