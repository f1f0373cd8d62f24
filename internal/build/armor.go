package build

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/meur/mhwdb/internal/loader"
	"github.com/meur/mhwdb/internal/models"
	"github.com/meur/mhwdb/internal/storage"
)

// armorSlots is the number of decoration slots every armor piece carries.
const armorSlots = 3

// BuildArmor writes an armor row from armors/armor_data.json and a name-only
// text row per language for every registered armor piece.
func BuildArmor(bc *Context, tx *storage.Tx) error {
	data, err := loader.LoadDataMap[loader.ArmorData](bc.Armor, bc.path(ArmorDataFile))
	if err != nil {
		return fmt.Errorf("loading armor data: %w", err)
	}

	for row := range bc.Armor.All() {
		d, ok := data[row.ID]
		if !ok {
			return fmt.Errorf("armor %q: %w: not in %s", row.Name(loader.CanonicalLanguage),
				loader.ErrMissingDetail, ArmorDataFile)
		}
		if len(d.Slots) < armorSlots {
			return fmt.Errorf("armor %q: %w: expected %d slots, got %d", d.NameEn,
				loader.ErrMissingField, armorSlots, len(d.Slots))
		}

		armor := models.Armor{
			ID:      row.ID,
			Rarity:  d.Rarity,
			Part:    d.Part,
			Male:    d.Male,
			Female:  d.Female,
			Slot1:   d.Slots[0],
			Slot2:   d.Slots[1],
			Slot3:   d.Slots[2],
			Defense: d.Defense,
			Fire:    d.Fire,
			Water:   d.Water,
			Thunder: d.Thunder,
			Ice:     d.Ice,
			Dragon:  d.Dragon,
		}
		if err := tx.InsertArmor(armor); err != nil {
			return fmt.Errorf("inserting armor %d: %w", row.ID, err)
		}

		for _, lang := range bc.Languages {
			text := models.ArmorText{ID: row.ID, LangID: lang, Name: row.Name(lang)}
			if err := tx.InsertArmorText(text); err != nil {
				return fmt.Errorf("inserting armor %d text (%s): %w", row.ID, lang, err)
			}
		}
	}

	bc.Log.Info("built armor", zap.Int("count", bc.Armor.Len()))
	return nil
}
