// Package process computes attributes derived from already-loaded entities.
package process

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meur/mhwdb/internal/models"
)

// ErrUnknownRarity is returned for decorations whose rarity has no drop table.
var ErrUnknownRarity = errors.New("unknown decoration rarity")

// Feystone types, in drop-table column order.
const (
	Mysterious = "mysterious"
	Glowing    = "glowing"
	Worn       = "worn"
	Warped     = "warped"
)

// Feystones lists every feystone type in a stable order.
var Feystones = []string{Mysterious, Glowing, Worn, Warped}

// Tiers lists the drop tables from most to least common.
var Tiers = []string{"C", "B", "A", "S"}

var rarityToTier = map[int]string{
	5: "C",
	6: "B",
	7: "A",
	8: "S",
}

// feystoneOdds is the chance of a feystone landing on each drop table. Each
// row sums to 1 across tiers.
var feystoneOdds = map[string]map[string]decimal.Decimal{
	Mysterious: odds("0.85", "0.15", "0", "0"),
	Glowing:    odds("0.65", "0.34", "0.01", "0"),
	Worn:       odds("0.10", "0.82", "0.06", "0.02"),
	Warped:     odds("0", "0.77", "0.18", "0.05"),
}

func odds(c, b, a, s string) map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"C": decimal.RequireFromString(c),
		"B": decimal.RequireFromString(b),
		"A": decimal.RequireFromString(a),
		"S": decimal.RequireFromString(s),
	}
}

// TierForRarity returns the drop table of a decoration rarity.
func TierForRarity(rarity int) (string, error) {
	tier, ok := rarityToTier[rarity]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownRarity, rarity)
	}
	return tier, nil
}

// CopySkillDescriptions gives synthetic skill trees the description of their
// only level. A tree qualifies when its english description is empty and it
// has exactly one level; every supported language is copied.
func CopySkillDescriptions(trees []*models.SkillTreeEntry, languages []string) {
	for _, tree := range trees {
		if tree.Description["en"] != "" {
			continue
		}
		if len(tree.Levels) != 1 {
			continue
		}
		level := tree.Levels[0]
		if tree.Description == nil {
			tree.Description = make(map[string]string, len(languages))
		}
		for _, lang := range languages {
			tree.Description[lang] = level.Description[lang]
		}
	}
}

// ExtendDecorationChances sets Tier and Chances on every decoration. Within a
// tier each feystone's odds are split evenly across the tier's decorations and
// rounded half-to-even to 5 places. Decorations of one tier share one map.
//
// Postcondition: returns ErrUnknownRarity, leaving decorations untouched, if any
// rarity lacks a drop table.
func ExtendDecorationChances(decorations []*models.DecorationEntry) error {
	counts := make(map[string]int64, len(Tiers))
	for _, d := range decorations {
		tier, err := TierForRarity(d.Rarity)
		if err != nil {
			return fmt.Errorf("decoration %d: %w", d.ID, err)
		}
		counts[tier]++
	}

	tables := make(map[string]map[string]decimal.Decimal, len(Tiers))
	for _, tier := range Tiers {
		if counts[tier] == 0 {
			continue
		}
		count := decimal.NewFromInt(counts[tier])
		chances := make(map[string]decimal.Decimal, len(Feystones))
		for _, feystone := range Feystones {
			chances[feystone] = feystoneOdds[feystone][tier].Div(count).RoundBank(5)
		}
		tables[tier] = chances
	}

	for _, d := range decorations {
		d.Tier = rarityToTier[d.Rarity]
		d.Chances = tables[d.Tier]
	}
	return nil
}
