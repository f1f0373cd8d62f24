package models

import "github.com/shopspring/decimal"

// Decoration represents a row of the decoration table
type Decoration struct {
	ID          int    `json:"id"`
	Rarity      int    `json:"rarity"`
	Slot        int    `json:"slot"`
	SkillTreeID int    `json:"skilltree_id"`
	Tier        string `json:"tier"`
}

// DecorationText holds the localized name of a decoration
type DecorationText struct {
	ID     int    `json:"id"`
	LangID string `json:"lang_id"`
	Name   string `json:"name"`
}

// DecorationChance is the probability that a feystone yields a decoration
type DecorationChance struct {
	DecorationID int     `json:"decoration_id"`
	Name         string  `json:"name,omitempty"` // english name, filled on read-back
	Tier         string  `json:"tier,omitempty"`
	Feystone     string  `json:"feystone"`
	Probability  float64 `json:"probability"`
}

// DecorationEntry is a decoration together with its drop table before it is
// written. Chances maps feystone -> probability.
type DecorationEntry struct {
	Decoration
	Chances map[string]decimal.Decimal
}
