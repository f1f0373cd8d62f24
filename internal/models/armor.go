package models

// Armor represents a row of the armor table
type Armor struct {
	ID      int    `json:"id"`
	Rarity  int    `json:"rarity"`
	Part    string `json:"part"`
	Male    bool   `json:"male"`
	Female  bool   `json:"female"`
	Slot1   int    `json:"slot_1"`
	Slot2   int    `json:"slot_2"`
	Slot3   int    `json:"slot_3"`
	Defense int    `json:"defense"`
	Fire    int    `json:"fire"`
	Water   int    `json:"water"`
	Thunder int    `json:"thunder"`
	Ice     int    `json:"ice"`
	Dragon  int    `json:"dragon"`
}

// ArmorText holds the localized name of an armor piece
type ArmorText struct {
	ID     int    `json:"id"`
	LangID string `json:"lang_id"`
	Name   string `json:"name"`
}
