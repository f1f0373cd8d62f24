package models

// Monster represents a row of the monster table
type Monster struct {
	ID int `json:"id"`
}

// MonsterText holds the localized strings of a monster
type MonsterText struct {
	ID          int    `json:"id"`
	LangID      string `json:"lang_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
