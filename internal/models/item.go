package models

// Item represents a row of the item table
type Item struct {
	ID int `json:"id"`
}

// ItemText holds the localized name of an item
type ItemText struct {
	ID     int    `json:"id"`
	LangID string `json:"lang_id"`
	Name   string `json:"name"`
}
