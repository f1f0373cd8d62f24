package models

// SkillTree represents a row of the skilltree table
type SkillTree struct {
	ID int `json:"id"`
}

// SkillTreeText holds the localized strings of a skill tree
type SkillTreeText struct {
	ID          int    `json:"id"`
	LangID      string `json:"lang_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Skill is the localized effect of one level of a skill tree
type Skill struct {
	SkillTreeID int    `json:"skilltree_id"`
	LangID      string `json:"lang_id"`
	Level       int    `json:"level"`
	Description string `json:"description"`
}

// SkillTreeEntry is a skill tree assembled from every language before it is
// written. Description and Name are keyed by language.
type SkillTreeEntry struct {
	ID          int
	Name        map[string]string
	Description map[string]string
	Levels      []SkillLevelEntry
}

// SkillLevelEntry is one level of a SkillTreeEntry.
type SkillLevelEntry struct {
	Level       int
	Description map[string]string
}
