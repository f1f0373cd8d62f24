package models

import (
	"time"
)

// BuildInfo identifies one run of the database build
type BuildInfo struct {
	BuildID   string    `json:"build_id"`
	Languages []string  `json:"languages"`
	BuiltAt   time.Time `json:"built_at"`
}

// Summary counts the rows written per table
type Summary struct {
	BuildID string         `yaml:"build_id"`
	BuiltAt time.Time      `yaml:"built_at"`
	Output  string         `yaml:"output"`
	Tables  map[string]int `yaml:"tables"`
}
