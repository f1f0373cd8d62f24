package build

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/meur/mhwdb/internal/loader"
	"github.com/meur/mhwdb/internal/models"
	"github.com/meur/mhwdb/internal/process"
	"github.com/meur/mhwdb/internal/storage"
)

// LoadSkillTrees assembles every registered skill tree with its per-language
// description and levels, then fills in descriptions of single-level trees.
func LoadSkillTrees(bc *Context) ([]*models.SkillTreeEntry, error) {
	details, err := loader.LoadLanguageData(bc.Skills, bc.path(SkillDetailsDir),
		bc.Languages, loader.DecodeSkillDetail)
	if err != nil {
		return nil, fmt.Errorf("loading skill details: %w", err)
	}

	var trees []*models.SkillTreeEntry
	for row := range bc.Skills.All() {
		tree := &models.SkillTreeEntry{
			ID:          row.ID,
			Name:        make(map[string]string, len(bc.Languages)),
			Description: make(map[string]string, len(bc.Languages)),
		}
		levels := map[int]map[string]string{}
		for _, lang := range bc.Languages {
			detail, err := details.Lookup(row.ID, lang)
			if err != nil {
				return nil, fmt.Errorf("skill %q: %w", row.Name(lang), err)
			}
			tree.Name[lang] = row.Name(lang)
			tree.Description[lang] = detail.Description
			for _, effect := range detail.Effects {
				if levels[effect.Level] == nil {
					levels[effect.Level] = make(map[string]string, len(bc.Languages))
				}
				levels[effect.Level][lang] = effect.Description
			}
		}

		levelNumbers := make([]int, 0, len(levels))
		for level := range levels {
			levelNumbers = append(levelNumbers, level)
		}
		slices.Sort(levelNumbers)
		for _, level := range levelNumbers {
			tree.Levels = append(tree.Levels, models.SkillLevelEntry{Level: level, Description: levels[level]})
		}
		trees = append(trees, tree)
	}

	process.CopySkillDescriptions(trees, bc.Languages)
	return trees, nil
}

// BuildSkills writes a skill tree row, one text row per language and one
// skill row per (level, language) for every registered skill tree.
func BuildSkills(bc *Context, tx *storage.Tx) error {
	trees, err := LoadSkillTrees(bc)
	if err != nil {
		return err
	}

	levelRows := 0
	for _, tree := range trees {
		if err := tx.InsertSkillTree(models.SkillTree{ID: tree.ID}); err != nil {
			return fmt.Errorf("inserting skill tree %d: %w", tree.ID, err)
		}
		for _, lang := range bc.Languages {
			text := models.SkillTreeText{
				ID:          tree.ID,
				LangID:      lang,
				Name:        tree.Name[lang],
				Description: tree.Description[lang],
			}
			if err := tx.InsertSkillTreeText(text); err != nil {
				return fmt.Errorf("inserting skill tree %d text (%s): %w", tree.ID, lang, err)
			}
		}
		for _, level := range tree.Levels {
			for _, lang := range bc.Languages {
				description, ok := level.Description[lang]
				if !ok {
					continue
				}
				skill := models.Skill{
					SkillTreeID: tree.ID,
					LangID:      lang,
					Level:       level.Level,
					Description: description,
				}
				if err := tx.InsertSkill(skill); err != nil {
					return fmt.Errorf("inserting skill %d level %d (%s): %w", tree.ID, level.Level, lang, err)
				}
				levelRows++
			}
		}
	}

	bc.Log.Info("built skills", zap.Int("trees", len(trees)), zap.Int("levels", levelRows))
	return nil
}
