package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/meur/mhwdb/internal/models"
	"github.com/meur/mhwdb/internal/storage"
)

// Builder writes one category of rows inside the build transaction.
type Builder func(bc *Context, tx *storage.Tx) error

// Builders lists every category builder in run order. Skills precede
// decorations, which reference skill trees.
var Builders = []struct {
	Name  string
	Build Builder
}{
	{"monsters", BuildMonsters},
	{"skills", BuildSkills},
	{"items", BuildItems},
	{"armor", BuildArmor},
	{"decorations", BuildDecorations},
}

// Run executes every builder inside one transaction of store and records the
// build. Nothing is committed unless every builder succeeds.
//
// Postcondition: returns the row count of every table, or a non-nil error.
func Run(ctx context.Context, bc *Context, store *storage.Store) (models.Summary, error) {
	info := models.BuildInfo{
		BuildID:   uuid.New().String(),
		Languages: bc.Languages,
		BuiltAt:   time.Now().UTC(),
	}

	err := store.WithTx(ctx, func(tx *storage.Tx) error {
		for _, b := range Builders {
			start := time.Now()
			if err := b.Build(bc, tx); err != nil {
				return fmt.Errorf("building %s: %w", b.Name, err)
			}
			bc.Log.Debug("builder finished", zap.String("builder", b.Name), zap.Duration("elapsed", time.Since(start)))
		}
		return tx.InsertBuildInfo(info)
	})
	if err != nil {
		return models.Summary{}, err
	}

	summary := models.Summary{
		BuildID: info.BuildID,
		BuiltAt: info.BuiltAt,
		Output:  store.Path(),
		Tables:  make(map[string]int, len(storage.Tables)),
	}
	for _, table := range storage.Tables {
		n, err := store.Count(ctx, table)
		if err != nil {
			return models.Summary{}, err
		}
		summary.Tables[table] = n
	}
	return summary, nil
}

// WriteSummary writes summary as YAML to path, creating parent directories.
func WriteSummary(path string, summary models.Summary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("serialising summary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating summary directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing summary to %s: %w", path, err)
	}
	return nil
}
