package main

import (
	"context"
	"flag"
	"log"

	"github.com/meur/mhwdb/internal/export"
	"github.com/meur/mhwdb/internal/storage"
)

func main() {
	dbPath := flag.String("db", "mhw.db", "SQLite database path")
	outPath := flag.String("out", "droptables.xlsx", "Spreadsheet output path")
	language := flag.String("lang", "en", "Language of decoration names")
	flag.Parse()

	store, err := storage.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	info, err := store.GetBuildInfo(ctx)
	if err != nil {
		log.Fatalf("Failed to read build info: %v", err)
	}
	if info == nil {
		log.Fatalf("%s has no build info, run the build first", *dbPath)
	}

	chances, err := store.GetDecorationChances(ctx, *language)
	if err != nil {
		log.Fatalf("Failed to read decoration chances: %v", err)
	}

	n, err := export.WriteDecorationChances(*outPath, chances)
	if err != nil {
		log.Fatalf("Failed to write spreadsheet: %v", err)
	}

	log.Printf("✓ Exported %d decorations from build %s to %s", n, info.BuildID, *outPath)
}
