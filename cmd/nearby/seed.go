package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ridehail/internal/catalog"
	"ridehail/internal/repository"
	"ridehail/internal/repository/geojson"
	"ridehail/internal/repository/memory"
	"ridehail/internal/repository/sqlite"
)

func runSeed(args []string) error {
	var dbPath, geojsonPath string
	var dryRun bool

	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	fs.StringVar(&dbPath, "db", "", "Path to the SQLite database to write (required)")
	fs.StringVar(&geojsonPath, "geojson", "", "GeoJSON catalog to import (default: embedded Taipei catalog)")
	fs.BoolVar(&dryRun, "dry-run", false, "Validate and stage the catalog in memory without writing a database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nearby seed [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  nearby seed -db catalog.db\n")
		fmt.Fprintf(os.Stderr, "  nearby seed -db catalog.db -geojson my_city.geojson\n")
		fmt.Fprintf(os.Stderr, "  nearby seed -dry-run -geojson my_city.geojson\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if dbPath == "" && !dryRun {
		return fmt.Errorf("-db is required")
	}

	var src repository.POIRepository = geojson.NewEmbeddedRepository()
	if geojsonPath != "" {
		src = geojson.NewFileRepository(geojsonPath)
	}

	ctx := context.Background()
	// Validate before touching the database so a bad file leaves it intact.
	cat, err := catalog.Load(ctx, src)
	if err != nil {
		return err
	}

	var store repository.POIStore
	target := dbPath
	if dryRun {
		store = memory.NewPOIRepository()
		target = "memory (dry run)"
	} else {
		db, err := sqlite.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		store = db
	}

	n, err := cat.Save(ctx, store)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d destinations into %s\n", n, target)
	return nil
}
