package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ridehail/internal/config"
	"ridehail/internal/repository/geojson"
)

func runExport(args []string) error {
	cfg := config.NewDefaultConfig()
	var outputPath string

	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.StringVar(&outputPath, "output", "", "Output file (default: stdout)")
	catalogFlags(fs, &cfg.Catalog)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nearby export [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  nearby export -source sqlite -path catalog.db -output catalog.geojson\n")
		fmt.Fprintf(os.Stderr, "  nearby export -source supabase > catalog.geojson\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cat, err := loadCatalog(context.Background(), cfg.Catalog)
	if err != nil {
		return err
	}

	data, err := geojson.Encode(cat.POIs())
	if err != nil {
		return fmt.Errorf("encoding geojson: %w", err)
	}

	if outputPath == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	fmt.Fprintf(os.Stderr, "Exported %d destinations to %s\n", cat.Len(), outputPath)
	return nil
}
