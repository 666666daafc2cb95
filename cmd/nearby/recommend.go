package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"ridehail/internal/catalog"
	"ridehail/internal/config"
	"ridehail/internal/domain/entities"
	"ridehail/internal/recommend"
	"ridehail/internal/repository"
	"ridehail/internal/services"
)

func runRecommend(args []string) error {
	cfg := config.NewDefaultConfig()
	var lat, lng, radius float64
	var policyName string

	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	fs.Float64Var(&lat, "lat", 0, "Rider latitude (required)")
	fs.Float64Var(&lng, "lng", 0, "Rider longitude (required)")
	fs.StringVar(&policyName, "policy", string(recommend.PolicyTimeWindow), "Ranking policy: time or category")
	fs.Float64Var(&radius, "radius", cfg.Recommend.DefaultRadiusKm, "Radius in km for the category policy")
	catalogFlags(fs, &cfg.Catalog)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nearby recommend [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  nearby recommend -lat 25.0340 -lng 121.5650\n")
		fmt.Fprintf(os.Stderr, "  nearby recommend -lat 25.0340 -lng 121.5650 -policy category -radius 5\n")
		fmt.Fprintf(os.Stderr, "  nearby recommend -lat 25.0340 -lng 121.5650 -source sqlite -path catalog.db\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	policy, err := recommend.ParsePolicy(policyName)
	if err != nil {
		return err
	}

	ctx := context.Background()
	cat, err := loadCatalog(ctx, cfg.Catalog)
	if err != nil {
		return err
	}

	service := services.NewRecommendationService(cat, services.NewRecommender(cfg), nil)
	resp, err := service.Nearby(ctx, services.NearbyRequest{
		Location: entities.NewLocation(lat, lng),
		Options:  recommend.Options{Policy: policy, RadiusKm: radius},
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func catalogFlags(fs *flag.FlagSet, cfg *config.CatalogConfig) {
	fs.StringVar(&cfg.Source, "source", config.CatalogEmbedded, "Catalog source: embedded, geojson, sqlite or supabase")
	fs.StringVar(&cfg.Path, "path", "", "Catalog file for the geojson and sqlite sources")
	fs.StringVar(&cfg.SupabaseURL, "supabase-url", os.Getenv("SUPABASE_URL"), "Supabase project URL")
	fs.StringVar(&cfg.SupabaseKey, "supabase-key", os.Getenv("SUPABASE_KEY"), "Supabase API key")
	fs.StringVar(&cfg.SupabaseTable, "supabase-table", cfg.SupabaseTable, "Supabase table name")
}

func loadCatalog(ctx context.Context, cfg config.CatalogConfig) (*catalog.Catalog, error) {
	repo, closeRepo, err := repository.Open(cfg)
	if err != nil {
		return nil, err
	}
	defer closeRepo()

	return catalog.Load(ctx, repo)
}
