// Package main provides a tool to seed the rule store with default dynamic rules.
//
// Useful for fresh deployments and local development: it creates the live
// rule set if none exists and prints a summary of what is stored.
//
// Usage:
//
//	DB_PATH=~/StyleSync/data/db go run ./cmd/seed
//	DB_PATH=~/StyleSync/data/db go run ./cmd/seed --force  # Replace an existing rule set
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/stylesyncapp/stylesync-server/internal/domain"
	"github.com/stylesyncapp/stylesync-server/internal/store"
)

var force = flag.Bool("force", false, "Replace an existing rule set with defaults")

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/StyleSync/data/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if *force {
		ruleset := domain.NewDefaultRuleSet()
		if err := s.PutRuleSet(ctx, ruleset); err != nil {
			log.Fatalf("Failed to replace rule set: %v", err)
		}
		fmt.Println("Replaced rule set with defaults")
		printSummary(ruleset)
		return
	}

	ruleset, created, err := s.EnsureRuleSet(ctx)
	if err != nil {
		log.Fatalf("Failed to ensure rule set: %v", err)
	}

	if created {
		fmt.Println("Seeded default rule set")
	} else {
		fmt.Println("Rule set already exists, nothing to do (use --force to replace)")
	}
	printSummary(ruleset)

	count, err := s.CountHistory(ctx)
	if err != nil {
		log.Fatalf("Failed to count history: %v", err)
	}
	fmt.Printf("History entries: %d\n", count)
}

func printSummary(rs *domain.DynamicRuleSet) {
	fmt.Printf("Rule set version %s (created %s, updated %s)\n",
		rs.Metadata.Version,
		rs.Metadata.CreatedAt.Format("2006-01-02"),
		rs.Metadata.LastUpdatedAt.Format("2006-01-02"),
	)
	fmt.Printf("  material climate rules: %d\n", len(rs.MaterialClimateRules))
	fmt.Printf("  seasonal rules:         %d\n", len(rs.SeasonalRules))
	fmt.Printf("  occasion rules:         %d\n", len(rs.OccasionRules))
	fmt.Printf("  layering: maxLayers=%d minLayersCold=%d maxLayersHot=%d\n",
		rs.LayeringRules.MaxLayers, rs.LayeringRules.MinLayersCold, rs.LayeringRules.MaxLayersHot)
	fmt.Printf("  colors: maxColors=%d requireNeutralBase=%t allowPatterns=%t\n",
		rs.ColorRules.MaxColors, rs.ColorRules.RequireNeutralBase, rs.ColorRules.AllowPatterns)
}
