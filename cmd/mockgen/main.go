package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"churnwatch/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "mixed", "Scenario to generate: healthy, churny, mixed")
	outDir := flag.String("out", ".", "Output directory for the four CSV extracts")
	count := flag.Int("count", 200, "Number of customers to generate")
	seed := flag.Int64("seed", 1, "Random seed (fixed for reproducible extracts)")
	flag.Parse()

	reportEnd, _ := time.Parse("2006-01-02 15:04:05", "2025-11-30 23:59:59")
	cfg := engine.GeneratorConfig{
		Scenario:  *scenario,
		Count:     *count,
		Seed:      *seed,
		ReportEnd: reportEnd,
	}

	fmt.Printf("Generating scenario '%s' (Count: %d) to %s...\n", cfg.Scenario, cfg.Count, *outDir)

	if err := engine.Save(*outDir, engine.Generate(cfg)); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
