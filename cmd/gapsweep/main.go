// Package main is an operations tool for the invoice-gap queue: prints the
// current statistics and unresolved gaps, and optionally resolves one gap
// from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"rxconsole/internal/config"
	appctx "rxconsole/internal/core/context"
	"rxconsole/internal/domain/filter"
	"rxconsole/internal/domain/gaps"
	"rxconsole/internal/infrastructure/upstream"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	resolveID := flag.Int64("resolve", 0, "gap id to resolve")
	notes := flag.String("notes", "", "resolution notes")
	operator := flag.String("operator", "gapsweep", "operator id recorded on resolution")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	client := upstream.New(upstream.Config{
		BaseURL:    cfg.Upstream.BaseURL,
		Timeout:    cfg.Upstream.Timeout,
		RetryCount: cfg.Upstream.RetryCount,
		RetryWait:  cfg.Upstream.RetryWait,
	})
	svc := gaps.NewService(client)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = appctx.WithOperator(ctx, &appctx.OperatorContext{ID: *operator, Name: *operator})

	stats, err := svc.Statistics(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to fetch statistics: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("invoice gaps: total=%d unresolved=%d resolved=%d this_month=%d\n",
		stats.TotalGaps, stats.UnresolvedGaps, stats.ResolvedGaps, stats.GapsThisMonth)

	unresolved := false
	rows, err := svc.List(ctx, filter.Empty(0), &unresolved)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list gaps: %v\n", err)
		os.Exit(1)
	}
	for _, g := range rows {
		fmt.Printf("  #%d %s received=%q expected=%q score=%.0f missing=%s..%s (%d)\n",
			g.ID, g.PharmacyName, g.ReceivedPattern, g.ExpectedPattern,
			g.SimilarityScore, g.MissingRange.From, g.MissingRange.To, g.MissingRange.Count)
	}

	if *resolveID == 0 {
		return
	}

	var resolutionNotes *string
	if *notes != "" {
		resolutionNotes = notes
	}
	g, err := svc.Resolve(ctx, *resolveID, resolutionNotes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve gap %d: %v\n", *resolveID, err)
		os.Exit(1)
	}
	when := "now"
	if g.ResolvedAt != nil {
		when = g.ResolvedAt.Format(time.RFC3339)
	}
	fmt.Printf("resolved gap #%d at %s\n", g.ID, when)
}
