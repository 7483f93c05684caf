// Command refresh runs one orchestrator pass and exits, for use from a
// deploy hook or an external cron outside the in-process scheduler.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/lbrouwer/surfcast/internal/catalog"
	"github.com/lbrouwer/surfcast/internal/config"
	"github.com/lbrouwer/surfcast/internal/logging"
	"github.com/lbrouwer/surfcast/internal/orchestrator"
	"github.com/lbrouwer/surfcast/internal/provider"
	"github.com/lbrouwer/surfcast/internal/store"
)

func main() {
	spotsFlag := flag.String("spots", "", "comma-separated spot_ids to refresh (default: entire catalog)")
	force := flag.Bool("force", false, "bypass freshness checks")
	flag.Parse()

	logger := logging.New("info")

	log.Println("Starting surf forecast refresh...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	for _, spot := range catalog.Spots {
		if err := db.UpsertSpot(context.Background(), spot); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	atmoClient := provider.NewAtmosphericClient(cfg.Provider.AtmosphericBaseURL, cfg.Provider.RequestTimeout, cfg.Provider.MaxRetries, cfg.Provider.RetryBaseInterval)
	marineClient := provider.NewMarineClient(cfg.Provider.MarineBaseURL, cfg.Provider.RequestTimeout, cfg.Provider.MaxRetries, cfg.Provider.RetryBaseInterval)
	orch := orchestrator.New(db, atmoClient, marineClient, cfg.Refresh.RawThreshold, cfg.Refresh.Fanout, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Minute)
	defer cancel()

	var spotIDs []string
	if *spotsFlag != "" {
		spotIDs = strings.Split(*spotsFlag, ",")
	} else {
		spotIDs = catalog.IDs()
	}

	outcomes := orch.RefreshSpots(ctx, spotIDs, *force)

	failures := 0
	for _, o := range outcomes {
		if o.Error != "" {
			failures++
			log.Printf("  %s: FAILED (%s)", o.SpotID, o.Error)
			continue
		}
		updated := 0
		for _, step := range o.Steps {
			if step.Updated {
				updated++
			}
		}
		log.Printf("  %s: %d/%d layers updated", o.SpotID, updated, len(o.Steps))
	}

	log.Printf("Refresh complete: %d spots, %d failures", len(outcomes), failures)
	if failures > 0 {
		log.Fatalf("refresh completed with %d spot-level failures", failures)
	}
}
