package main

import (
	"bufio"
	"context"
	"log"
	"os"
	"strings"

	"cf_insights/internal/app/report"
	"cf_insights/internal/app/service"
	"cf_insights/internal/platform/codeforces"
	"cf_insights/internal/platform/config"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

func main() {
	// 1. Load Configuration
	config.Load()

	runID := uuid.NewString()
	log.Printf("INFO: run %s started", runID)

	// 2. Collect handles: positional arguments, or a single interactive
	// prompt when none were given. An empty answer is fatal.
	handles := os.Args[1:]
	if len(handles) == 0 {
		handle, err := promptHandle()
		if err != nil {
			log.Fatalf("Could not read handle: %v", err)
		}
		if handle == "" {
			log.Fatalf("No handle supplied, nothing to do.")
		}
		handles = []string{handle}
	}

	// 3. Wire the pipeline
	cfg := config.AppConfig
	client := codeforces.NewClient(cfg.APIBase, cfg.APIKey, cfg.APISecret, cfg.SubmissionCount)
	reporter := report.NewReporter(cfg.OutputDir)
	insights := service.NewInsightsService(client, reporter)

	// 4. Process handles strictly in input order. A failure for one handle
	// is logged and the next one proceeds; it never fails the run.
	ctx := context.Background()
	header := color.New(color.FgCyan, color.Bold)
	failed := 0
	for _, handle := range handles {
		header.Printf("==> %s\n", handle)
		if err := insights.GenerateReport(ctx, handle); err != nil {
			failed++
			log.Printf("ERROR: %s: %v", handle, err)
			color.Red("failed: %v", err)
			continue
		}
		color.Green("done: %s", reporter.Dir(handle))
	}

	log.Printf("INFO: run %s finished: %d/%d handles succeeded", runID, len(handles)-failed, len(handles))
}

func promptHandle() (string, error) {
	color.New(color.FgYellow).Print("Enter a Codeforces handle: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
