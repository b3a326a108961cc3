// Command gen-directory writes a synthetic personnel export for local
// runs: go run ./cmd/gen-directory -output data/employees.json
package main

import (
	"context"
	"flag"
	"os"

	"github.com/gun110939/demo-flow-send-pwa/internal/gendata"
	"github.com/gun110939/demo-flow-send-pwa/pkg/logger"
)

const (
	defaultNumOrgs     = 6
	defaultStaffPerOrg = 15
	defaultOutput      = "data/employees.json"
)

func main() {
	var (
		numOrgs     = flag.Int("orgs", defaultNumOrgs, "Number of parent organizations")
		staffPerOrg = flag.Int("staff", defaultStaffPerOrg, "Staff employees per organization")
		output      = flag.String("output", defaultOutput, "Output file for the generated export")
		seed        = flag.Int64("seed", 0, "Random seed (0 = time-based)")
		verbose     = flag.Bool("verbose", false, "Log per-organization generation detail")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx := context.Background()
	log := logger.Get()

	cfg := &gendata.Config{
		NumOrgs:     *numOrgs,
		StaffPerOrg: *staffPerOrg,
		OutputFile:  *output,
		Seed:        *seed,
		Verbose:     *verbose,
	}

	employees := gendata.Generate(ctx, cfg)
	if err := gendata.WriteFile(cfg.OutputFile, employees); err != nil {
		log.Error(ctx, "failed to write export", logger.String("path", cfg.OutputFile), logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "export written",
		logger.String("path", cfg.OutputFile),
		logger.Int("employees", len(employees)),
	)
}
