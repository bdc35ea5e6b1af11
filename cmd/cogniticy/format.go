package main

import (
	"fmt"
	"os"

	"github.com/eluisluzquadros/cogniticy/pkg/batch"
	"github.com/eluisluzquadros/cogniticy/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(e)
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			printResult(w)
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(res validation.Result) {
	if res.LotID != "" {
		fmt.Printf("  [%s] lot %s: %s\n", res.Level, res.LotID, res.Message)
	} else {
		fmt.Printf("  [%s] %s\n", res.Level, res.Message)
	}
	if res.Path != "" {
		fmt.Printf("    -> %s = %v\n", res.Path, res.ActualValue)
	}
	if res.Expected != "" {
		fmt.Printf("    expected: %s\n", res.Expected)
	}
	for _, s := range res.Suggestions {
		fmt.Printf("    * %s\n", s)
	}
}

// printRunSummary writes a per-lot table to stderr so stdout stays clean
// JSON for piping.
func printRunSummary(run *batch.RunResult) {
	w := os.Stderr

	fmt.Fprintf(w, "%-14s %-10s %7s %9s %9s %8s %9s\n",
		"Lot", "Status", "Floors", "FAR", "Best FAR", "Units", "Stalls")

	for _, res := range run.Results {
		if res.Status != batch.StatusOK {
			fmt.Fprintf(w, "%-14s %-10s\n", res.LotID, res.Status)
			continue
		}
		b := res.Baseline.Summary
		bestFAR := "-"
		if res.BestShape != nil {
			bestFAR = fmt.Sprintf("%.3f", res.BestShape.Summary.AchievedFAR)
		}
		fmt.Fprintf(w, "%-14s %-10s %7d %9.3f %9s %8d %9d\n",
			res.LotID, res.Status, b.NumFloors, b.AchievedFAR, bestFAR,
			b.UnitEstimate, b.ParkingStalls)
	}
}
