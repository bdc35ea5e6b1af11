package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/eluisluzquadros/cogniticy/pkg/batch"
	"github.com/eluisluzquadros/cogniticy/pkg/lot"
	"github.com/eluisluzquadros/cogniticy/pkg/params"
	"github.com/eluisluzquadros/cogniticy/pkg/validation"
)

func newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadAndValidate loads the project and checks parameters plus every lot's
// geometry.
func loadAndValidate(projectPath string) (*params.Project, *validation.Report, error) {
	project, err := params.LoadProjectFile(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading project: %w", err)
	}
	report := params.ValidateSchema(project.Params)
	for _, spec := range project.Lots {
		g, err := lot.FromSpec(spec)
		if err != nil {
			report.AddError(validation.Result{
				Level:   validation.LevelGeometry,
				Message: "lot geometry could not be built: " + err.Error(),
				LotID:   spec.ID,
			})
			continue
		}
		report.Merge(lot.Validate(g))
	}
	return project, report, nil
}

func runValidate(projectPath string) error {
	_, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runSolve(projectPath string, workers int, verbose bool) error {
	logger := newLogger(verbose)

	project, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("project has validation errors")
	}

	cases, resolveReport := batch.CasesFromProject(project)
	report.Merge(resolveReport)

	runner := batch.Runner{Workers: workers, Logger: logger}
	result, err := runner.Run(context.Background(), cases)
	if err != nil {
		return err
	}

	printRunSummary(result)

	output := map[string]any{
		"run_id":     result.RunID,
		"parameters": project.Params,
		"validation": report,
		"results":    result.Results,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
