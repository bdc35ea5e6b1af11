package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/eluisluzquadros/cogniticy/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cogniticy",
		Short: "Parametric massing and shape-search engine for urban lots",
	}

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func solveCmd() *cobra.Command {
	var workers int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "solve [project-path]",
		Short: "Evaluate every lot: baseline massing, shape search, parking, metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSolve(args[0], workers, verbose)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel lot evaluations (0 = serial)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate project parameters and lot geometry without solving",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func serveCmd() *cobra.Command {
	var port int
	var workers int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local dev server for interactive massing studies",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			srv := server.New(args[0], port, workers, newLogger(false))
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel lot evaluations (0 = serial)")
	return cmd
}
