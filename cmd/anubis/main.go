package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"anubis/pkg/apiclient"
)

const debugAPIURL = "http://localhost:5000"

var (
	debug  bool
	apiURL string
)

var rootCmd = &cobra.Command{
	Use:   "anubis",
	Short: "anubis - student assignment tracking and grading statistics",
	Long: `anubis drives the assignment tracking API from the command line.

Load a student roster, register assignments with release and due dates,
and pull grading statistics per assignment or per student. Every command
prints the API's JSON response to stdout, ready for a pretty-printer.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		fmt.Sprintf("target the local debug stack at %s and log verbosely", debugAPIURL))
	rootCmd.PersistentFlags().StringVar(&apiURL, "api",
		envOr("ANUBIS_API_URL", debugAPIURL), "base URL of the anubis API")
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func api() *apiclient.Client {
	base := apiURL
	if debug {
		base = debugAPIURL
	}
	slog.Debug("using api", "base", base)

	return apiclient.New(base, 30*time.Second)
}

// printJSON writes the raw API payload followed by a newline, so output
// pipes cleanly into jq and friends.
func printJSON(cmd *cobra.Command, data []byte) {
	out := cmd.OutOrStdout()
	out.Write(data)
	fmt.Fprintln(out)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
