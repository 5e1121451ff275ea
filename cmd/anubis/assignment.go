package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"anubis/internal/domain/entity"
)

var assignmentCmd = &cobra.Command{
	Use:   "assignment",
	Short: "Manage assignments",
}

var assignmentAddCmd = &cobra.Command{
	Use:   "add <name> <start> <end>",
	Short: "Register an assignment with release and due timestamps",
	Long: `Registers an assignment. Timestamps use the "YYYY-MM-DD HH:MM:SS"
format and the release must precede the due date.

Example:
  anubis -d assignment add os3224-assignment-1 "2021-02-01 00:00:00" "2021-02-14 23:59:59"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, release, due := args[0], args[1], args[2]

		// Fail fast on malformed timestamps before touching the API.
		releaseAt, err := time.Parse(entity.TimeLayout, release)
		if err != nil {
			return fmt.Errorf("start timestamp must be in '%s' format", entity.TimeLayout)
		}
		dueAt, err := time.Parse(entity.TimeLayout, due)
		if err != nil {
			return fmt.Errorf("end timestamp must be in '%s' format", entity.TimeLayout)
		}
		if !releaseAt.Before(dueAt) {
			return fmt.Errorf("start %q must precede end %q", release, due)
		}

		data, err := api().AddAssignment(cmd.Context(), name, release, due)
		if err != nil {
			return err
		}
		printJSON(cmd, data)
		return nil
	},
}

var assignmentLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List assignments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := api().ListAssignments(cmd.Context())
		if err != nil {
			return err
		}
		printJSON(cmd, data)
		return nil
	},
}

func init() {
	assignmentCmd.AddCommand(assignmentAddCmd, assignmentLsCmd)
	rootCmd.AddCommand(assignmentCmd)
}
