package main

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <assignment> [netid]",
	Short: "Grading statistics for an assignment, optionally for one student",
	Long: `Prints the grading aggregate for an assignment, or the single-student
view when a netid is given.

Example:
  anubis -d stats os3224-assignment-2
  anubis -d stats os3224-assignment-2 jmc1283`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client := api()

		if len(args) == 2 {
			data, err := client.StudentStats(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			printJSON(cmd, data)
			return nil
		}

		data, err := client.AssignmentStats(ctx, args[0])
		if err != nil {
			return err
		}
		printJSON(cmd, data)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
