package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var studentCmd = &cobra.Command{
	Use:   "student [roster.json]",
	Short: "Load students from a JSON roster file, or list them",
	Long: `With a file argument, bulk-loads (upserts) the students in the JSON
roster. Without arguments, lists all known students.

Example:
  anubis -d student students.json
  anubis -d student`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client := api()

		if len(args) == 1 {
			roster, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read roster: %w", err)
			}

			data, err := client.LoadStudents(ctx, roster)
			if err != nil {
				return err
			}
			printJSON(cmd, data)
			return nil
		}

		data, err := client.ListStudents(ctx)
		if err != nil {
			return err
		}
		printJSON(cmd, data)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(studentCmd)
}
