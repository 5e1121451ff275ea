package main

import (
	"github.com/spf13/cobra"
)

var submissionCmd = &cobra.Command{
	Use:   "submission",
	Short: "Record and inspect submissions",
}

var submissionAddCmd = &cobra.Command{
	Use:   "add <assignment> <netid> <commit>",
	Short: "Record a submission and queue it for autograding",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := api().AddSubmission(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return err
		}
		printJSON(cmd, data)
		return nil
	},
}

var submissionGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch one submission by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := api().GetSubmission(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printJSON(cmd, data)
		return nil
	},
}

func init() {
	submissionCmd.AddCommand(submissionAddCmd, submissionGetCmd)
	rootCmd.AddCommand(submissionCmd)
}
