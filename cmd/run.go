package cmd

import (
	"github.com/spf13/cobra"
)

var runParallelFlag int

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Validate mod script files",
		Long: `Validate mod script files under the given paths and persist the
resulting report. Paths may be mod directories or single script files.`,
		RunE: func(_ *cobra.Command, args []string) error {
			parallelFlag = runParallelFlag
			return runValidation(args)
		},
	}
	cmd.Flags().IntVarP(&runParallelFlag, "parallel", "p", 1, "number of parallel workers for validation")

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
