package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/pedant/internal/domain"
	m "github.com/mouse-blink/pedant/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List script files that would be validated",
		Long:  "List every script file found under the given paths, without validating it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := m.ParseGame(gameFlag)
			if err != nil {
				return err
			}

			w := domain.NewWorkflow(game, scriptFS, reportStore, ui)

			files, err := w.Scan(parsePaths(args)...)
			if err != nil {
				return err
			}

			for _, file := range files {
				cmd.Println(string(file))
			}

			cmd.Printf("%d script files\n", len(files))

			return nil
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
