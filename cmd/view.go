package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/pedant/internal/controller"
	"github.com/mouse-blink/pedant/internal/domain"
	m "github.com/mouse-blink/pedant/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View a previously generated validation report",
		Long:  "View a previously generated validation report from the reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			game, err := m.ParseGame(gameFlag)
			if err != nil {
				return err
			}

			w := domain.NewWorkflow(game, scriptFS, reportStore, ui)

			reportPath := m.Path(fmt.Sprintf("%s/%s.yaml", reportsOutputDirFlag, game))

			report, err := w.LoadReport(reportPath)
			if err != nil {
				return err
			}

			if err := ui.Start(controller.WithBrowseMode()); err != nil {
				return err
			}
			defer ui.Close()

			return ui.DisplayReport(report)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
