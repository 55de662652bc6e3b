// Package cmd provides the root command and CLI setup for pedant.
package cmd

import (
	"fmt"
	"os"

	"github.com/mouse-blink/pedant/internal/adapter"
	"github.com/mouse-blink/pedant/internal/controller"
	"github.com/mouse-blink/pedant/internal/domain"
	m "github.com/mouse-blink/pedant/internal/model"
	"github.com/spf13/cobra"
)

var scriptFS adapter.ScriptFS
var reportStore adapter.ReportStore
var ui controller.UI

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	scriptFS = adapter.NewScriptFS()
	reportStore = adapter.NewReportStore()
}

var gameFlag string
var parallelFlag int
var reportsOutputDirFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pedant [paths...]",
		Short: "Scope checker for Paradox mod scripts",
		Long: `Pedant statically checks the script files of Crusader Kings 3 and
Victoria 3 mods. It parses triggers, effects, events and script values,
tracks what kind of game object each scope chain lands on, and reports
chains that cannot mean what they say.`,
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidation(args)
		},
	}
	cmd.PersistentFlags().StringVarP(&gameFlag, "game", "g", "ck3", "game profile to validate against (ck3 or vic3)")
	cmd.PersistentFlags().StringVarP(&reportsOutputDirFlag, "reports", "r", ".pedant-reports", "directory for persisted run reports")
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 1, "number of parallel workers for validation")

	return cmd
}

// runValidation is the shared path behind the root and run commands.
func runValidation(args []string) error {
	game, err := m.ParseGame(gameFlag)
	if err != nil {
		return err
	}

	w := domain.NewWorkflow(game, scriptFS, reportStore, ui)

	files, err := w.Scan(parsePaths(args)...)
	if err != nil {
		return err
	}

	report, err := w.Validate(files, parallelFlag)
	if err != nil {
		return err
	}

	reportPath := m.Path(fmt.Sprintf("%s/%s.yaml", reportsOutputDirFlag, game))
	if err := w.SaveReport(reportPath, report); err != nil {
		return err
	}

	return ui.DisplayReport(report)
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		args = []string{"."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
