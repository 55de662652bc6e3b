package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "github.com/mouse-blink/pedant/internal/model"
)

// diagItem adapts one diagnostic for the bubbles list.
type diagItem struct {
	d m.Diagnostic
}

func (i diagItem) FilterValue() string {
	return string(i.d.Loc.Path) + " " + i.d.Message
}

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	locStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Faint(true)
)

func severityStyle(s m.Severity) lipgloss.Style {
	switch s {
	case m.SeverityError:
		return errorStyle
	case m.SeverityWarning:
		return warnStyle
	default:
		return infoStyle
	}
}

// diagDelegate renders one diagnostic per line, with the current selection
// highlighted.
type diagDelegate struct{}

func (diagDelegate) Height() int  { return 1 }
func (diagDelegate) Spacing() int { return 0 }
func (diagDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (diagDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	di, ok := item.(diagItem)
	if !ok {
		return
	}

	line := fmt.Sprintf("%s %s %s",
		severityStyle(di.d.Severity).Render(string(di.d.Severity)),
		locStyle.Render(di.d.Loc.String()),
		di.d.Message,
	)

	if index == lm.Index() {
		line = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Render(fmt.Sprintf("%s %s %s", di.d.Severity, di.d.Loc, di.d.Message))
	}

	_, _ = fmt.Fprint(w, line)
}

// browseModel pages through a run's diagnostics, with filtering and a detail
// pane for the selected entry.
type browseModel struct {
	width    int
	height   int
	report   *m.RunReport
	diagList list.Model
}

func newBrowseModel(report *m.RunReport) browseModel {
	items := make([]list.Item, 0, len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		items = append(items, diagItem{d: d})
	}

	diagList := list.New(items, diagDelegate{}, 80, 20)
	diagList.SetShowPagination(true)
	diagList.SetShowFilter(true)
	diagList.SetShowHelp(false)
	diagList.SetShowTitle(false)
	diagList.SetShowStatusBar(false)
	diagList.FilterInput.Placeholder = "Filter by path or message…"

	return browseModel{
		report:   report,
		diagList: diagList,
	}
}

// needsPagination reports whether the diagnostics overflow the terminal.
func (b browseModel) needsPagination() bool {
	if b.height == 0 {
		return false
	}

	// Leave room for the summary line and the detail pane.
	return len(b.report.Diagnostics) > b.height-6
}

func (b browseModel) Init() tea.Cmd {
	return nil
}

func (b browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.diagList.SetWidth(b.width)
		b.diagList.SetHeight(b.height - 5)

		return b, nil

	case tea.KeyMsg:
		if b.diagList.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c":
				return b, tea.Quit
			}
		}

		b.diagList, cmd = b.diagList.Update(msg)

		return b, cmd
	}

	return b, cmd
}

func (b browseModel) View() string {
	var sb strings.Builder

	sb.WriteString(b.summaryLine())
	sb.WriteString("\n")
	sb.WriteString(b.diagList.View())
	sb.WriteString("\n")
	sb.WriteString(b.detailPane())

	return sb.String()
}

func (b browseModel) summaryLine() string {
	errors, warnings := b.report.Counts()

	return fmt.Sprintf("%s  %s  %d files checked",
		errorStyle.Render(fmt.Sprintf("%d errors", errors)),
		warnStyle.Render(fmt.Sprintf("%d warnings", warnings)),
		b.report.Files,
	)
}

// detailPane shows the selected diagnostic's info line and related locations.
func (b browseModel) detailPane() string {
	item, ok := b.diagList.SelectedItem().(diagItem)
	if !ok {
		return ""
	}

	var sb strings.Builder

	if item.d.Info != "" {
		sb.WriteString(noteStyle.Render(item.d.Info))
		sb.WriteString("\n")
	}

	for _, rel := range item.d.Related {
		sb.WriteString(noteStyle.Render(fmt.Sprintf("%s: %s", rel.Loc, rel.Note)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// plainView renders everything without interaction, for short reports and
// redirected output.
func (b browseModel) plainView() string {
	var sb strings.Builder

	for _, d := range b.report.Diagnostics {
		sb.WriteString(fmt.Sprintf("%s: %s(%s): %s\n", d.Loc, d.Severity, d.Key, d.Message))

		if d.Info != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", d.Info))
		}

		for _, rel := range d.Related {
			sb.WriteString(fmt.Sprintf("    %s: %s\n", rel.Loc, rel.Note))
		}
	}

	sb.WriteString(b.summaryLine())
	sb.WriteString("\n")

	return sb.String()
}
