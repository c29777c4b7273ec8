package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dungeonc/dungeonc/internal/watch"
)

var watchOutput string

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "game.html", "Output HTML path")
}

var watchCmd = &cobra.Command{
	Use:   "watch <source.dungeon>",
	Short: "Recompile a dungeon source file on every save",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(newWatchModel(args[0], watchOutput))
		_, err := p.Run()
		return err
	},
}

var (
	watchOkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	watchErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	watchDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	watchPathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

type watchResultMsg watch.Event

type watchModel struct {
	sourcePath string
	outputPath string
	sp         spinner.Model
	sw         *watch.SourceWatcher
	events     chan watch.Event
	lastErr    []string
	lastOK     string
	lastDur    time.Duration
	compiling  bool
}

func newWatchModel(sourcePath, outputPath string) *watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	events := make(chan watch.Event, 4)
	return &watchModel{
		sourcePath: sourcePath,
		outputPath: outputPath,
		sp:         sp,
		events:     events,
		compiling:  true,
	}
}

func (m *watchModel) Init() tea.Cmd {
	sw, err := watch.New(m.sourcePath, m.outputPath, func(e watch.Event) { m.events <- e })
	if err != nil {
		return func() tea.Msg { return watchResultMsg{Err: []string{err.Error()}} }
	}
	m.sw = sw
	sw.Start()
	return tea.Batch(m.sp.Tick, waitForEvent(m.events))
}

func waitForEvent(events chan watch.Event) tea.Cmd {
	return func() tea.Msg { return watchResultMsg(<-events) }
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			if m.sw != nil {
				m.sw.Stop()
			}
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd
	case watchResultMsg:
		m.compiling = false
		m.lastErr = msg.Err
		m.lastOK = msg.HTML
		m.lastDur = msg.Duration
		return m, waitForEvent(m.events)
	}
	return m, nil
}

func (m *watchModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "watching %s\n\n", watchPathStyle.Render(m.sourcePath))

	switch {
	case len(m.lastErr) > 0:
		b.WriteString(watchErrStyle.Render("✗ compile failed") + "\n")
		for _, e := range m.lastErr {
			fmt.Fprintf(&b, "  %s\n", e)
		}
	case m.lastOK != "":
		fmt.Fprintf(&b, "%s wrote %s in %s\n", watchOkStyle.Render("✓"), watchPathStyle.Render(m.lastOK), m.lastDur.Round(time.Millisecond))
	default:
		fmt.Fprintf(&b, "%s compiling...\n", m.sp.View())
	}

	b.WriteString("\n" + watchDimStyle.Render("press q to quit") + "\n")
	return b.String()
}
