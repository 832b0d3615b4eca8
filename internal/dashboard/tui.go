package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RunTUI drives the interactive dashboard until all tasks finish and
// the user dismisses it. Returns the worst task exit code.
func RunTUI(ctx context.Context, specs []TaskSpec) (int, error) {
	program := tea.NewProgram(newModel(ctx, specs), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return 1, err
	}
	return finalModel.(model).exitCode(), nil
}

type model struct {
	tasks    []*Task
	updates  <-chan TaskUpdate
	selected int
	spin     spinner.Model
	viewport viewport.Model
	width    int
	height   int
	done     bool
	aborted  bool
}

type taskUpdateMsg TaskUpdate
type doneMsg struct{}

func newModel(ctx context.Context, specs []TaskSpec) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	vp := viewport.New(0, 0)
	vp.SetContent("")
	tasks, updates := StartTasks(ctx, specs)
	return model{tasks: tasks, updates: updates, spin: sp, viewport: vp}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.listenUpdates(), m.spin.Tick)
}

func (m model) listenUpdates() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updates
		if !ok {
			return doneMsg{}
		}
		return taskUpdateMsg(update)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.aborted = !m.done
			return m, tea.Quit
		case "q", "enter":
			if m.done {
				return m, tea.Quit
			}
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refreshViewport()
			}
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
				m.refreshViewport()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.detailWidth() - 4
		m.viewport.Height = msg.Height - 4
		m.refreshViewport()

	case taskUpdateMsg:
		m.refreshViewport()
		return m, m.listenUpdates()

	case doneMsg:
		m.done = true
		m.refreshViewport()
		if m.exitCode() == 0 {
			// nothing left to inspect on success
			return m, tea.Quit
		}
		// jump to the first failure so its output is front and center
		for i, task := range m.tasks {
			if task.Status == TaskFailed {
				m.selected = i
				m.refreshViewport()
				break
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) refreshViewport() {
	if len(m.tasks) == 0 {
		return
	}
	task := m.tasks[m.selected]
	m.viewport.SetContent(strings.Join(task.Output(), "\n"))
	m.viewport.GotoBottom()
}

func (m model) listWidth() int {
	w := 24
	for _, task := range m.tasks {
		if n := len(task.Spec.Name) + 8; n > w {
			w = n
		}
	}
	if m.width > 0 && w > m.width/2 {
		w = m.width / 2
	}
	return w
}

func (m model) detailWidth() int {
	return m.width - m.listWidth() - 1
}

func (m model) View() string {
	if m.width == 0 {
		return "starting..."
	}

	var list strings.Builder
	lastGroup := ""
	for i, task := range m.tasks {
		if task.Spec.Group != lastGroup {
			lastGroup = task.Spec.Group
			list.WriteString(groupHeader(lastGroup) + "\n")
		}

		line := fmt.Sprintf("%s %s", statusGlyph(task.Status, m.spin.View()), task.Spec.Name)
		if task.Status == TaskSuccess || task.Status == TaskFailed {
			line += fmt.Sprintf(" (%s)", task.Duration().Round(10*time.Millisecond))
		}
		if i == m.selected {
			line = styleSelected.Render(line)
		}
		list.WriteString(line + "\n")
	}

	if m.done {
		list.WriteString("\n")
		if m.exitCode() == 0 {
			list.WriteString(styleSuccess.Render("all checks passed") + "\n")
		} else {
			list.WriteString(styleFailed.Render("checks failed") + "\n")
		}
		list.WriteString(stylePending.Render("q to exit") + "\n")
	}

	left := lipgloss.NewStyle().Width(m.listWidth()).Render(list.String())
	right := styleBorder.Width(m.detailWidth() - 2).Render(m.viewport.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// exitCode reports the worst exit code over all tasks. A run quit
// before every task finished never counts as success.
func (m model) exitCode() int {
	code := 0
	if m.aborted {
		code = 1
	}
	for _, task := range m.tasks {
		if task.Status == TaskFailed && task.ExitCode != 0 {
			code = task.ExitCode
			if code < 0 {
				code = 1
			}
		}
	}
	return code
}
