package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driving"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	answerBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBox    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// App is the Bubble Tea model for the interactive question session.
type App struct {
	ctx      context.Context
	query    driving.QueryService
	library  driving.LibraryService
	input    textinput.Model
	viewport viewport.Model
	answer   *domain.QueryAnswer
	status   string
	ready    bool
}

// NewApp creates the interactive session model.
func NewApp(query driving.QueryService, library driving.LibraryService) (*App, error) {
	if query == nil {
		return nil, fmt.Errorf("query service is required")
	}

	ti := textinput.New()
	ti.Prompt = "? "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	return &App{
		ctx:      context.Background(),
		query:    query,
		library:  library,
		input:    ti,
		viewport: viewport.New(0, 0),
		status:   "Ready. Type a question to search your documents.",
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) {
	if ctx != nil {
		a.ctx = ctx
	}
}

// Init starts the text input cursor blink.
func (a *App) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.ready = true
		_, ah := answerBox.GetFrameSize()
		_, ih := inputBox.GetFrameSize()
		// header + library line + status + spacer
		reserved := 4 + ih
		vh := msg.Height - reserved - ah
		if vh < 3 {
			vh = 3
		}
		a.viewport.Width = maxInt(20, msg.Width)
		a.viewport.Height = vh
		a.viewport.SetContent(a.renderAnswer())
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return a, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(a.input.Value())
			if q == "" {
				return a, nil
			}
			a.ask(q)
			a.viewport.SetContent(a.renderAnswer())
			return a, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd
		case "q":
			if a.input.Value() == "" {
				return a, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View renders the session layout.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	header := headerStyle.Render("docqa")
	library := subtleStyle.Render(a.libraryLine())
	answer := answerBox.Render(a.viewport.View())
	input := inputBox.Render(a.input.View())
	status := statusStyle.Render(a.status)

	return header + "\n" + library + "\n" + answer + "\n" + input + "\n" + status
}

// ask runs a query synchronously and records the outcome on the model.
func (a *App) ask(q string) {
	result, err := a.query.Ask(a.ctx, q, 0)
	if err != nil {
		a.status = "Error: " + err.Error()
		a.answer = nil
		return
	}

	a.answer = result
	a.status = fmt.Sprintf("Answered in %s (%d sources)", result.ProcessingTime.Round(time.Millisecond), len(result.Sources))
	a.input.SetValue("")
}

func (a *App) renderAnswer() string {
	if a.answer == nil {
		return "Ask a question to get started."
	}

	var sb strings.Builder
	sb.WriteString(a.answer.Answer)

	if len(a.answer.Sources) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(sourceStyle.Render("Sources:"))
		for _, src := range a.answer.Sources {
			fmt.Fprintf(&sb, "\n  %s (%.0f%%)", src.Title, src.Score*100)
		}
	}
	return sb.String()
}

func (a *App) libraryLine() string {
	if a.library == nil {
		return "library: unavailable"
	}
	stats, err := a.library.Stats(a.ctx)
	if err != nil {
		return "library: unavailable"
	}
	return fmt.Sprintf("library: %d documents, %d chunks indexed", stats.Documents, stats.Chunks)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
