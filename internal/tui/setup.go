// ABOUTME: Interactive TUI wizard for configuring feedboard storage and logging.
// ABOUTME: 3-step bubbletea model collecting backend, data directory, and log level.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harper/feedboard/internal/config"
	"github.com/harper/feedboard/internal/storage"
)

// Step represents the current wizard step.
type Step int

const (
	StepBackend Step = iota
	StepDataDir
	StepLogLevel
	StepDone
)

const stepCount = int(StepDone)

var logLevels = []string{"debug", "info", "warn", "error"}

// Answers holds the values the wizard collects.
type Answers struct {
	Backend  string
	DataDir  string
	LogLevel string
}

// SetupModel is the bubbletea model for the setup wizard.
type SetupModel struct {
	step     Step
	inputs   [stepCount]textinput.Model
	errMsg   string
	quitting bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func newInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Width = 50
	if value != "" {
		in.SetValue(value)
	}
	return in
}

// NewSetupModel creates a wizard pre-filled with the existing config values.
func NewSetupModel(current Answers) SetupModel {
	m := SetupModel{
		step: StepBackend,
		inputs: [stepCount]textinput.Model{
			newInput(storage.BackendYAML, current.Backend),
			newInput(config.DefaultDataDir(), current.DataDir),
			newInput(config.DefaultLogLevel, current.LogLevel),
		},
	}
	m.inputs[StepBackend].Focus()
	return m
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.step == StepDone {
		return m, nil
	}

	idx := int(m.step)
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		}
	}

	// Keys and cursor blinks go to the active input
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m SetupModel) handleEnter() (tea.Model, tea.Cmd) {
	idx := int(m.step)
	val := strings.ToLower(strings.TrimSpace(m.inputs[idx].Value()))

	switch m.step {
	case StepBackend:
		if val == "" {
			val = storage.BackendYAML
		}
		if val != storage.BackendYAML && val != storage.BackendSQLite {
			m.errMsg = fmt.Sprintf("unknown backend %q", val)
			return m, nil
		}
	case StepDataDir:
		// Paths keep their case.
		val = strings.TrimSpace(m.inputs[idx].Value())
		if val == "" {
			val = config.DefaultDataDir()
		}
	case StepLogLevel:
		if val == "" {
			val = config.DefaultLogLevel
		}
		if !validLogLevel(val) {
			m.errMsg = fmt.Sprintf("unknown log level %q", val)
			return m, nil
		}
	}

	m.errMsg = ""
	m.inputs[idx].SetValue(val)
	m.inputs[idx].Blur()
	m.step++

	if m.step == StepDone {
		return m, tea.Quit
	}
	m.inputs[m.step].Focus()
	return m, textinput.Blink
}

func validLogLevel(level string) bool {
	for _, l := range logLevels {
		if l == level {
			return true
		}
	}
	return false
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   FEEDBOARD"))
	b.WriteString(titleStyle.Render(" - Setup"))
	b.WriteString("\n\n")
	b.WriteString("Configure where feedboard keeps your feeds.\n\n")

	for i := 0; i < int(m.step) && i < stepCount; i++ {
		fmt.Fprintf(&b, "  %s: %s\n", stepTitle(Step(i)), m.inputs[i].Value())
	}
	if m.step > StepBackend {
		b.WriteString("\n")
	}

	switch m.step {
	case StepBackend:
		m.writePrompt(&b, "yaml or sqlite, press Enter for yaml")
	case StepDataDir:
		m.writePrompt(&b, "press Enter for default: "+config.DefaultDataDir())
	case StepLogLevel:
		m.writePrompt(&b, strings.Join(logLevels, ", ")+"; press Enter for "+config.DefaultLogLevel)
	case StepDone:
		b.WriteString(successStyle.Render("Setup complete! Config will be saved."))
		b.WriteString("\n\n")
	}

	return b.String()
}

func (m SetupModel) writePrompt(b *strings.Builder, hint string) {
	fmt.Fprintf(b, "%s\n", stepStyle.Render(fmt.Sprintf("Step %d of %d: %s", int(m.step)+1, stepCount, stepTitle(m.step))))
	fmt.Fprintf(b, "%s\n", stepStyle.Render("("+hint+")"))
	b.WriteString(m.inputs[m.step].View())
	b.WriteString("\n")
	if m.errMsg != "" {
		fmt.Fprintf(b, "%s\n", errorStyle.Render(m.errMsg))
	}
}

func stepTitle(s Step) string {
	switch s {
	case StepBackend:
		return "Storage Backend"
	case StepDataDir:
		return "Data Directory"
	case StepLogLevel:
		return "Log Level"
	default:
		return ""
	}
}

// Result returns the entered values.
func (m SetupModel) Result() Answers {
	return Answers{
		Backend:  m.inputs[StepBackend].Value(),
		DataDir:  m.inputs[StepDataDir].Value(),
		LogLevel: m.inputs[StepLogLevel].Value(),
	}
}

// ShouldSave returns true if the wizard completed and the user did not cancel.
func (m SetupModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
