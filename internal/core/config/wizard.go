package config

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const asciiArt = `
 ███╗   ███╗███████╗██████╗ ██╗ █████╗ ███████╗ ██████╗██████╗ ██╗██████╗ ███████╗
 ████╗ ████║██╔════╝██╔══██╗██║██╔══██╗██╔════╝██╔════╝██╔══██╗██║██╔══██╗██╔════╝
 ██╔████╔██║█████╗  ██║  ██║██║███████║███████╗██║     ██████╔╝██║██████╔╝█████╗
 ██║╚██╔╝██║██╔══╝  ██║  ██║██║██╔══██║╚════██║██║     ██╔══██╗██║██╔══██╗██╔══╝
 ██║ ╚═╝ ██║███████╗██████╔╝██║██║  ██║███████║╚██████╗██║  ██║██║██████╔╝███████╗
 ╚═╝     ╚═╝╚══════╝╚═════╝ ╚═╝╚═╝  ╚═╝╚══════╝ ╚═════╝╚═╝  ╚═╝╚═╝╚═════╝ ╚══════╝
`

var (
	logoStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	stepStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	unselectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	inputStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	inputCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("248")).Width(14)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	containerStyle   = lipgloss.NewStyle().Padding(2, 4)
)

// Wizard step constants
const (
	stepLanguage = iota
	stepProviders
	stepChatBackend
	stepWorkers
	stepConfirm

	stepCount
)

var languageOptions = []struct{ label, value string }{
	{"English (US)", "en-US"},
	{"English (UK)", "en-GB"},
	{"Español", "es-ES"},
	{"Français", "fr-FR"},
	{"Deutsch", "de-DE"},
	{"中文", "zh-CN"},
	{"日本語", "ja-JP"},
}

var providerOptions = []struct {
	label string
	value []string
}{
	{"Free first (google-web → google-cloud → openai-whisper)", []string{"google-web", "google-cloud", "openai-whisper"}},
	{"Cloud first (google-cloud → openai-whisper → google-web)", []string{"google-cloud", "openai-whisper", "google-web"}},
	{"Whisper only", []string{"openai-whisper"}},
}

type model struct {
	currentStep int
	cursor      int
	config      *Config
	confirmed   bool
	cancelled   bool
	inputBuffer string
	width       int
	height      int
}

func initialModel(cfg *Config) model {
	m := model{
		currentStep: stepLanguage,
		cursor:      0,
		config:      cfg,
	}
	m.setCursorFromConfig()
	return m
}

func (m *model) getStepTitle() string {
	switch m.currentStep {
	case stepLanguage:
		return "Recognition Language"
	case stepProviders:
		return "Provider Order"
	case stepChatBackend:
		return "Chat Backend"
	case stepWorkers:
		return "Concurrent Workers"
	case stepConfirm:
		return "Review & Save"
	}
	return ""
}

func (m *model) getStepDescription() string {
	switch m.currentStep {
	case stepLanguage:
		return "Language hint passed to the speech recognizers"
	case stepProviders:
		return "Which providers to try, and in what order, for each chunk"
	case stepChatBackend:
		return "Completion API used to answer questions about transcripts"
	case stepWorkers:
		return "How many chunks to transcribe at the same time"
	case stepConfirm:
		return "Save these settings to your config file?"
	}
	return ""
}

func (m *model) getOptions() []struct{ label, value string } {
	switch m.currentStep {
	case stepLanguage:
		return languageOptions
	case stepProviders:
		opts := make([]struct{ label, value string }, len(providerOptions))
		for i, p := range providerOptions {
			opts[i] = struct{ label, value string }{p.label, strings.Join(p.value, ",")}
		}
		return opts
	case stepChatBackend:
		return []struct{ label, value string }{
			{"OpenAI", "openai"},
			{"Anthropic", "anthropic"},
		}
	case stepConfirm:
		return []struct{ label, value string }{
			{"Yes, save", "yes"},
			{"No, cancel", "no"},
		}
	}
	return nil
}

func (m *model) isInputStep() bool {
	return m.currentStep == stepWorkers
}

func (m *model) setCursorFromConfig() {
	if m.isInputStep() {
		workers := m.config.Pipeline.Workers
		if workers <= 0 {
			workers = 1
		}
		m.inputBuffer = strconv.Itoa(workers)
		return
	}

	var currentValue string
	switch m.currentStep {
	case stepLanguage:
		currentValue = m.config.Transcription.Language
	case stepProviders:
		currentValue = strings.Join(m.config.Transcription.Providers, ",")
	case stepChatBackend:
		currentValue = m.config.Chat.Backend
	}

	m.cursor = 0
	for i, opt := range m.getOptions() {
		if opt.value == currentValue {
			m.cursor = i
			break
		}
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "left":
			if m.currentStep > 0 {
				m.saveCurrentValue()
				m.currentStep--
				m.cursor = 0
				m.setCursorFromConfig()
			}
			return m, nil

		case "right", "enter":
			m.saveCurrentValue()

			if m.currentStep == stepConfirm {
				if m.cursor == 0 {
					m.confirmed = true
				} else {
					m.cancelled = true
				}
				return m, tea.Quit
			}

			m.currentStep++
			m.cursor = 0
			m.setCursorFromConfig()
			return m, nil

		case "up", "k":
			if !m.isInputStep() {
				options := m.getOptions()
				if m.cursor > 0 {
					m.cursor--
				} else {
					m.cursor = len(options) - 1
				}
			}
			return m, nil

		case "down", "j":
			if !m.isInputStep() {
				options := m.getOptions()
				if m.cursor < len(options)-1 {
					m.cursor++
				} else {
					m.cursor = 0
				}
			}
			return m, nil

		case "backspace":
			if m.isInputStep() && len(m.inputBuffer) > 0 {
				m.inputBuffer = m.inputBuffer[:len(m.inputBuffer)-1]
			}
			return m, nil

		default:
			if m.isInputStep() && len(msg.String()) == 1 && msg.String() >= "0" && msg.String() <= "9" {
				m.inputBuffer += msg.String()
			}
			return m, nil
		}
	}

	return m, nil
}

func (m *model) saveCurrentValue() {
	if m.isInputStep() {
		if n, err := strconv.Atoi(m.inputBuffer); err == nil && n > 0 {
			m.config.Pipeline.Workers = n
		}
		return
	}

	options := m.getOptions()
	if m.cursor >= len(options) {
		return
	}
	value := options[m.cursor].value

	switch m.currentStep {
	case stepLanguage:
		m.config.Transcription.Language = value
	case stepProviders:
		m.config.Transcription.Providers = providerOptions[m.cursor].value
	case stepChatBackend:
		m.config.Chat.Backend = value
	}
}

func (m model) View() string {
	var b strings.Builder

	// Logo
	b.WriteString(logoStyle.Render(asciiArt))
	b.WriteString("\n\n")

	// Progress indicator
	b.WriteString(stepStyle.Render(fmt.Sprintf("Step %d of %d", m.currentStep+1, stepCount)))
	b.WriteString("\n\n")

	// Title
	b.WriteString(titleStyle.Render(m.getStepTitle()))
	b.WriteString("\n")
	b.WriteString(stepStyle.Render(m.getStepDescription()))
	b.WriteString("\n\n")

	if m.currentStep == stepConfirm {
		b.WriteString(m.renderReview())
		b.WriteString("\n")
	}

	if m.isInputStep() {
		b.WriteString(inputCursorStyle.Render("> "))
		b.WriteString(inputStyle.Render(m.inputBuffer))
		b.WriteString(inputCursorStyle.Render("█"))
		b.WriteString("\n")
	} else {
		for i, opt := range m.getOptions() {
			cursor := "  "
			style := unselectedStyle
			if i == m.cursor {
				cursor = cursorStyle.Render("> ")
				style = selectedStyle
			}
			b.WriteString(cursor)
			b.WriteString(style.Render(opt.label))
			b.WriteString("\n")
		}
	}

	// Help
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("← back • → next • ↑↓ select • enter confirm • esc quit"))

	content := containerStyle.Render(b.String())

	if m.width > 0 && m.height > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
	}

	return content
}

func (m model) renderReview() string {
	var b strings.Builder

	lines := []struct {
		label string
		value string
	}{
		{"Language", m.config.Transcription.Language},
		{"Providers", strings.Join(m.config.Transcription.Providers, " → ")},
		{"Chat", m.config.Chat.Backend},
		{"Workers", strconv.Itoa(m.config.Pipeline.Workers)},
	}

	for _, line := range lines {
		b.WriteString(labelStyle.Render(line.label + ":"))
		b.WriteString(valueStyle.Render(line.value))
		b.WriteString("\n")
	}

	return b.String()
}

// RunSetupWizard runs an interactive TUI wizard to configure mediascribe.
// The current config (or defaults) seeds the initial selections.
func RunSetupWizard() (*Config, error) {
	cfg := LoadOrDefault()

	m := initialModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	result := finalModel.(model)
	if result.cancelled {
		return nil, fmt.Errorf("configuration cancelled")
	}

	result.config.normalize()
	return result.config, nil
}
