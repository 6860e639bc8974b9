package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/isekai-sim/pkg/hero"
	"github.com/jwebster45206/isekai-sim/pkg/script"
	"github.com/jwebster45206/isekai-sim/pkg/session"
)

const (
	placeholderName   = "Digite seu nome..."
	placeholderChoice = "Digite o número da opção..."
	placeholderDone   = "Pressione Enter para encerrar..."
)

// GameUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type GameUI struct {
	sess          *session.Session
	storyViewport viewport.Model
	metaViewport  viewport.Model
	input         textinput.Model
	ready         bool
	width         int
	height        int
	warn          string
	selected      int    // highlighted option index, 0-based
	accent        string // world accent color, once chosen
	copied        bool

	// Quit confirmation state
	showQuitModal bool

	// Set when the player confirms the epilogue; main prints it to stdout.
	completed bool
}

var (
	storyPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")) // light grey

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	selectedOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewGameUI(sess *session.Session) GameUI {
	ti := textinput.New()
	ti.Placeholder = placeholderName
	ti.Focus()
	ti.Prompt = promptStyle.Render(":: ")
	ti.CharLimit = 64
	ti.Width = 50

	storyVp := viewport.New(50, 20)
	storyVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return GameUI{
		sess:          sess,
		input:         ti,
		storyViewport: storyVp,
		metaViewport:  metaVp,
	}
}

func (m GameUI) Init() tea.Cmd {
	return textinput.Blink
}

func (m GameUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		// Mouse events only scroll the story viewport
		m.storyViewport, vpCmd = m.storyViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		storyWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - storyWidth - 6

		m.storyViewport.Width = storyWidth - 2
		m.storyViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.input.Width = storyWidth - 8

		m.ready = true
		m.writeStoryContent()
		m.writeMetadata()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil

		case tea.KeyCtrlY:
			if m.sess.Phase() == session.PhaseDone {
				if err := clipboard.WriteAll(m.sess.Epilogue()); err == nil {
					m.copied = true
					m.writeStoryContent()
				}
			}
			return m, nil

		case tea.KeyUp, tea.KeyDown:
			if stage, ok := m.sess.CurrentStage(); ok && m.input.Value() == "" {
				if msg.Type == tea.KeyUp && m.selected > 0 {
					m.selected--
				}
				if msg.Type == tea.KeyDown && m.selected < len(stage.Options)-1 {
					m.selected++
				}
				m.writeStoryContent()
				return m, nil
			}

		case tea.KeyEnter:
			return m.handleSubmit()
		}
	}

	m.input, tiCmd = m.input.Update(msg)
	m.storyViewport, vpCmd = m.storyViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// handleSubmit routes an Enter press to the session according to its phase.
// Invalid input never advances the story; the warning line re-prompts.
func (m GameUI) handleSubmit() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	raw := strings.TrimSpace(m.input.Value())

	switch m.sess.Phase() {
	case session.PhaseName:
		if err := m.sess.SetName(ctx, raw); err != nil {
			m.warn = m.sess.Script().NameAdmonition
		} else {
			m.warn = ""
			m.selected = 0
			m.input.Placeholder = placeholderChoice
		}

	case session.PhaseChoice:
		input := raw
		if input == "" {
			// Empty input picks the highlighted option
			input = strconv.Itoa(m.selected + 1)
		}
		if err := m.sess.Choose(ctx, input); err != nil {
			if errors.Is(err, session.ErrInvalidSelection) {
				m.warn = m.sess.Script().InvalidChoice
			} else {
				m.warn = err.Error()
			}
		} else {
			m.warn = ""
			m.selected = 0
			if m.accent == "" {
				m.accent = m.worldAccent()
			}
			if m.sess.Phase() == session.PhaseDone {
				m.input.Placeholder = placeholderDone
			}
		}

	case session.PhaseDone:
		m.completed = true
		return m, tea.Quit
	}

	m.input.Reset()
	m.writeStoryContent()
	m.writeMetadata()
	return m, nil
}

// worldAccent looks up the accent color of the chosen world option.
func (m GameUI) worldAccent() string {
	world := m.sess.Hero().Spec.World
	if world == "" {
		return ""
	}
	for _, stage := range m.sess.Script().Stages {
		if stage.Slot != script.SlotWorld {
			continue
		}
		for _, opt := range stage.Options {
			if opt.Label == world {
				return opt.AccentColor
			}
		}
	}
	return ""
}

func (m GameUI) titleStyle() lipgloss.Style {
	if m.accent != "" {
		return titleStyle.Foreground(lipgloss.Color(m.accent))
	}
	return titleStyle
}

// optionLine formats one option the way the original presented choices:
// label, description, and the attribute deltas it carries.
func optionLine(opt script.Option) string {
	var sb strings.Builder
	sb.WriteString(opt.Label)
	if opt.Description != "" {
		sb.WriteString(" — " + opt.Description)
	}
	if len(opt.Deltas) > 0 {
		parts := make([]string, 0, len(opt.Deltas))
		for _, name := range hero.Attributes {
			if delta, ok := opt.Deltas[name]; ok {
				parts = append(parts, fmt.Sprintf("%s: %+d", name, delta))
			}
		}
		sb.WriteString(" (" + strings.Join(parts, ", ") + ")")
	}
	return sb.String()
}

func (m *GameUI) writeStoryContent() {
	storyWidth := m.storyViewport.Width - 6
	if storyWidth < 20 {
		storyWidth = 20
	}

	var content strings.Builder
	content.WriteString(m.titleStyle().Render(m.sess.Script().Banner) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", storyWidth)) + "\n\n")

	for _, entry := range m.sess.Transcript() {
		switch entry.Role {
		case session.RoleNarrator:
			content.WriteString(narratorStyle.Render(wordwrap.String(entry.Content, storyWidth)) + "\n\n")
		case session.RolePlayer:
			content.WriteString(playerStyle.Render("Você: ") + wordwrap.String(entry.Content, storyWidth-6) + "\n\n")
		case session.RoleSystem:
			content.WriteString(systemStyle.Render(wordwrap.String(entry.Content, storyWidth)) + "\n\n")
		}
	}

	if stage, ok := m.sess.CurrentStage(); ok {
		for i, opt := range stage.Options {
			line := fmt.Sprintf("%d. %s", i+1, optionLine(opt))
			if i == m.selected {
				content.WriteString(selectedOptionStyle.Render("▶ "+line) + "\n")
			} else {
				content.WriteString(optionStyle.Render("  "+line) + "\n")
			}
		}
		content.WriteString("\n" + promptStyle.Render(m.sess.Script().ChoicePrompt) + "\n")
	}

	if m.sess.Phase() == session.PhaseDone {
		hint := "Pressione Enter para encerrar • Ctrl+Y copia o epílogo"
		if m.copied {
			hint = "Epílogo copiado! Pressione Enter para encerrar"
		}
		content.WriteString(promptStyle.Render(hint) + "\n")
	}

	if m.warn != "" {
		content.WriteString("\n" + warnStyle.Render(m.warn) + "\n")
	}

	m.storyViewport.SetContent(content.String())
	m.storyViewport.GotoBottom()
}

func (m *GameUI) writeMetadata() {
	h := m.sess.Hero()
	var content strings.Builder
	content.WriteString(m.titleStyle().Render("HERÓI") + "\n\n")

	content.WriteString("Sessão:\n")
	content.WriteString(m.sess.ID().String()[:8] + "...\n\n")

	if h.Spec.Name != "" {
		content.WriteString("Nome: " + h.Spec.Name + "\n")
	}
	if h.Spec.World != "" {
		content.WriteString("Mundo: " + h.Spec.World + "\n")
	}
	if h.Spec.Origin != "" {
		content.WriteString("Origem: " + h.Spec.Origin + "\n")
	}
	if h.Spec.Power != "" {
		content.WriteString("Bênção: " + h.Spec.Power + "\n")
	}
	if h.Spec.Legacy != "" {
		content.WriteString("Legado: " + h.Spec.Legacy + "\n")
	}
	content.WriteString("\n")

	content.WriteString("Atributos:\n")
	for _, name := range hero.Attributes {
		content.WriteString(fmt.Sprintf("• %s: %d\n", name, h.Attribute(name)))
	}
	content.WriteString("\n")

	content.WriteString(fmt.Sprintf("Vitalidade: %d/%d\n", h.Actor.HP(), h.Actor.MaxHP()))
	content.WriteString(fmt.Sprintf("Guarda: %d\n", h.Actor.AC()))
	content.WriteString(fmt.Sprintf("Glórias: %d\n", m.sess.Glory()))
	content.WriteString(fmt.Sprintf("Cicatrizes: %d\n\n", m.sess.Scars()))

	if len(h.Spec.Blessings) > 0 {
		content.WriteString("Bênçãos de Gem:\n")
		for name, value := range h.Spec.Blessings {
			content.WriteString(fmt.Sprintf("• %s: %+d\n", name, value))
		}
		content.WriteString("\n")
	}

	if len(h.Spec.Flags) > 0 {
		content.WriteString("Marcas da jornada:\n")
		for _, flag := range h.Spec.Flags {
			content.WriteString("• " + flag + "\n")
		}
		content.WriteString("\n")
	}

	content.WriteString("Comandos:\n")
	content.WriteString("• Enter: Confirmar\n")
	content.WriteString("• ↑/↓: Destacar opção\n")
	content.WriteString("• Ctrl+Y: Copiar epílogo\n")
	content.WriteString("• Ctrl+C: Sair\n")

	m.metaViewport.SetContent(content.String())
}

func (m GameUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.input.Focus()
				return m, textinput.Blink
			}
		}
	}

	return m, nil
}

func (m GameUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Carregando..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Abandonar a jornada?"))
	content.WriteString("\n\n")
	content.WriteString("Gem ainda aguarda o fim da sua história.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Pressione Y para sair, N para continuar"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Inicializando..."
	}

	storyWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - storyWidth - 6

	storyPanel := storyPanelStyle.Width(storyWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.storyViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", storyWidth-4)),
			m.input.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, storyPanel, metaPanel)
}
