package cmd

import (
	"fmt"
	"strings"

	"github.com/brooksandrew/catan-spectator/internal/game"
	"github.com/brooksandrew/catan-spectator/internal/session"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#B7410E")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	stateBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#D2691E")).
			Padding(1, 2)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	autocompleteStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F25D94"))
)

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

// baseCommands seed the autocomplete; color-prefixed forms are generated
// from the roster at runtime.
var baseCommands = []string{
	"start", "roll ", "build settlement ", "build city ", "build road ",
	"discard ", "robber ", "steal ", "steal none", "trade ", "buy",
	"play knight", "play monopoly ", "play plenty ", "play roads ",
	"play point", "end turn", "end game", "undo", "redo", "exit", "quit",
}

type spectatorModel struct {
	app         *session.Session
	textInput   textinput.Model
	viewport    viewport.Model
	suggestions list.Model
	history     []string
	historyIdx  int
	logContent  string
	width       int
	height      int
	gameName    string
	showList    bool
}

func newSpectatorModel(app *session.Session, gameName string) spectatorModel {
	ti := textinput.New()
	ti.Placeholder = "Enter action (e.g., build settlement 23)..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	vp := viewport.New(0, 0)
	welcome := "Welcome to catan-spectator!\nType 'start' to begin logging, 'exit' to quit."
	vp.SetContent(welcome)

	// Configure a minimalist list for autocomplete
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	sugList := list.New([]list.Item{}, delegate, 50, 7)
	sugList.SetShowTitle(false)
	sugList.SetShowStatusBar(false)
	sugList.SetFilteringEnabled(false) // We filter manually
	sugList.SetShowHelp(false)

	return spectatorModel{
		app:         app,
		textInput:   ti,
		viewport:    vp,
		suggestions: sugList,
		history:     []string{},
		historyIdx:  -1,
		logContent:  welcome,
		gameName:    gameName,
	}
}

func (m *spectatorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *spectatorModel) updateSuggestions() {
	val := m.textInput.Value()
	var items []list.Item

	defer func() {
		m.suggestions.SetItems(items)
		m.showList = len(items) > 0
		if m.showList {
			h := len(items)
			if h > 10 {
				h = 10
			}
			listHeight := h
			if listHeight > 0 && listHeight < 4 {
				listHeight = 4
			}
			m.suggestions.SetHeight(listHeight)
			m.suggestions.ResetSelected()
		}
	}()

	if val == "" {
		return
	}

	// Every command may be prefixed with the acting player's color.
	cmds := append([]string{}, baseCommands...)
	for _, p := range m.app.Game().Players() {
		for _, c := range baseCommands {
			if c == "exit" || c == "quit" || c == "undo" || c == "redo" || c == "start" {
				continue
			}
			cmds = append(cmds, p.Color+" "+c)
		}
	}

	for _, c := range cmds {
		if strings.HasPrefix(strings.ToLower(c), strings.ToLower(val)) && len(val) < len(c) {
			items = append(items, suggestion(c))
		}
	}

	// Color completion for steal victims and trade partners.
	for _, marker := range []string{"steal ", "with "} {
		idx := strings.LastIndex(strings.ToLower(val), marker)
		if idx < 0 {
			continue
		}
		prefix := strings.ToLower(val[idx+len(marker):])
		baseStr := val[:idx+len(marker)]
		for _, p := range m.app.Game().Players() {
			if strings.HasPrefix(p.Color, prefix) && prefix != p.Color {
				items = append(items, suggestion(baseStr+p.Color))
			}
		}
	}
}

func (m *spectatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		lsCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyUp:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else {
				if len(m.history) > 0 {
					if m.historyIdx == -1 {
						m.historyIdx = len(m.history) - 1
					} else if m.historyIdx > 0 {
						m.historyIdx--
					}
					m.textInput.SetValue(m.history[m.historyIdx])
					m.updateSuggestions()
				}
			}

		case tea.KeyDown:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else {
				if len(m.history) > 0 && m.historyIdx != -1 {
					if m.historyIdx < len(m.history)-1 {
						m.historyIdx++
						m.textInput.SetValue(m.history[m.historyIdx])
					} else {
						m.historyIdx = -1
						m.textInput.SetValue("")
					}
					m.updateSuggestions()
				}
			}

		case tea.KeyTab:
			if m.showList {
				if i, ok := m.suggestions.SelectedItem().(suggestion); ok {
					m.textInput.SetValue(string(i))
					m.textInput.SetCursor(len(string(i)))
					m.updateSuggestions()
				}
			}

		case tea.KeyEnter:
			val := strings.TrimSpace(m.textInput.Value())
			if val == "exit" || val == "quit" {
				return m, tea.Quit
			}

			if val != "" {
				// Prevent duplicate history entries
				if len(m.history) == 0 || m.history[len(m.history)-1] != val {
					m.history = append(m.history, val)
				}
				m.historyIdx = -1
				m.textInput.SetValue("")
				m.updateSuggestions()

				m.logContent += fmt.Sprintf("\n\n> %s\n", val)
				out, err := m.app.Execute(val)
				if err != nil {
					m.logContent += fmt.Sprintf("Error: %v", err)
				} else if out != "" {
					m.logContent += out + "\n"
				}

				m.viewport.SetContent(m.logContent)
				m.viewport.GotoBottom()
			}
		default:
			// Normal typing
			m.textInput, tiCmd = m.textInput.Update(msg)
			m.updateSuggestions()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 30 // Initial conservative estimate
		if m.viewport.Height < 5 {
			m.viewport.Height = 5
		}
		m.suggestions.SetWidth(msg.Width - 6)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	// Calculate accurate heights for dynamic components
	titleH := lipgloss.Height(titleStyle.Render("Dummy"))
	stateH := lipgloss.Height(m.renderState())
	inputH := 1

	listAreaHeight := 0
	if m.showList {
		listAreaHeight = m.suggestions.Height() + 2 // +2 for autocompleteStyle borders
	}

	infoH := lipgloss.Height(infoStyle.Render("Dummy"))
	paddingH := 7

	// Total fixed overhead: title + state + input + listArea + info + padding + spacing
	overhead := titleH + stateH + inputH + listAreaHeight + infoH + paddingH + 4

	m.viewport.Height = m.height - overhead
	if m.viewport.Height < 4 {
		m.viewport.Height = 4
	}

	return m, tea.Batch(tiCmd, vpCmd, lsCmd)
}

func (m *spectatorModel) renderState() string {
	g := m.app.Game()
	stateView := "=== Game State ===\n\n"

	switch g.Phase() {
	case game.PhaseNotStarted:
		stateView += "Not started. Type 'start' when placement begins.\n"
	case game.PhaseGameOver:
		stateView += "Game over.\n"
	default:
		stateView += fmt.Sprintf("Turn %d | %s | %s to act", g.Turn(), g.Phase(), g.CurrentPlayer().Color)
		if g.LastRoll() > 0 {
			stateView += fmt.Sprintf(" | last roll %d", g.LastRoll())
		}
		stateView += fmt.Sprintf(" | robber on %d\n", g.Board().Robber())
	}

	if pending := g.PendingDiscards(); len(pending) > 0 {
		var parts []string
		for _, p := range g.Players() {
			if n, ok := pending[p.Seat]; ok {
				parts = append(parts, fmt.Sprintf("%s owes %d", p.Color, n))
			}
		}
		stateView += "Discards pending: " + strings.Join(parts, ", ") + "\n"
	}

	stateView += "\n"
	for _, p := range g.Players() {
		hand := g.HandOf(p.Seat)
		stateView += fmt.Sprintf(" - %s (%s): %d points, %d cards %s\n",
			p.Color, p.Name, g.VictoryPoints(p.Seat), hand.Total(), hand)
	}

	return stateBoxStyle.Width(m.width - 4).Render(stateView)
}

func (m *spectatorModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf(" catan-spectator | %s ", m.gameName))
	stateBox := m.renderState()
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	var inputArea string
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", m.textInput.View(), autocompleteStyle.Render(m.suggestions.View()))
	} else {
		inputArea = m.textInput.View()
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		title,
		stateBox,
		logBox,
		"\n",
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete, up/down history)"),
	)

	return mainView + strings.Repeat("\n", 7)
}

func RunTUI(app *session.Session, gameName string) error {
	m := newSpectatorModel(app, gameName)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
