package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"keypad-calculator/internal/calculator"
)

// App is the keypad shell: it owns one calculator session, moves a highlight
// over the keypad and dispatches the highlighted button.
type App struct {
	session *calculator.Session
	logger  *zap.Logger
	keys    keyMap
	help    help.Model
	cursor  cursor
}

func New(session *calculator.Session, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		session: session,
		logger:  logger,
		keys:    newKeyMap(),
		help:    help.New(),
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.help.Width = m.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(m, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(m, a.keys.Up):
			a.cursor = a.cursor.up()
		case key.Matches(m, a.keys.Down):
			a.cursor = a.cursor.down()
		case key.Matches(m, a.keys.Left):
			a.cursor = a.cursor.left()
		case key.Matches(m, a.keys.Right):
			a.cursor = a.cursor.right()
		case key.Matches(m, a.keys.Press):
			a.press(a.cursor.label())
		}
	}
	return a, nil
}

func (a *App) press(label string) {
	action, err := calculator.ParseKey(label)
	if err != nil {
		a.logger.Error("keypad label not recognised", zap.String("key", label), zap.Error(err))
		return
	}
	state := a.session.Dispatch(action)
	a.logger.Debug("key pressed",
		zap.String("session", a.session.ID),
		zap.Stringer("action", action),
		zap.String("current", state.Current.String()),
		zap.String("previous", state.Previous.String()),
		zap.String("operation", string(state.Op)),
	)
}

// Selected returns the label of the highlighted button.
func (a *App) Selected() string { return a.cursor.label() }

func (a *App) View() string {
	d := a.session.Display()
	readout := lipgloss.JoinVertical(lipgloss.Right,
		previousStyle.Render(orBlank(d.PreviousLine())),
		currentStyle.Render(orBlank(d.Current)),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		displayStyle.Render(readout),
		renderKeypad(a.cursor),
		helpStyle.Render(a.help.View(a.keys)),
	)
}

// orBlank keeps empty readout lines one row tall.
func orBlank(s string) string {
	if s == "" {
		return " "
	}
	return s
}
