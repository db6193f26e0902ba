package tui

import (
	"github.com/charmbracelet/lipgloss"

	"keypad-calculator/internal/calculator"
)

// keypad is the button grid. A label repeated in adjacent cells is one wide
// button.
var keypad = [][gridColumns]string{
	{"clr", "DEL", "DEL", string(calculator.OpDivide)},
	{"7", "8", "9", string(calculator.OpMultiply)},
	{"4", "5", "6", string(calculator.OpSubtract)},
	{"1", "2", "3", string(calculator.OpAdd)},
	{".", "0", "=", "="},
}

// cursor addresses the first cell of the highlighted button.
type cursor struct {
	row, col int
}

func (c cursor) label() string { return keypad[c.row][c.col] }

// spanStart moves col to the first cell of the button under it.
func (c cursor) spanStart() cursor {
	for c.col > 0 && keypad[c.row][c.col-1] == keypad[c.row][c.col] {
		c.col--
	}
	return c
}

func (c cursor) right() cursor {
	for i := c.col + 1; i < gridColumns; i++ {
		if keypad[c.row][i] != c.label() {
			c.col = i
			return c
		}
	}
	return c
}

func (c cursor) left() cursor {
	if c.col == 0 {
		return c
	}
	c.col--
	return c.spanStart()
}

func (c cursor) up() cursor {
	if c.row == 0 {
		return c
	}
	c.row--
	return c.spanStart()
}

func (c cursor) down() cursor {
	if c.row == len(keypad)-1 {
		return c
	}
	c.row++
	return c.spanStart()
}

func renderKeypad(sel cursor) string {
	rows := make([]string, 0, len(keypad))
	for r, cells := range keypad {
		var buttons []string
		for c := 0; c < gridColumns; {
			label := cells[c]
			span := 1
			for c+span < gridColumns && cells[c+span] == label {
				span++
			}
			buttons = append(buttons, renderButton(label, span, sel == cursor{row: r, col: c}))
			c += span
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderButton(label string, span int, selected bool) string {
	style := buttonStyle
	if _, ok := calculator.ParseOperation(label); ok || label == "=" {
		style = operationButtonStyle
	}
	if selected {
		style = selectedButtonStyle
	}
	// merged buttons also absorb the borders between them
	width := span*buttonWidth + (span-1)*2
	return style.Width(width).Render(label)
}
