package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuChoice is an entry of the title menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceStart
	ChoiceRecords
	ChoiceQuit
)

var menuItems = []struct {
	choice MenuChoice
	label  string
}{
	{ChoiceStart, "Start"},
	{ChoiceRecords, "Records"},
	{ChoiceQuit, "Quit"},
}

const titleArt = `
 ____  _             _ _   _
/ ___|| |_ ___  __ _| | |_| |__
\___ \| __/ _ \/ _' | | __| '_ \
 ___) | ||  __/ (_| | | |_| | | |
|____/ \__\___|\__,_|_|\__|_| |_|
`

// MenuModel is the title screen.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	best      string
	keyMapper *KeyMapper
	selected  MenuChoice
}

// NewMenuModel creates the title menu. best is shown under the title when
// not empty.
func NewMenuModel(width, height int, best string) MenuModel {
	return MenuModel{
		width:     width,
		height:    height,
		best:      best,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.selected = ChoiceQuit
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			m.selected = menuItems[m.cursor].choice
		}
		if msg.String() == "tab" {
			m.selected = ChoiceRecords
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	art := strings.Split(strings.Trim(titleArt, "\n"), "\n")
	artWidth := 0
	for _, line := range art {
		artWidth = max(artWidth, len(line))
	}
	for _, line := range art {
		line += strings.Repeat(" ", artWidth-len(line))
		b.WriteString(centerText(titleStyle.Render(line), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText("Reach the goal. Don't get caught.", m.width))
	b.WriteString("\n")
	if m.best != "" {
		b.WriteString(centerText("Best Record: "+m.best, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	for i, item := range menuItems {
		line := "  " + item.label + "  "
		if i == m.cursor {
			line = selectedStyle.Render("> " + item.label + " <")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Records  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or ChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}
