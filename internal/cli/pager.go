package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradpath/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// pagerModel scrolls a rendered report. q, esc, or ctrl+c quits.
type pagerModel struct {
	title   string
	content string
	vp      viewport.Model
	ready   bool
}

func newPagerModel(title, content string) pagerModel {
	return pagerModel{title: title, content: content}
}

func (m pagerModel) Init() tea.Cmd { return nil }

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		height := max(msg.Height-2, 1)
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.vp.KeyMap = pagerKeyMap()
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	if !m.ready {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n%s", formatter.StyleHeader.Render(strings.ToUpper(m.title)), m.vp.View(), m.footer())
}

func (m pagerModel) footer() string {
	return formatter.Dim("↑/↓ scroll · q quit ") + scrollIndicator(m.vp)
}

func pagerKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ", "f")),
		PageUp:       key.NewBinding(key.WithKeys("pgup", "b")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u", "u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d", "d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

// scrollIndicator returns a dim scroll position string.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}

// runPager shows content full screen until the user quits.
func runPager(title, content string) error {
	p := tea.NewProgram(newPagerModel(title, content), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("pager: %w", err)
	}
	return nil
}
