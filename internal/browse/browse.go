// Package browse renders an aggregated posting list as an interactive
// terminal browser: a filterable list with a detail view per posting.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abhigl/jobscout/internal/model"
)

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(14)

	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

// postingItem adapts a JobPosting to the bubbles list item interface.
type postingItem struct {
	posting model.JobPosting
}

func (i postingItem) Title() string {
	return i.posting.Company + " — " + i.posting.Title
}

func (i postingItem) Description() string {
	parts := []string{i.posting.Location}
	if len(i.posting.TechStack) > 0 {
		parts = append(parts, strings.Join(i.posting.TechStack, ", "))
	}
	return strings.Join(parts, " · ")
}

func (i postingItem) FilterValue() string {
	return i.posting.Title + " " + i.posting.Company + " " + strings.Join(i.posting.TechStack, " ")
}

type browseModel struct {
	list     list.Model
	view     viewState
	selected model.JobPosting
	width    int
	height   int
}

func newBrowseModel(postings []model.JobPosting) browseModel {
	items := make([]list.Item, 0, len(postings))
	for _, p := range postings {
		items = append(items, postingItem{posting: p})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("jobscout — %d postings", len(postings))
	l.SetStatusBarItemName("posting", "postings")

	return browseModel{list: l}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		frameW, frameH := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-frameW, msg.Height-frameH)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case viewList:
			// Don't intercept keys while the list's filter input is active.
			if m.list.FilterState() == list.Filtering {
				break
			}
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "enter":
				if item, ok := m.list.SelectedItem().(postingItem); ok {
					m.selected = item.posting
					m.view = viewDetail
				}
				return m, nil
			}
		case viewDetail:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc", "backspace":
				m.view = viewList
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	if m.view == viewDetail {
		return appStyle.Render(m.detailView())
	}
	return appStyle.Render(m.list.View())
}

func (m browseModel) detailView() string {
	p := m.selected

	var b strings.Builder
	b.WriteString(detailTitleStyle.Render(p.Title))
	b.WriteByte('\n')

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(value)
		b.WriteByte('\n')
	}
	row("Company", p.Company)
	row("Source", p.Source)
	row("Location", p.Location)
	row("Tech stack", strings.Join(p.TechStack, ", "))
	row("Job ID", p.JobID)
	row("URL", p.URL)
	if p.DescriptionSnippet != "" && p.DescriptionSnippet != p.Title {
		b.WriteByte('\n')
		b.WriteString(p.DescriptionSnippet)
		b.WriteByte('\n')
	}

	box := detailBoxStyle
	if m.width > 0 {
		box = box.Width(min(m.width-6, 100))
	}
	return box.Render(b.String()) + "\n" + hintStyle.Render("esc: back · q: quit")
}

// Run opens the browser over the given postings and blocks until the user
// quits.
func Run(postings []model.JobPosting) error {
	p := tea.NewProgram(newBrowseModel(postings), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
