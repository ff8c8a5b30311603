// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/tmdbkit/tmdb"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected an item.
	ActionSelected
	// ActionSkipped indicates the user skipped the selection.
	ActionSkipped
	// ActionStopped indicates the user stopped processing entirely.
	ActionStopped
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *tmdb.Resource
}

// summary is the flattened view of a resource the list renders.
type summary struct {
	kind        string
	name        string
	year        int
	overview    string
	language    string
	runtime     int
	voteAverage float64
	voteCount   int
	popularity  float64
	rated       bool
}

func summarize(r tmdb.Resource) summary {
	s := summary{kind: string(r.MediaType), name: r.Title(), year: r.Year()}
	switch {
	case r.Movie != nil:
		m := r.Movie
		s.overview, s.language, s.runtime = m.Overview, m.OriginalLanguage, m.Runtime
		s.voteAverage, s.voteCount, s.popularity, s.rated = m.VoteAverage, m.VoteCount, m.Popularity, true
	case r.Show != nil:
		sh := r.Show
		s.overview, s.language = sh.Overview, sh.OriginalLanguage
		if len(sh.EpisodeRuntimes) > 0 {
			s.runtime = sh.EpisodeRuntimes[0]
		}
		s.voteAverage, s.voteCount, s.popularity, s.rated = sh.VoteAverage, sh.VoteCount, sh.Popularity, true
	case r.Person != nil:
		p := r.Person
		s.overview, s.popularity = p.Department, p.Popularity
		if len(p.KnownFor) > 0 {
			titles := make([]string, 0, len(p.KnownFor))
			for _, k := range p.KnownFor {
				if t := k.Title(); t != "" {
					titles = append(titles, t)
				}
			}
			s.overview = strings.TrimSpace(s.overview + " " + strings.Join(titles, ", "))
		}
	case r.Season != nil:
		s.overview = r.Season.Overview
	case r.Episode != nil:
		e := r.Episode
		s.overview = e.Overview
		s.voteAverage, s.voteCount, s.rated = e.VoteAverage, e.VoteCount, true
	}
	return s
}

func (s summary) yearLabel() string {
	if s.year == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", s.year)
}

type resourceItem struct {
	resource tmdb.Resource
	summary
}

func (i resourceItem) Title() string {
	return fmt.Sprintf("%s (%s)", strings.ToUpper(i.name), i.yearLabel())
}

func (i resourceItem) FilterValue() string {
	return i.name
}

func (i resourceItem) Description() string {
	return i.overview
}

type itemStyles struct {
	normal        lipgloss.Style
	selected      lipgloss.Style
	typeStyle     lipgloss.Style
	titleStyle    lipgloss.Style
	ratingStyle   lipgloss.Style
	metadataStyle lipgloss.Style
	overviewStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:        container,
		selected:      selected,
		typeStyle:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110")),
		titleStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("254")),
		ratingStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		metadataStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("247")).Faint(true),
		overviewStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("248")),
	}
}

type resourceDelegate struct {
	styles itemStyles
}

func (d resourceDelegate) Height() int                         { return 5 }
func (d resourceDelegate) Spacing() int                        { return 1 }
func (d resourceDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d resourceDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	it, ok := item.(resourceItem)
	if !ok {
		return
	}

	rating := "unrated"
	if it.rated {
		rating = fmt.Sprintf("%.1f/10", it.voteAverage)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		d.styles.typeStyle.Render(fmt.Sprintf("[%s]", strings.ToUpper(it.kind))),
		d.styles.metadataStyle.Render(formatMetadata(it.summary, m.Width()-4)),
		d.styles.titleStyle.Render(it.Title()),
		d.styles.ratingStyle.Render(rating),
		d.styles.overviewStyle.Render(truncate(it.overview, m.Width()-4)),
	)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	list   list.Model
	query  string
	result SelectionResult
}

func newModel(query string, items []resourceItem) *model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, resourceDelegate{styles: newItemStyles()}, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:   l,
		query:  query,
		result: SelectionResult{Action: ActionNone},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(resourceItem); ok {
				res := selected.resource
				m.result = SelectionResult{Action: ActionSelected, Selection: &res}
				return m, tea.Quit
			}
		case "s", "esc":
			m.result = SelectionResult{Action: ActionSkipped}
			return m, tea.Quit
		case "ctrl+c", "q":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(fmt.Sprintf("Results for: %s", m.query))
	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		skipButtonStyle.Render(" Skip "),
		lipgloss.NewStyle().Padding(0, 2).Render(""),
		stopButtonStyle.Render(" Stop "),
	)
	help := helpStyle.Render("Up/Down navigate | Enter select | s skip | q stop")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), buttons, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	skipButtonStyle = lipgloss.NewStyle().
			MarginTop(1).
			Padding(0, 2).
			Background(lipgloss.Color("178")).
			Foreground(lipgloss.Color("0")).
			Bold(true)

	stopButtonStyle = lipgloss.NewStyle().
			MarginTop(1).
			Padding(0, 2).
			Background(lipgloss.Color("161")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// Candidates drops rated resources with fewer than minVotes votes and
// resources the UI cannot show. People, seasons and unknown kinds with a
// known shape are kept regardless of votes.
func Candidates(results []tmdb.Resource, minVotes int) []tmdb.Resource {
	out := make([]tmdb.Resource, 0, len(results))
	for _, r := range results {
		if r.Value() == nil {
			continue
		}
		if s := summarize(r); s.rated && s.voteCount < minVotes {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Select presents an interactive picker for search results. When nothing
// passes the vote threshold the selection is skipped without showing a UI.
func Select(query string, results []tmdb.Resource, minVotes int) (SelectionResult, error) {
	candidates := Candidates(results, minVotes)
	if len(candidates) == 0 {
		return SelectionResult{Action: ActionSkipped}, nil
	}

	items := make([]resourceItem, len(candidates))
	for i, r := range candidates {
		items[i] = resourceItem{resource: r, summary: summarize(r)}
	}

	finalModel, err := runProgram(newModel(query, items))
	if err != nil {
		return SelectionResult{}, err
	}
	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}
	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

// formatMetadata renders runtime, language, votes and popularity on one line.
func formatMetadata(s summary, availableWidth int) string {
	var parts []string
	if s.runtime > 0 {
		parts = append(parts, fmt.Sprintf("%dm", s.runtime))
	}
	if s.language != "" {
		parts = append(parts, strings.ToUpper(s.language))
	}
	if s.voteCount > 0 {
		parts = append(parts, formatVoteCount(s.voteCount))
	}
	if s.popularity > 0 {
		parts = append(parts, fmt.Sprintf("pop %.1f", s.popularity))
	}

	if len(parts) == 0 {
		return "No metadata available"
	}

	metadata := strings.Join(parts, " | ")
	if availableWidth > 0 && len(metadata) > availableWidth {
		metadata = truncate(metadata, availableWidth)
	}
	return metadata
}

func formatVoteCount(count int) string {
	if count >= 1000 {
		return fmt.Sprintf("%.1fK votes", float64(count)/1000)
	}
	return fmt.Sprintf("%d votes", count)
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
