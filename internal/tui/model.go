package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/gemini-cli/internal/app"
	"github.com/glabrego/gemini-cli/internal/gemini"
	pagerender "github.com/glabrego/gemini-cli/internal/render/page"
	"github.com/glabrego/gemini-cli/internal/session"
	tuiactions "github.com/glabrego/gemini-cli/internal/tui/actions"
	tuiplatform "github.com/glabrego/gemini-cli/internal/tui/platform"
	tuistate "github.com/glabrego/gemini-cli/internal/tui/state"
	tuitheme "github.com/glabrego/gemini-cli/internal/tui/theme"
	tuitree "github.com/glabrego/gemini-cli/internal/tui/tree"
	tuiview "github.com/glabrego/gemini-cli/internal/tui/view"
)

type Service interface {
	tuiactions.Service
	Page() *session.Page
	State() session.State
	CanBack() bool
	CanForward() bool
	OutlineTarget(i int) (float64, bool)
}

// StatusMsg shows a transient status line. It is sent from outside the
// update loop, for example when an external link was copied instead of
// opened.
type StatusMsg struct {
	Text string
}

type clearStatusMsg struct {
	id int
}

type focus int

const (
	focusPage focus = iota
	focusNavigator
	focusAddress
	focusPrompt
)

const (
	pageMargin      = 1
	minNavigatorW   = 60
	maxNavigatorCol = 36
)

type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	service Service
	bridge  *PromptBridge

	keys     keyMap
	help     help.Model
	theme    tuitheme.Theme
	viewport viewport.Model
	address  textinput.Model
	prompt   textinput.Model
	pending  *promptRequestMsg

	focus     focus
	prevFocus focus

	rows       []tuitree.Row
	treeCursor int
	collapsed  map[string]bool
	lines      []string

	numberLinks bool
	showOutline bool
	homepage    string

	startURL  string
	showHelp  bool
	width     int
	height    int
	loading   bool
	status    string
	statusID  int
	err       error
	copyURLFn func(string) error
}

// NewModel builds the browser model. startURL is opened on Init; when it is
// empty the homepage is loaded instead.
func NewModel(service Service, bridge *PromptBridge, startURL string) Model {
	ctx, cancel := context.WithCancel(context.Background())

	address := textinput.New()
	address.Placeholder = "gemini://"
	address.Prompt = "⟫ "
	address.CharLimit = 1024

	prompt := textinput.New()
	prompt.Prompt = "› "
	prompt.CharLimit = 1024

	h := help.New()
	h.ShowAll = true

	return Model{
		ctx:         ctx,
		cancel:      cancel,
		service:     service,
		bridge:      bridge,
		keys:        DefaultKeyMap(),
		help:        h,
		theme:       tuitheme.Default(),
		viewport:    viewport.New(80, 20),
		address:     address,
		prompt:      prompt,
		collapsed:   make(map[string]bool),
		showOutline: true,
		startURL:    strings.TrimSpace(startURL),
		loading:     service != nil,
		copyURLFn:   tuiplatform.CopyURLToClipboard,
	}
}

func (m Model) Init() tea.Cmd {
	if m.service == nil {
		return nil
	}
	nav := tuiactions.HomeCmd(m.ctx, m.service)
	if m.startURL != "" {
		nav = tuiactions.OpenCmd(m.ctx, m.service, m.startURL)
	}
	return tea.Batch(m.bridge.wait(), nav)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refreshPage(false)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case promptRequestMsg:
		m.pending = &msg
		m.prevFocus = m.focus
		m.focus = focusPrompt
		m.prompt.Reset()
		m.prompt.EchoMode = textinput.EchoNormal
		if msg.sensitive {
			m.prompt.EchoMode = textinput.EchoPassword
		}
		m.resize()
		return m, m.prompt.Focus()
	case tuiactions.NavigateSuccessMsg:
		m.loading = false
		m.err = nil
		m.refreshPage(msg.Op != "reload")
		m.status = m.navigationStatus(msg.Duration)
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)
	case tuiactions.NavigateErrorMsg:
		if errors.Is(msg.Err, session.ErrBusy) {
			m.status = "Navigation already in progress"
			m.statusID++
			return m, clearStatusCmd(m.statusID, 3*time.Second)
		}
		m.loading = false
		m.status = ""
		m.err = msg.Err
		m.refreshPage(false)
		return m, nil
	case tuiactions.BookmarkSuccessMsg:
		m.err = nil
		m.status = msg.Status
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)
	case tuiactions.BookmarkErrorMsg:
		m.status = ""
		m.err = msg.Err
		return m, nil
	case tuiactions.PreferencesSavedMsg:
		return m, nil
	case tuiactions.PreferencesErrorMsg:
		m.err = msg.Err
		m.status = "Could not persist UI preferences"
		return m, nil
	case tuiactions.CopyURLSuccessMsg:
		m.err = nil
		m.status = msg.Status
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)
	case tuiactions.CopyURLErrorMsg:
		m.status = msg.Err.Error()
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)
	case StatusMsg:
		m.status = msg.Text
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.focus {
	case focusPrompt:
		return m.handlePromptKey(msg)
	case focusAddress:
		return m.handleAddressKey(msg)
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Cancel):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil
	}

	if m.service == nil {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Address):
		m.prevFocus = m.focus
		m.focus = focusAddress
		m.address.SetValue(m.currentURL())
		m.address.CursorEnd()
		return m, m.address.Focus()
	case key.Matches(msg, m.keys.Back):
		return m.startNavigation(tuiactions.BackCmd(m.ctx, m.service))
	case key.Matches(msg, m.keys.Forward):
		return m.startNavigation(tuiactions.ForwardCmd(m.ctx, m.service))
	case key.Matches(msg, m.keys.Reload):
		return m.startNavigation(tuiactions.ReloadCmd(m.ctx, m.service))
	case key.Matches(msg, m.keys.Home):
		return m.startNavigation(tuiactions.HomeCmd(m.ctx, m.service))
	case key.Matches(msg, m.keys.Bookmarks):
		return m.startNavigation(tuiactions.ShowBookmarksCmd(m.ctx, m.service))
	case key.Matches(msg, m.keys.AddBookmark):
		return m, tuiactions.AddBookmarkCmd(m.service)
	case key.Matches(msg, m.keys.RemoveBookmark):
		return m.removeBookmark()
	case key.Matches(msg, m.keys.SetHome):
		return m.setHomepage()
	case key.Matches(msg, m.keys.Copy):
		return m, tuiactions.CopyURLCmd(m.currentURL(), m.copyURLFn)
	case key.Matches(msg, m.keys.ToggleNumbers):
		m.numberLinks = !m.numberLinks
		m.refreshPage(false)
		return m, m.persistPreferences()
	case key.Matches(msg, m.keys.ToggleOutline):
		m.showOutline = !m.showOutline
		m.refreshPage(false)
		return m, m.persistPreferences()
	case key.Matches(msg, m.keys.Tab):
		m.toggleNavigatorFocus()
		return m, nil
	}

	if n, ok := linkShortcut(msg); ok {
		if row := tuistate.RowForLink(m.rows, n); row >= 0 {
			m.treeCursor = row
		}
		return m.startNavigation(tuiactions.FollowLinkCmd(m.ctx, m.service, n))
	}

	if m.focus == focusNavigator {
		return m.handleNavigatorKey(msg)
	}
	return m.handlePageKey(msg)
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m.answerPrompt(m.prompt.Value(), true)
	case key.Matches(msg, m.keys.Cancel):
		return m.answerPrompt("", false)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) answerPrompt(input string, ok bool) (tea.Model, tea.Cmd) {
	if m.pending != nil {
		m.pending.reply <- promptReply{input: input, ok: ok}
	}
	m.pending = nil
	m.prompt.Blur()
	m.prompt.Reset()
	m.focus = m.prevFocus
	m.resize()
	if !ok {
		m.status = "Input cancelled"
		m.statusID++
		return m, tea.Batch(m.bridge.wait(), clearStatusCmd(m.statusID, 3*time.Second))
	}
	return m, m.bridge.wait()
}

func (m Model) handleAddressKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		raw := strings.TrimSpace(m.address.Value())
		m.address.Blur()
		m.focus = m.prevFocus
		if raw == "" {
			return m, nil
		}
		return m.startNavigation(tuiactions.OpenCmd(m.ctx, m.service, raw))
	case key.Matches(msg, m.keys.Cancel):
		m.address.Blur()
		m.focus = m.prevFocus
		return m, nil
	}
	var cmd tea.Cmd
	m.address, cmd = m.address.Update(msg)
	return m, cmd
}

func (m Model) handleNavigatorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.treeCursor = tuistate.NextSelectable(m.rows, m.treeCursor, -1)
	case key.Matches(msg, m.keys.Down):
		m.treeCursor = tuistate.NextSelectable(m.rows, m.treeCursor, 1)
	case key.Matches(msg, m.keys.PageUp):
		m.treeCursor = tuistate.NextSelectable(m.rows, m.treeCursor, -tuistate.PageStep(m.height, m.status != ""))
	case key.Matches(msg, m.keys.PageDown):
		m.treeCursor = tuistate.NextSelectable(m.rows, m.treeCursor, tuistate.PageStep(m.height, m.status != ""))
	case key.Matches(msg, m.keys.Top):
		m.treeCursor = tuitree.FirstSelectableRow(m.rows)
	case key.Matches(msg, m.keys.Bottom):
		m.treeCursor = tuistate.ClampCursor(len(m.rows)-1, len(m.rows))
	case key.Matches(msg, m.keys.Fold):
		m.toggleCurrentSection()
	case key.Matches(msg, m.keys.Select):
		return m.selectCurrentRow()
	}
	return m, nil
}

func (m Model) handlePageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := tuistate.PageStep(m.height, m.status != "")
	switch {
	case key.Matches(msg, m.keys.Up):
		m.viewport.SetYOffset(m.viewport.YOffset - 1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.SetYOffset(m.viewport.YOffset + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - step)
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + step)
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	}
	return m, nil
}

func (m Model) selectCurrentRow() (tea.Model, tea.Cmd) {
	if len(m.rows) == 0 {
		return m, nil
	}
	row := m.rows[tuistate.ClampCursor(m.treeCursor, len(m.rows))]
	switch row.Kind {
	case tuitree.RowSection:
		m.toggleCurrentSection()
		return m, nil
	case tuitree.RowHeading:
		if fraction, ok := m.service.OutlineTarget(row.Index); ok {
			m.viewport.SetYOffset(tuistate.FractionToOffset(fraction, len(m.lines), m.viewport.Height))
		}
		return m, nil
	default:
		return m.startNavigation(tuiactions.FollowLinkCmd(m.ctx, m.service, row.Index))
	}
}

func (m *Model) toggleCurrentSection() {
	if len(m.rows) == 0 {
		return
	}
	row := m.rows[tuistate.ClampCursor(m.treeCursor, len(m.rows))]
	if row.Kind != tuitree.RowSection {
		return
	}
	m.collapsed[row.Label] = !m.collapsed[row.Label]
	m.rebuildRows()
	for i, r := range m.rows {
		if r.Kind == tuitree.RowSection && r.Label == row.Label {
			m.treeCursor = i
			return
		}
	}
}

func (m *Model) toggleNavigatorFocus() {
	if m.focus == focusNavigator || !m.navigatorVisible() {
		m.focus = focusPage
		return
	}
	m.focus = focusNavigator
	if len(m.rows) > 0 && m.rows[tuistate.ClampCursor(m.treeCursor, len(m.rows))].Kind == tuitree.RowSection {
		m.treeCursor = tuitree.FirstSelectableRow(m.rows)
	}
}

func (m Model) startNavigation(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.loading = true
	m.err = nil
	return m, cmd
}

func (m Model) removeBookmark() (tea.Model, tea.Cmd) {
	target := ""
	if page := m.service.Page(); page != nil && page.URL != nil && page.URL.String() == app.BookmarksURL.String() {
		if m.focus != focusNavigator || len(m.rows) == 0 {
			m.status = "Select a bookmark in the navigator to remove it"
			m.statusID++
			return m, clearStatusCmd(m.statusID, 3*time.Second)
		}
		row := m.rows[tuistate.ClampCursor(m.treeCursor, len(m.rows))]
		if row.Kind != tuitree.RowLink {
			return m, nil
		}
		target = row.URL
	}
	remove := tuiactions.RemoveBookmarkCmd(m.service, target)
	if target == "" {
		return m, remove
	}
	// Redraw the bookmarks page once the row is gone.
	return m, tea.Sequence(remove, tuiactions.ShowBookmarksCmd(m.ctx, m.service))
}

func (m Model) setHomepage() (tea.Model, tea.Cmd) {
	page := m.service.Page()
	if page == nil || !gemini.IsGemini(page.URL) {
		m.status = "Only gemini pages can be the homepage"
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)
	}
	m.homepage = page.URL.String()
	m.status = "Homepage set to " + m.homepage
	m.statusID++
	return m, tea.Batch(m.persistPreferences(), clearStatusCmd(m.statusID, 3*time.Second))
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.pending != nil {
		m.pending.reply <- promptReply{}
		m.pending = nil
	}
	if m.cancel != nil {
		m.cancel()
	}
	return m, tea.Quit
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteString("\n")
	b.WriteString(m.theme.MetaLabel.Render(tuiview.Toolbar(m.focus == focusNavigator)))
	b.WriteString("\n\n")
	if m.showHelp {
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n")
	} else {
		b.WriteString(m.body())
		b.WriteString("\n")
	}
	if m.pending != nil {
		b.WriteString(m.theme.Section.Render(m.pending.meta))
		b.WriteString("\n")
		b.WriteString(m.prompt.View())
		b.WriteString("\n")
	}
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	return b.String()
}

func (m Model) headerLine() string {
	if m.focus == focusAddress {
		return m.address.View()
	}
	status := 0
	if m.service != nil {
		if page := m.service.Page(); page != nil {
			status = page.Status
		}
	}
	return tuiview.AddressBar(m.currentURL(), status, m.contentWidth(), m.theme)
}

func (m Model) body() string {
	if len(m.lines) == 0 {
		if m.loading {
			return "Loading...\n"
		}
		return "No page loaded. Press g to enter an address.\n"
	}
	pageView := m.viewport.View()
	if !m.navigatorVisible() {
		return pageView
	}

	height := m.viewport.Height
	start, end := tuistate.CenteredWindow(len(m.rows), m.treeCursor, height)
	navWidth := m.navigatorWidth()
	active := m.focus == focusNavigator
	nav := tuiview.RenderNavigatorBody(tuiview.NavigatorRenderInput{
		Rows:              m.rows,
		Start:             start,
		End:               end,
		Cursor:            m.navigatorCursor(active),
		SectionCounts:     m.sectionCounts(),
		CollapsedSections: m.collapsed,
		RenderSectionLine: func(label string, count int, active, collapsed bool) string {
			return tuiview.RenderSectionLine(label, count, navWidth, active, collapsed, m.theme)
		},
		RenderRowLine: func(row tuitree.Row, active bool) string {
			return tuiview.RenderRowLine(tuiview.RowLineParams{
				Row:         row,
				ShowNumbers: m.numberLinks,
				Active:      active,
				Width:       navWidth,
			}, m.theme)
		},
	})
	navBlock := lipgloss.NewStyle().
		Width(navWidth).
		Height(height).
		MaxHeight(height).
		Render(strings.TrimRight(nav, "\n"))
	sep := m.theme.MetaLabel.Render(strings.TrimRight(strings.Repeat("│\n", max(1, height)), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, pageView, sep, navBlock)
}

// navigatorCursor hides the cursor while the page has focus.
func (m Model) navigatorCursor(active bool) int {
	if !active {
		return -1
	}
	return m.treeCursor
}

func (m Model) sectionCounts() map[string]int {
	counts := map[string]int{}
	if m.service == nil {
		return counts
	}
	if page := m.service.Page(); page != nil {
		counts[tuitree.SectionOutline] = len(page.Outline)
		counts[tuitree.SectionLinks] = len(page.Links)
	}
	return counts
}

func (m Model) messagePanel() string {
	warning := ""
	if m.err != nil {
		warning = m.err.Error()
	}
	return tuiview.CompactMessage(m.loading, m.err != nil, m.status, warning, m.theme)
}

func (m Model) footer() string {
	stateLabel := session.StateIdle.String()
	links, headings := 0, 0
	canBack, canForward := false, false
	if m.service != nil {
		stateLabel = m.service.State().String()
		if page := m.service.Page(); page != nil {
			links, headings = len(page.Links), len(page.Outline)
		}
		canBack, canForward = m.service.CanBack(), m.service.CanForward()
	}
	return tuiview.CompactFooter(stateLabel, links, headings, tuiview.HistoryLabel(canBack, canForward), m.numberLinks, m.theme)
}

func (m Model) navigationStatus(d time.Duration) string {
	if m.service == nil {
		return ""
	}
	page := m.service.Page()
	if page == nil {
		return ""
	}
	if page.Status == 0 {
		return "Showing " + m.currentURL()
	}
	return fmt.Sprintf("%d %s in %dms", page.Status, gemini.Classify(page.Status), d.Milliseconds())
}

func (m Model) currentURL() string {
	if m.service == nil {
		return ""
	}
	page := m.service.Page()
	if page == nil || page.URL == nil {
		return ""
	}
	return page.URL.String()
}

// refreshPage re-renders the current page into the viewport and rebuilds the
// navigator rows.
func (m *Model) refreshPage(resetScroll bool) {
	if m.service == nil {
		return
	}
	page := m.service.Page()
	if page == nil {
		return
	}
	m.lines = tuiview.PageLines(page.Document, m.pageWidth()-2*pageMargin, pageMargin, pagerender.Options{
		Styles:      m.theme.Page,
		NumberLinks: m.numberLinks,
	})
	offset := m.viewport.YOffset
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	if resetScroll {
		m.viewport.GotoTop()
	} else {
		m.viewport.SetYOffset(min(offset, tuiview.DetailMaxTop(len(m.lines), m.viewport.Height)))
	}
	m.rebuildRows()
	if resetScroll || m.treeCursor >= len(m.rows) {
		m.treeCursor = tuitree.FirstSelectableRow(m.rows)
	}
	if m.focus == focusNavigator && !m.navigatorVisible() {
		m.focus = focusPage
	}
}

func (m *Model) rebuildRows() {
	m.rows = nil
	if m.service == nil {
		return
	}
	page := m.service.Page()
	if page == nil {
		return
	}
	m.rows = tuitree.BuildRows(page.Outline, page.Links, tuitree.BuildOptions{
		HideOutline:       !m.showOutline,
		CollapsedSections: m.collapsed,
	})
}

func (m *Model) resize() {
	m.viewport.Width = m.pageWidth()
	m.viewport.Height = m.bodyHeight()
	m.address.Width = max(10, m.contentWidth()-4)
	m.prompt.Width = max(10, m.contentWidth()-4)
}

func (m Model) navigatorVisible() bool {
	return len(m.rows) > 0 && m.contentWidth() >= minNavigatorW
}

func (m Model) navigatorWidth() int {
	return min(maxNavigatorCol, m.contentWidth()/3)
}

func (m Model) pageWidth() int {
	if !m.navigatorVisible() {
		return m.contentWidth()
	}
	return m.contentWidth() - m.navigatorWidth() - 1
}

func (m Model) contentWidth() int {
	if m.width > 0 {
		return m.width - 1
	}
	return 100
}

func (m Model) bodyHeight() int {
	if m.height > 0 {
		used := 5
		if m.pending != nil {
			used += 2
		}
		if h := m.height - used; h > 3 {
			return h
		}
		return 3
	}
	return 16
}

func (m Model) persistPreferences() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return tuiactions.SavePreferencesCmd(m.service, m.preferences())
}

func (m *Model) ApplyPreferences(prefs app.UIPreferences) {
	m.numberLinks = prefs.NumberLinks
	m.showOutline = prefs.ShowOutline
	m.homepage = prefs.Homepage
}

func (m Model) preferences() app.UIPreferences {
	return app.UIPreferences{
		NumberLinks: m.numberLinks,
		ShowOutline: m.showOutline,
		Homepage:    m.homepage,
	}
}

// linkShortcut maps the digit keys 1-9 to link ordinals.
func linkShortcut(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
