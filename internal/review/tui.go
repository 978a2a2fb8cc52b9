// Package review is the interactive browser for a finished enrichment
// workbook: companies on the left, the selected company's postings on the
// right, with a full-screen detail view per item.
package review

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akapil/prospect/internal/model"
	"github.com/akapil/prospect/internal/urlutil"
)

// Lines per list item (title + subtitle + blank separator).
const listItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")) // dim gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	itemTitleStyle = lipgloss.NewStyle().
			Bold(true)

	itemSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedItemTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")). // bright white
				Background(lipgloss.Color("24"))  // dark blue bg

	selectedItemSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(16)

	detailValueStyle = lipgloss.NewStyle()

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)

	snippetDividerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	snippetBodyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))
)

type reviewModel struct {
	records       []model.CompanyRecord
	leftViewport  viewport.Model
	rightViewport viewport.Model
	activePane    int // 0=companies, 1=jobs
	leftCursor    int
	rightCursor   int
	width         int
	height        int
	ready         bool

	// Detail view state
	view           viewState
	detailViewport viewport.Model
	detailIsJob    bool
	detailRecord   model.CompanyRecord
	detailJob      model.JobPosting

	wantQuit bool
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderDetail())
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m reviewModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.wantQuit = true
		return m, tea.Quit
	case "tab", "left", "right":
		m.activePane = 1 - m.activePane
		m.recalcContent()
		return m, nil
	case "up", "k":
		m.moveCursor(-1)
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "o":
		openURL(m.selectedURL())
		return m, nil
	case "enter":
		return m.openDetailView()
	}

	// Forward other keys (pgup/pgdn/home/end) to the active viewport.
	var cmd tea.Cmd
	if m.activePane == 0 {
		m.leftViewport, cmd = m.leftViewport.Update(msg)
	} else {
		m.rightViewport, cmd = m.rightViewport.Update(msg)
	}
	return m, cmd
}

func (m reviewModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		if m.detailIsJob {
			openURL(m.detailJob.URL)
		} else {
			openURL(firstNonEmpty(m.detailRecord.JobBoard, m.detailRecord.Careers, m.detailRecord.Website))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *reviewModel) moveCursor(delta int) {
	if m.activePane == 0 {
		m.leftCursor = clamp(m.leftCursor+delta, 0, max(len(m.records)-1, 0))
		// Job cursor follows the company selection.
		m.rightCursor = 0
		m.rightViewport.SetYOffset(0)
	} else {
		m.rightCursor = clamp(m.rightCursor+delta, 0, max(len(m.selectedJobs())-1, 0))
	}
}

func (m *reviewModel) ensureCursorVisible() {
	var vp *viewport.Model
	var cursor int
	if m.activePane == 0 {
		vp = &m.leftViewport
		cursor = m.leftCursor
	} else {
		vp = &m.rightViewport
		cursor = m.rightCursor
	}

	cursorTop := cursor * listItemHeight
	cursorBottom := cursorTop + listItemHeight - 1

	if cursorTop < vp.YOffset {
		vp.SetYOffset(cursorTop)
	} else if cursorBottom >= vp.YOffset+vp.Height {
		vp.SetYOffset(cursorBottom - vp.Height + 1)
	}
}

func (m reviewModel) selectedRecord() (model.CompanyRecord, bool) {
	if len(m.records) == 0 {
		return model.CompanyRecord{}, false
	}
	return m.records[m.leftCursor], true
}

func (m reviewModel) selectedJobs() []model.JobPosting {
	rec, ok := m.selectedRecord()
	if !ok {
		return nil
	}
	return rec.Jobs
}

// selectedURL is what 'o' opens from the list view: the highlighted job's
// URL on the right pane, the company's best URL on the left.
func (m reviewModel) selectedURL() string {
	if m.activePane == 1 {
		jobs := m.selectedJobs()
		if m.rightCursor < len(jobs) {
			return jobs[m.rightCursor].URL
		}
		return ""
	}
	rec, ok := m.selectedRecord()
	if !ok {
		return ""
	}
	return firstNonEmpty(rec.JobBoard, rec.Careers, rec.Website)
}

func (m reviewModel) openDetailView() (tea.Model, tea.Cmd) {
	rec, ok := m.selectedRecord()
	if !ok {
		return m, nil
	}

	m.view = viewDetail
	m.detailRecord = rec
	m.detailIsJob = false
	if m.activePane == 1 {
		jobs := rec.Jobs
		if len(jobs) == 0 {
			m.view = viewList
			return m, nil
		}
		m.detailIsJob = true
		m.detailJob = jobs[m.rightCursor]
	}

	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderDetail())
	return m, nil
}

func (m *reviewModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((m.width-5)/2, 20)

	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(m.height-4, 5)

	if !m.ready {
		m.leftViewport = viewport.New(paneWidth, paneHeight)
		m.rightViewport = viewport.New(paneWidth, paneHeight)
		m.ready = true
	} else {
		m.leftViewport.Width = paneWidth
		m.leftViewport.Height = paneHeight
		m.rightViewport.Width = paneWidth
		m.rightViewport.Height = paneHeight
	}

	m.recalcContent()
}

func (m *reviewModel) recalcContent() {
	m.leftViewport.SetContent(renderCompanies(m.records, m.leftCursor, m.activePane == 0))
	m.rightViewport.SetContent(renderJobs(m.selectedJobs(), m.rightCursor, m.activePane == 1))
}

func (m reviewModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.view == viewDetail {
		return m.viewDetail()
	}

	return m.viewList()
}

func (m reviewModel) viewList() string {
	paneWidth := m.leftViewport.Width

	// Headers.
	leftHeader := fmt.Sprintf(" Companies (%d)", len(m.records))
	rightHeader := fmt.Sprintf(" Job Postings (%d)", len(m.selectedJobs()))

	var leftHeaderRendered, rightHeaderRendered string
	var leftBorder, rightBorder lipgloss.Style

	if m.activePane == 0 {
		leftHeaderRendered = activeHeaderStyle.Render(leftHeader)
		rightHeaderRendered = inactiveHeaderStyle.Render(rightHeader)
		leftBorder = activeBorderStyle.Width(paneWidth)
		rightBorder = inactiveBorderStyle.Width(paneWidth)
	} else {
		leftHeaderRendered = inactiveHeaderStyle.Render(leftHeader)
		rightHeaderRendered = activeHeaderStyle.Render(rightHeader)
		leftBorder = inactiveBorderStyle.Width(paneWidth)
		rightBorder = activeBorderStyle.Width(paneWidth)
	}

	// Panes with borders.
	leftPane := leftBorder.Render(m.leftViewport.View())
	rightPane := rightBorder.Render(m.rightViewport.View())

	// Headers side by side.
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(paneWidth+2).Render(leftHeaderRendered),
		" ",
		lipgloss.NewStyle().Width(paneWidth+2).Render(rightHeaderRendered),
	)

	// Panes side by side.
	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, " ", rightPane)

	// Status bar.
	totalJobs := 0
	withBoard := 0
	for _, rec := range m.records {
		totalJobs += len(rec.Jobs)
		if rec.JobBoard != "" {
			withBoard++
		}
	}
	statusText := fmt.Sprintf(" %d companies | %d with job board | %d postings    ←/→/Tab switch  ↑/↓ cursor  Enter detail  o open  q quit",
		len(m.records), withBoard, totalJobs)
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return headerRow + "\n" + panes + "\n" + statusBar
}

func (m reviewModel) viewDetail() string {
	heading := "Company Details"
	if m.detailIsJob {
		heading = "Posting Details"
	}
	title := detailTitleStyle.Render(heading)

	border := activeBorderStyle.Width(m.width - 2)
	content := border.Render(m.detailViewport.View())

	statusText := " o open URL  esc/backspace back  ↑/↓ scroll  q quit"
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return title + "\n" + content + "\n" + statusBar
}

func (m reviewModel) renderDetail() string {
	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteByte('\n')
	}

	wrapWidth := max(m.width-8, 20)
	divider := func(label string) string {
		fill := strings.Repeat("─", max(wrapWidth-len(label), 3))
		return snippetDividerStyle.Render(label + fill)
	}

	if m.detailIsJob {
		j := m.detailJob
		addField("Title", j.Title)
		addField("Company", m.detailRecord.Name)
		addField("Location", j.Location)
		addField("Posted", j.Date)
		b.WriteByte('\n')
		addField("URL", j.URL)

		if j.Snippet != "" {
			b.WriteByte('\n')
			b.WriteString(divider("── Description ") + "\n\n")
			b.WriteString(snippetBodyStyle.Render(wordWrap(j.Snippet, wrapWidth)) + "\n")
		}
		return b.String()
	}

	rec := m.detailRecord
	addField("Company", rec.Name)
	addField("Domain", urlutil.DomainOf(rec.Website))
	b.WriteByte('\n')
	addField("Website", rec.Website)
	addField("LinkedIn", rec.LinkedIn)
	addField("Careers", rec.Careers)
	addField("Job Board", rec.JobBoard)
	addField("Postings", fmt.Sprintf("%d", len(rec.Jobs)))

	if rec.Description != "" {
		b.WriteByte('\n')
		b.WriteString(divider("── Description ") + "\n\n")
		b.WriteString(snippetBodyStyle.Render(wordWrap(rec.Description, wrapWidth)) + "\n")
	}

	return b.String()
}

func renderCompanies(records []model.CompanyRecord, cursor int, isActive bool) string {
	if len(records) == 0 {
		return "  (no companies)"
	}

	var b strings.Builder
	for i, rec := range records {
		isSelected := isActive && i == cursor

		titleSt := itemTitleStyle
		subtitleSt := itemSubtitleStyle
		prefix := "  "
		if isSelected {
			titleSt = selectedItemTitleStyle
			subtitleSt = selectedItemSubtitleStyle
			prefix = "> "
		}

		b.WriteString(prefix)
		b.WriteString(titleSt.Render(rec.Name))
		b.WriteByte('\n')

		domain := urlutil.DomainOf(rec.Website)
		if domain == "" {
			domain = "no site"
		}
		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(fmt.Sprintf("%s · %d postings", domain, len(rec.Jobs))))
		b.WriteByte('\n')

		if i < len(records)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderJobs(jobs []model.JobPosting, cursor int, isActive bool) string {
	if len(jobs) == 0 {
		return "  (no postings)"
	}

	var b strings.Builder
	for i, j := range jobs {
		isSelected := isActive && i == cursor

		titleSt := itemTitleStyle
		subtitleSt := itemSubtitleStyle
		prefix := "  "
		if isSelected {
			titleSt = selectedItemTitleStyle
			subtitleSt = selectedItemSubtitleStyle
			prefix = "> "
		}

		title := j.Title
		if title == "" {
			title = j.URL
		}
		b.WriteString(prefix)
		b.WriteString(titleSt.Render(title))
		b.WriteByte('\n')

		location := j.Location
		if location == "" {
			location = "n/a"
		}
		posted := j.Date
		if posted == "" {
			posted = "n/a"
		}
		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(fmt.Sprintf("%s · %s", location, posted)))
		b.WriteByte('\n')

		if i < len(jobs)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	if url == "" {
		return
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// Run launches the interactive split-pane workbook browser.
func Run(records []model.CompanyRecord) error {
	m := reviewModel{records: records}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
