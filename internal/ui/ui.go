// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-salat/internal/prayer"
	"github.com/litescript/ls-salat/internal/state"
	"github.com/litescript/ls-salat/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewToday ViewMode = iota
	ViewMonth
	viewCount
)

// Msg types for Bubble Tea
type (
	// TickMsg advances the clock.
	TickMsg time.Time

	// DataUpdateMsg carries a fresh state snapshot, for example after the
	// configuration was reloaded. It clears any displayed error.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
		Status   string
	}

	// ErrorMsg signals an error to display until the next DataUpdateMsg.
	ErrorMsg struct {
		Error error
	}
)

// Options configure the root model.
type Options struct {
	LocationName string
	Clock24h     bool
}

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager
	opts  Options

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	clock24h bool
	// dayOffset is the displayed day relative to today.
	dayOffset int
	statusMsg string

	// Sub-models
	dashboard DashboardModel
	month     MonthModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager, opts Options) Model {
	m := Model{
		state:     stateMgr,
		opts:      opts,
		viewMode:  ViewToday,
		clock24h:  opts.Clock24h,
		dashboard: NewDashboardModel(opts.LocationName),
		month:     NewMonthModel(),
	}
	if stateMgr.HasData() {
		m = m.applySnapshot(stateMgr.Snapshot())
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1":
			m.viewMode = ViewToday
		case "2":
			m.viewMode = ViewMonth
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount

		case "t":
			m.clock24h = !m.clock24h

		case "left", "h":
			m.dayOffset--
		case "right", "l":
			m.dayOffset++
		case "home", "0":
			m.dayOffset = 0

		case "m":
			m = m.cycleMethod()
		}
		m = m.syncViews()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo and tabs take ~10 lines, footer ~2 lines
		contentHeight := msg.Height - 12
		m.dashboard = m.dashboard.SetSize(msg.Width, contentHeight)
		m.month = m.month.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, m.tickCmd())
		m.state.Update(time.Time(msg))
		m = m.applySnapshot(m.state.Snapshot())

	case DataUpdateMsg:
		m.dashboard = m.dashboard.SetError(nil)
		if msg.Status != "" {
			m.statusMsg = msg.Status
		}
		m = m.applySnapshot(msg.Snapshot)

	case ErrorMsg:
		m.dashboard = m.dashboard.SetError(msg.Error)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) applySnapshot(snap state.Snapshot) Model {
	m.snapshot = snap
	return m.syncViews()
}

func (m Model) syncViews() Model {
	m.dashboard = m.dashboard.UpdateData(m.snapshot, m.dayOffset, m.clock24h)
	m.month = m.month.UpdateData(m.snapshot, m.snapshot.Date.AddDays(m.dayOffset))
	return m
}

// cycleMethod switches to the next preset, keeping the madhab, high
// latitude rule and adjustments.
func (m Model) cycleMethod() Model {
	cur := m.state.Parameters()
	methods := prayer.Methods()
	next := methods[0]
	for i, method := range methods {
		if method == cur.Method {
			next = methods[(i+1)%len(methods)]
			break
		}
	}
	if next == prayer.Other {
		next = methods[0]
	}

	p := next.Parameters()
	p.Madhab = cur.Madhab
	p.HighLatitudeRule = cur.HighLatitudeRule
	p.Adjustments = cur.Adjustments
	m.state.SetParameters(p)

	now := m.snapshot.Now
	if now.IsZero() {
		now = time.Now()
	}
	m.state.Update(now)
	m.statusMsg = "Method: " + next.String()
	return m.applySnapshot(m.state.Snapshot())
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewMonth:
		content = m.month.View()
	default:
		content = m.dashboard.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

var logo = []string{
	`  ██╗     ███████╗      ███████╗ █████╗ ██╗      █████╗ ████████╗`,
	`  ██║     ██╔════╝      ██╔════╝██╔══██╗██║     ██╔══██╗╚══██╔══╝`,
	`  ██║     ███████╗█████╗███████╗███████║██║     ███████║   ██║`,
	`  ██║     ╚════██║╚════╝╚════██║██╔══██║██║     ██╔══██║   ██║`,
	`  ███████╗███████║      ███████║██║  ██║███████╗██║  ██║   ██║`,
	`  ╚══════╝╚══════╝      ╚══════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝   ╚═╝`,
}

func (m Model) renderLogo() string {
	var b strings.Builder
	b.WriteString("\n")

	width := 0
	for _, line := range logo {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}

	for row, line := range logo {
		for col, r := range []rune(line) {
			color := gradientColor(col, row, width, len(logo))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  Prayer times from the Sun · v%s", version.Version)))
	b.WriteString("\n\n")

	return b.String()
}

// gradientStops run from dawn amber through rose to night indigo.
var gradientStops = [][3]float64{
	{251, 191, 36},
	{244, 114, 182},
	{129, 140, 248},
	{67, 56, 202},
}

// gradientColor returns a hex color for a position in the logo gradient,
// dimming toward the bottom rows.
func gradientColor(col, row, width, height int) string {
	x := 0.0
	if width > 1 {
		x = float64(col) / float64(width-1)
	}
	seg := x * float64(len(gradientStops)-1)
	i := int(seg)
	if i >= len(gradientStops)-1 {
		i = len(gradientStops) - 2
	}
	t := seg - float64(i)

	dim := 1.0
	if height > 0 {
		dim -= 0.4 * float64(row) / float64(height)
	}

	var rgb [3]int
	for c := 0; c < 3; c++ {
		v := (gradientStops[i][c] + t*(gradientStops[i+1][c]-gradientStops[i][c])) * dim
		rgb[c] = clampByte(v)
	}
	return fmt.Sprintf("#%02X%02X%02X", rgb[0], rgb[1], rgb[2])
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Today", "[2] Month"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F472B6")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#818CF8"))

	var status string
	if m.snapshot.Now.IsZero() {
		status = dimStyle.Render("Waiting for clock...")
	} else {
		loc := m.snapshot.Location
		if loc == nil {
			loc = time.UTC
		}
		status = accentStyle.Render("●") + dimStyle.Render(" "+m.snapshot.Now.In(loc).Format("15:04:05 MST"))
	}

	dayHelp := "←/→: day"
	if m.viewMode == ViewMonth {
		dayHelp = "←/→: day (month follows)"
	}
	help := dimStyle.Render(fmt.Sprintf("q: quit | t: 12/24h | %s | m: method | tab: view", dayHelp))

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

// tickCmd schedules the next clock tick at the manager's refresh interval.
func (m Model) tickCmd() tea.Cmd {
	interval := m.state.RefreshInterval()
	if interval <= 0 {
		interval = time.Second
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
