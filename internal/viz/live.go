package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/oceansim/internal/engine"
)

const (
	mapWidth        = 64
	mapHeight       = 28
	profileWidth    = 64
	profileHeight   = 5
	historyCapacity = 240
	tickRate        = time.Second / 30
)

// shadeRamp maps a normalized field value to a terminal glyph.
var shadeRamp = []rune(" .:-=+*#%@")

var (
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	mapStyle         = lipgloss.NewStyle().Padding(0, 1)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(34)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// FieldView selects which layer the map pane shades.
type FieldView int

const (
	ViewHeight FieldView = iota
	ViewFoam
	ViewSeam
	ViewWake
	viewCount
)

func (v FieldView) String() string {
	switch v {
	case ViewHeight:
		return "height"
	case ViewFoam:
		return "foam"
	case ViewSeam:
		return "seam"
	case ViewWake:
		return "wake"
	}
	return "?"
}

// Model drives one engine instance and renders it every tick.
type Model struct {
	eng    *engine.Engine
	preset string
	dt     float64

	running   bool
	view      FieldView
	bodyOn    bool
	bodyAngle float64
	bodyPos   engine.Vec3

	profile   *Canvas
	history   []float64
	dropCount int

	paramKeys []string
	selected  int
	showHelp  bool
}

func NewModel(eng *engine.Engine, preset string, dt float64) Model {
	keys := make([]string, 0)
	for k := range eng.GetParams() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return Model{
		eng:       eng,
		preset:    preset,
		dt:        dt,
		running:   true,
		view:      ViewHeight,
		profile:   NewCanvas(profileWidth, profileHeight),
		history:   make([]float64, 0, historyCapacity),
		paramKeys: keys,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "d":
			m.drop()
		case "b":
			m.toggleBody()
		case "v":
			m.view = (m.view + 1) % viewCount
		case "r":
			m.eng.Reset()
			m.history = m.history[:0]
			m.bodyAngle = 0
		case "tab":
			if len(m.paramKeys) > 0 {
				m.selected = (m.selected + 1) % len(m.paramKeys)
			}
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// drop queues an impulse offset from center, cycling through a few
// positions so repeated drops do not stack on one cell.
func (m *Model) drop() {
	positions := [][2]float64{{0, 0}, {0.4, 0.3}, {-0.5, -0.2}, {0.2, -0.6}, {-0.3, 0.5}}
	p := positions[m.dropCount%len(positions)]
	m.dropCount++
	m.eng.AddDrop(p[0], p[1], 1.2, 8)
}

func (m *Model) toggleBody() {
	m.bodyOn = !m.bodyOn
	if m.bodyOn {
		world := m.eng.Config().Heightfield.WorldSize
		m.bodyPos = engine.Vec3{X: world / 4, Y: 0.2, Z: 0}
		m.bodyAngle = 0
	}
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	v := m.eng.GetParams()[key] * factor
	m.eng.SetParam(key, v)
}

func (m *Model) step() {
	if m.bodyOn {
		world := m.eng.Config().Heightfield.WorldSize
		r := world / 4
		m.bodyAngle += m.dt * 0.6
		next := engine.Vec3{
			X: r * math.Cos(m.bodyAngle),
			Y: 0.2,
			Z: r * math.Sin(m.bodyAngle),
		}
		m.eng.MoveSphere(m.bodyPos, next, 1.0)
		m.bodyPos = next
	}

	m.eng.Step(m.dt)

	m.history = append(m.history, m.eng.ReadHeightAt(0, 0))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// fieldValue reads the shaded quantity for one map cell.
func (m *Model) fieldValue(x, y int) float64 {
	switch m.view {
	case ViewHeight:
		return m.eng.Solver().Field().At(x, y)[0]
	case ViewFoam:
		return m.eng.FoamLayer().Field().At(x, y)[0]
	case ViewSeam:
		f := m.eng.SheetLayer().Field()
		sx := float64(x) / float64(mapSampleRes(m)-1) * float64(f.W-1)
		sy := float64(y) / float64(mapSampleRes(m)-1) * float64(f.H-1)
		return f.Sample(sx, sy)[0]
	case ViewWake:
		return math.Abs(m.eng.HullLayer().Field().At(x, y)[1])
	}
	return 0
}

func mapSampleRes(m *Model) int {
	return m.eng.Config().Heightfield.Resolution
}

func (m *Model) renderMap() string {
	res := mapSampleRes(m)
	var sb strings.Builder

	// Min/max pass over the sampled cells keeps the shading stable per
	// frame without scanning the full field.
	minV, maxV := math.Inf(1), math.Inf(-1)
	vals := make([][]float64, mapHeight)
	for row := 0; row < mapHeight; row++ {
		vals[row] = make([]float64, mapWidth)
		for col := 0; col < mapWidth; col++ {
			gx := col * (res - 1) / (mapWidth - 1)
			gy := row * (res - 1) / (mapHeight - 1)
			v := m.fieldValue(gx, gy)
			vals[row][col] = v
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	span := maxV - minV
	if span < 1e-9 {
		span = 1
	}

	for row := 0; row < mapHeight; row++ {
		for col := 0; col < mapWidth; col++ {
			n := (vals[row][col] - minV) / span
			idx := int(n * float64(len(shadeRamp)-1))
			sb.WriteRune(shadeRamp[idx])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m *Model) renderProfile() string {
	res := mapSampleRes(m)
	f := m.eng.Solver().Field()
	row := res / 2
	values := make([]float64, res)
	for x := 0; x < res; x++ {
		values[x] = f.At(x, row)[0]
	}
	m.profile.Clear()
	m.profile.PlotProfile(values)
	return m.profile.String()
}

func (m *Model) renderStats() string {
	var sb strings.Builder
	write := func(label, value string) {
		sb.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	write("status", status)
	write("preset", m.preset)
	write("view", m.view.String())
	write("time", fmt.Sprintf("%.2f s", m.eng.Time()))
	write("spray", fmt.Sprintf("%d", m.eng.SpraySystem().ActiveCount()))
	if m.bodyOn {
		write("body", fmt.Sprintf("(%.1f, %.1f)", m.bodyPos.X, m.bodyPos.Z))
	} else {
		write("body", "off")
	}

	sb.WriteString("\n")
	params := m.eng.GetParams()
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-18s %.3f", k, params[k])
		if i == m.selected {
			sb.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			sb.WriteString(valueStyle.Render("  "+line) + "\n")
		}
	}
	return sb.String()
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("OCEANSIM") + "\n")

	mapPane := mapStyle.Render(m.renderMap())
	statsPane := statsStyle.Render(m.renderStats())
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, mapPane, statsPane))
	s.WriteString("\n")
	s.WriteString(mapStyle.Render(m.renderProfile()))

	if len(m.history) > 2 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(profileWidth),
			asciigraph.Caption("center elevation"),
		)
		s.WriteString(graphStyle.Render(graph) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render(
			"space pause · d drop · b body · v view · tab/↑/↓ tune · r reset · q quit"))
	} else {
		s.WriteString(helpStyle.Render("? help · q quit"))
	}
	return s.String()
}

// Run starts the live view and blocks until quit.
func Run(eng *engine.Engine, preset string, dt float64) error {
	p := tea.NewProgram(NewModel(eng, preset, dt), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
