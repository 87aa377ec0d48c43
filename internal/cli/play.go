package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/layout"
	"github.com/matzehuels/fabmenu/pkg/menu"
	"github.com/matzehuels/fabmenu/pkg/script"
)

// Terminal cells are mapped to menu pixels at a fixed pitch.
const (
	cellWidthPx  = 8.0
	cellHeightPx = 16.0

	headerRows = 2
	footerRows = 3
	minRows    = 8
	maxItems   = 24
	logLines   = 4
)

const itemGlyphs = "0123456789abcdefghijklmnopqrstuvwxyz"

// Footer button zone IDs.
const (
	zoneToggle   = "toggle"
	zoneMore     = "more"
	zoneLess     = "less"
	zoneStrategy = "strategy"
	zoneCorner   = "corner"
)

var (
	playTriggerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	playDraggingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	playItemStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	playButtonStyle   = lipgloss.NewStyle().Foreground(colorGray).Border(lipgloss.HiddenBorder(), false, true)
)

// playCommand creates the play command for the interactive playground.
func (c *CLI) playCommand() *cobra.Command {
	var (
		mf    menuFlags
		total int
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Drive a live menu with the mouse in the terminal",
		Long: `Open a full-screen playground with a live menu anchored to a corner of
the terminal.

Click the trigger to toggle it and drag it to move it (with --draggable).
Click an item to select it. Keys: space toggles, +/- change the item count,
s cycles the strategy, c cycles the corner and q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := mf.load(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("draggable") && mf.config == "" {
				cfg.Draggable = true
			}
			model, err := newPlayModel(cfg, total)
			if err != nil {
				return err
			}
			defer model.zones.Close()

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if pm, ok := final.(playModel); ok {
				a := pm.menu.AnchorOffset()
				printInfo("Menu left %s at %s", openLabel(pm.menu.IsOpen()), formatPoint(a.X, a.Y))
				printStats(pm.total, fmt.Sprintf("%s · %s", pm.cfg.Strategy, pm.cfg.Corner), false)
			}
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().IntVarP(&total, "total", "n", 6, "number of child items")

	return cmd
}

// =============================================================================
// playModel - Interactive menu playground
// =============================================================================

// playModel is the bubbletea model of the playground. It owns a live menu
// and translates terminal mouse events into pointer events in menu space,
// where the origin is the trigger's resting position.
type playModel struct {
	cfg   menu.Config
	menu  *menu.Menu
	rec   *script.Recorder
	zones *zone.Manager

	total    int
	width    int
	height   int
	pressing bool
	events   []string
}

func newPlayModel(cfg menu.Config, total int) (playModel, error) {
	m := playModel{
		cfg:    cfg,
		rec:    &script.Recorder{},
		zones:  zone.New(),
		total:  clampItems(total),
		width:  80,
		height: 24,
	}
	if err := m.rebuild(); err != nil {
		return playModel{}, err
	}
	return m, nil
}

// rebuild recreates the menu after a config change. The open flag is kept
// and the trigger returns to its corner.
func (m *playModel) rebuild() error {
	if m.menu != nil {
		m.cfg.InitialOpen = m.menu.IsOpen()
	}
	m.cfg.InitialOffset = layout.Offset{}
	opts := append(m.rec.Options(), menu.WithID("play"))
	mn, err := menu.New(m.cfg, opts...)
	if err != nil {
		return err
	}
	m.menu = mn
	return nil
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "enter":
			m.toggle()
		case "+", "=":
			m.setTotal(m.total + 1)
		case "-", "_":
			m.setTotal(m.total - 1)
		case "s":
			m.cycleStrategy()
		case "c":
			m.cycleCorner()
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	m.absorb()
	return m, nil
}

func (m *playModel) handleMouse(msg tea.MouseMsg) {
	x, y := m.toMenu(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if m.clickButton(msg) {
			return
		}
		if m.menu.HitTrigger(x, y) {
			m.pressing = true
			m.record(m.menu.PointerDown(x, y))
			return
		}
		if i, ok := m.menu.HitTest(x, y, m.total); ok {
			m.record(m.menu.SelectItem(i, m.total))
		}
	case tea.MouseActionMotion:
		if m.pressing {
			m.record(m.menu.PointerMove(x, y))
		}
	case tea.MouseActionRelease:
		if m.pressing {
			m.pressing = false
			m.record(m.menu.PointerUp(x, y))
		}
	}
}

// clickButton dispatches a press on one of the footer buttons.
func (m *playModel) clickButton(msg tea.MouseMsg) bool {
	switch {
	case m.inZone(zoneToggle, msg):
		m.toggle()
	case m.inZone(zoneMore, msg):
		m.setTotal(m.total + 1)
	case m.inZone(zoneLess, msg):
		m.setTotal(m.total - 1)
	case m.inZone(zoneStrategy, msg):
		m.cycleStrategy()
	case m.inZone(zoneCorner, msg):
		m.cycleCorner()
	default:
		return false
	}
	return true
}

func (m *playModel) inZone(id string, msg tea.MouseMsg) bool {
	z := m.zones.Get(id)
	return z != nil && z.InBounds(msg)
}

func (m *playModel) toggle() {
	if !m.menu.RequestToggle() {
		m.logEvent(StyleError.Render("toggle suppressed while dragging"))
	}
}

func (m *playModel) setTotal(n int) {
	m.total = clampItems(n)
}

func (m *playModel) cycleStrategy() {
	m.cfg.Strategy = next(layout.Strategies(), m.cfg.Strategy)
	m.record(m.rebuild())
}

func (m *playModel) cycleCorner() {
	m.cfg.Corner = next(layout.Corners(), m.cfg.Corner)
	m.record(m.rebuild())
}

// record logs err. Out-of-order events are shown as ignored.
func (m *playModel) record(err error) {
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrCodeOutOfOrderEvent):
		m.logEvent(StyleError.Render("ignored: " + errors.UserMessage(err)))
	default:
		m.logEvent(StyleError.Render(errors.UserMessage(err)))
	}
}

// absorb drains menu callbacks into the event log. A controlled menu has
// its toggles applied here, playing the part of the host.
func (m *playModel) absorb() {
	for _, e := range m.rec.Drain() {
		switch e.Kind {
		case script.EmitToggle:
			m.logEvent(StyleSuccess.Render("toggle → " + openLabel(e.Open)))
			if m.cfg.Controlled {
				m.record(m.menu.SetOpen(e.Open))
			}
		case script.EmitPosition:
			m.logEvent(StyleWarning.Render("position → " + formatPoint(e.X, e.Y)))
		case script.EmitSelect:
			m.logEvent(playItemStyle.Render(fmt.Sprintf("select → item %d", e.Index)))
		}
	}
}

func (m *playModel) logEvent(line string) {
	m.events = append(m.events, line)
	if len(m.events) > logLines {
		m.events = m.events[len(m.events)-logLines:]
	}
}

// =============================================================================
// Geometry
// =============================================================================

func (m playModel) canvasRows() int {
	return max(m.height-headerRows-footerRows-logLines, minRows)
}

// home is the pixel position of the resting trigger inside the canvas.
func (m playModel) home() (float64, float64) {
	margin := m.menu.Config().TriggerRadiusPx + cellWidthPx
	w := float64(m.width) * cellWidthPx
	h := float64(m.canvasRows()) * cellHeightPx
	x, y := w-margin, h-margin
	if !m.cfg.Corner.IsRight() {
		x = margin
	}
	if !m.cfg.Corner.IsBottom() {
		y = margin
	}
	return x, y
}

// toMenu converts a terminal cell to menu space.
func (m playModel) toMenu(col, row int) (float64, float64) {
	hx, hy := m.home()
	px := float64(col)*cellWidthPx + cellWidthPx/2
	py := float64(row-headerRows)*cellHeightPx + cellHeightPx/2
	return px - hx, py - hy
}

// toCell converts a point in menu space to a canvas cell.
func (m playModel) toCell(p layout.Offset) (int, int) {
	hx, hy := m.home()
	return int(math.Floor((p.X + hx) / cellWidthPx)), int(math.Floor((p.Y + hy) / cellHeightPx))
}

// =============================================================================
// View
// =============================================================================

func (m playModel) View() string {
	var b strings.Builder

	phase := m.menu.Phase().String()
	b.WriteString(StyleTitle.Render("fabmenu play"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · %s · %d items · %s · %s",
		m.cfg.Strategy, m.cfg.Corner, m.total, openLabel(m.menu.IsOpen()), phase)))
	b.WriteString("\n\n")

	b.WriteString(m.canvas())
	b.WriteString("\n")
	b.WriteString(m.buttons())
	b.WriteString("\n")
	for i := 0; i < logLines; i++ {
		if i < len(m.events) {
			b.WriteString("  " + m.events[i])
		}
		b.WriteString("\n")
	}

	return m.zones.Scan(b.String())
}

func (m playModel) canvas() string {
	rows := m.canvasRows()
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, m.width)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}
	put := func(p layout.Offset, s string) {
		c, r := m.toCell(p)
		if r >= 0 && r < rows && c >= 0 && c < m.width {
			grid[r][c] = s
		}
	}

	if m.menu.IsOpen() {
		for i := 0; i < m.total; i++ {
			pos, err := m.menu.ChildPosition(i, m.total)
			if err != nil {
				break
			}
			put(pos, playItemStyle.Render(string(itemGlyphs[i%len(itemGlyphs)])))
		}
	}
	trigger := playTriggerStyle.Render("●")
	if m.menu.IsDragging() {
		trigger = playDraggingStyle.Render("◉")
	}
	put(m.menu.AnchorOffset(), trigger)

	lines := make([]string, rows)
	for r := range grid {
		lines[r] = strings.Join(grid[r], "")
	}
	return strings.Join(lines, "\n")
}

func (m playModel) buttons() string {
	btn := func(id, label string) string {
		return m.zones.Mark(id, playButtonStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		btn(zoneToggle, "[space] toggle"),
		btn(zoneLess, "[-]"),
		btn(zoneMore, "[+]"),
		btn(zoneStrategy, "[s] "+string(m.cfg.Strategy)),
		btn(zoneCorner, "[c] "+string(m.cfg.Corner)),
		StyleDim.Render("  q quit"),
	)
}

// =============================================================================
// Helpers
// =============================================================================

func clampItems(n int) int {
	return min(max(n, 0), maxItems)
}

// next returns the element after cur in xs, wrapping around.
func next[T comparable](xs []T, cur T) T {
	for i, x := range xs {
		if x == cur {
			return xs[(i+1)%len(xs)]
		}
	}
	return xs[0]
}
