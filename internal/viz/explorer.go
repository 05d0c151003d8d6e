package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/geoharm/internal/field"
	"github.com/san-kum/geoharm/internal/gravity"
	"github.com/san-kum/geoharm/internal/survey"
)

const (
	profilePoints = 91
	mGal          = 1e-5 // m/s²
	minStep       = 0.125
	maxStep       = 45
	altStep       = 100e3
)

// Explorer is a bubbletea model that walks a point over a gravity model and
// shows the field there together with the anomaly along its meridian.
type Explorer struct {
	model *gravity.Model
	ev    *field.Evaluator

	lat, lon float64 // deg
	alt      float64 // m above R0
	degree   int
	zonal    bool
	step     float64 // deg

	theme    int
	showHelp bool

	sample  survey.Sample
	profile []float64 // anomaly [mGal] along the current meridian

	width, height int
	err           error
}

// NewExplorer starts at (lat, lon) [deg] and altitude [m], truncated at
// lim. Order limits other than zero are shown as all orders.
func NewExplorer(model *gravity.Model, lat, lon, alt float64, lim field.Limits) *Explorer {
	e := &Explorer{
		model:  model,
		ev:     field.New(model),
		lat:    clampLat(lat),
		lon:    wrapLon(lon),
		alt:    alt,
		degree: lim.Degree,
		zonal:  lim.Order == 0,
		step:   5,
		width:  80,
		height: 24,
	}
	if e.degree <= 0 || e.degree > model.NMax() {
		e.degree = model.NMax()
	}
	e.refresh()
	return e
}

func (e *Explorer) limits() field.Limits {
	if e.zonal {
		return field.Limits{Degree: e.degree, Order: 0}
	}
	return field.Degree(e.degree)
}

func (e *Explorer) refresh() {
	r := e.model.R0() + e.alt
	e.sample = survey.At(e.ev, e.lat, e.lon, r, e.limits())

	samples, err := survey.Meridian(e.model, e.lon, e.alt, profilePoints, e.limits())
	e.err = err
	e.profile = e.profile[:0]
	for _, s := range samples {
		e.profile = append(e.profile, s.Anomaly/mGal)
	}
}

func (e *Explorer) Init() tea.Cmd { return nil }

func (e *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return e.handleKey(msg)
	case tea.WindowSizeMsg:
		e.width, e.height = msg.Width, msg.Height
	}
	return e, nil
}

func (e *Explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return e, tea.Quit
	case "up", "k":
		e.lat = clampLat(e.lat + e.step)
	case "down", "j":
		e.lat = clampLat(e.lat - e.step)
	case "right", "l":
		e.lon = wrapLon(e.lon + e.step)
	case "left", "h":
		e.lon = wrapLon(e.lon - e.step)
	case "+", "=":
		if e.degree < e.model.NMax() {
			e.degree++
		}
	case "-", "_":
		if e.degree > 1 {
			e.degree--
		}
	case "z":
		e.zonal = !e.zonal
	case "]":
		e.step = math.Min(e.step*2, maxStep)
		return e, nil
	case "[":
		e.step = math.Max(e.step/2, minStep)
		return e, nil
	case "pgup", "u":
		e.alt += altStep
	case "pgdown", "d":
		e.alt = math.Max(e.alt-altStep, 0)
	case "t":
		e.theme = (e.theme + 1) % len(Themes)
		return e, nil
	case "?":
		e.showHelp = !e.showHelp
		return e, nil
	default:
		return e, nil
	}
	e.refresh()
	return e, nil
}

func (e *Explorer) View() string {
	st := stylesFor(Themes[e.theme])
	var b strings.Builder

	b.WriteString(st.title.Render("GEOHARM") + "  " + st.subtle.Render(e.model.Name()) + "\n")
	b.WriteString(st.separator(44) + "\n")

	order := "all"
	if e.zonal {
		order = "zonal"
	}
	s := e.sample
	info := strings.Join([]string{
		st.row("latitude", fmt.Sprintf("%8.3f°", e.lat)),
		st.row("longitude", fmt.Sprintf("%8.3f°", e.lon)),
		st.row("altitude", fmt.Sprintf("%8.1f km", e.alt/1e3)),
		st.row("truncation", fmt.Sprintf("%d / %d, %s", e.degree, e.model.NMax(), order)),
		"",
		st.row("U", fmt.Sprintf("%.6f J/kg", s.U)),
		st.row("|a|", fmt.Sprintf("%.9f m/s²", s.A.Norm())),
		st.row("a", fmt.Sprintf("(%.6f, %.6f, %.6f)", s.A.X, s.A.Y, s.A.Z)),
		st.label.Render("anomaly") + st.signed(s.Anomaly, fmt.Sprintf("%+.3f mGal", s.Anomaly/mGal)),
	}, "\n")
	b.WriteString(st.panel.Render(info) + "\n")

	if e.err != nil {
		b.WriteString(st.negative.Render(e.err.Error()) + "\n")
	} else {
		w := e.width - 4
		if w > 90 {
			w = 90
		}
		if w < 10 {
			w = 10
		}
		c := NewCanvas(w, 6)
		c.Plot(e.profile)
		c.MarkColumn(int(math.Round((e.lat + 90) / 180 * float64(w*2-1))))
		b.WriteString(st.subtle.Render(fmt.Sprintf("anomaly along %.1f° meridian, south → north", e.lon)) + "\n")
		b.WriteString(st.accent.Render(c.String()))
	}

	if e.showHelp {
		b.WriteString(st.hints("j/k", "lat", "h/l", "lon", "[/]", "step", "+/-", "degree") + "\n")
		b.WriteString(st.hints("z", "zonal", "u/d", "altitude", "t", "theme", "q", "quit") + "\n")
	} else {
		b.WriteString(st.hints("?", "help", "q", "quit") + st.subtle.Render(fmt.Sprintf("  step %.3g°", e.step)) + "\n")
	}
	return b.String()
}

func clampLat(lat float64) float64 {
	return math.Max(-90, math.Min(90, lat))
}

// wrapLon maps lon into [-180, 180).
func wrapLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// RunExplorer runs the explorer full screen until the user quits.
func RunExplorer(model *gravity.Model, lat, lon, alt float64, lim field.Limits) error {
	_, err := tea.NewProgram(NewExplorer(model, lat, lon, alt, lim), tea.WithAltScreen()).Run()
	return err
}
