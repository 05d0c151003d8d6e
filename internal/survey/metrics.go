package survey

import "math"

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Quantity selects the sampled value a metric accumulates.
type Quantity struct {
	Name string
	Of   func(Sample) float64
}

var (
	AnomalyQuantity   = Quantity{Name: "anomaly", Of: func(s Sample) float64 { return s.Anomaly }}
	PotentialQuantity = Quantity{Name: "potential", Of: func(s Sample) float64 { return s.U }}
)

// Max tracks the largest absolute value.
type Max struct {
	q   Quantity
	max float64
}

func NewMax(q Quantity) *Max { return &Max{q: q} }

func (m *Max) Name() string { return "max_abs_" + m.q.Name }

func (m *Max) Observe(s Sample) {
	m.max = math.Max(m.max, math.Abs(m.q.Of(s)))
}

func (m *Max) Value() float64 { return m.max }
func (m *Max) Reset()         { m.max = 0 }

type Mean struct {
	q       Quantity
	sum     float64
	samples int
}

func NewMean(q Quantity) *Mean { return &Mean{q: q} }

func (m *Mean) Name() string { return "mean_" + m.q.Name }

func (m *Mean) Observe(s Sample) {
	m.sum += m.q.Of(s)
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}

type RMS struct {
	q       Quantity
	sumSq   float64
	samples int
}

func NewRMS(q Quantity) *RMS { return &RMS{q: q} }

func (r *RMS) Name() string { return "rms_" + r.q.Name }

func (r *RMS) Observe(s Sample) {
	v := r.q.Of(s)
	r.sumSq += v * v
	r.samples++
}

func (r *RMS) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *RMS) Reset() {
	r.sumSq = 0
	r.samples = 0
}

// DefaultMetrics summarizes the radial anomaly.
func DefaultMetrics() []Metric {
	return []Metric{
		NewMax(AnomalyQuantity),
		NewMean(AnomalyQuantity),
		NewRMS(AnomalyQuantity),
	}
}

// Summarize resets each metric, feeds it every sample and collects the
// values by name.
func Summarize(samples []Sample, metrics ...Metric) map[string]float64 {
	out := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		m.Reset()
		for _, s := range samples {
			m.Observe(s)
		}
		out[m.Name()] = m.Value()
	}
	return out
}
