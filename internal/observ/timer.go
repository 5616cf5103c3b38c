// Package observ measures where decoding time goes. The driver opens a
// phase per pipeline step and the CLI prints the report behind --timings.
package observ

import "time"

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

// Timer collects the phases of one file's decode.
type Timer struct {
	phases []phase
}

// NewTimer returns an empty timer.
func NewTimer() *Timer { return &Timer{} }

// Begin opens a named phase and returns its handle for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, phase{name: name, start: time.Now()})
	return len(t.phases) - 1
}

// End closes a phase. The note is free form, "137 DIEs" or "failed".
// Ending an unknown handle is a no-op, the phase then reports zero.
func (t *Timer) End(handle int, note string) {
	if handle < 0 || handle >= len(t.phases) {
		return
	}
	p := &t.phases[handle]
	p.dur = time.Since(p.start)
	p.note = note
}

// PhaseReport — одна фаза в миллисекундах, в том порядке, в котором
// вызывался Begin.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report — итог по всем фазам одного файла.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the timer. Total is the sum of phase durations, not
// wall time between the first Begin and the last End.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	out := Report{Phases: make([]PhaseReport, 0, len(t.phases))}
	var total time.Duration
	for i := range t.phases {
		p := &t.phases[i]
		total += p.dur
		out.Phases = append(out.Phases, PhaseReport{
			Name:       p.name,
			DurationMS: float64(p.dur) / float64(time.Millisecond),
			Note:       p.note,
		})
	}
	out.TotalMS = float64(total) / float64(time.Millisecond)
	return out
}
