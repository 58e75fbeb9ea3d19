// Package audio plays short synthesized interface cues.
package audio

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Cue identifies one interface sound.
type Cue int

const (
	CueHover Cue = iota
	CueClick
	CueSuccess
	CueNotification
	CueAmbient
	CueWhoosh
	CueTypewriter
)

// ErrUnknownCue is returned when a cue name or value has no sound.
var ErrUnknownCue = errors.New("audio: unknown cue")

var cueNames = [...]string{
	CueHover:        "hover",
	CueClick:        "click",
	CueSuccess:      "success",
	CueNotification: "notification",
	CueAmbient:      "ambient",
	CueWhoosh:       "whoosh",
	CueTypewriter:   "typewriter",
}

// Cues returns every cue in declaration order.
func Cues() []Cue {
	out := make([]Cue, len(cueNames))
	for i := range cueNames {
		out[i] = Cue(i)
	}
	return out
}

func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return fmt.Sprintf("cue(%d)", int(c))
	}
	return cueNames[c]
}

// Valid reports whether c names a known cue.
func (c Cue) Valid() bool {
	return c >= 0 && int(c) < len(cueNames)
}

// ParseCue returns the cue with the given name.
func ParseCue(name string) (Cue, error) {
	for i, n := range cueNames {
		if n == name {
			return Cue(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCue, name)
}

// Waveform selects the oscillator shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// tone is a single oscillator whose frequency glides linearly from from to
// to over its duration.
type tone struct {
	from, to float64
	wave     Waveform
	rate     beep.SampleRate
	total    int
	pos      int
	phase    float64
	rng      *rand.Rand
}

// NewTone returns a finite oscillator streamer.
func NewTone(from, to float64, d time.Duration, wave Waveform, rate beep.SampleRate) beep.Streamer {
	return &tone{
		from:  from,
		to:    to,
		wave:  wave,
		rate:  rate,
		total: rate.N(d),
		rng:   rand.New(rand.NewSource(int64(from*1000 + to))),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		freq := t.from + (t.to-t.from)*float64(t.pos)/float64(t.total)

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		case WaveNoise:
			v = t.rng.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// pluck shapes a streamer with a linear attack followed by an exponential
// decay that reaches about -60dB at the end of the streamer's length.
type pluck struct {
	s      beep.Streamer
	attack int
	total  int
	pos    int
}

// NewPluck wraps s, which must be d long, in an attack/decay envelope.
func NewPluck(s beep.Streamer, d, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	return &pluck{s: s, attack: rate.N(attack), total: max(1, rate.N(d))}
}

func (p *pluck) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = p.s.Stream(samples)
	for i := 0; i < n; i++ {
		var g float64
		if p.pos < p.attack {
			g = float64(p.pos) / float64(p.attack)
		} else {
			g = math.Exp(-6.9 * float64(p.pos-p.attack) / float64(p.total))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		p.pos++
	}
	return n, ok
}

func (p *pluck) Err() error { return p.s.Err() }

// withGain scales s by a linear gain. Zero or less is silence.
func withGain(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// note is a plucked tone with constant pitch.
func note(freq float64, d time.Duration, wave Waveform, rate beep.SampleRate) beep.Streamer {
	return NewPluck(NewTone(freq, freq, d, wave, rate), d, 5*time.Millisecond, rate)
}

// Synthesize builds the built-in sound for a cue at unit gain.
func Synthesize(c Cue, rate beep.SampleRate) (beep.Streamer, error) {
	switch c {
	case CueHover:
		return withGain(note(1320, 40*time.Millisecond, WaveSine, rate), 0.5), nil
	case CueClick:
		return withGain(note(880, 30*time.Millisecond, WaveSquare, rate), 0.35), nil
	case CueSuccess:
		return beep.Seq(
			withGain(note(660, 110*time.Millisecond, WaveSine, rate), 0.6),
			withGain(note(990, 180*time.Millisecond, WaveSine, rate), 0.6),
		), nil
	case CueNotification:
		d := 250 * time.Millisecond
		return beep.Mix(
			withGain(note(880, d, WaveSine, rate), 0.5),
			withGain(note(1320, d, WaveTriangle, rate), 0.25),
		), nil
	case CueAmbient:
		d := 1200 * time.Millisecond
		pad := NewTone(220, 220, d, WaveTriangle, rate)
		return withGain(NewPluck(pad, d, 400*time.Millisecond, rate), 0.3), nil
	case CueWhoosh:
		d := 250 * time.Millisecond
		sweep := NewTone(0, 0, d, WaveNoise, rate)
		return withGain(NewPluck(sweep, d, 80*time.Millisecond, rate), 0.4), nil
	case CueTypewriter:
		d := 18 * time.Millisecond
		return beep.Mix(
			withGain(NewPluck(NewTone(0, 0, d, WaveNoise, rate), d, time.Millisecond, rate), 0.4),
			withGain(note(2200, d, WaveSquare, rate), 0.2),
		), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownCue, c)
}
