package ui

import (
	"math"
	"math/rand"
	"time"
	"unicode"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TypewriterOptions configures a Typewriter.
type TypewriterOptions struct {
	Speed  time.Duration // base time per rune
	Jitter time.Duration // random extra time per rune, in [0, Jitter)
	Delay  time.Duration // wait before the first rune
	Blink  time.Duration // cursor fade half-period; 0 hides the cursor

	// OnKey is called for each revealed rune that is not whitespace.
	OnKey func(r rune)
	// OnComplete is called once when the last rune is revealed.
	OnComplete func()
}

// DefaultTypewriterOptions returns 30ms per rune with up to 10ms jitter
// and a 0.6s cursor fade.
func DefaultTypewriterOptions() TypewriterOptions {
	return TypewriterOptions{
		Speed:  30 * time.Millisecond,
		Jitter: 10 * time.Millisecond,
		Blink:  600 * time.Millisecond,
	}
}

// Typewriter reveals a caption one rune at a time.
type Typewriter struct {
	opts    TypewriterOptions
	rng     *rand.Rand
	text    []rune
	shown   int
	elapsed time.Duration
	due     time.Duration // elapsed time at which the next rune appears
	done    bool
}

// NewTypewriter creates a typewriter for text.
func NewTypewriter(text string, opts TypewriterOptions, rng *rand.Rand) *Typewriter {
	t := &Typewriter{opts: opts, rng: rng}
	t.Reset(text)
	return t
}

// Reset starts revealing text from the beginning.
func (t *Typewriter) Reset(text string) {
	t.text = []rune(text)
	t.shown = 0
	t.elapsed = 0
	t.done = false
	t.due = t.opts.Delay + t.interval()
}

func (t *Typewriter) interval() time.Duration {
	d := t.opts.Speed
	if t.opts.Jitter > 0 && t.rng != nil {
		d += time.Duration(t.rng.Int63n(int64(t.opts.Jitter)))
	}
	return d
}

// Advance moves time forward by dt, revealing every rune that became due.
func (t *Typewriter) Advance(dt time.Duration) {
	t.elapsed += dt
	for t.shown < len(t.text) && t.elapsed >= t.due {
		r := t.text[t.shown]
		t.shown++
		if t.opts.OnKey != nil && !unicode.IsSpace(r) {
			t.opts.OnKey(r)
		}
		t.due += t.interval()
	}
	if !t.done && t.shown == len(t.text) {
		t.done = true
		if t.opts.OnComplete != nil {
			t.opts.OnComplete()
		}
	}
}

// Visible returns the revealed prefix.
func (t *Typewriter) Visible() string {
	return string(t.text[:t.shown])
}

// Done reports whether the whole text is revealed.
func (t *Typewriter) Done() bool {
	return t.done
}

// CursorAlpha returns the cursor opacity: it fades 1→0 over one blink
// period and back, easing in and out.
func (t *Typewriter) CursorAlpha() float64 {
	if t.opts.Blink <= 0 {
		return 0
	}
	period := 2 * t.opts.Blink
	phase := float64(t.elapsed%period) / float64(t.opts.Blink)
	if phase > 1 {
		phase = 2 - phase
	}
	// Sine ease from 1 at phase 0 to 0 at phase 1
	return 0.5 + 0.5*math.Cos(math.Pi*phase)
}

// Draw renders the revealed text and cursor with the top-left at (x, y).
func (t *Typewriter) Draw(x, y, size int32, c rl.Color) {
	text := t.Visible()
	rl.DrawText(text, x, y, size, c)
	if a := t.CursorAlpha(); a > 0 {
		cx := x + rl.MeasureText(text, size) + 4
		cc := c
		cc.A = uint8(float64(c.A) * a)
		rl.DrawRectangle(cx, y, 2, size, cc)
	}
}
