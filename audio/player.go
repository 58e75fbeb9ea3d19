package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// DefaultVolume is the initial player volume.
const DefaultVolume = 0.3

// UseDefault as the volume argument to Play selects the player volume.
const UseDefault = -1.0

// Player triggers cues fire-and-forget. Play never blocks on playback and
// never reports failure to the caller.
type Player interface {
	Play(c Cue, volume float64)
	SetVolume(v float64)
	Volume() float64
	ToggleMute() bool
	Muted() bool
}

// level holds the volume and mute state shared by every player.
type level struct {
	mu     sync.Mutex
	volume float64
	muted  bool
}

func clampVolume(v float64) float64 {
	return max(0, min(1, v))
}

// SetVolume sets the player volume, clamped to [0, 1].
func (l *level) SetVolume(v float64) {
	l.mu.Lock()
	l.volume = clampVolume(v)
	l.mu.Unlock()
}

// Volume returns the player volume.
func (l *level) Volume() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.volume
}

// ToggleMute flips mute and returns the new state.
func (l *level) ToggleMute() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.muted = !l.muted
	return l.muted
}

// Muted reports whether playback is suppressed.
func (l *level) Muted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.muted
}

// gain resolves the effective gain for a Play call. ok is false when
// nothing should be played.
func (l *level) gain(volume float64) (float64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.muted {
		return 0, false
	}
	if volume < 0 {
		volume = l.volume
	}
	return clampVolume(volume), true
}

// Silent is a Player that tracks volume and mute but produces no sound.
// It is used when audio is disabled or no output device is available.
type Silent struct {
	level
}

// NewSilent creates a silent player.
func NewSilent(volume float64) *Silent {
	return &Silent{level: level{volume: clampVolume(volume)}}
}

// Play does nothing.
func (s *Silent) Play(Cue, float64) {}

// Options configures a SpeakerPlayer.
type Options struct {
	SampleRate int
	Volume     float64
	ClipsDir   string // optional directory of <cue>.wav overrides
}

// SpeakerPlayer mixes cues into the system audio device.
type SpeakerPlayer struct {
	level
	rate  beep.SampleRate
	mixer *beep.Mixer
	clips map[Cue]*beep.Buffer
}

// NewSpeakerPlayer opens the audio device and starts the mixer.
func NewSpeakerPlayer(opts Options) (*SpeakerPlayer, error) {
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	rate := beep.SampleRate(opts.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}

	p := newSpeakerPlayer(rate, opts.Volume, &beep.Mixer{})
	if opts.ClipsDir != "" {
		if err := p.LoadClips(opts.ClipsDir); err != nil {
			speaker.Close()
			return nil, err
		}
	}
	speaker.Play(p.mixer)
	return p, nil
}

func newSpeakerPlayer(rate beep.SampleRate, volume float64, mixer *beep.Mixer) *SpeakerPlayer {
	return &SpeakerPlayer{
		level: level{volume: clampVolume(volume)},
		rate:  rate,
		mixer: mixer,
		clips: make(map[Cue]*beep.Buffer),
	}
}

// LoadClips decodes <cue>.wav files from dir. Missing files keep the
// synthesized sound.
func (p *SpeakerPlayer) LoadClips(dir string) error {
	for _, c := range Cues() {
		path := filepath.Join(dir, c.String()+".wav")
		buf, err := loadWAV(path, p.rate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		p.clips[c] = buf
		slog.Debug("audio clip loaded", "cue", c.String(), "path", path)
	}
	return nil
}

func loadWAV(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != rate {
		src = beep.Resample(4, format.SampleRate, rate, s)
	}
	format.SampleRate = rate
	buf := beep.NewBuffer(format)
	buf.Append(src)
	return buf, nil
}

// Play queues a cue. A negative volume uses the player volume.
func (p *SpeakerPlayer) Play(c Cue, volume float64) {
	gain, ok := p.gain(volume)
	if !ok {
		return
	}
	s, err := p.source(c)
	if err != nil {
		slog.Warn("audio play failed", "cue", c.String(), "error", err)
		return
	}

	speaker.Lock()
	p.mixer.Add(withGain(s, gain))
	speaker.Unlock()
}

func (p *SpeakerPlayer) source(c Cue) (beep.Streamer, error) {
	if buf, ok := p.clips[c]; ok {
		return buf.Streamer(0, buf.Len()), nil
	}
	return Synthesize(c, p.rate)
}

// Active returns the number of cues still playing.
func (p *SpeakerPlayer) Active() int {
	speaker.Lock()
	defer speaker.Unlock()
	return p.mixer.Len()
}

// Close stops playback and releases the device.
func (p *SpeakerPlayer) Close() {
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// New returns a speaker player, or a silent one when audio is disabled or
// the device cannot be opened.
func New(enabled bool, opts Options) Player {
	if !enabled {
		return NewSilent(opts.Volume)
	}
	p, err := NewSpeakerPlayer(opts)
	if err != nil {
		slog.Warn("audio unavailable, continuing silent", "error", err)
		return NewSilent(opts.Volume)
	}
	return p
}
