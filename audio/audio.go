// Package audio plays short feedback tones for canvas actions.
// Entirely optional: a nil *Player is valid and silent, so callers
// never need to branch on whether sound is enabled.
package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player owns the speaker and emits feedback tones
type Player struct{}

// NewPlayer initializes the speaker. Failure is non-fatal to the
// application; callers log it and continue with a nil player.
func NewPlayer() (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Player{}, nil
}

// Close shuts the speaker down
func (p *Player) Close() {
	if p == nil {
		return
	}
	speaker.Close()
}

// Place chirps for a brush or text placement
func (p *Player) Place() {
	p.tone(880, 40*time.Millisecond)
}

// Erase thuds for an erasure
func (p *Player) Erase() {
	p.tone(440, 40*time.Millisecond)
}

// Pick rings for a palette selection
func (p *Player) Pick() {
	p.tone(660, 60*time.Millisecond)
}

func (p *Player) tone(freq float64, d time.Duration) {
	if p == nil {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}
