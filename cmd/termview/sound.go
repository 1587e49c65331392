package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const blipRate = beep.SampleRate(44100)

// blipper plays short tones. The zero value is silent.
type blipper struct {
	ok bool
}

func newBlipper() (*blipper, error) {
	if err := speaker.Init(blipRate, blipRate.N(time.Second/10)); err != nil {
		return &blipper{}, err
	}
	return &blipper{ok: true}, nil
}

func (b *blipper) blip(freq float64) {
	if b == nil || !b.ok {
		return
	}
	sine, err := generators.SineTone(blipRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(blipRate.N(50*time.Millisecond), sine))
}
