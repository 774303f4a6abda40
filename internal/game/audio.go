package game

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"lunarfolio/internal/sfx"
	"lunarfolio/internal/sim"
)

const (
	maxVoices   = 6
	droneVolume = 0.35
)

// Audio plays interface sounds and the ambient drone on one oto context.
// Effects are rendered once and reused.
type Audio struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	voices int32

	mu           sync.Mutex
	drone        oto.Player
	droneStarted bool
	closed       bool

	cache map[sfx.Kind][]byte
}

// NewAudio opens the output device. volume is the master gain in [0, 1].
func NewAudio(volume float64) (*Audio, error) {
	ctx, ready, err := oto.NewContext(sfx.SampleRate, sfx.ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	a := &Audio{
		ctx:    ctx,
		ready:  ready,
		volume: volume,
		cache:  make(map[sfx.Kind][]byte),
	}
	for _, k := range []sfx.Kind{sfx.Enter, sfx.Exit, sfx.Reject, sfx.Jump, sfx.Land,
		sfx.RevealInfo, sfx.RevealCuriosity, sfx.CameraSwitch} {
		a.cache[k] = sfx.Generate(k)
	}
	return a, nil
}

func (a *Audio) isReady() bool {
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

// Play starts a one-shot effect. It is dropped when the device is not ready
// yet or too many effects are already sounding.
func (a *Audio) Play(k sfx.Kind) {
	if a == nil || a.volume <= 0 || !a.isReady() {
		return
	}
	samples := a.cache[k]
	if len(samples) == 0 {
		return
	}
	if atomic.AddInt32(&a.voices, 1) > maxVoices {
		atomic.AddInt32(&a.voices, -1)
		return
	}
	go func() {
		defer atomic.AddInt32(&a.voices, -1)
		player := a.ctx.NewPlayer(sfx.NewReader(samples))
		player.SetVolume(a.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// StartDrone begins the endless ambient pad once the device is ready.
func (a *Audio) StartDrone() {
	if a == nil || a.volume <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.droneStarted {
		return
	}
	a.droneStarted = true
	go func() {
		<-a.ready
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.closed {
			return
		}
		a.drone = a.ctx.NewPlayer(&sfx.Drone{})
		a.drone.SetVolume(a.volume * droneVolume)
		a.drone.Play()
	}()
}

// Close stops the drone. One-shots finish on their own.
func (a *Audio) Close() {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	if a.drone != nil {
		a.drone.Close()
		a.drone = nil
	}
}

// Subscribe plays a sound for every event that has one.
func (a *Audio) Subscribe(bus *sim.EventBus) {
	bus.SubscribeAll(func(e sim.Event) {
		if k, ok := sfx.ForEvent(e); ok {
			a.Play(k)
		}
	})
}
