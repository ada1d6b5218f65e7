package ui

import (
	"time"

	"fyne.io/fyne/v2"
)

// Ticker calls back once per display frame between Start and Stop.
type Ticker interface {
	Start()
	Stop()
}

// TickerFactory builds a ticker that calls tick on every frame.
type TickerFactory func(tick func()) Ticker

// AnimationTicker drives tick from fyne's animation clock.
func AnimationTicker(tick func()) Ticker {
	a := fyne.NewAnimation(time.Second, func(float32) { tick() })
	a.Curve = fyne.AnimationLinear
	a.RepeatCount = fyne.AnimationRepeatForever
	return a
}

// FrameLoop redraws once per frame while Active holds and stops itself on
// the first frame where it does not.
type FrameLoop struct {
	Active func() bool
	Draw   func()

	newTicker TickerFactory
	ticker    Ticker
}

func NewFrameLoop(active func() bool, draw func(), factory TickerFactory) *FrameLoop {
	if factory == nil {
		factory = AnimationTicker
	}
	return &FrameLoop{Active: active, Draw: draw, newTicker: factory}
}

func (l *FrameLoop) Running() bool { return l.ticker != nil }

// Start is a no-op while the loop is already running.
func (l *FrameLoop) Start() {
	if l.ticker != nil {
		return
	}
	l.ticker = l.newTicker(l.frame)
	l.ticker.Start()
}

func (l *FrameLoop) Stop() {
	if l.ticker == nil {
		return
	}
	l.ticker.Stop()
	l.ticker = nil
}

func (l *FrameLoop) frame() {
	if l.ticker == nil {
		return
	}
	if !l.Active() {
		l.Stop()
		return
	}
	l.Draw()
}
