package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTicker struct {
	tick    func()
	started int
	stopped int
}

func (f *fakeTicker) Start() { f.started++ }
func (f *fakeTicker) Stop()  { f.stopped++ }

type tickerRecorder struct {
	tickers []*fakeTicker
}

func (r *tickerRecorder) factory(tick func()) Ticker {
	t := &fakeTicker{tick: tick}
	r.tickers = append(r.tickers, t)
	return t
}

func (r *tickerRecorder) last() *fakeTicker { return r.tickers[len(r.tickers)-1] }

func TestFrameLoopStopsWhenInactive(t *testing.T) {
	rec := &tickerRecorder{}
	active := true
	draws := 0
	loop := NewFrameLoop(func() bool { return active }, func() { draws++ }, rec.factory)

	loop.Start()
	loop.Start()
	assert.Len(t, rec.tickers, 1)
	assert.True(t, loop.Running())

	tk := rec.last()
	tk.tick()
	tk.tick()
	assert.Equal(t, 2, draws)

	active = false
	tk.tick()
	assert.Equal(t, 2, draws)
	assert.False(t, loop.Running())
	assert.Equal(t, 1, tk.stopped)

	// Late ticks from a stopped ticker are ignored.
	tk.tick()
	assert.Equal(t, 2, draws)
}

func TestFrameLoopRestarts(t *testing.T) {
	rec := &tickerRecorder{}
	loop := NewFrameLoop(func() bool { return true }, func() {}, rec.factory)

	loop.Start()
	loop.Stop()
	loop.Stop()
	loop.Start()

	assert.Len(t, rec.tickers, 2)
	assert.Equal(t, 1, rec.tickers[0].stopped)
	assert.Equal(t, 1, rec.tickers[1].started)
}
