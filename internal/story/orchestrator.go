package story

import (
	"context"
	"log"
	"time"
)

// DefaultTimeout bounds one story request before the fallback is shown.
const DefaultTimeout = 8 * time.Second

// PendingText is shown while a request is in flight.
const PendingText = "Writing the story... please wait a moment."

// Display shows story output. Implementations must be safe to call from
// the goroutine running Request.
type Display interface {
	ShowPending()
	ShowStory(text string)
}

// Outcome is what a request ended up showing.
type Outcome struct {
	Text     string
	Fallback bool
	Err      error
}

// Orchestrator turns an ordered selection into a displayed story.
type Orchestrator struct {
	Generator Generator
	Display   Display
	Timeout   time.Duration
}

func NewOrchestrator(gen Generator, display Display, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Orchestrator{Generator: gen, Display: display, Timeout: timeout}
}

// Request asks the generator exactly once. Failures never reach the
// display as errors: the local fallback is shown instead.
func (o *Orchestrator) Request(ctx context.Context, descriptions []string) Outcome {
	o.Display.ShowPending()

	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	start := time.Now()
	text, err := o.Generator.Generate(ctx, BuildPrompt(descriptions))
	if err != nil {
		log.Printf("[STORY] Generation failed after %v, showing fallback: %v", time.Since(start).Round(time.Millisecond), err)
		out := Outcome{Text: Fallback(descriptions), Fallback: true, Err: err}
		o.Display.ShowStory(out.Text)
		return out
	}

	log.Printf("[STORY] Received %d chars in %v", len(text), time.Since(start).Round(time.Millisecond))
	o.Display.ShowStory(text)
	return Outcome{Text: text}
}
