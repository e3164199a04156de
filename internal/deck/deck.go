// Package deck holds the ordered slides of the pitch and fans the
// visibility signal out to each slide's asset controller.
package deck

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pitchdeck/internal/asset"
	"pitchdeck/internal/imagegen"
	"pitchdeck/internal/retry"
)

var (
	// ErrSlideOutOfRange is returned for an index outside the deck.
	ErrSlideOutOfRange = errors.New("deck: slide index out of range")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("deck: closed")
)

// Options configures a Deck.
type Options struct {
	Policy retry.Policy
	Logger *zerolog.Logger
	// PrefetchAhead marks that many slides after the active one visible too,
	// so their backgrounds are ready before the presenter gets there.
	PrefetchAhead int
	Sleep         func(time.Duration)
}

// Deck is safe for concurrent use.
type Deck struct {
	slides      []Slide
	controllers []*asset.Controller
	prefetch    int
	logger      zerolog.Logger

	mu     sync.Mutex
	active int
	closed bool
}

// New builds a deck with one idle controller per slide. Nothing is fetched
// until Show is called.
func New(slides []Slide, client imagegen.Client, opts Options) (*Deck, error) {
	if err := Validate(slides); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("deck: image client is required")
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	prefetch := opts.PrefetchAhead
	if prefetch < 0 {
		prefetch = 0
	}
	if prefetch > len(slides)-1 {
		prefetch = len(slides) - 1
	}

	d := &Deck{
		slides:      append([]Slide(nil), slides...),
		controllers: make([]*asset.Controller, len(slides)),
		prefetch:    prefetch,
		logger:      logger,
	}
	for i, s := range slides {
		d.controllers[i] = asset.New(imagegen.NewAssetRequest(s.Prompt), client, asset.Options{
			Policy: opts.Policy,
			Logger: &logger,
			Sleep:  opts.Sleep,
			Name:   s.ID,
		})
	}
	return d, nil
}

// Len returns the number of slides.
func (d *Deck) Len() int {
	return len(d.slides)
}

// Slides returns a copy of the slide definitions.
func (d *Deck) Slides() []Slide {
	return append([]Slide(nil), d.slides...)
}

// Slide returns the slide at index i.
func (d *Deck) Slide(i int) (Slide, error) {
	if err := d.checkIndex(i); err != nil {
		return Slide{}, err
	}
	return d.slides[i], nil
}

// Active returns the index of the presented slide.
func (d *Deck) Active() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Show makes slide i the presented one and pushes the visibility signal to
// every controller.
func (d *Deck) Show(i int) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	_, err := d.move(func(int) int { return i })
	return err
}

// Next advances one slide, wrapping to the first, and returns the new index.
func (d *Deck) Next() (int, error) {
	return d.step(1)
}

// Prev goes back one slide, wrapping to the last, and returns the new index.
func (d *Deck) Prev() (int, error) {
	return d.step(-1)
}

func (d *Deck) step(delta int) (int, error) {
	n := len(d.slides)
	return d.move(func(active int) int {
		return ((active+delta)%n + n) % n
	})
}

// move picks the new active index from the current one and records it in a
// single critical section, so concurrent moves never land on the same slide
// twice. Controllers are signalled after the lock is released.
func (d *Deck) move(target func(active int) int) (int, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return 0, ErrClosed
	}
	next := target(d.active)
	d.active = next
	visible := d.visibilityLocked()
	d.mu.Unlock()

	d.logger.Debug().Int("active", next).Str("slide", d.slides[next].ID).Msg("deck: show slide")
	for idx, c := range d.controllers {
		c.OnVisibilityChange(visible[idx])
	}
	return next, nil
}

// State returns slide i's fetch state.
func (d *Deck) State(i int) (asset.State, error) {
	if err := d.checkIndex(i); err != nil {
		return asset.State{}, err
	}
	return d.controllers[i].CurrentState(), nil
}

// Retry asks slide i's controller to re-attempt a failed fetch.
func (d *Deck) Retry(i int) (bool, error) {
	if err := d.checkIndex(i); err != nil {
		return false, err
	}
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed {
		return false, ErrClosed
	}
	return d.controllers[i].Retry(), nil
}

// Controller exposes slide i's controller, mainly for subscribing.
func (d *Deck) Controller(i int) (*asset.Controller, error) {
	if err := d.checkIndex(i); err != nil {
		return nil, err
	}
	return d.controllers[i], nil
}

// Wait blocks until no slide has a fetch in flight.
func (d *Deck) Wait() {
	for _, c := range d.controllers {
		c.Wait()
	}
}

// Close disposes every controller. Fetches still in flight finish in the
// background and are discarded.
func (d *Deck) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	for _, c := range d.controllers {
		c.Dispose()
	}
}

func (d *Deck) visibilityLocked() []bool {
	n := len(d.slides)
	visible := make([]bool, n)
	for k := 0; k <= d.prefetch; k++ {
		visible[(d.active+k)%n] = true
	}
	return visible
}

func (d *Deck) checkIndex(i int) error {
	if i < 0 || i >= len(d.slides) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrSlideOutOfRange, i, len(d.slides))
	}
	return nil
}
