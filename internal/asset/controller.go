// Package asset owns the per-slide background fetch lifecycle:
// Idle -> Loading -> Loaded | Failed.
package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pitchdeck/internal/imagegen"
	"pitchdeck/internal/retry"
)

// Options configures a Controller.
type Options struct {
	Policy retry.Policy
	Logger *zerolog.Logger
	// Sleep replaces time.Sleep between retries.
	Sleep func(time.Duration)
	// Name identifies the slide in log lines.
	Name string
}

// Controller drives one slide's FetchState. All methods are safe for
// concurrent use. At most one fetch is in flight at any time.
type Controller struct {
	req    imagegen.AssetRequest
	client imagegen.Client
	policy retry.Policy
	logger zerolog.Logger
	sleep  func(time.Duration)

	mu        sync.Mutex
	state     State
	inFlight  bool
	disposed  bool
	observers map[int]func(State)
	nextObsID int
	pending   []State
	draining  bool

	wg sync.WaitGroup
}

// New returns an idle controller for req. A zero Policy falls back to
// retry.DefaultPolicy.
func New(req imagegen.AssetRequest, client imagegen.Client, opts Options) *Controller {
	policy := opts.Policy
	if policy.MaxAttempts < 1 {
		policy = retry.DefaultPolicy()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	if opts.Name != "" {
		logger = logger.With().Str("slide", opts.Name).Logger()
	}
	return &Controller{
		req:       req,
		client:    client,
		policy:    policy,
		logger:    logger,
		sleep:     opts.Sleep,
		state:     Idle(),
		observers: make(map[int]func(State)),
	}
}

// Request returns the slide's asset request.
func (c *Controller) Request() imagegen.AssetRequest {
	return c.req
}

// CurrentState returns a snapshot of the lifecycle state.
func (c *Controller) CurrentState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnVisibilityChange receives the visibility signal. Becoming active starts a
// fetch only from Idle; Failed waits for an explicit Retry. Becoming inactive
// never interrupts a fetch, and its result is still applied.
func (c *Controller) OnVisibilityChange(active bool) {
	if !active {
		return
	}
	c.start(PhaseIdle)
}

// Retry re-attempts from Failed. It is a no-op in every other phase or while
// a fetch is in flight, and reports whether a fetch was started.
func (c *Controller) Retry() bool {
	return c.start(PhaseFailed)
}

// Dispose detaches the controller. A pending fetch still runs to completion
// but its result is discarded and observers are not called again.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.disposed = true
	c.observers = make(map[int]func(State))
	c.pending = nil
}

// Disposed reports whether Dispose has been called.
func (c *Controller) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Subscribe registers fn to receive every state after a transition, in
// transition order. The returned func removes it.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || fn == nil {
		return func() {}
	}
	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Wait blocks until no fetch is in flight.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) start(from Phase) bool {
	c.mu.Lock()
	if c.disposed || c.inFlight || c.state.Phase != from {
		c.mu.Unlock()
		return false
	}
	c.inFlight = true
	c.setStateLocked(Loading())
	c.wg.Add(1)
	c.mu.Unlock()

	go c.fetch()
	c.drain()
	return true
}

func (c *Controller) fetch() {
	defer c.wg.Done()

	started := time.Now()
	next := c.resolve()

	c.mu.Lock()
	c.inFlight = false
	if c.disposed {
		c.mu.Unlock()
		c.logger.Debug().Str("outcome", next.Phase.String()).Msg("asset: result discarded after dispose")
		return
	}
	c.setStateLocked(next)
	c.mu.Unlock()

	event := c.logger.Info()
	if next.Phase == PhaseFailed {
		event = c.logger.Warn().Str("kind", string(next.Kind)).Str("description", next.Description)
	}
	event.Dur("elapsed", time.Since(started)).Str("state", next.Phase.String()).Msg("asset: fetch settled")

	c.drain()
}

// resolve runs the network call under the retry policy and maps the outcome
// to the next state. A missing or undecodable payload is decided here, after
// the retry helper returned, so it never consumes retry budget.
func (c *Controller) resolve() State {
	req := imagegen.BuildRequest(c.req)
	opts := []retry.Option{
		retry.WithLogger(c.logger),
		retry.WithOperation("generate_image"),
	}
	if c.sleep != nil {
		opts = append(opts, retry.WithSleep(c.sleep))
	}

	resp, err := retry.Do(c.policy, func() (*imagegen.Response, error) {
		return c.client.GenerateImage(context.Background(), req)
	}, opts...)
	if err != nil {
		return failureState(err, c.policy.MaxAttempts)
	}

	inline, ok := resp.FirstImage()
	if !ok {
		return Failed(FailureMissingAsset, imagegen.ErrMissingAssetData.Error())
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(inline.Data))
	if err != nil {
		return Failed(FailureUndecodable, fmt.Sprintf("undecodable asset data: %v", err))
	}
	mime := inline.MIMEType
	if mime == "" {
		mime = "image/" + format
	}
	return Loaded(&Image{
		MIMEType: mime,
		Data:     inline.Data,
		Width:    cfg.Width,
		Height:   cfg.Height,
	})
}

func failureState(err error, attempts int) State {
	if errors.Is(err, imagegen.ErrUndecodableAsset) {
		return Failed(FailureUndecodable, err.Error())
	}
	if retry.IsRetryable(err) {
		return Failed(FailureTransient, fmt.Sprintf("transient service error after %d attempt(s): %s", attempts, describe(err)))
	}
	return Failed(FailureTerminal, "service error: "+describe(err))
}

func describe(err error) string {
	var se *imagegen.StatusError
	if !errors.As(err, &se) {
		return err.Error()
	}
	var label string
	switch {
	case se.Status != "" && se.Code != 0:
		label = fmt.Sprintf("%s (%d)", se.Status, se.Code)
	case se.Code != 0:
		label = fmt.Sprintf("status %d", se.Code)
	case se.Status != "":
		label = se.Status
	default:
		return err.Error()
	}
	if msg := strings.TrimSpace(se.Message); msg != "" {
		return label + ": " + msg
	}
	return label
}

// setStateLocked records a transition and queues it for observers. c.mu must
// be held.
func (c *Controller) setStateLocked(s State) {
	c.state = s
	if len(c.observers) > 0 {
		c.pending = append(c.pending, s)
	}
}

// drain delivers queued transitions outside the lock. Only one goroutine
// drains at a time, so observers see transitions in the order they happened.
// Disposal and unsubscription are re-checked before every callback, so no
// observer runs once Dispose has returned.
func (c *Controller) drain() {
	c.mu.Lock()
	if c.draining {
		c.mu.Unlock()
		return
	}
	c.draining = true
	for len(c.pending) > 0 && !c.disposed {
		next := c.pending[0]
		c.pending = c.pending[1:]
		for _, id := range c.observerIDsLocked() {
			if c.disposed {
				break
			}
			fn, ok := c.observers[id]
			if !ok {
				continue
			}
			c.mu.Unlock()
			fn(next)
			c.mu.Lock()
		}
	}
	c.draining = false
	c.mu.Unlock()
}

// observerIDsLocked lists subscriber ids in subscription order. c.mu must be
// held.
func (c *Controller) observerIDsLocked() []int {
	if len(c.observers) == 0 {
		return nil
	}
	ids := make([]int, 0, len(c.observers))
	for id := 0; id < c.nextObsID; id++ {
		if _, ok := c.observers[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
