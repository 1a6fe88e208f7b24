// Package watch rebuilds the site when the export tree changes or on a fixed
// interval. Change bursts are coalesced so one build covers many events.
package watch

import (
	"context"
	"sync"
	"time"

	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
)

// Trigger is one coalesced rebuild request.
type Trigger struct {
	Requests   int
	LastReason string
	First      time.Time
	Last       time.Time
	Cause      string // quiet or max_delay
}

// DebouncerConfig bounds how long requests are held back.
type DebouncerConfig struct {
	// QuietWindow is how long no request must arrive before a trigger fires.
	QuietWindow time.Duration
	// MaxDelay caps how long a steady stream of requests can postpone it.
	MaxDelay time.Duration
}

type request struct {
	reason string
	at     time.Time
}

// Debouncer coalesces bursts of requests into triggers. At most one trigger
// waits for a consumer; later bursts fold into it.
type Debouncer struct {
	cfg DebouncerConfig

	requests  chan request
	triggers  chan Trigger
	readyOnce sync.Once
	ready     chan struct{}

	pending bool
	current Trigger
}

// NewDebouncer validates cfg and returns a Debouncer. Call Run to start it.
func NewDebouncer(cfg DebouncerConfig) (*Debouncer, error) {
	if cfg.QuietWindow <= 0 {
		return nil, ferrors.ValidationError("quiet window must be > 0").Build()
	}
	if cfg.MaxDelay <= 0 {
		return nil, ferrors.ValidationError("max delay must be > 0").Build()
	}
	return &Debouncer{
		cfg:      cfg,
		requests: make(chan request, 64),
		triggers: make(chan Trigger, 1),
		ready:    make(chan struct{}),
	}, nil
}

// Request asks for a rebuild. It never blocks; when the request buffer is
// full the request is dropped since a trigger is already due.
func (d *Debouncer) Request(reason string) {
	select {
	case d.requests <- request{reason: reason, at: time.Now()}:
	default:
	}
}

// Triggers delivers coalesced rebuild triggers.
func (d *Debouncer) Triggers() <-chan Trigger { return d.triggers }

// Ready is closed once Run is accepting requests.
func (d *Debouncer) Ready() <-chan struct{} { return d.ready }

// Run processes requests until ctx is done.
func (d *Debouncer) Run(ctx context.Context) error {
	quietTimer := stoppedTimer()
	maxTimer := stoppedTimer()
	var quietC, maxC <-chan time.Time

	d.readyOnce.Do(func() { close(d.ready) })

	for {
		select {
		case <-ctx.Done():
			quietTimer.Stop()
			maxTimer.Stop()
			return nil
		case req := <-d.requests:
			d.onRequest(req)
			resetTimer(quietTimer, d.cfg.QuietWindow)
			quietC = quietTimer.C
			if d.current.Requests == 1 {
				resetTimer(maxTimer, d.cfg.MaxDelay)
				maxC = maxTimer.C
			}
		case <-quietC:
			d.emit("quiet")
			quietC, maxC = nil, nil
		case <-maxC:
			d.emit("max_delay")
			quietC, maxC = nil, nil
		}
	}
}

func (d *Debouncer) onRequest(req request) {
	if !d.pending {
		d.pending = true
		d.current = Trigger{First: req.at}
	}
	d.current.Requests++
	d.current.Last = req.at
	d.current.LastReason = req.reason
}

func (d *Debouncer) emit(cause string) {
	if !d.pending {
		return
	}
	trig := d.current
	trig.Cause = cause
	d.pending = false
	select {
	case d.triggers <- trig:
	default:
		// A trigger is already waiting and will pick up these changes.
	}
}

func stoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return t
}

func resetTimer(t *time.Timer, after time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(after)
}
