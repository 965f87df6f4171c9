package builder

import (
	"log/slog"
	"sync"
	"time"

	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

// DEFAULT_AUTOSAVE_DELAY is the quiet period after the last change before a draft is written.
const DEFAULT_AUTOSAVE_DELAY = 2 * time.Second

type SaveStatus string

const (
	SAVE_STATUS_SAVED   SaveStatus = "saved"
	SAVE_STATUS_SAVING  SaveStatus = "saving"
	SAVE_STATUS_UNSAVED SaveStatus = "unsaved"
)

// DraftStore persists autosaved drafts. Implementations: local Badger store and MongoDB.
type DraftStore interface {
	SaveDraft(draft types.SurveyDraft) error
	LoadDraft(surveyID string) (types.SurveyDraft, error)
	ClearDraft(surveyID string) error
}

// CancelFunc stops a scheduled call. It reports whether the call was prevented from running.
type CancelFunc func() bool

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) CancelFunc
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) CancelFunc {
	return time.AfterFunc(d, f).Stop
}

// NewTimeScheduler returns a Scheduler backed by time.AfterFunc.
func NewTimeScheduler() Scheduler {
	return timeScheduler{}
}

// Autosaver writes the latest document snapshot after changes settle. Each Schedule call
// replaces the pending write; the snapshot is read when the write fires, not when it is scheduled.
type Autosaver struct {
	mu        sync.Mutex
	store     DraftStore
	scheduler Scheduler
	delay     time.Duration
	snapshot  func() *types.Survey
	now       func() time.Time

	status     SaveStatus
	lastSaved  time.Time
	cancel     CancelFunc
	generation uint64
	closed     bool
}

func NewAutosaver(store DraftStore, scheduler Scheduler, delay time.Duration, snapshot func() *types.Survey) *Autosaver {
	if scheduler == nil {
		scheduler = NewTimeScheduler()
	}
	if delay <= 0 {
		delay = DEFAULT_AUTOSAVE_DELAY
	}
	return &Autosaver{
		store:     store,
		scheduler: scheduler,
		delay:     delay,
		snapshot:  snapshot,
		now:       time.Now,
		status:    SAVE_STATUS_SAVED,
	}
}

// Schedule marks the document unsaved and (re)starts the debounce timer.
func (a *Autosaver) Schedule() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	a.status = SAVE_STATUS_UNSAVED
	a.generation++
	if a.cancel != nil {
		a.cancel()
	}
	gen := a.generation
	a.cancel = a.scheduler.AfterFunc(a.delay, func() {
		a.fire(gen)
	})
}

func (a *Autosaver) fire(gen uint64) {
	a.mu.Lock()
	if a.closed || gen != a.generation {
		a.mu.Unlock()
		return
	}
	a.status = SAVE_STATUS_SAVING
	a.cancel = nil
	a.mu.Unlock()

	// snapshot is read without holding the lock: it takes the owner's lock
	survey := a.snapshot()
	err := a.save(survey)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		if gen == a.generation {
			a.status = SAVE_STATUS_UNSAVED
		}
		return
	}
	if gen == a.generation {
		a.status = SAVE_STATUS_SAVED
	}
}

func (a *Autosaver) save(survey *types.Survey) error {
	if survey == nil {
		return nil
	}
	start := a.now()
	err := a.store.SaveDraft(types.SurveyDraft{Survey: survey, SavedAt: start})
	autosaveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		autosaveWrites.WithLabelValues("error").Inc()
		slog.Error("failed to autosave survey", slog.String("surveyID", survey.ID), slog.String("error", err.Error()))
		return err
	}
	autosaveWrites.WithLabelValues("success").Inc()

	a.mu.Lock()
	a.lastSaved = start
	a.mu.Unlock()
	return nil
}

// Flush cancels the pending timer and writes the latest snapshot right away if it is unsaved.
func (a *Autosaver) Flush() error {
	a.mu.Lock()
	if a.closed || a.status == SAVE_STATUS_SAVED {
		a.mu.Unlock()
		return nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.generation++
	gen := a.generation
	a.status = SAVE_STATUS_SAVING
	a.mu.Unlock()

	err := a.save(a.snapshot())

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen == a.generation {
		if err != nil {
			a.status = SAVE_STATUS_UNSAVED
		} else {
			a.status = SAVE_STATUS_SAVED
		}
	}
	return err
}

// Close cancels any pending write. Nothing is written after Close returns, except a write that
// was already running.
func (a *Autosaver) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.closed = true
}

func (a *Autosaver) Status() SaveStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// LastSaved returns the time of the last successful write; ok is false if nothing was written yet.
func (a *Autosaver) LastSaved() (t time.Time, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastSaved, !a.lastSaved.IsZero()
}
