package builder

import (
	"errors"
	"sync"
	"time"

	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

var ErrNoAction = errors.New("no action to dispatch")

// Builder owns the history of one survey document. All edits go through Dispatch.
type Builder struct {
	mu        sync.RWMutex
	state     State
	autosaver *Autosaver
}

// NewBuilder creates an empty builder. With a nil store nothing is persisted and the save
// status stays saved.
func NewBuilder(store DraftStore, scheduler Scheduler, autosaveDelay time.Duration) *Builder {
	b := &Builder{
		state: State{Past: []*types.Survey{}, Future: []*types.Survey{}},
	}
	if store != nil {
		b.autosaver = NewAutosaver(store, scheduler, autosaveDelay, b.Present)
	}
	return b
}

// Dispatch applies the action and returns the resulting state. Every change of the present
// document restarts the autosave timer.
func (b *Builder) Dispatch(action Action) State {
	next, _, _ := b.DispatchIf(action, nil)
	return next
}

// DispatchIf runs check against the present document and applies the action only when check
// returns nil. changed reports whether the present document was replaced.
func (b *Builder) DispatchIf(action Action, check func(present *types.Survey) error) (next State, changed bool, err error) {
	return b.DispatchFunc(func(present *types.Survey) (Action, error) {
		if check != nil {
			if err := check(present); err != nil {
				return action, err
			}
		}
		return action, nil
	})
}

// DispatchFunc builds the action from the present document and applies it. Building and applying
// happen under the same lock, so no other edit can land in between. A build error rejects the edit.
func (b *Builder) DispatchFunc(build func(present *types.Survey) (Action, error)) (next State, changed bool, err error) {
	b.mu.Lock()
	prev := b.state
	action, err := build(prev.Present)
	if err != nil || action == nil {
		b.mu.Unlock()
		if action != nil {
			actionsDispatched.WithLabelValues(string(action.ActionType()), OUTCOME_REJECTED).Inc()
		}
		if err == nil {
			err = ErrNoAction
		}
		return prev, false, err
	}
	next = Reduce(prev, action)
	b.state = next
	b.mu.Unlock()

	changed = next.Present != prev.Present
	if changed {
		actionsDispatched.WithLabelValues(string(action.ActionType()), OUTCOME_APPLIED).Inc()
	} else {
		actionsDispatched.WithLabelValues(string(action.ActionType()), OUTCOME_NOOP).Inc()
	}
	if changed && next.Present != nil && b.autosaver != nil {
		b.autosaver.Schedule()
	}
	return next, changed, nil
}

func (b *Builder) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

func (b *Builder) Present() *types.Survey {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state.Present
}

func (b *Builder) CanUndo() bool {
	return b.State().CanUndo()
}

func (b *Builder) CanRedo() bool {
	return b.State().CanRedo()
}

func (b *Builder) SaveStatus() SaveStatus {
	if b.autosaver == nil {
		return SAVE_STATUS_SAVED
	}
	return b.autosaver.Status()
}

func (b *Builder) LastSaved() (time.Time, bool) {
	if b.autosaver == nil {
		return time.Time{}, false
	}
	return b.autosaver.LastSaved()
}

// Flush writes pending changes immediately.
func (b *Builder) Flush() error {
	if b.autosaver == nil {
		return nil
	}
	return b.autosaver.Flush()
}

// Close stops the pending autosave. The builder must not be used for persistence afterwards.
func (b *Builder) Close() {
	if b.autosaver != nil {
		b.autosaver.Close()
	}
}
