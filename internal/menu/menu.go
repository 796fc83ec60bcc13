// Package menu implements the per-record action menu: a small state
// machine offering edit and delete on one job posting.
package menu

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/affanabid/Hiro/internal/domain"
	"github.com/affanabid/Hiro/internal/form"
	"github.com/affanabid/Hiro/internal/metrics"
	"github.com/affanabid/Hiro/internal/remote"
)

// Prompter asks the user a blocking yes/no question before a
// destructive action. Implementations live in the presentation layer.
type Prompter interface {
	Confirm(prompt string) bool
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(prompt string) bool

func (f PrompterFunc) Confirm(prompt string) bool { return f(prompt) }

// Action identifies a menu entry.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// State is the lifecycle of one menu instance.
type State int

const (
	StateClosed State = iota
	StateOpen
)

// Menu is the contextual action menu for a single record. It opens on
// invocation and closes on any selection or dismissal.
type Menu struct {
	job        domain.JobRecord
	collection remote.Collection
	notifier   form.Notifier
	prompter   Prompter
	logger     *zap.Logger
	state      State
}

// New creates a closed menu bound to one record.
func New(job domain.JobRecord, collection remote.Collection, notifier form.Notifier, prompter Prompter, logger *zap.Logger) *Menu {
	return &Menu{
		job:        job,
		collection: collection,
		notifier:   notifier,
		prompter:   prompter,
		logger:     logger,
	}
}

// State returns the current menu state.
func (m *Menu) State() State { return m.state }

// Open makes the menu actionable.
func (m *Menu) Open() { m.state = StateOpen }

// Dismiss closes the menu without selecting anything.
func (m *Menu) Dismiss() { m.state = StateClosed }

// Select performs the chosen action and closes the menu. ActionEdit
// returns a form controller bound to the record; ActionDelete asks for
// confirmation and, if confirmed, deletes the record and emits the
// collection-changed signal. A delete that fails on the wire is only
// logged; there is no user-facing recovery path for it.
func (m *Menu) Select(ctx context.Context, action Action) (*form.Controller, error) {
	if m.state != StateOpen {
		return nil, domain.ErrMenuClosed
	}
	m.state = StateClosed

	switch action {
	case ActionEdit:
		return form.NewEdit(m.job, m.collection, m.notifier, m.logger), nil
	case ActionDelete:
		m.deleteJob(ctx)
		return nil, nil
	}
	return nil, fmt.Errorf("unknown menu action %q", action)
}

func (m *Menu) deleteJob(ctx context.Context) {
	prompt := fmt.Sprintf("Are you sure you want to delete %q?", m.job.Title)
	if !m.prompter.Confirm(prompt) {
		return
	}

	if err := m.collection.Delete(ctx, m.job.ID); err != nil {
		metrics.MutationsTotal.WithLabelValues("delete", metrics.ResultFailure).Inc()
		m.logger.Error("Failed to delete job",
			zap.Int64("job_id", m.job.ID),
			zap.String("title", m.job.Title),
			zap.Error(err),
		)
		return
	}

	metrics.MutationsTotal.WithLabelValues("delete", metrics.ResultSuccess).Inc()
	m.notifier.NotifyChanged(ctx)
}
