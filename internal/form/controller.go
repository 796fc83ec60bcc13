package form

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/affanabid/Hiro/internal/domain"
	"github.com/affanabid/Hiro/internal/metrics"
	"github.com/affanabid/Hiro/internal/remote"
)

// Notifier receives the collection-changed signal after a successful
// mutation. The ViewModel implements it; tests substitute their own.
type Notifier interface {
	NotifyChanged(ctx context.Context)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context)

func (f NotifierFunc) NotifyChanged(ctx context.Context) { f(ctx) }

// State is the submission state of a dialog.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

// Controller owns one Model for the lifetime of a create-or-edit
// dialog. The submitting state is the only concurrency guard: a second
// Submit while one is in flight is rejected, mirroring a disabled
// submit button.
type Controller struct {
	collection remote.Collection
	notifier   Notifier
	logger     *zap.Logger

	mu    sync.Mutex
	state State
	model Model
	jobID int64 // 0 while creating
	open  bool
}

// NewCreate opens a controller for a new job posting.
func NewCreate(collection remote.Collection, notifier Notifier, logger *zap.Logger) *Controller {
	return &Controller{
		collection: collection,
		notifier:   notifier,
		logger:     logger,
		open:       true,
	}
}

// NewEdit opens a controller bound to an existing record, prefilled
// from its current values.
func NewEdit(job domain.JobRecord, collection remote.Collection, notifier Notifier, logger *zap.Logger) *Controller {
	return &Controller{
		collection: collection,
		notifier:   notifier,
		logger:     logger,
		model:      ModelFromRecord(job),
		jobID:      job.ID,
		open:       true,
	}
}

// Model returns a copy of the current form values.
func (c *Controller) Model() Model {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// SetModel replaces the form values, as the dialog does on every field
// change. Ignored while a submission is in flight.
func (c *Controller) SetModel(m Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return
	}
	c.model = m
}

// State returns the current submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open reports whether the dialog is still open.
func (c *Controller) Open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Close dismisses the dialog and discards the form values.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	c.model = Model{}
}

// Validate runs every field rule against the current values.
func (c *Controller) Validate() *ValidationError {
	return c.Model().Validate()
}

// Submit validates the model and sends it as a create (no bound ID) or
// a full update (bound ID). On success it emits exactly one
// collection-changed notification, closes the dialog, and discards the
// model. On failure the model and dialog are left intact so the user
// can retry. The state returns to idle in every outcome.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return domain.ErrSubmitInFlight
	}
	if verr := c.model.Validate(); verr != nil {
		c.mu.Unlock()
		return verr
	}
	c.state = StateSubmitting
	model := c.model
	jobID := c.jobID
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.state = StateIdle
		c.mu.Unlock()
	}()

	draft := model.Draft()

	op := "create"
	var err error
	if jobID == 0 {
		_, err = c.collection.Create(ctx, draft)
	} else {
		op = "update"
		_, err = c.collection.Update(ctx, jobID, draft)
	}
	if err != nil {
		metrics.MutationsTotal.WithLabelValues(op, metrics.ResultFailure).Inc()
		c.logger.Error("Failed to submit job form",
			zap.String("operation", op),
			zap.Int64("job_id", jobID),
			zap.Error(err),
		)
		return err
	}

	metrics.MutationsTotal.WithLabelValues(op, metrics.ResultSuccess).Inc()
	c.notifier.NotifyChanged(ctx)
	c.Close()
	return nil
}
