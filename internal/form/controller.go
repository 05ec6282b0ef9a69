// Package form holds the applicant-side state machine: the draft record,
// its per-field errors and the single in-flight submission.
package form

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/admission-relay/internal/model"
)

// Submitter delivers a validated application to the relay.
type Submitter interface {
	SubmitApplication(ctx context.Context, payload model.ApplicationPayload) error
}

// State is what the form currently displays.
type State int

const (
	StateEditing State = iota
	StateSubmitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitted:
		return "submitted"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome is the result of one Submit call.
type Outcome int

const (
	// OutcomeInvalid means validation failed; no request was made.
	OutcomeInvalid Outcome = iota
	// OutcomeSubmitted means the relay accepted the application.
	OutcomeSubmitted
	// OutcomeFailed means the relay call failed; the draft is kept.
	OutcomeFailed
	// OutcomeBusy means another submission was still in flight.
	OutcomeBusy
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeFailed:
		return "failed"
	case OutcomeBusy:
		return "busy"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Controller owns one applicant's draft. It is safe for concurrent use.
type Controller struct {
	inst      model.Institution
	submitter Submitter
	log       zerolog.Logger

	mu         sync.Mutex
	draft      model.ApplicationRecord
	errs       map[model.Field]string
	submitting bool
	state      State
}

// New creates a Controller with an empty draft for inst.
func New(inst model.Institution, submitter Submitter, log zerolog.Logger) *Controller {
	return &Controller{
		inst:      inst,
		submitter: submitter,
		log:       log.With().Str("component", "form_controller").Str("institution", string(inst.Token)).Logger(),
		errs:      make(map[model.Field]string),
	}
}

// Institution returns the institution the form was built for.
func (c *Controller) Institution() model.Institution { return c.inst }

// UpdateField sets one draft attribute and clears that field's error
// without re-validating it.
func (c *Controller) UpdateField(field model.Field, value string) error {
	if !field.Valid() {
		return fmt.Errorf("%w: %d", model.ErrUnknownField, int(field))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.draft.Set(field, value); err != nil {
		return err
	}
	delete(c.errs, field)
	return nil
}

// Validate runs every rule against the draft and records the error set.
func (c *Controller) Validate() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *Controller) validateLocked() Result {
	res := ValidateRecord(c.inst, c.draft)
	c.errs = res.Errors
	return Result{Valid: res.Valid, Errors: copyErrors(res.Errors)}
}

// Submit validates the draft and, when valid, sends it exactly once.
// A call made while another submission is in flight returns OutcomeBusy.
func (c *Controller) Submit(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		c.log.Debug().Msg("submit ignored, submission in flight")
		return OutcomeBusy
	}

	if res := c.validateLocked(); !res.Valid {
		c.mu.Unlock()
		c.log.Debug().Int("error_count", len(res.Errors)).Msg("submit blocked by validation")
		return OutcomeInvalid
	}

	c.submitting = true
	payload := model.ApplicationPayload{
		ApplicationRecord: c.draft,
		Institution:       c.inst.Token,
	}
	c.mu.Unlock()

	err := c.submitter.SubmitApplication(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err != nil {
		c.log.Error().Err(err).Msg("submission failed")
		c.state = StateFailed
		return OutcomeFailed
	}

	c.draft = model.ApplicationRecord{}
	c.errs = make(map[model.Field]string)
	c.state = StateSubmitted
	c.log.Info().Msg("application submitted")
	return OutcomeSubmitted
}

// Reset clears the draft and returns the form to editing.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = model.ApplicationRecord{}
	c.errs = make(map[model.Field]string)
	c.state = StateEditing
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() model.ApplicationRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Errors returns a copy of the current per-field errors.
func (c *Controller) Errors() map[model.Field]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyErrors(c.errs)
}

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// State returns the current display state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func copyErrors(in map[model.Field]string) map[model.Field]string {
	out := make(map[model.Field]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
