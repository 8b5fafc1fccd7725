// Package view derives views from an architecture model. The dynamic view records a
// runtime sequence of interactions: each step names two participants, is resolved to
// one relationship of the model, and receives an order label that encodes
// sequential and parallel execution.
package view

import (
	"log/slog"

	"github.com/google/uuid"

	"c4kit/internal/errors"
	"c4kit/internal/model"
	"c4kit/internal/slogutil"
)

// Options configures a new dynamic view. At most one of SoftwareSystem and
// Container may be set; leaving both nil makes the view unscoped.
type Options struct {
	Key            string         // Generated when empty
	Description    string         // Free text shown with the diagram
	SoftwareSystem *model.Element // Scope the view to a software system
	Container      *model.Element // Scope the view to a container
	Logger         *slog.Logger   // Defaults to a discard logger
}

// DynamicView owns its steps and sequence state. It holds a non-owning
// reference to the model it resolves relationships against.
type DynamicView struct {
	key         string
	description string
	element     *model.Element
	model       *model.Model

	scope      scopeResolver
	seq        sequenceCounter
	steps      []*Step
	inParallel bool
	logger     *slog.Logger
}

// NewDynamicView creates an empty dynamic view. When m is nil the view attaches
// to the model of its scoped element, if any.
func NewDynamicView(m *model.Model, opts Options) (*DynamicView, error) {
	if opts.SoftwareSystem != nil && opts.Container != nil {
		return nil, errors.Errorf(errors.ConfigurationError,
			"You cannot specify both a software system and a container for a dynamic view.")
	}

	element := opts.SoftwareSystem
	if element != nil && element.Kind() != model.KindSoftwareSystem {
		return nil, errors.Errorf(errors.ConfigurationError, "%s is not a software system", element.Name())
	}
	if opts.Container != nil {
		element = opts.Container
		if element.Kind() != model.KindContainer {
			return nil, errors.Errorf(errors.ConfigurationError, "%s is not a container", element.Name())
		}
	}

	if element != nil {
		if m == nil {
			m = element.Model()
		} else if element.Model() != m {
			return nil, errors.Errorf(errors.ElementNotFound, "%s is not part of this model", element.Name())
		}
	}

	key := opts.Key
	if key == "" {
		key = "dynamic-" + uuid.New().String()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}

	return &DynamicView{
		key:         key,
		description: opts.Description,
		element:     element,
		model:       m,
		scope:       scopeResolver{scope: element},
		logger:      logger.With("view", key),
	}, nil
}

// Key returns the view key
func (v *DynamicView) Key() string { return v.key }

// Description returns the view description
func (v *DynamicView) Description() string { return v.description }

// Element returns the scoped software system or container, or nil when unscoped
func (v *DynamicView) Element() *model.Element { return v.element }

// Model returns the model the view is attached to
func (v *DynamicView) Model() *model.Model { return v.model }

// SetModel attaches an unattached view to a model. A view that already has a
// model, or whose scope belongs to another model, cannot be re-attached.
func (v *DynamicView) SetModel(m *model.Model) error {
	if v.model != nil && v.model != m {
		return errors.Errorf(errors.ConfigurationError, "view %s is already attached to a model", v.key)
	}
	v.model = m
	return nil
}

// Steps returns the accepted steps in insertion order
func (v *DynamicView) Steps() []*Step {
	out := make([]*Step, len(v.steps))
	copy(out, v.steps)
	return out
}

// Add resolves a step from source to destination and appends it to the view.
// Add is all-or-nothing: on error neither the step list, the participants nor
// the sequence state change.
func (v *DynamicView) Add(source, destination *model.Element, opts ...StepOption) (*Step, error) {
	var req stepRequest
	for _, opt := range opts {
		opt(&req)
	}

	if err := v.scope.validate(source, destination); err != nil {
		v.logger.Debug("Step rejected", "source", source, "destination", destination, "error", err)
		return nil, err
	}
	if v.model == nil {
		return nil, errors.Errorf(errors.ConfigurationError, "view %s is not attached to a model", v.key)
	}
	for _, e := range []*model.Element{source, destination} {
		if e.Model() != v.model {
			return nil, errors.Errorf(errors.ElementNotFound, "%s is not part of this view's model", e.Name())
		}
	}

	found, err := matcher{rels: v.model}.resolve(source, destination, req.description, req.technology)
	if err != nil {
		v.logger.Debug("Step rejected", "source", source, "destination", destination, "error", err)
		return nil, err
	}

	step := &Step{
		relationship: found.relationship,
		description:  found.description,
		response:     found.response,
		order:        v.seq.next(),
	}
	v.scope.record(source, destination)
	v.steps = append(v.steps, step)

	v.logger.Debug("Step added",
		"order", step.order,
		"relationship", found.relationship.ID(),
		"response", step.response,
	)
	return step, nil
}

// ParallelSequence runs fn as one parallel branch. With continueBranch false the
// branch starts a new group at the current position; with continueBranch true it
// reuses the numbers of the previous branch in the group. Steps added after the
// block continue from the highest number any branch reached. The exit bookkeeping
// runs however fn returns, including by panic.
//
//	view.Add(a, b)                         // 1
//	view.ParallelSequence(false, func() error {
//	    view.Add(b, c)                     // 2
//	    view.Add(c, e)                     // 3
//	    return nil
//	})
//	view.ParallelSequence(true, func() error {
//	    view.Add(b, d)                     // 2
//	    view.Add(d, e)                     // 3
//	    return nil
//	})
//	view.Add(e, f)                         // 4
//
// Branches cannot be nested.
func (v *DynamicView) ParallelSequence(continueBranch bool, fn func() error) error {
	if v.inParallel {
		return errors.Errorf(errors.ConfigurationError, "parallel sequences cannot be nested")
	}

	v.inParallel = true
	v.seq.enterParallel(continueBranch)
	defer func() {
		v.seq.exitParallel()
		v.inParallel = false
	}()

	return fn()
}
