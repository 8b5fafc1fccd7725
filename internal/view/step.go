package view

import "c4kit/internal/model"

// Step is one resolved, ordered interaction in a dynamic view. Steps are
// created by DynamicView.Add and never change afterwards.
type Step struct {
	relationship *model.Relationship
	description  string
	response     bool
	order        string
}

// Relationship returns the model relationship the step refers to
func (s *Step) Relationship() *model.Relationship { return s.relationship }

// Description returns the effective description: the caller's text, or the
// relationship's own description when none was given
func (s *Step) Description() string { return s.description }

// Response reports whether the step runs against the relationship's direction
func (s *Step) Response() bool { return s.response }

// Order returns the order label. Labels are decimal integers rendered as
// strings; parallel branches may share labels.
func (s *Step) Order() string { return s.order }

// Source returns the element the step starts from, which is the relationship's
// destination for a response
func (s *Step) Source() *model.Element {
	if s.response {
		return s.relationship.Destination()
	}
	return s.relationship.Source()
}

// Destination returns the element the step goes to
func (s *Step) Destination() *model.Element {
	if s.response {
		return s.relationship.Source()
	}
	return s.relationship.Destination()
}

// StepOption narrows the relationship a step resolves to
type StepOption func(*stepRequest)

type stepRequest struct {
	description string
	technology  string
}

// WithDescription sets the step description. For a forward step it must equal
// the relationship description; for a response it is free reply text.
func WithDescription(description string) StepOption {
	return func(r *stepRequest) { r.description = description }
}

// WithTechnology picks the relationship with this exact technology
func WithTechnology(technology string) StepOption {
	return func(r *stepRequest) { r.technology = technology }
}
