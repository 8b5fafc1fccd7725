package view

import (
	"c4kit/internal/errors"
	"c4kit/internal/model"
)

// scopeResolver enforces which elements may take part in a dynamic view,
// given the view's scope and the participants already present.
type scopeResolver struct {
	scope        *model.Element // nil when unscoped
	participants []*model.Element
}

// validate checks a candidate pair without recording it. Rules run in order
// over both elements and the first failure wins.
func (s *scopeResolver) validate(source, destination *model.Element) error {
	pair := []*model.Element{source, destination}
	for _, e := range pair {
		if err := s.checkKind(e); err != nil {
			return err
		}
	}
	for _, e := range pair {
		if err := s.checkContainment(e); err != nil {
			return err
		}
	}
	return nil
}

// checkKind applies the scope-specific rules for a single element
func (s *scopeResolver) checkKind(e *model.Element) error {
	if e == nil {
		return errors.Errorf(errors.ConfigurationError, "a step requires a source and a destination")
	}
	if !e.Kind().IsStatic() {
		return errors.Errorf(errors.ScopeViolation,
			"Only people, software systems, containers and components can be added to dynamic views.")
	}

	if s.scope == nil {
		if e.Kind() != model.KindPerson && e.Kind() != model.KindSoftwareSystem {
			return errors.Errorf(errors.ScopeViolation,
				"Only people and software systems can be added to this dynamic view.")
		}
		return nil
	}

	switch s.scope.Kind() {
	case model.KindSoftwareSystem:
		if e.Kind() == model.KindComponent {
			return errors.Errorf(errors.ScopeViolation,
				"Components can't be added to a dynamic view when the scope is a software system.")
		}
		if e == s.scope {
			return alreadyScope(e)
		}
	case model.KindContainer:
		if e == s.scope || e == s.scope.Parent() {
			return alreadyScope(e)
		}
	}
	return nil
}

// checkContainment rejects an element whose parent or child is already present
func (s *scopeResolver) checkContainment(e *model.Element) error {
	for _, p := range s.participants {
		if e.IsDescendantOf(p) {
			return errors.Errorf(errors.ScopeViolation, "The parent of %s is already in this view.", e.Name())
		}
		if e.IsAncestorOf(p) {
			return errors.Errorf(errors.ScopeViolation, "A child of %s is already in this view.", e.Name())
		}
	}
	return nil
}

// record adds accepted participants, skipping ones already present
func (s *scopeResolver) record(elements ...*model.Element) {
	for _, e := range elements {
		if !s.contains(e) {
			s.participants = append(s.participants, e)
		}
	}
}

func (s *scopeResolver) contains(e *model.Element) bool {
	for _, p := range s.participants {
		if p == e {
			return true
		}
	}
	return false
}

func alreadyScope(e *model.Element) error {
	return errors.Errorf(errors.ScopeViolation,
		"%s is already the scope of this view and cannot be added to it.", e.Name())
}
