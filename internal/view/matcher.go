package view

import (
	"c4kit/internal/errors"
	"c4kit/internal/model"
)

// RelationshipSource is the read-only part of the model the matcher needs
type RelationshipSource interface {
	RelationshipsBetween(source, destination *model.Element) []*model.Relationship
}

// match is the outcome of resolving a requested step
type match struct {
	relationship *model.Relationship
	response     bool
	description  string
}

// matcher finds the single relationship a requested "source talks to
// destination" step refers to.
type matcher struct {
	rels RelationshipSource
}

// resolve looks for a forward relationship first, then for a reverse one,
// which makes the step a response. A forward match must have the requested
// description when one is given; a response carries the caller's description
// as reply text and only has to match the technology.
func (m matcher) resolve(source, destination *model.Element, description, technology string) (*match, error) {
	forwardAll := m.rels.RelationshipsBetween(source, destination)
	forward := filterByDescription(forwardAll, description)
	forwardTech := filterByTechnology(forward, technology)

	switch len(forwardTech) {
	case 1:
		r := forwardTech[0]
		return &match{relationship: r, description: orDefault(description, r.Description())}, nil
	case 0:
	default:
		return nil, ambiguous(source, destination, technology)
	}

	reverse := m.rels.RelationshipsBetween(destination, source)
	reverseTech := filterByTechnology(reverse, technology)

	switch len(reverseTech) {
	case 1:
		r := reverseTech[0]
		return &match{relationship: r, response: true, description: orDefault(description, r.Description())}, nil
	case 0:
	default:
		return nil, ambiguous(source, destination, technology)
	}

	if technology != "" && len(forward)+len(reverse) > 0 {
		return nil, errors.Errorf(errors.TechnologyMismatch,
			"A relationship between %s and %s with technology '%s' does not exist in the model.",
			source.Name(), destination.Name(), technology)
	}
	return nil, errors.Errorf(errors.NoSuchRelationship,
		"A relationship between %s and %s does not exist in the model.",
		source.Name(), destination.Name())
}

// resolveResponse finds the relationship a persisted response step answers:
// the single relationship from destination back to source, narrowed by
// technology. The reply text plays no part in the search.
func (m matcher) resolveResponse(source, destination *model.Element, technology string) (*match, error) {
	all := m.rels.RelationshipsBetween(destination, source)
	candidates := filterByTechnology(all, technology)

	switch len(candidates) {
	case 1:
		return &match{relationship: candidates[0], response: true}, nil
	case 0:
	default:
		return nil, ambiguous(destination, source, technology)
	}

	if technology != "" && len(all) > 0 {
		return nil, errors.Errorf(errors.TechnologyMismatch,
			"A relationship from %s to %s with technology '%s' does not exist in the model.",
			destination.Name(), source.Name(), technology)
	}
	return nil, errors.Errorf(errors.NoSuchRelationship,
		"%s has no relationship to %s that %s could respond to.",
		destination.Name(), source.Name(), source.Name())
}

func ambiguous(source, destination *model.Element, technology string) error {
	if technology != "" {
		return errors.Errorf(errors.AmbiguousRelationship,
			"More than one relationship between %s and %s with technology '%s' exists; the step is ambiguous.",
			source.Name(), destination.Name(), technology)
	}
	return errors.Errorf(errors.AmbiguousRelationship,
		"More than one relationship between %s and %s exists; specify a technology to choose one.",
		source.Name(), destination.Name())
}

func filterByDescription(rels []*model.Relationship, description string) []*model.Relationship {
	if description == "" {
		return rels
	}
	var out []*model.Relationship
	for _, r := range rels {
		if r.Description() == description {
			out = append(out, r)
		}
	}
	return out
}

func filterByTechnology(rels []*model.Relationship, technology string) []*model.Relationship {
	if technology == "" {
		return rels
	}
	var out []*model.Relationship
	for _, r := range rels {
		if r.Technology() == technology {
			out = append(out, r)
		}
	}
	return out
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
