package model

import "c4kit/internal/errors"

// Element is a node in the architecture model. Elements are created through the
// Model's Add* methods and belong to exactly one model.
type Element struct {
	id          string
	name        string
	description string
	technology  string
	kind        Kind
	parent      *Element
	children    []*Element
	tags        *Tags
	properties  map[string]string
	model       *Model
}

// ElementSpec holds the user-supplied attributes of a new element
type ElementSpec struct {
	ID          string            // Optional; the model assigns one when empty
	Name        string            // Required display name
	Description string            // Optional free text
	Technology  string            // Containers, components and deployment nodes only
	Tags        []string          // Extra tags on top of the defaults
	Properties  map[string]string // Free-form key/value pairs
}

// ID returns the element's model-unique identifier
func (e *Element) ID() string { return e.id }

// Name returns the display name
func (e *Element) Name() string { return e.name }

// Description returns the element description
func (e *Element) Description() string { return e.description }

// Technology returns the element technology, if any
func (e *Element) Technology() string { return e.technology }

// Kind returns the element kind
func (e *Element) Kind() Kind { return e.kind }

// Parent returns the containing element, or nil for top-level elements
func (e *Element) Parent() *Element { return e.parent }

// Model returns the model the element belongs to
func (e *Element) Model() *Model { return e.model }

// Tags returns the element's tag set
func (e *Element) Tags() *Tags { return e.tags }

// Children returns a copy of the directly contained elements
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Property returns a property value and whether it was set
func (e *Element) Property(key string) (string, bool) {
	v, ok := e.properties[key]
	return v, ok
}

// Properties returns a copy of the element properties
func (e *Element) Properties() map[string]string {
	out := make(map[string]string, len(e.properties))
	for k, v := range e.properties {
		out[k] = v
	}
	return out
}

// CanonicalName returns a path-like name that is unique within the model,
// e.g. "/Internet Banking/API Application".
func (e *Element) CanonicalName() string {
	if e.parent == nil {
		return "/" + e.name
	}
	return e.parent.CanonicalName() + "/" + e.name
}

// IsAncestorOf reports whether e strictly contains other
func (e *Element) IsAncestorOf(other *Element) bool {
	if other == nil {
		return false
	}
	for p := other.parent; p != nil; p = p.parent {
		if p == e {
			return true
		}
	}
	return false
}

// IsDescendantOf reports whether e is strictly contained by other
func (e *Element) IsDescendantOf(other *Element) bool {
	if other == nil {
		return false
	}
	return other.IsAncestorOf(e)
}

// Relationships returns the relationships where e is the source, in insertion order.
// The slice is a snapshot; the model owns the relationships.
func (e *Element) Relationships() []*Relationship {
	if e.model == nil {
		return nil
	}
	var out []*Relationship
	for _, r := range e.model.relationships {
		if r.source == e {
			out = append(out, r)
		}
	}
	return out
}

// Uses adds a relationship from e to destination. Without WithDescription the
// description is "Uses"; without WithInteractionStyle it is synchronous.
func (e *Element) Uses(destination *Element, opts ...RelationshipOption) (*Relationship, error) {
	return e.relate(destination, RelationshipSpec{}, opts)
}

// Delivers adds a relationship from e to destination described as "Delivers"
// unless WithDescription says otherwise. It is typically used from a system to a person.
func (e *Element) Delivers(destination *Element, opts ...RelationshipOption) (*Relationship, error) {
	return e.relate(destination, RelationshipSpec{Description: "Delivers"}, opts)
}

func (e *Element) relate(destination *Element, spec RelationshipSpec, opts []RelationshipOption) (*Relationship, error) {
	if e.model == nil {
		return nil, errors.Errorf(errors.ConfigurationError, "%s is not part of a model", e.name)
	}
	for _, opt := range opts {
		opt(&spec)
	}
	return e.model.AddRelationship(e, destination, spec)
}

// String returns the display name
func (e *Element) String() string {
	return e.name
}
