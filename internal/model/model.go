// Package model holds the in-memory architecture model: people, software systems,
// containers, components and deployment nodes, connected by directed relationships.
//
// The model is the element graph and the relationship store consumed by views. It is
// not safe for concurrent mutation; callers build a model first and then derive views
// from it, or confine each model to one goroutine.
package model

import (
	"strconv"

	"c4kit/internal/errors"
)

// Model owns every element and relationship of one architecture description
type Model struct {
	elements      []*Element
	elementsByID  map[string]*Element
	relationships []*Relationship
	relsByID      map[string]*Relationship
	lastID        int
}

// New creates an empty model
func New() *Model {
	return &Model{
		elementsByID: make(map[string]*Element),
		relsByID:     make(map[string]*Relationship),
	}
}

// AddPerson adds a top-level person
func (m *Model) AddPerson(spec ElementSpec) (*Element, error) {
	return m.addElement(KindPerson, nil, spec)
}

// AddSoftwareSystem adds a top-level software system
func (m *Model) AddSoftwareSystem(spec ElementSpec) (*Element, error) {
	return m.addElement(KindSoftwareSystem, nil, spec)
}

// AddContainer adds a container to a software system
func (m *Model) AddContainer(system *Element, spec ElementSpec) (*Element, error) {
	return m.addElement(KindContainer, system, spec)
}

// AddComponent adds a component to a container
func (m *Model) AddComponent(container *Element, spec ElementSpec) (*Element, error) {
	return m.addElement(KindComponent, container, spec)
}

// AddDeploymentNode adds a deployment node, nested in parent when parent is not nil
func (m *Model) AddDeploymentNode(parent *Element, spec ElementSpec) (*Element, error) {
	return m.addElement(KindDeploymentNode, parent, spec)
}

func (m *Model) addElement(kind Kind, parent *Element, spec ElementSpec) (*Element, error) {
	if spec.Name == "" {
		return nil, errors.Errorf(errors.ConfigurationError, "a %s requires a name", kind)
	}
	if err := m.checkParent(kind, parent, spec.Name); err != nil {
		return nil, err
	}
	if m.siblingNamed(kind, parent, spec.Name) != nil {
		return nil, errors.Errorf(errors.DuplicateElement,
			"an element named %q already exists at this level", spec.Name)
	}

	id, err := m.claimID(spec.ID)
	if err != nil {
		return nil, err
	}

	e := &Element{
		id:          id,
		name:        spec.Name,
		description: spec.Description,
		technology:  spec.Technology,
		kind:        kind,
		parent:      parent,
		tags:        NewTags(TagElement, kind.Tag()),
		properties:  make(map[string]string, len(spec.Properties)),
		model:       m,
	}
	e.tags.Add(spec.Tags...)
	for k, v := range spec.Properties {
		e.properties[k] = v
	}

	if parent != nil {
		parent.children = append(parent.children, e)
	}
	m.elements = append(m.elements, e)
	m.elementsByID[id] = e
	return e, nil
}

func (m *Model) checkParent(kind Kind, parent *Element, name string) error {
	want, nested := kind.ParentKind()
	switch {
	case nested && parent == nil:
		return errors.Errorf(errors.ConfigurationError, "%s %q must be added to a %s", kind, name, want)
	case nested && parent.kind != want:
		return errors.Errorf(errors.ConfigurationError,
			"%s %q cannot be added to %s %q", kind, name, parent.kind, parent.name)
	case !nested && parent != nil && !(kind == KindDeploymentNode && parent.kind == KindDeploymentNode):
		return errors.Errorf(errors.ConfigurationError, "%s %q cannot have a parent", kind, name)
	}
	if parent != nil && parent.model != m {
		return errors.Errorf(errors.ElementNotFound, "%s is not part of this model", parent.name)
	}
	return nil
}

// siblingNamed finds an element with the same name at the same level. People and
// software systems share one namespace; deployment nodes have their own.
func (m *Model) siblingNamed(kind Kind, parent *Element, name string) *Element {
	for _, e := range m.elements {
		if e.parent != parent || e.name != name {
			continue
		}
		if (e.kind == KindDeploymentNode) == (kind == KindDeploymentNode) {
			return e
		}
	}
	return nil
}

// claimID reserves an explicit id, or generates the next free sequential one
func (m *Model) claimID(id string) (string, error) {
	if id != "" {
		if m.idTaken(id) {
			return "", errors.Errorf(errors.DuplicateElement, "id %q is already in use", id)
		}
		return id, nil
	}
	for {
		m.lastID++
		candidate := strconv.Itoa(m.lastID)
		if !m.idTaken(candidate) {
			return candidate, nil
		}
	}
}

func (m *Model) idTaken(id string) bool {
	if _, ok := m.elementsByID[id]; ok {
		return true
	}
	_, ok := m.relsByID[id]
	return ok
}

// AddRelationship adds a directed relationship. Both elements must belong to m.
// Self-relationships and duplicates are allowed.
func (m *Model) AddRelationship(source, destination *Element, spec RelationshipSpec) (*Relationship, error) {
	if source == nil || destination == nil {
		return nil, errors.Errorf(errors.ConfigurationError, "a relationship requires a source and a destination")
	}
	for _, e := range []*Element{source, destination} {
		if e.model != m {
			return nil, errors.Errorf(errors.ElementNotFound, "%s is not part of this model", e.name)
		}
	}

	style := spec.InteractionStyle
	if style == "" {
		style = Synchronous
	}
	if _, ok := ParseInteractionStyle(string(style)); !ok {
		return nil, errors.Errorf(errors.ConfigurationError, "unknown interaction style %q", style)
	}
	description := spec.Description
	if description == "" {
		description = DefaultRelationshipDescription
	}

	id, err := m.claimID(spec.ID)
	if err != nil {
		return nil, err
	}

	r := &Relationship{
		id:          id,
		source:      source,
		destination: destination,
		description: description,
		technology:  spec.Technology,
		tags:        NewTags(TagRelationship),
		properties:  make(map[string]string, len(spec.Properties)),
	}
	r.SetInteractionStyle(style)
	r.tags.Add(spec.Tags...)
	for k, v := range spec.Properties {
		r.properties[k] = v
	}

	m.relationships = append(m.relationships, r)
	m.relsByID[id] = r
	return r, nil
}

// ElementByID looks up an element by id
func (m *Model) ElementByID(id string) (*Element, bool) {
	e, ok := m.elementsByID[id]
	return e, ok
}

// RelationshipByID looks up a relationship by id
func (m *Model) RelationshipByID(id string) (*Relationship, bool) {
	r, ok := m.relsByID[id]
	return r, ok
}

// SoftwareSystemNamed finds a top-level software system by name
func (m *Model) SoftwareSystemNamed(name string) (*Element, bool) {
	for _, e := range m.elements {
		if e.kind == KindSoftwareSystem && e.name == name {
			return e, true
		}
	}
	return nil, false
}

// PersonNamed finds a person by name
func (m *Model) PersonNamed(name string) (*Element, bool) {
	for _, e := range m.elements {
		if e.kind == KindPerson && e.name == name {
			return e, true
		}
	}
	return nil, false
}

// Elements returns all elements in insertion order
func (m *Model) Elements() []*Element {
	out := make([]*Element, len(m.elements))
	copy(out, m.elements)
	return out
}

// ElementsOfKind returns the elements of one kind in insertion order
func (m *Model) ElementsOfKind(kind Kind) []*Element {
	var out []*Element
	for _, e := range m.elements {
		if e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Relationships returns all relationships in insertion order
func (m *Model) Relationships() []*Relationship {
	out := make([]*Relationship, len(m.relationships))
	copy(out, m.relationships)
	return out
}

// RelationshipsBetween returns every relationship from source to destination in
// insertion order. Duplicates are returned as stored.
func (m *Model) RelationshipsBetween(source, destination *Element) []*Relationship {
	var out []*Relationship
	for _, r := range m.relationships {
		if r.source == source && r.destination == destination {
			out = append(out, r)
		}
	}
	return out
}
