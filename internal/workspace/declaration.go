// Package workspace loads declarative workspace files (TOML or HCL) into an
// architecture model and the dynamic views declared on top of it.
package workspace

import (
	"bytes"

	toml "github.com/pelletier/go-toml/v2"

	"c4kit/internal/errors"
)

// Declaration is a parsed workspace file, independent of its syntax
type Declaration struct {
	// Schema is the semantic version of the declaration format
	Schema string `toml:"schema"`

	// Name is the workspace name shown by tooling
	Name string `toml:"name"`

	People          []ElementDeclaration      `toml:"person"`
	Systems         []ElementDeclaration      `toml:"system"`
	DeploymentNodes []ElementDeclaration      `toml:"deployment_node"`
	Relationships   []RelationshipDeclaration `toml:"relationship"`
	Views           []ViewDeclaration         `toml:"dynamic_view"`
}

// ElementDeclaration declares one element and, depending on its kind, its
// nested elements
type ElementDeclaration struct {
	// ID is how relationships and views refer to the element. It is generated
	// when omitted, but then nothing can refer to it.
	ID          string            `toml:"id"`
	Name        string            `toml:"name"`
	Description string            `toml:"description,omitempty"`
	Technology  string            `toml:"technology,omitempty"`
	Tags        []string          `toml:"tags,omitempty"`
	Properties  map[string]string `toml:"properties,omitempty"`

	// Containers are only valid inside a system
	Containers []ElementDeclaration `toml:"container,omitempty"`

	// Components are only valid inside a container
	Components []ElementDeclaration `toml:"component,omitempty"`

	// Children are only valid inside a deployment node
	Children []ElementDeclaration `toml:"deployment_node,omitempty"`
}

// RelationshipDeclaration declares one relationship between two element ids
type RelationshipDeclaration struct {
	ID          string            `toml:"id,omitempty"`
	Source      string            `toml:"source"`
	Destination string            `toml:"destination"`
	Description string            `toml:"description,omitempty"`
	Technology  string            `toml:"technology,omitempty"`
	Interaction string            `toml:"interaction,omitempty"` // synchronous (default) or asynchronous
	Tags        []string          `toml:"tags,omitempty"`
	Properties  map[string]string `toml:"properties,omitempty"`
}

// ViewDeclaration declares a dynamic view and its ordered sequence
type ViewDeclaration struct {
	Key         string                `toml:"key"`
	Description string                `toml:"description,omitempty"`
	Scope       string                `toml:"scope,omitempty"` // element id of a system or container
	Sequence    []SequenceDeclaration `toml:"sequence"`
}

// SequenceDeclaration is one entry of a view's sequence: either a single step
// or a parallel branch holding steps
type SequenceDeclaration struct {
	StepDeclaration

	Parallel bool              `toml:"parallel,omitempty"`
	Continue bool              `toml:"continue,omitempty"`
	Steps    []StepDeclaration `toml:"step,omitempty"`
}

// StepDeclaration is one interaction between two element ids
type StepDeclaration struct {
	Source      string `toml:"source,omitempty"`
	Destination string `toml:"destination,omitempty"`
	Description string `toml:"description,omitempty"`
	Technology  string `toml:"technology,omitempty"`
}

// validate checks the shape of a sequence entry
func (s SequenceDeclaration) validate() error {
	if s.Parallel {
		if s.Source != "" || s.Destination != "" {
			return errors.Errorf(errors.InvalidWorkspace, "a parallel branch cannot also be a step")
		}
		return nil
	}
	if s.Continue || len(s.Steps) > 0 {
		return errors.Errorf(errors.InvalidWorkspace, "continue and step are only valid on a parallel branch")
	}
	if s.Source == "" || s.Destination == "" {
		return errors.Errorf(errors.InvalidWorkspace, "a step needs a source and a destination")
	}
	return nil
}

// ParseTOML parses a TOML workspace declaration. Unknown keys are rejected.
func ParseTOML(data []byte) (*Declaration, error) {
	var decl Declaration
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&decl); err != nil {
		return nil, errors.NewError(errors.InvalidWorkspace, "failed to parse TOML workspace", err)
	}
	return &decl, nil
}
