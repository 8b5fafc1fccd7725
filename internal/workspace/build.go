package workspace

import (
	"context"
	"fmt"
	"log/slog"

	"c4kit/internal/errors"
	"c4kit/internal/model"
	"c4kit/internal/slogutil"
	"c4kit/internal/view"
)

// Options configures how a declaration is turned into a workspace
type Options struct {
	// SupportedSchema is a semver constraint; empty means DefaultSupportedSchema
	SupportedSchema string

	// Logger receives debug output; nil discards it
	Logger *slog.Logger
}

// Workspace is a built model plus its dynamic views in declaration order
type Workspace struct {
	Name   string
	Schema string
	Model  *model.Model
	Views  []*view.DynamicView
}

// View returns the dynamic view with the given key
func (w *Workspace) View(key string) (*view.DynamicView, bool) {
	for _, v := range w.Views {
		if v.Key() == key {
			return v, true
		}
	}
	return nil, false
}

// Build creates the model declared by decl and replays every view's sequence
// through DynamicView.Add, so each declared step is resolved and validated.
func Build(ctx context.Context, decl *Declaration, opts Options) (*Workspace, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}

	if err := CheckSchema(decl.Schema, opts.SupportedSchema); err != nil {
		return nil, err
	}

	b := &builder{m: model.New(), logger: logger}
	for _, p := range decl.People {
		if _, err := b.element(model.KindPerson, nil, p); err != nil {
			return nil, err
		}
	}
	for _, s := range decl.Systems {
		if _, err := b.element(model.KindSoftwareSystem, nil, s); err != nil {
			return nil, err
		}
	}
	for _, n := range decl.DeploymentNodes {
		if _, err := b.element(model.KindDeploymentNode, nil, n); err != nil {
			return nil, err
		}
	}
	for i, r := range decl.Relationships {
		if err := b.relationship(r); err != nil {
			return nil, wrap(err, "relationship %d (%s -> %s)", i+1, r.Source, r.Destination)
		}
	}

	ws := &Workspace{Name: decl.Name, Schema: decl.Schema, Model: b.m}
	if ws.Schema == "" {
		ws.Schema = DefaultSchema
	}

	seen := make(map[string]bool, len(decl.Views))
	for _, vd := range decl.Views {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if vd.Key == "" {
			return nil, errors.Errorf(errors.InvalidWorkspace, "every dynamic view needs a key")
		}
		if seen[vd.Key] {
			return nil, errors.Errorf(errors.InvalidWorkspace, "dynamic view %q is declared twice", vd.Key)
		}
		seen[vd.Key] = true

		v, err := b.view(vd)
		if err != nil {
			return nil, err
		}
		ws.Views = append(ws.Views, v)
	}

	logger.Debug("Workspace built",
		"elements", len(b.m.Elements()),
		"relationships", len(b.m.Relationships()),
		"views", len(ws.Views),
	)
	return ws, nil
}

type builder struct {
	m      *model.Model
	logger *slog.Logger
}

// element adds one declared element and its nested elements
func (b *builder) element(kind model.Kind, parent *model.Element, d ElementDeclaration) (*model.Element, error) {
	if len(d.Containers) > 0 && kind != model.KindSoftwareSystem {
		return nil, errors.Errorf(errors.InvalidWorkspace, "%s %q cannot contain containers", kind, d.Name)
	}
	if len(d.Components) > 0 && kind != model.KindContainer {
		return nil, errors.Errorf(errors.InvalidWorkspace, "%s %q cannot contain components", kind, d.Name)
	}
	if len(d.Children) > 0 && kind != model.KindDeploymentNode {
		return nil, errors.Errorf(errors.InvalidWorkspace, "%s %q cannot contain deployment nodes", kind, d.Name)
	}

	spec := model.ElementSpec{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Technology:  d.Technology,
		Tags:        d.Tags,
		Properties:  d.Properties,
	}

	var (
		e   *model.Element
		err error
	)
	switch kind {
	case model.KindPerson:
		e, err = b.m.AddPerson(spec)
	case model.KindSoftwareSystem:
		e, err = b.m.AddSoftwareSystem(spec)
	case model.KindContainer:
		e, err = b.m.AddContainer(parent, spec)
	case model.KindComponent:
		e, err = b.m.AddComponent(parent, spec)
	case model.KindDeploymentNode:
		e, err = b.m.AddDeploymentNode(parent, spec)
	}
	if err != nil {
		return nil, wrap(err, "%s %q", kind, d.Name)
	}

	for _, c := range d.Containers {
		if _, err := b.element(model.KindContainer, e, c); err != nil {
			return nil, err
		}
	}
	for _, c := range d.Components {
		if _, err := b.element(model.KindComponent, e, c); err != nil {
			return nil, err
		}
	}
	for _, c := range d.Children {
		if _, err := b.element(model.KindDeploymentNode, e, c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (b *builder) relationship(d RelationshipDeclaration) error {
	source, err := b.lookup(d.Source)
	if err != nil {
		return err
	}
	destination, err := b.lookup(d.Destination)
	if err != nil {
		return err
	}
	style, ok := model.ParseInteractionStyle(d.Interaction)
	if !ok {
		return errors.Errorf(errors.InvalidWorkspace, "unknown interaction %q", d.Interaction)
	}

	_, err = b.m.AddRelationship(source, destination, model.RelationshipSpec{
		ID:               d.ID,
		Description:      d.Description,
		Technology:       d.Technology,
		InteractionStyle: style,
		Tags:             d.Tags,
		Properties:       d.Properties,
	})
	return err
}

func (b *builder) view(d ViewDeclaration) (*view.DynamicView, error) {
	opts := view.Options{
		Key:         d.Key,
		Description: d.Description,
		Logger:      b.logger,
	}
	if d.Scope != "" {
		scope, err := b.lookup(d.Scope)
		if err != nil {
			return nil, wrap(err, "view %s", d.Key)
		}
		switch scope.Kind() {
		case model.KindSoftwareSystem:
			opts.SoftwareSystem = scope
		case model.KindContainer:
			opts.Container = scope
		default:
			return nil, errors.Errorf(errors.InvalidWorkspace,
				"view %s: scope %s is a %s, not a software system or container", d.Key, d.Scope, scope.Kind())
		}
	}

	v, err := view.NewDynamicView(b.m, opts)
	if err != nil {
		return nil, wrap(err, "view %s", d.Key)
	}

	step := 0
	add := func(s StepDeclaration) error {
		step++
		if err := b.add(v, s); err != nil {
			return wrap(err, "view %s step %d", d.Key, step)
		}
		return nil
	}

	for i, entry := range d.Sequence {
		if err := entry.validate(); err != nil {
			return nil, wrap(err, "view %s sequence entry %d", d.Key, i+1)
		}
		if !entry.Parallel {
			if err := add(entry.StepDeclaration); err != nil {
				return nil, err
			}
			continue
		}
		err := v.ParallelSequence(entry.Continue, func() error {
			for _, s := range entry.Steps {
				if err := add(s); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (b *builder) add(v *view.DynamicView, s StepDeclaration) error {
	if s.Source == "" || s.Destination == "" {
		return errors.Errorf(errors.InvalidWorkspace, "a step needs a source and a destination")
	}
	source, err := b.lookup(s.Source)
	if err != nil {
		return err
	}
	destination, err := b.lookup(s.Destination)
	if err != nil {
		return err
	}

	var opts []view.StepOption
	if s.Description != "" {
		opts = append(opts, view.WithDescription(s.Description))
	}
	if s.Technology != "" {
		opts = append(opts, view.WithTechnology(s.Technology))
	}
	_, err = v.Add(source, destination, opts...)
	return err
}

func (b *builder) lookup(id string) (*model.Element, error) {
	e, ok := b.m.ElementByID(id)
	if !ok {
		return nil, errors.Errorf(errors.ElementNotFound, "no element with id %q", id)
	}
	return e, nil
}

// wrap adds context to err while keeping its code. Errors without a code
// become INVALID_WORKSPACE.
func wrap(err error, format string, args ...interface{}) error {
	code := errors.CodeOf(err)
	if code == "" {
		code = errors.InvalidWorkspace
	}
	return errors.NewError(code, fmt.Sprintf(format, args...), err)
}
