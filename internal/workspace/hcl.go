package workspace

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"c4kit/internal/errors"
)

// hclRoot decodes the top-level blocks of an HCL workspace file.
type hclRoot struct {
	Schema        string             `hcl:"schema,optional"`
	Name          string             `hcl:"name,optional"`
	People        []*hclElement      `hcl:"person,block"`
	Systems       []*hclElement      `hcl:"system,block"`
	Nodes         []*hclElement      `hcl:"deployment_node,block"`
	Relationships []*hclRelationship `hcl:"relationship,block"`
	Views         []*hclView         `hcl:"dynamic_view,block"`
}

// hclElement is shared by every element block; which nested blocks are legal
// depends on the kind and is checked when the model is built.
type hclElement struct {
	ID          string        `hcl:"id,label"`
	Name        string        `hcl:"name"`
	Description string        `hcl:"description,optional"`
	Technology  string        `hcl:"technology,optional"`
	Tags        []string      `hcl:"tags,optional"`
	Properties  *cty.Value    `hcl:"properties,optional"`
	Containers  []*hclElement `hcl:"container,block"`
	Components  []*hclElement `hcl:"component,block"`
	Children    []*hclElement `hcl:"deployment_node,block"`
}

type hclRelationship struct {
	ID          string     `hcl:"id,optional"`
	Source      string     `hcl:"source"`
	Destination string     `hcl:"destination"`
	Description string     `hcl:"description,optional"`
	Technology  string     `hcl:"technology,optional"`
	Interaction string     `hcl:"interaction,optional"`
	Tags        []string   `hcl:"tags,optional"`
	Properties  *cty.Value `hcl:"properties,optional"`
}

// hclView leaves step and parallel blocks in Remain so they can be read back
// in source order.
type hclView struct {
	Key         string   `hcl:"key,label"`
	Description string   `hcl:"description,optional"`
	Scope       string   `hcl:"scope,optional"`
	Remain      hcl.Body `hcl:",remain"`
}

type hclStep struct {
	Source      string `hcl:"source"`
	Destination string `hcl:"destination"`
	Description string `hcl:"description,optional"`
	Technology  string `hcl:"technology,optional"`
}

type hclParallel struct {
	Continue bool       `hcl:"continue,optional"`
	Steps    []*hclStep `hcl:"step,block"`
}

var sequenceSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "step"},
		{Type: "parallel"},
	},
}

// ParseHCL parses an HCL workspace declaration. filename is only used in
// diagnostics.
func ParseHCL(data []byte, filename string) (*Declaration, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.NewError(errors.InvalidWorkspace, "failed to parse HCL workspace "+filename, diags)
	}

	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, errors.NewError(errors.InvalidWorkspace, "failed to decode HCL workspace "+filename, diags)
	}

	decl := &Declaration{Schema: root.Schema, Name: root.Name}

	var err error
	if decl.People, err = translateElements(root.People); err != nil {
		return nil, err
	}
	if decl.Systems, err = translateElements(root.Systems); err != nil {
		return nil, err
	}
	if decl.DeploymentNodes, err = translateElements(root.Nodes); err != nil {
		return nil, err
	}
	for _, r := range root.Relationships {
		props, err := propertiesFromCty(r.Properties)
		if err != nil {
			return nil, errors.NewError(errors.InvalidWorkspace,
				"relationship "+r.Source+" -> "+r.Destination+" has invalid properties", err)
		}
		decl.Relationships = append(decl.Relationships, RelationshipDeclaration{
			ID:          r.ID,
			Source:      r.Source,
			Destination: r.Destination,
			Description: r.Description,
			Technology:  r.Technology,
			Interaction: r.Interaction,
			Tags:        r.Tags,
			Properties:  props,
		})
	}
	for _, v := range root.Views {
		view, err := translateView(v)
		if err != nil {
			return nil, err
		}
		decl.Views = append(decl.Views, view)
	}

	return decl, nil
}

func translateElements(blocks []*hclElement) ([]ElementDeclaration, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	out := make([]ElementDeclaration, 0, len(blocks))
	for _, b := range blocks {
		props, err := propertiesFromCty(b.Properties)
		if err != nil {
			return nil, errors.NewError(errors.InvalidWorkspace, "element "+b.ID+" has invalid properties", err)
		}
		e := ElementDeclaration{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			Technology:  b.Technology,
			Tags:        b.Tags,
			Properties:  props,
		}
		if e.Containers, err = translateElements(b.Containers); err != nil {
			return nil, err
		}
		if e.Components, err = translateElements(b.Components); err != nil {
			return nil, err
		}
		if e.Children, err = translateElements(b.Children); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func translateView(v *hclView) (ViewDeclaration, error) {
	view := ViewDeclaration{Key: v.Key, Description: v.Description, Scope: v.Scope}

	content, diags := v.Remain.Content(sequenceSchema)
	if diags.HasErrors() {
		return view, errors.NewError(errors.InvalidWorkspace, "failed to decode dynamic view "+v.Key, diags)
	}

	for _, block := range content.Blocks {
		switch block.Type {
		case "step":
			var s hclStep
			if diags := gohcl.DecodeBody(block.Body, nil, &s); diags.HasErrors() {
				return view, errors.NewError(errors.InvalidWorkspace, "failed to decode step in view "+v.Key, diags)
			}
			view.Sequence = append(view.Sequence, SequenceDeclaration{StepDeclaration: s.declaration()})
		case "parallel":
			var p hclParallel
			if diags := gohcl.DecodeBody(block.Body, nil, &p); diags.HasErrors() {
				return view, errors.NewError(errors.InvalidWorkspace, "failed to decode parallel branch in view "+v.Key, diags)
			}
			entry := SequenceDeclaration{Parallel: true, Continue: p.Continue}
			for _, s := range p.Steps {
				entry.Steps = append(entry.Steps, s.declaration())
			}
			view.Sequence = append(view.Sequence, entry)
		}
	}
	return view, nil
}

func (s *hclStep) declaration() StepDeclaration {
	return StepDeclaration{
		Source:      s.Source,
		Destination: s.Destination,
		Description: s.Description,
		Technology:  s.Technology,
	}
}

// propertiesFromCty converts an HCL object or map into string properties.
// Numbers and bools are converted to their string form.
func propertiesFromCty(val *cty.Value) (map[string]string, error) {
	if val == nil || val.IsNull() {
		return nil, nil
	}
	asMap, err := convert.Convert(*val, cty.Map(cty.String))
	if err != nil {
		return nil, err
	}
	var out map[string]string
	if err := gocty.FromCtyValue(asMap, &out); err != nil {
		return nil, err
	}
	return out, nil
}
