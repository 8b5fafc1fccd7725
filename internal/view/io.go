package view

import (
	"c4kit/internal/errors"
	"c4kit/internal/model"
)

// DynamicViewIO is the persisted form of a dynamic view
type DynamicViewIO struct {
	Key           string               `json:"key" yaml:"key" toml:"key"`
	Description   string               `json:"description" yaml:"description" toml:"description"`
	ElementID     string               `json:"elementId,omitempty" yaml:"elementId,omitempty" toml:"elementId,omitempty"`
	Relationships []RelationshipViewIO `json:"relationships,omitempty" yaml:"relationships,omitempty" toml:"relationships,omitempty"`
}

// RelationshipViewIO is the persisted form of one step
type RelationshipViewIO struct {
	ID            string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	SourceID      string `json:"sourceId" yaml:"sourceId" toml:"sourceId"`
	DestinationID string `json:"destinationId" yaml:"destinationId" toml:"destinationId"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Technology    string `json:"technology,omitempty" yaml:"technology,omitempty" toml:"technology,omitempty"`
	Order         string `json:"order" yaml:"order" toml:"order"`
	Response      bool   `json:"response,omitempty" yaml:"response,omitempty" toml:"response,omitempty"`
}

// Dehydrate returns the persisted form of a view. Source and destination are
// the step's direction, so a response lists the relationship's destination as
// its source.
func Dehydrate(v *DynamicView) *DynamicViewIO {
	io := &DynamicViewIO{
		Key:         v.key,
		Description: v.description,
	}
	if v.element != nil {
		io.ElementID = v.element.ID()
	}
	for _, s := range v.steps {
		io.Relationships = append(io.Relationships, RelationshipViewIO{
			ID:            s.relationship.ID(),
			SourceID:      s.Source().ID(),
			DestinationID: s.Destination().ID(),
			Description:   s.description,
			Technology:    s.relationship.Technology(),
			Order:         s.order,
			Response:      s.response,
		})
	}
	return io
}

// Hydrate rebuilds a view from its persisted form, looking up the scoped
// element by id in m.
func Hydrate(io *DynamicViewIO, m *model.Model) (*DynamicView, error) {
	var element *model.Element
	if io != nil && io.ElementID != "" {
		if m == nil {
			return nil, errors.Errorf(errors.ConfigurationError,
				"view %s has a scope but no model to find it in", io.Key)
		}
		e, ok := m.ElementByID(io.ElementID)
		if !ok {
			return nil, errors.Errorf(errors.ElementNotFound,
				"scope %s of view %s does not exist in the model", io.ElementID, io.Key)
		}
		element = e
	}
	return HydrateWithElement(io, m, element)
}

// HydrateWithElement rebuilds a view whose scope the caller already holds.
// Persisted order labels are kept as they are and the sequence state starts
// from zero, so steps added afterwards are numbered from 1.
func HydrateWithElement(io *DynamicViewIO, m *model.Model, element *model.Element) (*DynamicView, error) {
	if io == nil {
		return nil, errors.Errorf(errors.InvalidFormat, "no view to hydrate")
	}
	if element != nil && io.ElementID != "" && element.ID() != io.ElementID {
		return nil, errors.Errorf(errors.ConfigurationError,
			"view %s is scoped to %s, not %s", io.Key, io.ElementID, element.ID())
	}

	opts := Options{Key: io.Key, Description: io.Description}
	if element != nil {
		switch element.Kind() {
		case model.KindSoftwareSystem:
			opts.SoftwareSystem = element
		case model.KindContainer:
			opts.Container = element
		default:
			return nil, errors.Errorf(errors.ConfigurationError,
				"%s cannot be the scope of a dynamic view", element.Name())
		}
	}

	v, err := NewDynamicView(m, opts)
	if err != nil {
		return nil, err
	}
	if len(io.Relationships) > 0 && v.model == nil {
		return nil, errors.Errorf(errors.ConfigurationError,
			"view %s has steps but no model to resolve them against", io.Key)
	}

	for i := range io.Relationships {
		if err := v.restore(&io.Relationships[i]); err != nil {
			return nil, errors.NewError(errors.CodeOf(err), "restoring view "+io.Key, err).
				WithDetails(map[string]interface{}{"step": i + 1})
		}
	}
	return v, nil
}

// restore re-attaches one persisted step, by relationship id when present and
// through the matcher otherwise.
func (v *DynamicView) restore(r *RelationshipViewIO) error {
	source, ok := v.model.ElementByID(r.SourceID)
	if !ok {
		return errors.Errorf(errors.ElementNotFound, "element %s does not exist in the model", r.SourceID)
	}
	destination, ok := v.model.ElementByID(r.DestinationID)
	if !ok {
		return errors.Errorf(errors.ElementNotFound, "element %s does not exist in the model", r.DestinationID)
	}
	if err := v.scope.validate(source, destination); err != nil {
		return err
	}

	var found *match
	if r.ID != "" {
		rel, ok := v.model.RelationshipByID(r.ID)
		if !ok {
			return errors.Errorf(errors.NoSuchRelationship, "relationship %s does not exist in the model", r.ID)
		}
		from, to := rel.Source(), rel.Destination()
		if r.Response {
			from, to = to, from
		}
		if from != source || to != destination {
			return errors.Errorf(errors.InvalidFormat,
				"relationship %s does not connect %s to %s", r.ID, r.SourceID, r.DestinationID)
		}
		found = &match{relationship: rel, response: r.Response, description: orDefault(r.Description, rel.Description())}
	} else {
		rels := matcher{rels: v.model}
		var m *match
		var err error
		if r.Response {
			m, err = rels.resolveResponse(source, destination, r.Technology)
		} else {
			m, err = rels.resolve(source, destination, r.Description, r.Technology)
		}
		if err != nil {
			return err
		}
		if m.response != r.Response {
			return errors.Errorf(errors.InvalidFormat,
				"step %s -> %s resolves as a response, persisted as a request",
				r.SourceID, r.DestinationID)
		}
		m.description = orDefault(r.Description, m.relationship.Description())
		found = m
	}

	v.scope.record(source, destination)
	v.steps = append(v.steps, &Step{
		relationship: found.relationship,
		description:  found.description,
		response:     found.response,
		order:        r.Order,
	})
	return nil
}
