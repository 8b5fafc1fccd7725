package model

// DefaultRelationshipDescription is used when a relationship is added without one
const DefaultRelationshipDescription = "Uses"

// InteractionStyle describes whether a relationship is a blocking call
type InteractionStyle string

const (
	// Synchronous interactions block the caller until a reply arrives
	Synchronous InteractionStyle = "Synchronous"
	// Asynchronous interactions do not block the caller
	Asynchronous InteractionStyle = "Asynchronous"
)

// ParseInteractionStyle converts a declaration value to an InteractionStyle.
// Empty input yields Synchronous.
func ParseInteractionStyle(s string) (InteractionStyle, bool) {
	switch s {
	case "", "synchronous", "Synchronous", "sync":
		return Synchronous, true
	case "asynchronous", "Asynchronous", "async":
		return Asynchronous, true
	default:
		return "", false
	}
}

// Relationship is a directed, described connection between two elements.
// Relationships are owned by the Model.
type Relationship struct {
	id               string
	source           *Element
	destination      *Element
	description      string
	technology       string
	interactionStyle InteractionStyle
	tags             *Tags
	properties       map[string]string
}

// RelationshipSpec holds the user-supplied attributes of a new relationship
type RelationshipSpec struct {
	ID               string            // Optional; the model assigns one when empty
	Description      string            // Defaults to "Uses"
	Technology       string            // Empty when unspecified
	InteractionStyle InteractionStyle  // Defaults to Synchronous
	Tags             []string          // Extra tags on top of the defaults
	Properties       map[string]string // Free-form key/value pairs
}

// RelationshipOption sets one attribute of a relationship added through
// Element.Uses or Element.Delivers.
type RelationshipOption func(*RelationshipSpec)

// WithDescription sets the relationship's description.
func WithDescription(description string) RelationshipOption {
	return func(s *RelationshipSpec) { s.Description = description }
}

// WithTechnology sets the relationship's technology.
func WithTechnology(technology string) RelationshipOption {
	return func(s *RelationshipSpec) { s.Technology = technology }
}

// WithInteractionStyle marks the relationship synchronous or asynchronous.
func WithInteractionStyle(style InteractionStyle) RelationshipOption {
	return func(s *RelationshipSpec) { s.InteractionStyle = style }
}

// WithTags adds tags on top of the defaults.
func WithTags(tags ...string) RelationshipOption {
	return func(s *RelationshipSpec) { s.Tags = append(s.Tags, tags...) }
}

// WithProperties sets free-form properties.
func WithProperties(props map[string]string) RelationshipOption {
	return func(s *RelationshipSpec) {
		if s.Properties == nil {
			s.Properties = make(map[string]string, len(props))
		}
		for k, v := range props {
			s.Properties[k] = v
		}
	}
}

// ID returns the relationship id
func (r *Relationship) ID() string { return r.id }

// Source returns the source element
func (r *Relationship) Source() *Element { return r.source }

// Destination returns the destination element
func (r *Relationship) Destination() *Element { return r.destination }

// Description returns the human-readable description
func (r *Relationship) Description() string { return r.description }

// Technology returns the technology label, or "" if unspecified
func (r *Relationship) Technology() string { return r.technology }

// Tags returns the relationship's tag set
func (r *Relationship) Tags() *Tags { return r.tags }

// InteractionStyle returns the interaction style
func (r *Relationship) InteractionStyle() InteractionStyle { return r.interactionStyle }

// SetInteractionStyle changes the interaction style and keeps the style tags in step:
// exactly one of the Synchronous/Asynchronous tags is present afterwards.
func (r *Relationship) SetInteractionStyle(style InteractionStyle) {
	r.interactionStyle = style
	switch style {
	case Asynchronous:
		r.tags.Remove(TagSynchronous)
		r.tags.Add(TagAsynchronous)
	default:
		r.interactionStyle = Synchronous
		r.tags.Remove(TagAsynchronous)
		r.tags.Add(TagSynchronous)
	}
}

// Property returns a property value and whether it was set
func (r *Relationship) Property(key string) (string, bool) {
	v, ok := r.properties[key]
	return v, ok
}

// String renders the relationship as "Source -> Destination (description)"
func (r *Relationship) String() string {
	s := r.source.name + " -> " + r.destination.name + " (" + r.description
	if r.technology != "" {
		s += ", " + r.technology
	}
	return s + ")"
}
