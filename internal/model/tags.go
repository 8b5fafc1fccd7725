package model

import "strings"

// Default tags applied by the model
const (
	TagElement        = "Element"
	TagPerson         = "Person"
	TagSoftwareSystem = "Software System"
	TagContainer      = "Container"
	TagComponent      = "Component"
	TagDeploymentNode = "Deployment Node"
	TagRelationship   = "Relationship"
	TagSynchronous    = "Synchronous"
	TagAsynchronous   = "Asynchronous"
)

// Tags is an insertion-ordered set of free-form tags
type Tags struct {
	items []string
}

// NewTags creates a tag set from the given tags, dropping blanks and duplicates
func NewTags(tags ...string) *Tags {
	t := &Tags{}
	t.Add(tags...)
	return t
}

// Add appends tags that are not already present
func (t *Tags) Add(tags ...string) {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || t.Has(tag) {
			continue
		}
		t.items = append(t.items, tag)
	}
}

// Remove deletes a tag if present
func (t *Tags) Remove(tag string) {
	for i, existing := range t.items {
		if existing == tag {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return
		}
	}
}

// Has reports whether the tag is present
func (t *Tags) Has(tag string) bool {
	for _, existing := range t.items {
		if existing == tag {
			return true
		}
	}
	return false
}

// List returns a copy of the tags in insertion order
func (t *Tags) List() []string {
	out := make([]string, len(t.items))
	copy(out, t.items)
	return out
}

// Len returns the number of tags
func (t *Tags) Len() int {
	return len(t.items)
}

// String joins the tags with commas, the way they are persisted
func (t *Tags) String() string {
	return strings.Join(t.items, ",")
}
