package model

import "testing"

func TestRelationship_Defaults(t *testing.T) {
	m := New()
	a, _ := m.AddSoftwareSystem(ElementSpec{Name: "Element1"})
	b, _ := m.AddSoftwareSystem(ElementSpec{Name: "Element2"})

	r, err := m.AddRelationship(a, b, RelationshipSpec{})
	if err != nil {
		t.Fatalf("AddRelationship() error = %v", err)
	}

	if r.Description() != "Uses" {
		t.Errorf("Description() = %q, want %q", r.Description(), "Uses")
	}
	if r.Technology() != "" {
		t.Errorf("Technology() = %q, want empty", r.Technology())
	}
	if r.InteractionStyle() != Synchronous {
		t.Errorf("InteractionStyle() = %v, want %v", r.InteractionStyle(), Synchronous)
	}
	if !r.Tags().Has(TagRelationship) || !r.Tags().Has(TagSynchronous) {
		t.Errorf("Tags() = %q, want Relationship and Synchronous", r.Tags())
	}
}

func TestRelationship_InteractionStyle(t *testing.T) {
	m := New()
	a, _ := m.AddSoftwareSystem(ElementSpec{Name: "A"})
	b, _ := m.AddSoftwareSystem(ElementSpec{Name: "B"})

	tests := []struct {
		style   InteractionStyle
		wantTag string
		denyTag string
	}{
		{Synchronous, TagSynchronous, TagAsynchronous},
		{Asynchronous, TagAsynchronous, TagSynchronous},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			r, err := m.AddRelationship(a, b, RelationshipSpec{InteractionStyle: tt.style})
			if err != nil {
				t.Fatalf("AddRelationship() error = %v", err)
			}
			if r.InteractionStyle() != tt.style {
				t.Errorf("InteractionStyle() = %v, want %v", r.InteractionStyle(), tt.style)
			}
			if !r.Tags().Has(tt.wantTag) {
				t.Errorf("Tags() = %q, want %q", r.Tags(), tt.wantTag)
			}
			if r.Tags().Has(tt.denyTag) {
				t.Errorf("Tags() = %q, must not contain %q", r.Tags(), tt.denyTag)
			}
		})
	}
}

func TestRelationship_SwitchInteractionStyle(t *testing.T) {
	m := New()
	a, _ := m.AddSoftwareSystem(ElementSpec{Name: "A"})
	b, _ := m.AddSoftwareSystem(ElementSpec{Name: "B"})
	r, _ := m.AddRelationship(a, b, RelationshipSpec{})

	r.SetInteractionStyle(Asynchronous)
	r.SetInteractionStyle(Synchronous)

	if r.Tags().Has(TagAsynchronous) {
		t.Errorf("Tags() = %q, Asynchronous should be gone", r.Tags())
	}
	if r.Tags().Len() != 2 {
		t.Errorf("Tags().Len() = %d, want 2", r.Tags().Len())
	}
}

func TestRelationship_UnknownInteractionStyle(t *testing.T) {
	m := New()
	a, _ := m.AddSoftwareSystem(ElementSpec{Name: "A"})

	if _, err := m.AddRelationship(a, a, RelationshipSpec{InteractionStyle: "Eventually"}); err == nil {
		t.Error("AddRelationship() with unknown style should fail")
	}
}

func TestElement_Uses(t *testing.T) {
	m := New()
	e1, _ := m.AddPerson(ElementSpec{Name: "Element1"})
	e2, _ := m.AddSoftwareSystem(ElementSpec{Name: "Element2"})

	if _, err := e1.Uses(e2); err != nil {
		t.Fatalf("Uses() error = %v", err)
	}

	rels := e1.Relationships()
	if len(rels) != 1 {
		t.Fatalf("len(Relationships()) = %d, want 1", len(rels))
	}
	r := rels[0]
	if r.Source() != e1 || r.Destination() != e2 {
		t.Errorf("relationship = %v, want Element1 -> Element2", r)
	}
	if r.Description() != "Uses" {
		t.Errorf("Description() = %q, want %q", r.Description(), "Uses")
	}
}

func TestElement_Delivers(t *testing.T) {
	m := New()
	e1, _ := m.AddSoftwareSystem(ElementSpec{Name: "Element1"})
	e2, _ := m.AddPerson(ElementSpec{Name: "Element2"})

	if _, err := e1.Delivers(e2, WithTechnology("Email")); err != nil {
		t.Fatalf("Delivers() error = %v", err)
	}

	rels := e1.Relationships()
	if len(rels) != 1 {
		t.Fatalf("len(Relationships()) = %d, want 1", len(rels))
	}
	if rels[0].Description() != "Delivers" {
		t.Errorf("Description() = %q, want %q", rels[0].Description(), "Delivers")
	}
	if rels[0].Technology() != "Email" {
		t.Errorf("Technology() = %q, want %q", rels[0].Technology(), "Email")
	}
	if got := rels[0].String(); got != "Element1 -> Element2 (Delivers, Email)" {
		t.Errorf("String() = %q", got)
	}
}

func TestElement_UsesOptions(t *testing.T) {
	m := New()
	app, _ := m.AddSoftwareSystem(ElementSpec{Name: "App"})
	broker, _ := m.AddSoftwareSystem(ElementSpec{Name: "Broker"})

	r, err := app.Uses(broker,
		WithDescription("Publishes events to"),
		WithTechnology("AMQP"),
		WithInteractionStyle(Asynchronous),
		WithTags("Messaging"),
		WithProperties(map[string]string{"queue": "orders"}),
	)
	if err != nil {
		t.Fatalf("Uses() error = %v", err)
	}

	if r.Description() != "Publishes events to" || r.Technology() != "AMQP" {
		t.Errorf("relationship = %v, want Publishes events to over AMQP", r)
	}
	if r.InteractionStyle() != Asynchronous {
		t.Errorf("InteractionStyle() = %s, want %s", r.InteractionStyle(), Asynchronous)
	}
	if !r.Tags().Has("Messaging") || !r.Tags().Has(TagAsynchronous) || r.Tags().Has(TagSynchronous) {
		t.Errorf("Tags() = %s", r.Tags())
	}
	if got, _ := r.Property("queue"); got != "orders" {
		t.Errorf("Property(queue) = %q, want %q", got, "orders")
	}

	d, err := broker.Delivers(app, WithDescription("Pushes updates to"))
	if err != nil {
		t.Fatalf("Delivers() error = %v", err)
	}
	if d.Description() != "Pushes updates to" || d.InteractionStyle() != Synchronous {
		t.Errorf("Delivers() = %v (%s), want a synchronous Pushes updates to", d, d.InteractionStyle())
	}

	if _, err := app.Uses(broker, WithInteractionStyle("Eventually")); err == nil {
		t.Error("Uses() with an unknown interaction style succeeded")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in     string
		want   Kind
		wantOK bool
	}{
		{"person", KindPerson, true},
		{"system", KindSoftwareSystem, true},
		{"container", KindContainer, true},
		{"component", KindComponent, true},
		{"deployment_node", KindDeploymentNode, true},
		{"queue", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseKind(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseKind(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if parent, ok := KindComponent.ParentKind(); !ok || parent != KindContainer {
		t.Errorf("Component.ParentKind() = %v, %v", parent, ok)
	}
	if _, ok := KindPerson.ParentKind(); ok {
		t.Error("Person should have no parent kind")
	}
}
