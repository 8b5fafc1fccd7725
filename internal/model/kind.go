package model

// Kind is the closed set of element kinds in an architecture model
type Kind string

const (
	// KindPerson is a human user of a software system
	KindPerson Kind = "Person"
	// KindSoftwareSystem is the top-level unit of delivered software
	KindSoftwareSystem Kind = "SoftwareSystem"
	// KindContainer is a deployable unit inside a software system
	KindContainer Kind = "Container"
	// KindComponent is a grouping of functionality inside a container
	KindComponent Kind = "Component"
	// KindDeploymentNode is an infrastructure node that hosts containers
	KindDeploymentNode Kind = "DeploymentNode"
)

// AllKinds lists every element kind in containment order
var AllKinds = []Kind{
	KindPerson,
	KindSoftwareSystem,
	KindContainer,
	KindComponent,
	KindDeploymentNode,
}

// ParseKind converts a string to a Kind. The second result is false for unknown kinds.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "person", "Person":
		return KindPerson, true
	case "system", "software_system", "SoftwareSystem":
		return KindSoftwareSystem, true
	case "container", "Container":
		return KindContainer, true
	case "component", "Component":
		return KindComponent, true
	case "deployment_node", "DeploymentNode":
		return KindDeploymentNode, true
	default:
		return "", false
	}
}

// ParentKind returns the kind an element of kind k must be nested in.
// The second result is false when elements of this kind are top level.
// Deployment nodes are top level but may also nest in other deployment nodes.
func (k Kind) ParentKind() (Kind, bool) {
	switch k {
	case KindContainer:
		return KindSoftwareSystem, true
	case KindComponent:
		return KindContainer, true
	default:
		return "", false
	}
}

// Tag returns the default tag carried by every element of this kind
func (k Kind) Tag() string {
	switch k {
	case KindPerson:
		return TagPerson
	case KindSoftwareSystem:
		return TagSoftwareSystem
	case KindContainer:
		return TagContainer
	case KindComponent:
		return TagComponent
	case KindDeploymentNode:
		return TagDeploymentNode
	default:
		return ""
	}
}

// IsStatic reports whether k is a static-structure kind (person, system, container, component)
func (k Kind) IsStatic() bool {
	switch k {
	case KindPerson, KindSoftwareSystem, KindContainer, KindComponent:
		return true
	default:
		return false
	}
}
