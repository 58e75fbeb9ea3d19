// Package components defines ECS components for the network graph.
package components

// NodeKind classifies a graph node.
type NodeKind uint8

const (
	KindSkill NodeKind = iota
	KindJob
	KindCompany
)

// String returns the lowercase kind name used by filters.
func (k NodeKind) String() string {
	switch k {
	case KindSkill:
		return "skill"
	case KindJob:
		return "job"
	case KindCompany:
		return "company"
	default:
		return "unknown"
	}
}

// ParseNodeKind maps a kind name back to its NodeKind.
func ParseNodeKind(s string) (NodeKind, bool) {
	switch s {
	case "skill":
		return KindSkill, true
	case "job":
		return KindJob, true
	case "company":
		return KindCompany, true
	}
	return 0, false
}

// Radius returns the drawn node radius for the kind.
func (k NodeKind) Radius() float32 {
	switch k {
	case KindJob:
		return 12
	case KindCompany:
		return 15
	default:
		return 8
	}
}

// Node holds the static description of a graph node.
type Node struct {
	Index    int // position in the dataset
	ID       string
	Name     string
	Kind     NodeKind
	Category string // skills only
	Salary   int    // jobs only
	Demand   int    // jobs only, percent
	Visible  bool
}

// Position is a layout position in graph space.
type Position struct {
	X, Y float64
}

// Velocity is the per-step layout velocity.
type Velocity struct {
	X, Y float64
}

// Pin fixes a node while it is being dragged.
type Pin struct {
	Active bool
	X, Y   float64
}
