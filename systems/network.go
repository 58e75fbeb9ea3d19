package systems

import "github.com/pthm-cable/resumefx/components"

// LinkKind classifies a graph edge.
type LinkKind uint8

const (
	LinkRequires LinkKind = iota
	LinkLeadsTo
	LinkWorksAt
)

// String returns the link kind name.
func (k LinkKind) String() string {
	switch k {
	case LinkRequires:
		return "requires"
	case LinkLeadsTo:
		return "leads_to"
	case LinkWorksAt:
		return "works_at"
	default:
		return "unknown"
	}
}

// Color returns the stroke colour for the link kind.
func (k LinkKind) Color() Color {
	switch k {
	case LinkRequires:
		return RGBA8(0xef, 0x44, 0x44, 1)
	case LinkLeadsTo:
		return RGBA8(0x22, 0xc5, 0x5e, 1)
	case LinkWorksAt:
		return RGBA8(0x3b, 0x82, 0xf6, 1)
	default:
		return RGBA8(0x6b, 0x72, 0x80, 1)
	}
}

// NodeColor returns the fill colour for a node kind.
func NodeColor(k components.NodeKind) Color {
	switch k {
	case components.KindSkill:
		return RGBA8(0x8b, 0x5c, 0xf6, 1)
	case components.KindJob:
		return RGBA8(0x06, 0xb6, 0xd4, 1)
	case components.KindCompany:
		return RGBA8(0xf5, 0x9e, 0x0b, 1)
	default:
		return RGBA8(0x6b, 0x72, 0x80, 1)
	}
}

// NodeSpec describes one node of a network dataset.
type NodeSpec struct {
	ID       string
	Name     string
	Kind     components.NodeKind
	Category string
	Salary   int
	Demand   int
}

// LinkSpec describes one edge of a network dataset by node ids.
// Strength is the relation weight in [0, 1], drawn as stroke width.
type LinkSpec struct {
	Source, Target string
	Kind           LinkKind
	Strength       float64
}

// CareerNetwork returns the skill/job/company dataset.
func CareerNetwork() ([]NodeSpec, []LinkSpec) {
	nodes := []NodeSpec{
		{ID: "react", Name: "React", Kind: components.KindSkill, Category: "Frontend"},
		{ID: "javascript", Name: "JavaScript", Kind: components.KindSkill, Category: "Frontend"},
		{ID: "nodejs", Name: "Node.js", Kind: components.KindSkill, Category: "Backend"},
		{ID: "python", Name: "Python", Kind: components.KindSkill, Category: "Backend"},
		{ID: "aws", Name: "AWS", Kind: components.KindSkill, Category: "Cloud"},
		{ID: "docker", Name: "Docker", Kind: components.KindSkill, Category: "DevOps"},

		{ID: "frontend-dev", Name: "Frontend Developer", Kind: components.KindJob, Salary: 85000, Demand: 85},
		{ID: "fullstack-dev", Name: "Fullstack Developer", Kind: components.KindJob, Salary: 95000, Demand: 90},
		{ID: "backend-dev", Name: "Backend Developer", Kind: components.KindJob, Salary: 90000, Demand: 80},
		{ID: "devops-eng", Name: "DevOps Engineer", Kind: components.KindJob, Salary: 110000, Demand: 95},

		{ID: "google", Name: "Google", Kind: components.KindCompany},
		{ID: "microsoft", Name: "Microsoft", Kind: components.KindCompany},
		{ID: "amazon", Name: "Amazon", Kind: components.KindCompany},
		{ID: "netflix", Name: "Netflix", Kind: components.KindCompany},
	}
	links := []LinkSpec{
		{Source: "javascript", Target: "react", Kind: LinkRequires, Strength: 0.8},
		{Source: "react", Target: "frontend-dev", Kind: LinkLeadsTo, Strength: 0.9},
		{Source: "javascript", Target: "frontend-dev", Kind: LinkLeadsTo, Strength: 0.8},
		{Source: "nodejs", Target: "backend-dev", Kind: LinkLeadsTo, Strength: 0.9},
		{Source: "python", Target: "backend-dev", Kind: LinkLeadsTo, Strength: 0.7},
		{Source: "react", Target: "fullstack-dev", Kind: LinkLeadsTo, Strength: 0.8},
		{Source: "nodejs", Target: "fullstack-dev", Kind: LinkLeadsTo, Strength: 0.8},
		{Source: "aws", Target: "devops-eng", Kind: LinkLeadsTo, Strength: 0.9},
		{Source: "docker", Target: "devops-eng", Kind: LinkLeadsTo, Strength: 0.8},

		{Source: "frontend-dev", Target: "google", Kind: LinkWorksAt, Strength: 0.6},
		{Source: "fullstack-dev", Target: "microsoft", Kind: LinkWorksAt, Strength: 0.7},
		{Source: "backend-dev", Target: "amazon", Kind: LinkWorksAt, Strength: 0.8},
		{Source: "devops-eng", Target: "netflix", Kind: LinkWorksAt, Strength: 0.9},
	}
	return nodes, links
}
