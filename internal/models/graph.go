// Package models defines the core data structures shared by the catalog,
// the ego network builder and the HTTP layer.
package models

// Graph is the payload handed to the browser renderer.
type Graph struct {
	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
	Stats  *Stats  `json:"stats,omitempty"`
	Layout *Layout `json:"layout,omitempty"`
}

type Node struct {
	ID      VertexID `json:"id"`
	Name    string   `json:"name"`
	IconURL string   `json:"icon_url"`
	Group   int      `json:"group"`
}

// Edge is directed as stored in the adjacency list. Undirected pairs
// therefore appear twice and duplicate neighbours produce duplicate edges.
type Edge struct {
	Source VertexID `json:"source"`
	Target VertexID `json:"target"`
	Weight float64  `json:"weight"`
	Width  float64  `json:"width"`
}

type Stats struct {
	TotalNodes int     `json:"total_nodes"`
	TotalEdges int     `json:"total_edges"`
	MaxWeight  float64 `json:"max_weight"`
}

// Layout carries force-simulation hints for the renderer.
type Layout struct {
	LinkDistance   float64 `json:"link_distance"`
	ChargeStrength float64 `json:"charge_strength"`
}

var (
	FullGraphLayout = Layout{LinkDistance: 200, ChargeStrength: -150}
	EgoLayout       = Layout{LinkDistance: 100, ChargeStrength: -1000}
)

// MaxEdgeWidth is the stroke width given to the heaviest edge.
const MaxEdgeWidth = 30
