package models

// WeightedGraph is the synergy graph. Neighbour lists may hold duplicates.
type WeightedGraph struct {
	Adjacency map[VertexID][]VertexID `json:"adj"`
	Weights   map[string]float64      `json:"wgt"`
}

// EgoNetwork is the induced subgraph around Focus.
type EgoNetwork struct {
	Focus     VertexID                `json:"focus"`
	Adjacency map[VertexID][]VertexID `json:"adjacency"`
}

// WeightKey builds the composite "source:target" weight key.
func WeightKey(source, target VertexID) string {
	return string(source) + ":" + string(target)
}

// Neighbors returns the adjacency entry for id and whether it exists.
func (g *WeightedGraph) Neighbors(id VertexID) ([]VertexID, bool) {
	if g == nil {
		return nil, false
	}
	adj, ok := g.Adjacency[id]
	return adj, ok
}

// Weight returns the weight of the directed edge, or 0 when absent.
func (g *WeightedGraph) Weight(source, target VertexID) float64 {
	if g == nil {
		return 0
	}
	return g.Weights[WeightKey(source, target)]
}
