package models

// VertexID is the normalized card name used as the graph's vertex key.
type VertexID string

type CardInfo struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
}

// CardDocument mirrors the card catalog as published by the game API.
// Items is nil when the field is absent, which is distinct from an empty
// catalog.
type CardDocument struct {
	Items *[]CardItem `json:"items"`
}

type CardItem struct {
	Name     string   `json:"name"`
	ID       int      `json:"id,omitempty"`
	IconURLs IconURLs `json:"iconUrls"`
}

type IconURLs struct {
	Medium string `json:"medium"`
}

// SimilarCard is one entry of a similarity result after resolution.
type SimilarCard struct {
	ID   VertexID `json:"id"`
	Card CardInfo `json:"card"`
}
