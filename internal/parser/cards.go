package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/synergraph/core/internal/models"
)

// ParseCards decodes the card catalog and indexes it by vertex id.
func ParseCards(data []byte) (map[models.VertexID]models.CardInfo, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty card catalog data")
	}

	var doc models.CardDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal card catalog: %w", err)
	}

	if doc.Items == nil {
		return nil, fmt.Errorf("invalid card catalog: missing items field")
	}

	cards := make(map[models.VertexID]models.CardInfo, len(*doc.Items))
	for i, item := range *doc.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("invalid card catalog: item %d missing name", i)
		}

		id := Normalize(name)
		if id == "" {
			return nil, fmt.Errorf("invalid card catalog: item %d name %q has no letters or digits", i, name)
		}
		if prev, exists := cards[id]; exists {
			return nil, fmt.Errorf("invalid card catalog: %q and %q both normalize to %q", prev.Name, name, id)
		}

		cards[id] = models.CardInfo{
			Name:    name,
			IconURL: item.IconURLs.Medium,
		}
	}

	return cards, nil
}
