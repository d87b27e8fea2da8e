package output

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/pretty"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
)

// JSONAdapter exports the PRD record as indented JSON.
type JSONAdapter struct{}

func (JSONAdapter) Name() string        { return "json" }
func (JSONAdapter) Extension() string   { return ".json" }
func (JSONAdapter) ContentType() string { return "application/json" }

func (JSONAdapter) Render(p core.GeneratedPRD) ([]byte, error) {
	if p.Sections == nil {
		p.Sections = []core.PRDSection{}
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return pretty.Pretty(raw), nil
}
