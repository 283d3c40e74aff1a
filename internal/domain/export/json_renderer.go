package export

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSONRenderer is the default renderer: the full document payload as
// indented JSON. PDF generation plugs in behind the same interface.
type JSONRenderer struct{}

// NewJSONRenderer creates the default renderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(ctx context.Context, doc *InvoiceDocument) ([]byte, string, error) {
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("marshal document: %w", err)
	}
	return body, "application/json", nil
}
