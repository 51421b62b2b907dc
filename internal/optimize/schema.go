package optimize

import "encoding/json"

// Schema describes the JSON shape the model is asked to produce.
type Schema struct {
	Name       string
	Definition json.RawMessage
}

// JSON returns the schema document.
func (s Schema) JSON() json.RawMessage {
	return s.Definition
}

// OutputSchema is a flat object of category name to non-negative amount.
var OutputSchema = Schema{
	Name:       "budget_allocation",
	Definition: json.RawMessage(`{"type":"object","additionalProperties":{"type":"number","minimum":0}}`),
}
