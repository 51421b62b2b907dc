package optimize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/Veraticus/financeflow/internal/model"
)

const maxFragment = 120

// ValidateResponse checks that raw is a JSON object of finite, non-negative
// numbers and returns it as a result. Nothing beyond the shape is checked;
// in particular the total is not compared against any income.
func ValidateResponse(raw []byte) (model.OptimizationResult, error) {
	values, err := decodeNumberObject(raw)
	if err != nil {
		return nil, err
	}
	return model.OptimizationResult(values), nil
}

// decodeNumberObject decodes data as a flat object of non-negative finite
// numbers. Failures, including a key that appears twice, are SchemaMismatch
// errors.
func decodeNumberObject(data []byte) (map[string]float64, error) {
	var raw json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, &Error{Kind: KindSchemaMismatch, Err: err, Fragment: fragment(data)}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &Error{Kind: KindSchemaMismatch, Err: errors.New("trailing data after JSON value"), Fragment: fragment(data)}
	}

	dec = json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, &Error{Kind: KindSchemaMismatch, Fragment: fragment(data)}
	}

	values := make(map[string]float64)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &Error{Kind: KindSchemaMismatch, Err: err, Fragment: fragment(data)}
		}
		key, _ := tok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, &Error{Kind: KindSchemaMismatch, Key: key, Err: err, Fragment: fragment(data)}
		}
		if _, dup := values[key]; dup {
			return nil, &Error{Kind: KindSchemaMismatch, Key: key, Err: errors.New("duplicate key"), Fragment: describe(value)}
		}
		amount, ok := asAmount(value)
		if !ok {
			return nil, &Error{Kind: KindSchemaMismatch, Key: key, Fragment: describe(value)}
		}
		values[key] = amount
	}

	return values, nil
}

func asAmount(v any) (float64, bool) {
	number, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	amount, err := number.Float64()
	if err != nil || math.IsInf(amount, 0) || math.IsNaN(amount) || amount < 0 {
		return 0, false
	}
	return amount, true
}

func describe(v any) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return fragment(encoded)
}

func fragment(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "(empty)"
	}
	if len(data) > maxFragment {
		cut := maxFragment
		for cut > 0 && !utf8.RuneStart(data[cut]) {
			cut--
		}
		return string(data[:cut]) + "..."
	}
	return string(data)
}
