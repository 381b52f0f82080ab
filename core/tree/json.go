package tree

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DecodeJSON parses input as a single JSON value into a tree. Object keys
// keep their document order and numbers keep their literal form. Trailing
// non-whitespace content after the value is an error, so a successful decode
// guarantees the whole input was valid JSON.
func DecodeJSON(input string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()

	value, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing content after JSON value")
	}
	return value, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return jsonValueFromToken(dec, tok)
}

func jsonValueFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (*Object, error) {
	obj := &Object{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		value, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeJSONArray(dec *json.Decoder) (*Array, error) {
	arr := &Array{}
	for dec.More() {
		value, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		arr.Items = append(arr.Items, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
