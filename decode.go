package ark

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// jsonKind distinguishes the shapes of §4.2.1's wire grammar.
type jsonKind int

const (
	jsonNull jsonKind = iota
	jsonBool
	jsonNumber
	jsonString
	jsonArray
	jsonObject
)

// jsonNode is an order-preserving JSON tree. encoding/json's map[string]any
// decode target loses object key order, which §5 requires ("container-
// literal elements are evaluated in source/iteration order") — so the
// compiler walks this instead, built directly off json.Decoder's token
// stream.
type jsonNode struct {
	Kind jsonKind
	Bool bool
	Num  float64
	Str  string
	Arr  []*jsonNode

	ObjKeys []string
	ObjVals []*jsonNode
}

// decodeJSON parses r into an order-preserving jsonNode tree.
func decodeJSON(r io.Reader) (*jsonNode, error) {
	dec := json.NewDecoder(r)
	node, err := decodeValue(dec)
	if err != nil {
		return nil, errors.Wrap(err, "ark: malformed JSON")
	}
	return node, nil
}

func decodeValue(dec *json.Decoder) (*jsonNode, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (*jsonNode, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			var arr []*jsonNode
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return &jsonNode{Kind: jsonArray, Arr: arr}, nil
		case '{':
			var keys []string
			var vals []*jsonNode
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.New("ark: object key must be a string")
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				keys = append(keys, key)
				vals = append(vals, v)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return &jsonNode{Kind: jsonObject, ObjKeys: keys, ObjVals: vals}, nil
		default:
			return nil, errors.Errorf("ark: unexpected delimiter %v", t)
		}
	case bool:
		return &jsonNode{Kind: jsonBool, Bool: t}, nil
	case float64:
		return &jsonNode{Kind: jsonNumber, Num: t}, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return &jsonNode{Kind: jsonNumber, Num: f}, nil
	case string:
		return &jsonNode{Kind: jsonString, Str: t}, nil
	case nil:
		return &jsonNode{Kind: jsonNull}, nil
	default:
		return nil, errors.Errorf("ark: unexpected JSON token %#v", tok)
	}
}
