// Copyright 2026 The Psconf Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package psload

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/maurerpe-go/psconf/internal/pserrors"
	"github.com/maurerpe-go/psconf/internal/psval"
)

// decodeJSON reads r as a single JSON document into a psval.Value tree.
// The JSON byte-level tokenizer itself is the out-of-scope external
// collaborator spec.md names (§1); encoding/json's Decoder plays that role
// here, with decodeJSON doing only the glue work of lifting json.Number
// into the model's int64-vs-float64 distinction and building sorted
// psval objects.
func decodeJSON(r io.Reader) (*psval.Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, pserrors.New(pserrors.ParseError, nil, "invalid JSON: %v", err)
	}
	return fromAny(raw)
}

func fromAny(raw any) (*psval.Value, error) {
	switch v := raw.(type) {
	case nil:
		return psval.Null(), nil
	case bool:
		return psval.Bool(v), nil
	case string:
		return psval.String(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return psval.Int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, pserrors.New(pserrors.ParseError, nil, "invalid numeric literal %q", v.String())
		}
		return psval.Float(f), nil
	case []any:
		items := make([]*psval.Value, len(v))
		for i, e := range v {
			ev, err := fromAny(e)
			if err != nil {
				return nil, err
			}
			items[i] = ev
		}
		return psval.List(items...), nil
	case map[string]any:
		obj := psval.Object()
		for k, e := range v {
			ev, err := fromAny(e)
			if err != nil {
				return nil, err
			}
			if err := obj.AddMember(k, ev); err != nil {
				return nil, err
			}
		}
		return obj, nil
	default:
		return nil, pserrors.New(pserrors.ParseError, nil, "unsupported JSON value %T", raw)
	}
}

// parseJSONBytes is a convenience wrapper for tests and in-memory fixtures.
func parseJSONBytes(b []byte) (*psval.Value, error) {
	return decodeJSON(bytes.NewReader(b))
}

// ParseValueJSON decodes a single JSON-literal setting value (e.g. a CLI
// "--set scope:name=VALUE" argument's VALUE half) into a psval.Value. It is
// the exported door into the same decoder loadChain uses internally,
// for callers (the psconf CLI) that need to build an override bundle without
// going through a .def.json file.
func ParseValueJSON(raw string) (*psval.Value, error) {
	return parseJSONBytes([]byte(raw))
}
