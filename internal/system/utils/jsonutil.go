/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package utils provides shared helpers for canonical JSON handling.
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CanonicalJSON encodes a value as canonical JSON: object keys sorted, no HTML
// escaping, no trailing newline. Two structurally equal values always encode to
// identical bytes, which the pack determinism gate depends on.
func CanonicalJSON(value any) ([]byte, error) {
	normalized, err := NormalizeJSONValue(value)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(normalized); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// NormalizeJSONValue converts a decoded YAML or JSON value tree into the plain
// map/slice/primitive shape used everywhere inside the pipeline. Map keys must
// be strings; anything else is rejected rather than silently stringified.
func NormalizeJSONValue(value any) (any, error) {
	switch typed := value.(type) {
	case map[string]any:
		normalized := make(map[string]any, len(typed))
		for key, item := range typed {
			converted, err := NormalizeJSONValue(item)
			if err != nil {
				return nil, err
			}
			normalized[key] = converted
		}
		return normalized, nil
	case map[any]any:
		normalized := make(map[string]any, len(typed))
		for key, item := range typed {
			stringKey, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("unsupported non-string map key %v", key)
			}
			converted, err := NormalizeJSONValue(item)
			if err != nil {
				return nil, err
			}
			normalized[stringKey] = converted
		}
		return normalized, nil
	case []any:
		normalized := make([]any, len(typed))
		for i, item := range typed {
			converted, err := NormalizeJSONValue(item)
			if err != nil {
				return nil, err
			}
			normalized[i] = converted
		}
		return normalized, nil
	case nil, bool, string, float64, int, int64, uint64, json.Number:
		return typed, nil
	default:
		// Round-trip uncommon scalar types through encoding/json.
		raw, err := json.Marshal(typed)
		if err != nil {
			return nil, fmt.Errorf("unsupported value of type %T: %w", typed, err)
		}
		var out any
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// DeepCopyJSONValue returns an independent copy of a normalized JSON value tree.
func DeepCopyJSONValue(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
