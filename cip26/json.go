// Copyright 2026 Blink Labs Software
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

package cip26

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Registry documents store properties at the document top level next to
// the subject and policy keys
const (
	jsonKeySubject = "subject"
	jsonKeyPolicy  = "policy"
)

func (m *Metadata) MarshalJSON() ([]byte, error) {
	tmpMap := map[string]any{
		jsonKeySubject: m.subject,
	}
	if m.policyHex != "" {
		tmpMap[jsonKeyPolicy] = m.policyHex
	}
	for propertyName, property := range m.properties {
		tmpMap[propertyName] = property
	}
	return json.Marshal(tmpMap)
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	var tmpMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &tmpMap); err != nil {
		return fmt.Errorf("failed to parse metadata: %w", err)
	}
	m.subject = ""
	m.policyHex = ""
	m.properties = map[string]*Property{}
	for key, rawValue := range tmpMap {
		switch key {
		case jsonKeySubject:
			if err := json.Unmarshal(rawValue, &m.subject); err != nil {
				return fmt.Errorf("failed to parse metadata subject: %w", err)
			}
		case jsonKeyPolicy:
			if err := json.Unmarshal(rawValue, &m.policyHex); err != nil {
				return fmt.Errorf("failed to parse metadata policy: %w", err)
			}
		default:
			var tmpProperty Property
			if err := json.Unmarshal(rawValue, &tmpProperty); err != nil {
				return fmt.Errorf(
					"failed to parse metadata property %s: %w",
					key,
					err,
				)
			}
			if err := m.AddProperty(key, &tmpProperty); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Property) UnmarshalJSON(data []byte) error {
	// Numbers are decoded via json.Number so that integer property values
	// stay integers; the attestation digest encodes integers and floats
	// differently
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	type tmpPropertyJson struct {
		Value          any                    `json:"value"`
		SequenceNumber *int64                 `json:"sequenceNumber"`
		Signatures     []AttestationSignature `json:"signatures"`
	}
	var tmpProperty tmpPropertyJson
	if err := dec.Decode(&tmpProperty); err != nil {
		return err
	}
	tmpValue, err := normalizeJsonValue(tmpProperty.Value)
	if err != nil {
		return err
	}
	p.Value = tmpValue
	p.SequenceNumber = tmpProperty.SequenceNumber
	p.Signatures = tmpProperty.Signatures
	return nil
}

// normalizeJsonValue converts json.Number values to int64 where possible
// (float64 otherwise), recursing into composites
func normalizeJsonValue(value any) (any, error) {
	switch v := value.(type) {
	case json.Number:
		if intValue, err := v.Int64(); err == nil {
			return intValue, nil
		}
		return v.Float64()
	case []any:
		ret := make([]any, len(v))
		for idx, item := range v {
			tmpItem, err := normalizeJsonValue(item)
			if err != nil {
				return nil, err
			}
			ret[idx] = tmpItem
		}
		return ret, nil
	case map[string]any:
		ret := make(map[string]any, len(v))
		for key, item := range v {
			tmpItem, err := normalizeJsonValue(item)
			if err != nil {
				return nil, err
			}
			ret[key] = tmpItem
		}
		return ret, nil
	}
	return value, nil
}
