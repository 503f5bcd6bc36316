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
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Per-property value constraints from the token registry rules
const (
	MaxNameLength        = 50
	MaxDescriptionLength = 500
	MinTickerLength      = 2
	MaxTickerLength      = 9
	MinDecimalsValue     = 0
	MaxLogoLength        = 87400
	MaxUrlLength         = 250
)

// RuleFunc validates a single named property
type RuleFunc func(propertyName string, property *Property) *ValidationResult

// Rules maps lowercase property names to validation rules and tracks which
// properties a document is required to carry. Unknown property names fall
// back to the default rule, which checks value presence and sequence
// number validity only
type Rules struct {
	rules    map[string]RuleFunc
	required []string
}

func NewRules() *Rules {
	return &Rules{
		rules: map[string]RuleFunc{},
	}
}

// Register installs a rule for the given property name
func (r *Rules) Register(propertyName string, rule RuleFunc) {
	r.rules[strings.ToLower(strings.TrimSpace(propertyName))] = rule
}

// Require marks the given property names as required
func (r *Rules) Require(propertyNames ...string) {
	r.required = append(r.required, propertyNames...)
}

// Required returns the required property names
func (r *Rules) Required() []string {
	return r.required
}

// ValidateProperty validates a single property using the registered rule
// for its name, falling back to the default rule for unknown names
func (r *Rules) ValidateProperty(
	propertyName string,
	property *Property,
) *ValidationResult {
	rule, ok := r.rules[strings.ToLower(propertyName)]
	if !ok {
		return defaultPropertyRule(propertyName, property, FieldGeneral)
	}
	return rule(propertyName, property)
}

// ValidateRequiredProperties checks that all required properties are present
func (r *Rules) ValidateRequiredProperties(
	metadata *Metadata,
	result *ValidationResult,
) {
	var missing bool
	for _, requiredName := range r.required {
		if metadata.Property(requiredName) == nil {
			missing = true
			break
		}
	}
	if missing {
		sortedRequired := make([]string, len(r.required))
		copy(sortedRequired, r.required)
		sort.Strings(sortedRequired)
		result.AddError(
			FieldRequiredProperties,
			fmt.Sprintf(
				"Missing required properties. Required properties are %v",
				sortedRequired,
			),
		)
	}
}

// DefaultRules returns the rules for the well-known token registry
// properties. A document is required to carry a name
func DefaultRules() *Rules {
	ret := NewRules()
	ret.Register("name", nameRule)
	ret.Register("description", descriptionRule)
	ret.Register("ticker", tickerRule)
	ret.Register("decimals", decimalsRule)
	ret.Register("logo", logoRule)
	ret.Register("url", urlRule)
	ret.Require("name")
	return ret
}

func defaultPropertyRule(
	propertyName string,
	property *Property,
	field ValidationField,
) *ValidationResult {
	result := NewValidationResult()
	if property.Value == nil {
		result.AddError(
			field,
			fmt.Sprintf("property %s: value is undefined", propertyName),
		)
	}
	if property.SequenceNumber == nil {
		result.AddError(
			FieldSequenceNumber,
			fmt.Sprintf(
				"property %s: sequenceNumber is undefined",
				propertyName,
			),
		)
	} else if *property.SequenceNumber < 0 {
		result.AddError(
			FieldSequenceNumber,
			fmt.Sprintf(
				"property %s: sequenceNumber is negative (%d)",
				propertyName,
				*property.SequenceNumber,
			),
		)
	}
	return result
}

// maxLengthStringRule builds a rule for a string property with an upper
// length bound in characters
func maxLengthStringRule(
	field ValidationField,
	maxLength int,
) RuleFunc {
	return func(propertyName string, property *Property) *ValidationResult {
		result := defaultPropertyRule(propertyName, property, field)
		if property.Value == nil {
			return result
		}
		value, ok := property.Value.(string)
		if !ok {
			result.AddError(
				field,
				fmt.Sprintf(
					"property %s: value is not of expected type string but %T",
					propertyName,
					property.Value,
				),
			)
			return result
		}
		if valueLen := utf8.RuneCountInString(value); valueLen > maxLength {
			result.AddError(
				field,
				fmt.Sprintf(
					"property %s: only %d characters allow but got %d",
					propertyName,
					maxLength,
					valueLen,
				),
			)
		}
		return result
	}
}

var (
	nameRule        = maxLengthStringRule(FieldName, MaxNameLength)
	descriptionRule = maxLengthStringRule(
		FieldDescription,
		MaxDescriptionLength,
	)
	logoRule = maxLengthStringRule(FieldLogo, MaxLogoLength)
	urlRule  = maxLengthStringRule(FieldUrl, MaxUrlLength)
)

func tickerRule(propertyName string, property *Property) *ValidationResult {
	result := defaultPropertyRule(propertyName, property, FieldTicker)
	if property.Value == nil {
		return result
	}
	value, ok := property.Value.(string)
	if !ok {
		result.AddError(
			FieldTicker,
			fmt.Sprintf(
				"property %s: value is not of expected type string but %T",
				propertyName,
				property.Value,
			),
		)
		return result
	}
	valueLen := utf8.RuneCountInString(value)
	if valueLen < MinTickerLength || valueLen > MaxTickerLength {
		result.AddError(
			FieldTicker,
			fmt.Sprintf(
				"property %s: ticker length is %d which is not in the allowed interval of [%d, %d]",
				propertyName,
				valueLen,
				MinTickerLength,
				MaxTickerLength,
			),
		)
	}
	return result
}

func decimalsRule(propertyName string, property *Property) *ValidationResult {
	result := defaultPropertyRule(propertyName, property, FieldDecimals)
	if property.Value == nil {
		return result
	}
	value, ok := integerValue(property.Value)
	if !ok {
		result.AddError(
			FieldDecimals,
			fmt.Sprintf(
				"property %s: value is not of expected type integer but %T",
				propertyName,
				property.Value,
			),
		)
		return result
	}
	if value < MinDecimalsValue {
		result.AddError(
			FieldDecimals,
			fmt.Sprintf(
				"property %s: value %d is not in the expected range of [%d:)",
				propertyName,
				value,
				MinDecimalsValue,
			),
		)
	}
	return result
}

// integerValue extracts an integer from the supported numeric value types
func integerValue(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	}
	return 0, false
}
