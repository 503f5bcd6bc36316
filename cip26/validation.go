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
)

// ValidationField identifies the metadata field a validation error relates to
type ValidationField string

const (
	FieldName               ValidationField = "name"
	FieldDescription        ValidationField = "description"
	FieldTicker             ValidationField = "ticker"
	FieldDecimals           ValidationField = "decimals"
	FieldLogo               ValidationField = "logo"
	FieldUrl                ValidationField = "url"
	FieldSubject            ValidationField = "subject"
	FieldPolicy             ValidationField = "policy"
	FieldSequenceNumber     ValidationField = "sequenceNumber"
	FieldRequiredProperties ValidationField = "requiredProperties"
	FieldSignature          ValidationField = "signature"
	FieldGeneral            ValidationField = "general"
)

// ValidationError is a single field-tagged validation failure. Validation
// errors are accumulated in a ValidationResult, never returned as an error
type ValidationError struct {
	Field   ValidationField
	Message string
}

func (e ValidationError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult collects validation errors across an entire validation
// pass. A result is valid iff no errors were recorded
type ValidationResult struct {
	errors []ValidationError
}

func NewValidationResult() *ValidationResult {
	return &ValidationResult{}
}

// AddError records a validation error for the given field
func (r *ValidationResult) AddError(field ValidationField, message string) {
	r.errors = append(
		r.errors,
		ValidationError{
			Field:   field,
			Message: message,
		},
	)
}

// Valid returns true if no validation errors were recorded
func (r *ValidationResult) Valid() bool {
	return len(r.errors) == 0
}

// Errors returns the recorded validation errors in insertion order
func (r *ValidationResult) Errors() []ValidationError {
	return r.errors
}

// ErrorsForField returns the recorded validation errors for the given field
func (r *ValidationResult) ErrorsForField(
	field ValidationField,
) []ValidationError {
	var ret []ValidationError
	for _, tmpError := range r.errors {
		if tmpError.Field == field {
			ret = append(ret, tmpError)
		}
	}
	return ret
}

// Merge appends all errors from the other result
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	r.errors = append(r.errors, other.errors...)
}

// MergeResults combines the given results into a new one
func MergeResults(results ...*ValidationResult) *ValidationResult {
	ret := NewValidationResult()
	for _, tmpResult := range results {
		ret.Merge(tmpResult)
	}
	return ret
}
