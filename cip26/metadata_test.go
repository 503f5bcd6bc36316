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

package cip26_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/blinklabs-io/tokenmeta/cip26"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSubject = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func TestAddProperty(t *testing.T) {
	metadata := cip26.NewMetadata()
	metadata.SetSubject(testSubject)
	err := metadata.AddProperty("name", cip26.NewProperty("Test Token"))
	require.NoError(t, err)
	require.NotNil(t, metadata.Property("name"))
	assert.Equal(t, "Test Token", metadata.Property("name").Value)
	assert.Equal(t, int64(0), *metadata.Property("name").SequenceNumber)
}

func TestAddPropertyTrimsName(t *testing.T) {
	metadata := cip26.NewMetadata()
	err := metadata.AddProperty("  name  ", cip26.NewProperty("Test Token"))
	require.NoError(t, err)
	assert.NotNil(t, metadata.Property("name"))
	assert.NotNil(t, metadata.Property(" name "))
}

func TestAddPropertyBlankName(t *testing.T) {
	metadata := cip26.NewMetadata()
	err := metadata.AddProperty("   ", cip26.NewProperty("Test Token"))
	assert.ErrorIs(t, err, cip26.ErrBlankPropertyName)
}

func TestAddNilPropertyRemoves(t *testing.T) {
	metadata := cip26.NewMetadata()
	require.NoError(
		t,
		metadata.AddProperty("name", cip26.NewProperty("Test Token")),
	)
	require.NoError(t, metadata.AddProperty("name", nil))
	assert.Nil(t, metadata.Property("name"))
}

func TestRemoveProperty(t *testing.T) {
	metadata := cip26.NewMetadata()
	require.NoError(
		t,
		metadata.AddProperty("name", cip26.NewProperty("Test Token")),
	)
	require.NoError(t, metadata.RemoveProperty("name"))
	assert.Nil(t, metadata.Property("name"))
}

func TestSetSubjectFromAssetName(t *testing.T) {
	metadata := cip26.NewMetadataFromAssetName("TestToken")
	assert.Equal(t, "54657374546f6b656e", metadata.Subject())
}

func TestSetSubjectFromAssetNameAndPolicyId(t *testing.T) {
	metadata := cip26.NewMetadata()
	metadata.SetSubjectFromAssetNameAndPolicyId("TestToken", testSubject)
	assert.Equal(t, testSubject+"54657374546f6b656e", metadata.Subject())
}

func TestSignatureUpsert(t *testing.T) {
	property := cip26.NewProperty("Test Token")
	require.NoError(t, property.AddOrUpdateSignature("AABB", "0011"))
	require.NoError(t, property.AddOrUpdateSignature("aabb", "2233"))
	require.Len(t, property.Signatures, 1)
	assert.Equal(t, "aabb", property.Signatures[0].PublicKey)
	assert.Equal(t, "2233", property.Signatures[0].Signature)
}

func TestSignatureUpsertBlankInputs(t *testing.T) {
	property := cip26.NewProperty("Test Token")
	assert.Error(t, property.AddOrUpdateSignature("", "0011"))
	assert.Error(t, property.AddOrUpdateSignature("aabb", "  "))
}

func TestMetadataJsonRoundTrip(t *testing.T) {
	metadata := cip26.NewMetadata()
	metadata.SetSubject(testSubject)
	metadata.SetPolicy("8200581c" + testSubject[:56])
	require.NoError(
		t,
		metadata.AddProperty("name", cip26.NewProperty("Test Token")),
	)
	require.NoError(
		t,
		metadata.AddProperty(
			"decimals",
			cip26.NewPropertyWithSequence(int64(6), 2),
		),
	)
	jsonData, err := json.Marshal(metadata)
	require.NoError(t, err)
	var decoded cip26.Metadata
	require.NoError(t, json.Unmarshal(jsonData, &decoded))
	assert.Equal(t, metadata.Subject(), decoded.Subject())
	assert.Equal(t, metadata.Policy(), decoded.Policy())
	require.NotNil(t, decoded.Property("name"))
	assert.Equal(t, "Test Token", decoded.Property("name").Value)
	require.NotNil(t, decoded.Property("decimals"))
	// Integer values must decode as integers, not floats
	assert.Equal(t, int64(6), decoded.Property("decimals").Value)
	assert.Equal(t, int64(2), *decoded.Property("decimals").SequenceNumber)
}

func TestMetadataJsonFlattensProperties(t *testing.T) {
	metadata := cip26.NewMetadata()
	metadata.SetSubject(testSubject)
	require.NoError(
		t,
		metadata.AddProperty("name", cip26.NewProperty("Test Token")),
	)
	jsonData, err := json.Marshal(metadata)
	require.NoError(t, err)
	var tmpMap map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(jsonData, &tmpMap))
	// Properties sit at the document top level next to the subject
	assert.Contains(t, tmpMap, "subject")
	assert.Contains(t, tmpMap, "name")
	assert.NotContains(t, tmpMap, "properties")
	assert.NotContains(t, tmpMap, "policy")
}

func TestDefaultRulesNameTooLong(t *testing.T) {
	rules := cip26.DefaultRules()
	property := cip26.NewProperty(strings.Repeat("A", 51))
	result := rules.ValidateProperty("name", property)
	require.False(t, result.Valid())
	require.Len(t, result.Errors(), 1)
	tmpError := result.Errors()[0]
	assert.Equal(t, cip26.FieldName, tmpError.Field)
	assert.Contains(t, tmpError.Message, "only 50 characters allow but got 51")
}

func TestDefaultRulesNameAtLimit(t *testing.T) {
	rules := cip26.DefaultRules()
	property := cip26.NewProperty(strings.Repeat("A", 50))
	result := rules.ValidateProperty("name", property)
	assert.True(t, result.Valid())
}

func TestDefaultRulesNameWrongType(t *testing.T) {
	rules := cip26.DefaultRules()
	property := cip26.NewProperty(int64(42))
	result := rules.ValidateProperty("name", property)
	require.False(t, result.Valid())
	assert.Contains(
		t,
		result.Errors()[0].Message,
		"value is not of expected type string",
	)
}

func TestDefaultRulesTicker(t *testing.T) {
	rules := cip26.DefaultRules()
	testDefs := []struct {
		value         string
		expectedValid bool
	}{
		{value: "T", expectedValid: false},
		{value: "TT", expectedValid: true},
		{value: "TESTTOKEN", expectedValid: true},
		{value: "TESTTOKENX", expectedValid: false},
	}
	for _, testDef := range testDefs {
		result := rules.ValidateProperty(
			"ticker",
			cip26.NewProperty(testDef.value),
		)
		assert.Equal(
			t,
			testDef.expectedValid,
			result.Valid(),
			"ticker %q",
			testDef.value,
		)
	}
}

func TestDefaultRulesDecimals(t *testing.T) {
	rules := cip26.DefaultRules()
	result := rules.ValidateProperty("decimals", cip26.NewProperty(int64(6)))
	assert.True(t, result.Valid())
	result = rules.ValidateProperty("decimals", cip26.NewProperty(int64(-1)))
	require.False(t, result.Valid())
	assert.Equal(t, cip26.FieldDecimals, result.Errors()[0].Field)
	result = rules.ValidateProperty("decimals", cip26.NewProperty("six"))
	require.False(t, result.Valid())
	assert.Contains(
		t,
		result.Errors()[0].Message,
		"value is not of expected type integer",
	)
}

func TestDefaultRulesUndefinedValue(t *testing.T) {
	rules := cip26.DefaultRules()
	property := &cip26.Property{}
	result := rules.ValidateProperty("name", property)
	require.False(t, result.Valid())
	var messages []string
	for _, tmpError := range result.Errors() {
		messages = append(messages, tmpError.Message)
	}
	assert.Contains(t, messages, "property name: value is undefined")
	assert.Contains(t, messages, "property name: sequenceNumber is undefined")
}

func TestDefaultRulesNegativeSequenceNumber(t *testing.T) {
	rules := cip26.DefaultRules()
	property := cip26.NewPropertyWithSequence("Test Token", -3)
	result := rules.ValidateProperty("name", property)
	require.False(t, result.Valid())
	assert.Equal(
		t,
		"property name: sequenceNumber is negative (-3)",
		result.Errors()[0].Message,
	)
}

func TestCustomRuleRegistration(t *testing.T) {
	rules := cip26.NewRules()
	rules.Register(
		"version",
		func(propertyName string, property *cip26.Property) *cip26.ValidationResult {
			result := cip26.NewValidationResult()
			if property.Value != "v1" {
				result.AddError(cip26.FieldGeneral, "unsupported version")
			}
			return result
		},
	)
	result := rules.ValidateProperty("version", cip26.NewProperty("v1"))
	assert.True(t, result.Valid())
	result = rules.ValidateProperty("version", cip26.NewProperty("v2"))
	assert.False(t, result.Valid())
}

func TestValidationResultMerge(t *testing.T) {
	resultA := cip26.NewValidationResult()
	resultA.AddError(cip26.FieldName, "error a")
	resultB := cip26.NewValidationResult()
	resultB.AddError(cip26.FieldTicker, "error b")
	merged := cip26.MergeResults(resultA, resultB, nil)
	require.Len(t, merged.Errors(), 2)
	assert.Len(t, merged.ErrorsForField(cip26.FieldName), 1)
	assert.Len(t, merged.ErrorsForField(cip26.FieldTicker), 1)
	assert.Empty(t, merged.ErrorsForField(cip26.FieldUrl))
}
