package schemagen_test

import (
	"encoding/json"
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"

	openai "github.com/zxss702/go-openai"
	schema "github.com/zxss702/go-openai/pkg/schema"
	schemagen "github.com/zxss702/go-openai/pkg/schemagen"
)

///////////////////////////////////////////////////////////////////////////////
// TEST TYPES

type weatherQuery struct {
	Location string `json:"location" description:"City and country"`
	Days     *uint  `json:"days"`
}

type priority string

func (priority) Enum() []string {
	return []string{"high", "medium", "low"}
}

func (priority) SchemaDescription() string {
	return "Task priority"
}

type badIntEnum int

func (badIntEnum) Enum() []string {
	return []string{"one", "two"}
}

type badStructEnum struct {
	Payload string
}

func (badStructEnum) Enum() []string {
	return []string{"a"}
}

type address struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type person struct {
	Name    string   `json:"name"`
	Home    address  `json:"home" description:"Primary residence"`
	Work    *address `json:"work"`
	Tags    []string `json:"tags"`
	private string   `json:"private"`
}

type node struct {
	Name     string  `json:"name"`
	Children []*node `json:"children"`
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_schemagen_001(t *testing.T) {
	assert := assert.New(t)

	// One required string, one optional integer
	s, err := schemagen.For[weatherQuery]()
	assert.NoError(err)
	assert.NotNil(s)

	m, err := schema.NormalizeSchema(s)
	assert.NoError(err)
	data, err := json.Marshal(m)
	assert.NoError(err)
	assert.JSONEq(`{
		"type": "object",
		"properties": {
			"location": {"type": "string", "description": "City and country"},
			"days": {"type": "integer"}
		},
		"required": ["location"],
		"additionalProperties": false
	}`, string(data))
}

func Test_schemagen_002(t *testing.T) {
	assert := assert.New(t)

	// Enum with no raw type and a type-level description
	s, err := schemagen.For[priority]()
	assert.NoError(err)
	assert.Equal("string", s.Type)
	assert.Equal([]any{"high", "medium", "low"}, s.Enum)
	assert.Equal("Task priority", s.Description)
}

func Test_schemagen_003(t *testing.T) {
	assert := assert.New(t)

	// Integer-backed enums are rejected
	_, err := schemagen.For[badIntEnum]()
	assert.ErrorIs(err, openai.ErrBadParameter)

	// Enum cases with associated values are rejected
	_, err = schemagen.For[badStructEnum]()
	assert.ErrorIs(err, openai.ErrBadParameter)
}

func Test_schemagen_004(t *testing.T) {
	assert := assert.New(t)

	// Nested objects are inlined, not referenced
	s, err := schemagen.For[person]()
	assert.NoError(err)
	assert.Equal("object", s.Type)

	home := s.Properties["home"]
	if assert.NotNil(home) {
		assert.Equal("object", home.Type)
		assert.Equal("Primary residence", home.Description)
		assert.NotNil(home.Properties["city"])
		assert.NotNil(home.Properties["country"])
	}

	// Pointer struct fields are optional
	assert.Equal([]string{"name", "home", "tags"}, s.Required)

	// Array fields carry an item schema
	tags := s.Properties["tags"]
	if assert.NotNil(tags) {
		assert.Equal("array", tags.Type)
		assert.Equal("string", tags.Items.Type)
	}

	// Unexported fields are ignored
	assert.Nil(s.Properties["private"])
}

func Test_schemagen_005(t *testing.T) {
	assert := assert.New(t)

	// Same definition yields byte-identical output across runs
	first, err := schemagen.For[person]()
	assert.NoError(err)
	second, err := schemagen.For[person]()
	assert.NoError(err)

	a, err := json.Marshal(first)
	assert.NoError(err)
	b, err := json.Marshal(second)
	assert.NoError(err)
	assert.Equal(string(a), string(b))
}

func Test_schemagen_006(t *testing.T) {
	assert := assert.New(t)

	// Cyclic type graphs yield a diagnostic error
	_, err := schemagen.For[node]()
	assert.ErrorIs(err, openai.ErrBadParameter)
}

func Test_schemagen_007(t *testing.T) {
	assert := assert.New(t)

	// Registered types map to fixed scalar schemas
	type ref struct{}
	assert.NoError(schemagen.RegisterType(ref{}, "string", "uuid"))

	type holder struct {
		Ref ref `json:"ref"`
	}
	s, err := schemagen.For[holder]()
	assert.NoError(err)
	if prop := s.Properties["ref"]; assert.NotNil(prop) {
		assert.Equal("string", prop.Type)
		assert.Equal("uuid", prop.Format)
	}

	// Invalid registrations are rejected
	assert.ErrorIs(schemagen.RegisterType(nil, "string", ""), openai.ErrBadParameter)
	assert.ErrorIs(schemagen.RegisterType(ref{}, "", ""), openai.ErrBadParameter)
}

func Test_schemagen_008(t *testing.T) {
	assert := assert.New(t)

	// Tools with no arguments use the fixed empty-object schema
	s := schemagen.EmptyObject()
	m, err := schema.NormalizeSchema(s)
	assert.NoError(err)
	data, err := json.Marshal(m)
	assert.NoError(err)
	assert.JSONEq(`{
		"type": "object",
		"properties": {},
		"required": [],
		"additionalProperties": false
	}`, string(data))
}
