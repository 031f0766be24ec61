package validate

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage(t *testing.T) {
	type TestStruct struct {
		Name  string `validate:"required"`
		ID    int    `validate:"gt=0"`
		Price int    `validate:"gte=0"`
		Kind  string `validate:"oneof=a b"`
	}

	err := Validator().Struct(TestStruct{Price: -1, Kind: "c"})
	require.Error(t, err)

	msg := Message(err.(validator.ValidationErrors))
	assert.Contains(t, msg, "field Name is a required field")
	assert.Contains(t, msg, "field ID must be greater than 0")
	assert.Contains(t, msg, "field Price must be at least 0")
	assert.Contains(t, msg, "field Kind must be one of [a b]")
}

func TestMessage_OtherTags(t *testing.T) {
	type TestStruct struct {
		Code string `validate:"numeric"`
	}

	err := Validator().Struct(TestStruct{Code: "12a"})
	require.Error(t, err)

	assert.Equal(t, "field Code is not a valid", Message(err.(validator.ValidationErrors)))
}

func TestStruct(t *testing.T) {
	type TestStruct struct {
		Name string `validate:"required"`
	}

	assert.NoError(t, Struct(TestStruct{Name: "ok"}))

	err := Struct(TestStruct{})
	require.Error(t, err)
	assert.Equal(t, "field Name is a required field", err.Error())
}

func TestValidator_Shared(t *testing.T) {
	assert.Same(t, Validator(), Validator())
}
