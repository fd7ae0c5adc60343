package validators

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePost struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Category string   `json:"category" validate:"required,category"`
	Tags     []string `json:"tags" validate:"max=2,dive,required,max=5"`
}

func TestStaticCategoryRegistry(t *testing.T) {
	r := NewStaticCategoryRegistry([]string{"자유", " 질문 ", "", "자유"})

	assert.Equal(t, []string{"자유", "질문"}, r.All())
	assert.True(t, r.IsValid("질문"))
	assert.False(t, r.IsValid("unknown"))
	assert.False(t, r.IsValid(""))
}

func TestValidatorReportsJSONFieldNames(t *testing.T) {
	v := NewValidator(NewStaticCategoryRegistry([]string{"자유"}))

	err := v.Validate(samplePost{Title: "", Category: "자유"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "title", verrs[0].Field())
	assert.Equal(t, "required", verrs[0].Tag())
}

func TestValidatorCategoryRule(t *testing.T) {
	v := NewValidator(NewStaticCategoryRegistry([]string{"자유"}))

	assert.NoError(t, v.Validate(samplePost{Title: "hello", Category: "자유"}))

	err := v.Validate(samplePost{Title: "hello", Category: "other"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "category", verrs[0].Tag())
}

func TestValidatorCountsRunes(t *testing.T) {
	v := NewValidator(NewStaticCategoryRegistry(nil))

	assert.NoError(t, v.Var(strings.Repeat("가", 200), "max=200"))
	assert.Error(t, v.Var(strings.Repeat("가", 201), "max=200"))
}

func TestValidatorDivesIntoTags(t *testing.T) {
	v := NewValidator(NewStaticCategoryRegistry([]string{"자유"}))

	assert.Error(t, v.Validate(samplePost{Title: "t", Category: "자유", Tags: []string{"a", "b", "c"}}))
	assert.Error(t, v.Validate(samplePost{Title: "t", Category: "자유", Tags: []string{"toolong"}}))
	assert.NoError(t, v.Validate(samplePost{Title: "t", Category: "자유", Tags: []string{"go", "web"}}))
}
