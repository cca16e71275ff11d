package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-12d3-a456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2024-02-29")
	assert.True(t, ok)
	_, ok = IsValidDate("2023-02-29")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"draft", "confirmed"}
	assert.True(t, IsInSlice("draft", slice))
	assert.False(t, IsInSlice("paid", slice))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "Month is required"},
		{Field: "year", Message: "Year must be at least 2000"},
	}
	assert.Equal(t, "month: Month is required; year: Year must be at least 2000", errs.Error())
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{{Field: "month", Message: "bad"}}
	assert.Equal(t, map[string]string{"month": "bad"}, errs.ToMap())
}

type periodInput struct {
	Month int      `json:"month" validate:"required,min=1,max=12"`
	Year  int      `json:"year" validate:"required,min=2000"`
	Lines []string `json:"lines" validate:"required,min=1"`
}

func TestStruct(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		err := Struct(periodInput{Month: 3, Year: 2024, Lines: []string{"a"}})
		assert.NoError(t, err)
	})

	t.Run("field errors are keyed by json name", func(t *testing.T) {
		err := Struct(periodInput{Month: 13, Year: 1999})
		require.Error(t, err)

		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		m := verrs.ToMap()
		assert.Equal(t, "Month must be at most 12", m["month"])
		assert.Equal(t, "Year must be at least 2000", m["year"])
		assert.Equal(t, "Lines is required", m["lines"])
	})
}
