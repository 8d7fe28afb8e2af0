package validatex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadConfig struct {
	Mode    string `validatex:"oneof=none rand file filename"`
	Length  int    `validatex:"oneof=8 16 32 40"`
	Name    string `validatex:"required"`
	Quality int    `validatex:"min=-1,max=100"`
	Slug    string `validatex:"regex=^[a-z-]+$"`

	untagged string
	Free     string
}

func TestValidateOK(t *testing.T) {
	err := Validate(uploadConfig{
		Mode:    "file",
		Length:  32,
		Name:    "photo",
		Quality: 85,
		Slug:    "my-photo",
	})
	assert.NoError(t, err)
}

func TestValidatePointer(t *testing.T) {
	cfg := &uploadConfig{Mode: "rand", Length: 8, Name: "x"}
	assert.NoError(t, Validate(cfg))

	var nilCfg *uploadConfig
	assert.NoError(t, Validate(nilCfg))
}

func TestValidateNonStruct(t *testing.T) {
	assert.ErrorIs(t, Validate("not a struct"), ErrNotStruct)
	assert.ErrorIs(t, Validate(42), ErrNotStruct)
}

func TestValidateCollectsAllFailures(t *testing.T) {
	err := Validate(uploadConfig{
		Mode:   "bogus",
		Length: 12,
		Slug:   "Not A Slug",
	})
	require.Error(t, err)

	var failures ValidationErrors
	require.ErrorAs(t, err, &failures)

	fields := make(map[string]string, len(failures))
	for _, fe := range failures {
		fields[fe.Field] = fe.Rule
	}
	assert.Equal(t, "oneof", fields["Mode"])
	assert.Equal(t, "oneof", fields["Length"])
	assert.Equal(t, "required", fields["Name"])
	assert.Equal(t, "regex", fields["Slug"])
}

func TestValidateZeroValuesSkipOptionalRules(t *testing.T) {
	// zero Mode, Length, Quality, and Slug pass: only required fires
	// on empty values
	err := Validate(uploadConfig{Name: "set"})
	assert.NoError(t, err)
}

func TestValidateMinMax(t *testing.T) {
	type bounded struct {
		N int `validatex:"min=-1,max=9"`
	}

	assert.NoError(t, Validate(bounded{N: -1}))
	assert.NoError(t, Validate(bounded{N: 9}))
	assert.Error(t, Validate(bounded{N: -2}))
	assert.Error(t, Validate(bounded{N: 10}))
}

func TestValidateMinMaxOnStrings(t *testing.T) {
	type named struct {
		Name string `validatex:"min=2,max=5"`
	}

	assert.NoError(t, Validate(named{Name: "abc"}))
	assert.Error(t, Validate(named{Name: "a"}))
	assert.Error(t, Validate(named{Name: "toolong"}))
}

func TestValidateUnknownRuleFails(t *testing.T) {
	type odd struct {
		F string `validatex:"nonexistent"`
	}
	err := Validate(odd{F: "x"})
	require.Error(t, err)

	var failures ValidationErrors
	require.ErrorAs(t, err, &failures)
	assert.Equal(t, "nonexistent", failures[0].Rule)
}

func TestFieldErrorMessage(t *testing.T) {
	fe := FieldError{Field: "Mode", Rule: "oneof", Param: "none rand"}
	assert.Contains(t, fe.Error(), "Mode")
	assert.Contains(t, fe.Error(), "oneof")
}
