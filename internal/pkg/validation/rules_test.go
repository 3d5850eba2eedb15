package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterRules(v))

	phones := map[string]bool{
		"+1 (555) 010-2000": true,
		"0212.555.0000":     true,
		"555-01":            true,
		"12345":             false,
		"call me":           false,
		"555 0100 x2":       false,
	}
	for phone, ok := range phones {
		err := v.Var(phone, "phone")
		if ok {
			assert.NoError(t, err, phone)
		} else {
			assert.Error(t, err, phone)
		}
	}

	assert.NoError(t, v.Var("Ann", "notblank"))
	assert.Error(t, v.Var(" \t", "notblank"))
}
