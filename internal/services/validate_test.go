package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTechListAcceptsListOrString(t *testing.T) {
	var in ProjectInput
	require.NoError(t, json.Unmarshal([]byte(`{"tech":["Go"," Fiber ",""]}`), &in))
	assert.Equal(t, TechList{"Go", "Fiber"}, in.Tech)

	require.NoError(t, json.Unmarshal([]byte(`{"tech":"Go, Postgres ,,"}`), &in))
	assert.Equal(t, TechList{"Go", "Postgres"}, in.Tech)

	assert.Error(t, json.Unmarshal([]byte(`{"tech":42}`), &in))
}

func TestValidateInputUsesJSONNames(t *testing.T) {
	err := validateInput(AboutInput{Title: "x"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "content is required", verr.Message)
}
