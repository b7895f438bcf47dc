package dotenv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	"github.com/tigerroll/dotlaunch/pkg/launcher/core/dotenv"
)

func TestMasker(t *testing.T) {
	m := dotenv.NewMasker([]string{"password", " Token ", ""})

	assert.True(t, m.IsSensitive("DB_PASSWORD"))
	assert.True(t, m.IsSensitive("github_token"))
	assert.False(t, m.IsSensitive("PORT"))
	assert.Equal(t, dotenv.MaskedValue, m.Mask("DB_PASSWORD", "hunter2"))
	assert.Equal(t, "5000", m.Mask("PORT", "5000"))

	var none *dotenv.Masker
	assert.False(t, none.IsSensitive("DB_PASSWORD"))
	assert.Equal(t, "hunter2", none.Mask("DB_PASSWORD", "hunter2"))
}

func TestMarshal(t *testing.T) {
	assignments := []model.Assignment{
		{Key: "URL", Value: "http://host:5000/path?a=b", Line: 1},
		{Key: "PORT", Value: "4000", Line: 2},
		{Key: "PORT", Value: "5000", Line: 3},
		{Key: "API_TOKEN", Value: "abc", Line: 4},
	}

	out, err := dotenv.Marshal(assignments, dotenv.NewMasker([]string{"token"}))
	require.NoError(t, err)

	assert.Equal(t, "API_TOKEN=\"******\"\nPORT=5000\nURL=\"http://host:5000/path?a=b\"", out)
}
