package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got, err := Normalize("(415) 555-2671", "US")
	require.NoError(t, err)
	assert.Equal(t, "+14155552671", got)

	got, err = Normalize("+44 20 7946 0958", "")
	require.NoError(t, err)
	assert.Equal(t, "+442079460958", got)
}

func TestNormalizeEmpty(t *testing.T) {
	got, err := Normalize("", "US")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestNormalizeInvalid(t *testing.T) {
	_, err := Normalize("not-a-number", "US")
	assert.Error(t, err)
}
