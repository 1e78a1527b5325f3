package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Marker_Bool(t *testing.T) {
	assert.True(t, MarkerActive.Bool())
	assert.False(t, MarkerInactive.Bool())
	assert.False(t, Marker("maybe").Bool())
}

func Test_MarkerFor(t *testing.T) {
	assert.Equal(t, MarkerActive, MarkerFor(true))
	assert.Equal(t, MarkerInactive, MarkerFor(false))
}

func Test_Marker_Validate(t *testing.T) {
	assert.NoError(t, MarkerActive.Validate())
	assert.NoError(t, MarkerInactive.Validate())
	assert.Error(t, Marker("maybe").Validate())
	assert.Error(t, Marker("").Validate())
}

func Test_Options(t *testing.T) {
	assert.Equal(t, []string{"Yes", "No"}, Options())
}
