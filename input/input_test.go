package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeValuesMatchEvdev(t *testing.T) {
	assert.Equal(t, Edge(0), Up)
	assert.Equal(t, Edge(1), Down)
	assert.Equal(t, Edge(2), Hold)

	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "down", Down.String())
	assert.Equal(t, "hold", Hold.String())
	assert.Equal(t, "unknown", Edge(7).String())
}
