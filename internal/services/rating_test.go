package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.3, RoundRating(4.333333))
	assert.Equal(t, 4.7, RoundRating(4.666666))
	assert.Equal(t, 4.5, RoundRating(4.5))
	assert.Equal(t, 5.0, RoundRating(4.95))
	assert.Equal(t, 0.0, RoundRating(0))
	assert.Equal(t, 1.0, RoundRating(1.04))
}
