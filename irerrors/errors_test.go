package irerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMalformedLineErrorIs(t *testing.T) {
	err := NewMalformedLineError("/tmp/block-1", "oops")
	assert.True(t, errors.Is(err, ErrMalformedBlockLine))
	assert.Contains(t, err.Error(), "oops")
}

func TestArtifactErrorUnwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewArtifactError("/tmp/cacm_index.json", cause)

	assert.True(t, errors.Is(err, ErrMalformedArtifact))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "/tmp/cacm_index.json")
}
