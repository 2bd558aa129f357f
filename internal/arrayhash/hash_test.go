package arrayhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFNV1aIsDeterministicAndSensitiveToInput(t *testing.T) {
	assert.Equal(t, FNV1a([]byte("hello")), FNV1a([]byte("hello")))
	assert.NotEqual(t, FNV1a([]byte("hello")), FNV1a([]byte("world")))
	assert.Equal(t, FNV1a(nil), FNV1a([]byte{}))
}

func TestBytesEqual(t *testing.T) {
	assert.True(t, BytesEqual([]byte("abc"), []byte("abc")))
	assert.True(t, BytesEqual(nil, []byte{}))
	assert.False(t, BytesEqual([]byte("abc"), []byte("abd")))
	assert.False(t, BytesEqual([]byte("ab"), []byte("abc")))
}
