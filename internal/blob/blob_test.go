package blob

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ref, err := store.Put(ctx, strings.NewReader("hello payload"), 13, "text/plain")
	require.NoError(t, err)
	require.NotEmpty(t, ref)

	rc, contentType, err := store.Get(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello payload", string(data))
	assert.Equal(t, "text/plain", contentType)

	require.NoError(t, store.Remove(ctx, ref))
	_, _, err = store.Get(ctx, ref)
	assert.ErrorIs(t, err, ErrNotFound)

	// removing a missing ref is not an error
	assert.NoError(t, store.Remove(ctx, ref))
}

func TestIsDataURI(t *testing.T) {
	assert.True(t, IsDataURI("data:application/pdf;base64,AAAA"))
	assert.False(t, IsDataURI("9f2c1c34-object-key"))
	assert.False(t, IsDataURI(""))
}

func TestDecodeDataURI(t *testing.T) {
	t.Run("base64", func(t *testing.T) {
		data, contentType, err := DecodeDataURI("data:text/plain;base64,aGVsbG8=")
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
		assert.Equal(t, "text/plain", contentType)
	})

	t.Run("plain", func(t *testing.T) {
		data, contentType, err := DecodeDataURI("data:,raw-text")
		require.NoError(t, err)
		assert.Equal(t, "raw-text", string(data))
		assert.Equal(t, "application/octet-stream", contentType)
	})

	t.Run("malformed", func(t *testing.T) {
		_, _, err := DecodeDataURI("data:no-comma")
		assert.Error(t, err)

		_, _, err = DecodeDataURI("data:text/plain;base64,!!!")
		assert.Error(t, err)
	})
}
