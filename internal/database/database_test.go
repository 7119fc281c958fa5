package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCacheConstants(t *testing.T) {
	assert.Equal(t, 0, GENERAL_CACHE_INDEX)
	assert.Equal(t, 1, STATE_CACHE_INDEX)
	assert.Equal(t, 2, EVENTS_CACHE_INDEX)
	assert.Equal(t, 3, CLIENT_API_CACHE_INDEX)
}

func TestDB_WithoutConnections(t *testing.T) {
	db := &DB{}

	assert.False(t, db.HasSQL())
	assert.False(t, db.HasCache())
	assert.NoError(t, db.Close())
}

func TestCacheBuilder_Keys(t *testing.T) {
	id := uuid.MustParse("0192d7a4-8f3e-7b1c-9d2a-4e5f6a7b8c9d")

	tests := []struct {
		name     string
		builder  *CacheBuilder
		expected string
	}{
		{
			name:     "plain string key",
			builder:  NewCacheBuilder(nil, "gameshelf_state"),
			expected: "gameshelf_state",
		},
		{
			name:     "uuid key",
			builder:  NewCacheBuilder(nil, id),
			expected: id.String(),
		},
		{
			name:     "hashed key",
			builder:  NewCacheBuilder(nil, "zelda").WithHash("rawg_search"),
			expected: "rawg_search:zelda",
		},
		{
			name:     "empty hash leaves key untouched",
			builder:  NewCacheBuilder(nil, "zelda").WithHash(""),
			expected: "zelda",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.builder.Key())
		})
	}
}

func TestCacheBuilder_ValidationBeforeNetwork(t *testing.T) {
	err := NewCacheBuilder(nil, "").WithBytes([]byte("x")).Set()
	assert.EqualError(t, err, "key is required")

	err = NewCacheBuilder(nil, "key").Set()
	assert.EqualError(t, err, "value is required")

	_, _, err = NewCacheBuilder(nil, "").GetBytes()
	assert.EqualError(t, err, "key is required")

	err = NewCacheBuilder(nil, "").Delete()
	assert.EqualError(t, err, "key is required")

	err = NewCacheBuilder(nil, "key").WithStruct(func() {}).Set()
	assert.ErrorContains(t, err, "failed to marshal value to json")
}

func TestCacheBuilder_TimeoutContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	builder := NewCacheBuilder(nil, "key").WithContext(ctx).WithTimeout(time.Minute)
	derived, derivedCancel := builder.createTimeoutContext()
	defer derivedCancel()

	parentDeadline, _ := ctx.Deadline()
	derivedDeadline, ok := derived.Deadline()
	assert.True(t, ok)
	assert.Equal(t, parentDeadline, derivedDeadline)
}

func TestIsKeyNotFoundError(t *testing.T) {
	assert.False(t, isKeyNotFoundError(nil))
	assert.False(t, isKeyNotFoundError(errors.New("connection refused")))
	assert.True(t, isKeyNotFoundError(errors.New("key not found")))
}
