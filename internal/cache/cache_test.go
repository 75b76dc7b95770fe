package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwnerKey(t *testing.T) {
	assert.Equal(t, "posts:owner:7", ownerKey(7))
	assert.Equal(t, "posts:owner:123456", ownerKey(123456))
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c PostListCache = Noop{}

	posts, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	assert.Nil(t, posts)

	c.Set(ctx, 1, nil)
	c.Invalidate(ctx, 1)
	_, ok = c.Get(ctx, 1)
	assert.False(t, ok)
}
