package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledCacheIsNoOp(t *testing.T) {
	Init("")
	ctx := context.Background()

	assert.NoError(t, Set(ctx, "drug:abc", map[string]string{"name": "Aspirin"}))

	out := map[string]string{}
	hit, err := Get(ctx, "drug:abc", &out)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, out)

	assert.NoError(t, Delete(ctx, "drug:abc"))
}
