package requestctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Equal(t, "anonymous", GetActor(ctx))

	ctx = WithActor(WithRequestID(ctx, "req-1"), "admin")
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "admin", GetActor(ctx))
}
