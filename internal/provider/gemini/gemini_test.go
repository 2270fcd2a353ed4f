package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/mizuha/rednote-remix/internal/provider"
	"github.com/mizuha/rednote-remix/internal/types"
)

func TestConfigured(t *testing.T) {
	// The stock registration passes no key, so the backend reports itself
	// unconfigured and the orchestrator never calls Generate.
	assert.False(t, New("").Configured())
	assert.True(t, New("key").Configured())
}

func TestGenerate_Unconfigured(t *testing.T) {
	g := New("")
	_, err := g.Generate(context.Background(), types.RewriteRequest{Style: types.StyleAttention})

	var pErr *provider.Error
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, provider.KindNotConfigured, pErr.Kind)
	assert.Equal(t, "Gemini", pErr.Provider)
}

func TestGenerate_ValidatesBeforeClientCreation(t *testing.T) {
	g := New("some-key")
	_, err := g.Generate(context.Background(), types.RewriteRequest{Style: types.StyleCustom})
	require.Error(t, err)

	// Request validation failures are not provider errors.
	var pErr *provider.Error
	assert.False(t, errors.As(err, &pErr))
}

func TestClassifyRemoteError(t *testing.T) {
	var pErr *provider.Error

	err := classifyRemoteError(&googleapi.Error{Code: http.StatusTooManyRequests})
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, provider.KindRateLimited, pErr.Kind)

	err = classifyRemoteError(&googleapi.Error{Code: http.StatusBadGateway})
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, provider.KindRemoteFailure, pErr.Kind)

	err = classifyRemoteError(errors.New("dial tcp: timeout"))
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, provider.KindRemoteFailure, pErr.Kind)
}
