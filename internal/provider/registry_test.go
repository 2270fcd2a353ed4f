package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizuha/rednote-remix/internal/types"
)

type stubText struct{ name string }

func (s *stubText) Name() string     { return s.name }
func (s *stubText) Configured() bool { return true }
func (s *stubText) Generate(_ context.Context, _ types.RewriteRequest) (*types.RewriteResult, error) {
	return &types.RewriteResult{Text: "x", Provider: s.name}, nil
}

type stubImage struct{ name string }

func (s *stubImage) Name() string     { return s.name }
func (s *stubImage) Configured() bool { return true }
func (s *stubImage) Generate(_ context.Context, _ types.ImageRequest) (*types.ImageResult, error) {
	return &types.ImageResult{Provider: s.name}, nil
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	r.RegisterText("deepseek", &stubText{name: "DeepSeek"})
	r.RegisterImage("placeholder", &stubImage{name: "Placeholder"})

	g, err := r.Text("DeepSeek") // case-insensitive
	require.NoError(t, err)
	assert.Equal(t, "DeepSeek", g.Name())

	img, err := r.Image("placeholder")
	require.NoError(t, err)
	assert.Equal(t, "Placeholder", img.Name())
}

func TestRegistry_UnknownProvider(t *testing.T) {
	r := NewRegistry()
	r.RegisterText("deepseek", &stubText{name: "DeepSeek"})

	_, err := r.Text("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deepseek")

	_, err = r.Image("nope")
	assert.Error(t, err)
}

func TestRegistry_IDsSorted(t *testing.T) {
	r := NewRegistry()
	r.RegisterText("gemini", &stubText{name: "Gemini"})
	r.RegisterText("deepseek", &stubText{name: "DeepSeek"})

	assert.Equal(t, []string{"deepseek", "gemini"}, r.TextIDs())
}

func TestError_UnwrapAndAs(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Kind: KindRemoteFailure, Provider: "DeepSeek", Message: "chat call failed", Cause: cause}

	assert.ErrorIs(t, err, cause)

	var pErr *Error
	require.ErrorAs(t, error(err), &pErr)
	assert.Equal(t, KindRemoteFailure, pErr.Kind)
}

func TestNotConfigured(t *testing.T) {
	err := NotConfigured("Gemini")
	assert.Equal(t, KindNotConfigured, err.Kind)
	assert.Contains(t, err.Error(), "Gemini")
}
