//go:build !cgo

package embeddings

import (
	"context"
	"fmt"
)

// provider is a stub for binaries built without CGO; the ONNX runtime is not
// linkable there, so the encoder reports itself unavailable and the pipeline
// degrades.
type provider struct{}

func newProvider(_ Config) (*provider, error) {
	return nil, fmt.Errorf("%w: built without cgo", ErrUnavailable)
}

func (p *provider) embed(_ context.Context, _ []string) ([][]float32, error) {
	return nil, ErrUnavailable
}

func (p *provider) close() error { return nil }
