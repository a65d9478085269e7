// Package embeddings provides sentence embedding generation backed by local
// ONNX models, with graceful degradation when no model can load.
package embeddings

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Config holds configuration for the embedding encoder.
type Config struct {
	// Model is the embedding model name.
	// Default: sentence-transformers/all-MiniLM-L6-v2.
	Model string `koanf:"model"`

	// CacheDir is the directory model files are cached in.
	CacheDir string `koanf:"cache_dir"`

	// MaxLength is the maximum input sequence length. Default 512.
	MaxLength int `koanf:"max_length"`
}

// DefaultModel is the encoder used when none is configured.
const DefaultModel = "sentence-transformers/all-MiniLM-L6-v2"

// Encoder is the process-wide embedding handle. The model is initialized
// lazily on the first Ready or Embed call; a failed initialization is cached
// as "unavailable" and every later call degrades instead of retrying.
//
// Initialization is guarded by sync.Once and the model is safe for
// concurrent read-only use, though the pipeline itself runs single-threaded.
type Encoder struct {
	cfg  Config
	log  *zap.Logger
	once sync.Once
	p    *provider
}

// NewEncoder creates an encoder handle. No model is loaded until first use.
func NewEncoder(cfg Config, log *zap.Logger) *Encoder {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Encoder{cfg: cfg, log: log}
}

func (e *Encoder) init() {
	e.once.Do(func() {
		p, err := newProvider(e.cfg)
		if err != nil {
			e.log.Warn("embedding model unavailable, stages will degrade",
				zap.String("model", e.cfg.Model), zap.Error(err))
			return
		}
		e.log.Debug("embedding model loaded", zap.String("model", e.cfg.Model))
		e.p = p
	})
}

// Ready reports whether the model loaded, triggering lazy initialization on
// the first call.
func (e *Encoder) Ready() bool {
	e.init()
	return e.p != nil
}

// Embed returns one vector per input text, or ErrUnavailable when no model
// loaded.
func (e *Encoder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	e.init()
	if e.p == nil {
		return nil, ErrUnavailable
	}
	return e.p.embed(ctx, texts)
}

// Close releases the model resources, if any loaded.
func (e *Encoder) Close() error {
	if e.p == nil {
		return nil
	}
	return e.p.close()
}
