package embeddings

import "errors"

var (
	// ErrUnavailable is returned when the embedding model could not be
	// initialized. Callers degrade instead of failing the run.
	ErrUnavailable = errors.New("embeddings: encoder unavailable")

	// ErrInvalidConfig indicates an unsupported model or bad configuration.
	ErrInvalidConfig = errors.New("embeddings: invalid configuration")

	// ErrEmptyInput indicates an empty embedding request.
	ErrEmptyInput = errors.New("embeddings: empty input")

	// ErrEmbeddingFailed wraps failures from the underlying model.
	ErrEmbeddingFailed = errors.New("embeddings: embedding failed")
)
