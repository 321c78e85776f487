package domain

import "errors"

var (
	// ErrInvalidArgument signals a malformed or missing request field.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrUserNotFound signals a missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrDimensionMismatch signals embeddings of different lengths being compared.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
