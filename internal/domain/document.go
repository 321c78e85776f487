package domain

import (
	"fmt"
	"regexp"
)

var docIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Document is an ingested content item (immutable value object).
// The embedding is set once at ingestion and never mutated afterwards.
type Document struct {
	id          string
	title       string
	description string
	tags        []string
	embedding   []float32
}

// NewDocument validates and creates a Document.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Title is required.
func NewDocument(id, title, description string, tags []string, embedding []float32) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("document ID too long (max 256)")
	}
	if !docIDRegex.MatchString(id) {
		return Document{}, fmt.Errorf("document ID must be alphanumeric with underscores and hyphens")
	}
	if title == "" {
		return Document{}, fmt.Errorf("title is required")
	}

	return Document{
		id:          id,
		title:       title,
		description: description,
		tags:        cloneStrings(tags),
		embedding:   cloneFloats(embedding),
	}, nil
}

// ReconstructDocument creates a Document without validation (storage hydration).
func ReconstructDocument(id, title, description string, tags []string, embedding []float32) Document {
	return Document{id: id, title: title, description: description, tags: tags, embedding: embedding}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Description returns the document description.
func (d *Document) Description() string { return d.description }

// Tags returns the document tags.
func (d *Document) Tags() []string { return d.tags }

// Embedding returns the document embedding vector.
func (d *Document) Embedding() []float32 { return d.embedding }

// WithoutEmbedding returns a copy with the embedding dropped.
// Embeddings are an internal representation and never leave the service.
func (d *Document) WithoutEmbedding() Document {
	return Document{id: d.id, title: d.title, description: d.description, tags: d.tags}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}

func cloneFloats(v []float32) []float32 {
	if v == nil {
		return nil
	}
	c := make([]float32, len(v))
	copy(c, v)
	return c
}
