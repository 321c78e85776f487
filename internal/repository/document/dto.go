package document

import (
	"encoding/json"
	"fmt"

	"github.com/fuse-search/fuse/internal/domain"
)

// docDTO is the JSON storage shape. The ID lives in the key, not the value.
type docDTO struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags,omitempty"`
	Embedding   []float32 `json:"embedding,omitempty"`
}

func marshalDocument(doc *domain.Document) ([]byte, error) {
	return json.Marshal(docDTO{
		Title:       doc.Title(),
		Description: doc.Description(),
		Tags:        doc.Tags(),
		Embedding:   doc.Embedding(),
	})
}

// unmarshalDocument parses a JSON.GET "$" result, which wraps the value in a
// one-element array.
func unmarshalDocument(id string, raw []byte) (domain.Document, error) {
	var wrapped []docDTO
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return domain.Document{}, fmt.Errorf("unmarshal document: %w", err)
	}
	if len(wrapped) == 0 {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	d := wrapped[0]
	return domain.ReconstructDocument(id, d.Title, d.Description, d.Tags, d.Embedding), nil
}
