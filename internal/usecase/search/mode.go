package search

import (
	"fmt"

	"github.com/fuse-search/fuse/internal/domain"
)

// Mode selects the retrieval strategy for a search request.
type Mode string

const (
	// ModeKeyword ranks by lexical term counts only.
	ModeKeyword Mode = "keyword"
	// ModeVector ranks by embedding cosine similarity only.
	ModeVector Mode = "vector"
	// ModeHybrid blends normalized keyword and vector scores.
	ModeHybrid Mode = "hybrid"
)

// ParseMode validates a raw mode string. An empty string defaults to hybrid.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeHybrid, nil
	case ModeKeyword, ModeVector, ModeHybrid:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: unsupported search mode %q", domain.ErrInvalidArgument, s)
	}
}
