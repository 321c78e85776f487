package interaction

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fuse-search/fuse/internal/domain"
)

// interactionDTO is the JSON storage shape of a single log entry.
type interactionDTO struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	DocumentID string    `json:"document_id"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}

func marshalInteraction(ev *domain.Interaction) ([]byte, error) {
	return json.Marshal(interactionDTO{
		ID:         ev.ID(),
		UserID:     ev.UserID(),
		DocumentID: ev.DocumentID(),
		Action:     string(ev.Action()),
		Timestamp:  ev.Timestamp(),
	})
}

func unmarshalInteraction(raw []byte) (domain.Interaction, error) {
	var d interactionDTO
	if err := json.Unmarshal(raw, &d); err != nil {
		return domain.Interaction{}, fmt.Errorf("unmarshal interaction: %w", err)
	}
	return domain.ReconstructInteraction(
		d.ID, d.UserID, d.DocumentID, domain.Action(d.Action), d.Timestamp,
	), nil
}
