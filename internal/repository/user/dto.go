package user

import (
	"encoding/json"
	"fmt"

	"github.com/fuse-search/fuse/internal/domain"
)

// userDTO is the JSON storage shape. The ID lives in the key, not the value.
type userDTO struct {
	Name       string    `json:"name"`
	Preference []float32 `json:"preference_embedding,omitempty"`
}

func marshalUser(u *domain.User) ([]byte, error) {
	return json.Marshal(userDTO{
		Name:       u.Name(),
		Preference: u.Preference(),
	})
}

// unmarshalUser parses a JSON.GET "$" result (one-element array wrapper).
func unmarshalUser(id string, raw []byte) (domain.User, error) {
	var wrapped []userDTO
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return domain.User{}, fmt.Errorf("unmarshal user: %w", err)
	}
	if len(wrapped) == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}
	u := wrapped[0]
	return domain.ReconstructUser(id, u.Name, u.Preference), nil
}
