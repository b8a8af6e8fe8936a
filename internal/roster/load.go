package roster

import (
	"fmt"

	"github.com/mgracey/rapport/internal/platform/config"
)

type rosterFile struct {
	Characters []Character `json:"characters"`
}

// LoadFile reads a roster from a JSON file that may carry comments.
// Characters without an ID are rejected.
func LoadFile(path string) (Roster, error) {
	var file rosterFile
	if err := config.LoadJSONC(path, &file); err != nil {
		return nil, err
	}
	for i, c := range file.Characters {
		if c.ID == "" {
			return nil, fmt.Errorf("roster %s: character %d has no id", path, i)
		}
	}
	return Roster(file.Characters), nil
}
