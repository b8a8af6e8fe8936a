// Package roster models the character data consumed by the simulation
// engine. The engine only reads these records; ownership stays with the
// campaign's personnel system.
package roster

// Character is a read-only view of one campaign character.
type Character struct {
	// ID uniquely identifies the character.
	ID string `json:"id"`
	// Age in years, used for age-band availability filters.
	Age int `json:"age"`
	// Profession is the character's role label (e.g. "mechwarrior", "tech").
	Profession string `json:"profession"`
	// UnitID is the lance/squad the character is assigned to, if any.
	UnitID string `json:"unit_id,omitempty"`
	// Skills maps skill name to trained level. Absent means untrained.
	Skills map[string]int `json:"skills,omitempty"`
	// Attributes maps attribute name to score.
	Attributes map[string]int `json:"attributes,omitempty"`
}

// SkillLevel returns the trained level for a skill and whether the
// character is trained in it at all.
func (c Character) SkillLevel(name string) (int, bool) {
	level, ok := c.Skills[name]
	return level, ok
}

// Attribute returns the score for an attribute, zero when absent.
func (c Character) Attribute(name string) int {
	return c.Attributes[name]
}

// Roster is the set of characters present for a simulation step.
type Roster []Character

// ByID returns the character with the given ID.
func (r Roster) ByID(id string) (Character, bool) {
	for _, c := range r {
		if c.ID == id {
			return c, true
		}
	}
	return Character{}, false
}

// IDs returns the IDs of all characters in roster order.
func (r Roster) IDs() []string {
	ids := make([]string, 0, len(r))
	for _, c := range r {
		ids = append(ids, c.ID)
	}
	return ids
}

// FilterProfession returns the characters whose profession matches any of
// the provided labels. An empty label list matches everyone.
func (r Roster) FilterProfession(labels []string) Roster {
	if len(labels) == 0 {
		return r
	}
	var out Roster
	for _, c := range r {
		for _, label := range labels {
			if c.Profession == label {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// UnitMates returns all characters sharing a unit with the given character,
// excluding the character itself. Characters without a unit have no mates.
func (r Roster) UnitMates(id string) Roster {
	self, ok := r.ByID(id)
	if !ok || self.UnitID == "" {
		return nil
	}
	var out Roster
	for _, c := range r {
		if c.ID != id && c.UnitID == self.UnitID {
			out = append(out, c)
		}
	}
	return out
}
