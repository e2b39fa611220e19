package gurps

// Every collection entry exposes its identifier so list operations and
// load-time repair can treat the collections uniformly.

func (e *Advantage) EntryID() string                { return e.ID }
func (e *Advantage) SetEntryID(id string)           { e.ID = id }
func (e *Disadvantage) EntryID() string             { return e.ID }
func (e *Disadvantage) SetEntryID(id string)        { e.ID = id }
func (e *Skill) EntryID() string                    { return e.ID }
func (e *Skill) SetEntryID(id string)               { e.ID = id }
func (e *Equipment) EntryID() string                { return e.ID }
func (e *Equipment) SetEntryID(id string)           { e.ID = id }
func (e *Spell) EntryID() string                    { return e.ID }
func (e *Spell) SetEntryID(id string)               { e.ID = id }
func (e *Language) EntryID() string                 { return e.ID }
func (e *Language) SetEntryID(id string)            { e.ID = id }
func (e *Status) EntryID() string                   { return e.ID }
func (e *Status) SetEntryID(id string)              { e.ID = id }
func (e *Reputation) EntryID() string               { return e.ID }
func (e *Reputation) SetEntryID(id string)          { e.ID = id }
func (e *CulturalFamiliarity) EntryID() string      { return e.ID }
func (e *CulturalFamiliarity) SetEntryID(id string) { e.ID = id }
func (e *ReactionModifier) EntryID() string         { return e.ID }
func (e *ReactionModifier) SetEntryID(id string)    { e.ID = id }

// Identified is implemented by pointers to collection entries
type Identified[T any] interface {
	*T
	EntryID() string
	SetEntryID(id string)
}

// FillIDs assigns a fresh id from next to every entry that lacks one or
// repeats an id already used earlier in the collection. It reports how many
// ids were assigned. Fresh ids never collide with ids present in entries.
func FillIDs[T any, P Identified[T]](entries []T, next func() string) int {
	present := make(map[string]bool, len(entries))
	for i := range entries {
		present[P(&entries[i]).EntryID()] = true
	}

	seen := make(map[string]bool, len(entries))
	filled := 0
	for i := range entries {
		p := P(&entries[i])
		if id := p.EntryID(); id != "" && !seen[id] {
			seen[id] = true
			continue
		}
		id := next()
		for present[id] || seen[id] {
			id = next()
		}
		p.SetEntryID(id)
		seen[id] = true
		filled++
	}
	return filled
}

// IndexOf returns the position of the entry with id, or -1
func IndexOf[T any, P Identified[T]](entries []T, id string) int {
	for i := range entries {
		if P(&entries[i]).EntryID() == id {
			return i
		}
	}
	return -1
}
