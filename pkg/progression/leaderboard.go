package progression

import (
	"sort"

	"lunabot/pkg/store"
)

// Entry is one leaderboard row.
type Entry struct {
	UserID string
	Level  int
	XP     int
}

// Board is a read-only ranked projection over the XP records.
type Board struct {
	store store.Store
}

func NewBoard(s store.Store) *Board {
	return &Board{store: s}
}

// Top returns up to n users sorted descending by (level, xp); level is the
// primary key and xp breaks ties. The ranking is recomputed in full on every
// call.
func (b *Board) Top(n int) ([]Entry, error) {
	doc, err := b.store.Load()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(doc.XP))
	for userID, rec := range doc.XP {
		entries = append(entries, Entry{UserID: userID, Level: rec.Level, XP: rec.XP})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Level != entries[j].Level {
			return entries[i].Level > entries[j].Level
		}
		if entries[i].XP != entries[j].XP {
			return entries[i].XP > entries[j].XP
		}
		return entries[i].UserID < entries[j].UserID
	})

	if n < 0 {
		n = 0
	}
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// MaskID hides the middle of an identifier for public display, keeping the
// first 3 and last 2 characters. Identifiers of 5 characters or fewer are
// too short to usefully mask and come back unchanged.
func MaskID(id string) string {
	runes := []rune(id)
	if len(runes) <= 5 {
		return id
	}
	return string(runes[:3]) + "..." + string(runes[len(runes)-2:])
}
