package progression

import (
	"time"

	"lunabot/pkg/store"
)

// MaxBond caps the relationship score.
const MaxBond = 100

// BondStatus is a user's relationship-strength snapshot.
type BondStatus struct {
	Score      int
	LastUpdate int64
}

// Meter tracks relationship strength. Scores rise with interaction and cool
// off after long silences.
type Meter struct {
	store       store.Store
	increment   int
	decayAfter  time.Duration
	decayAmount int
	now         func() time.Time
}

func NewMeter(s store.Store) *Meter {
	return &Meter{
		store:       s,
		increment:   1,
		decayAfter:  48 * time.Hour,
		decayAmount: 5,
		now:         time.Now,
	}
}

// Bond returns the user's current bond state without mutating it.
func (m *Meter) Bond(userID string) (BondStatus, error) {
	doc, err := m.store.Load()
	if err != nil {
		return BondStatus{}, err
	}
	rec, ok := doc.Bond[userID]
	if !ok {
		return BondStatus{}, nil
	}
	return BondStatus{Score: rec.Score, LastUpdate: rec.LastUpdate}, nil
}

// touch mutates the document in place so callers can compose it with other
// mutations in one store transaction.
func (m *Meter) touch(doc *store.Document, userID string) BondStatus {
	doc.EnsureUser(userID)
	rec := doc.Bond[userID]
	now := m.now().Unix()

	if rec.LastUpdate != 0 && now-rec.LastUpdate > int64(m.decayAfter/time.Second) {
		rec.Score -= m.decayAmount
		if rec.Score < 0 {
			rec.Score = 0
		}
	}

	rec.Score += m.increment
	if rec.Score > MaxBond {
		rec.Score = MaxBond
	}
	rec.LastUpdate = now

	return BondStatus{Score: rec.Score, LastUpdate: rec.LastUpdate}
}

// Touch registers an interaction. A user returning after the inactivity
// window pays the decay penalty in the same call that rewards the new
// interaction; the score stays clamped to [0, MaxBond] throughout.
func (m *Meter) Touch(userID string) (BondStatus, error) {
	var b BondStatus
	err := m.store.Update(func(doc *store.Document) error {
		b = m.touch(doc, userID)
		return nil
	})
	return b, err
}

// ApplyDecay applies the inactivity penalty without the interaction
// increment. Used by the background sweep. It stamps LastUpdate so a single
// absence window is only penalized once; a longer absence pays again on the
// next sweep past the window. Returns whether a penalty was applied.
func (m *Meter) ApplyDecay(userID string) (bool, error) {
	applied := false
	err := m.store.Update(func(doc *store.Document) error {
		rec, ok := doc.Bond[userID]
		if !ok || rec.LastUpdate == 0 || rec.Score == 0 {
			return nil
		}
		now := m.now().Unix()
		if now-rec.LastUpdate <= int64(m.decayAfter/time.Second) {
			return nil
		}

		rec.Score -= m.decayAmount
		if rec.Score < 0 {
			rec.Score = 0
		}
		rec.LastUpdate = now
		applied = true
		return nil
	})
	return applied, err
}
