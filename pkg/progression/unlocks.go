package progression

import (
	"lunabot/pkg/store"
)

// Subscription tiers assigned by the payment layer.
const (
	TierBronze = "BRONZE"
	TierSilver = "SILVER"
	TierGold   = "GOLD"
)

// DefaultGates maps feature names to the minimum level required.
var DefaultGates = map[string]int{
	"voice":    2,
	"images":   3,
	"romantic": 5,
}

// Gate answers feature-access questions from level thresholds and premium
// membership. Thresholds are static; the premium set and tiers are written
// out-of-band by the payment layer through SetPremium/SetTier.
type Gate struct {
	store store.Store
	gates map[string]int
}

func NewGate(s store.Store, gates map[string]int) *Gate {
	if len(gates) == 0 {
		gates = DefaultGates
	}
	return &Gate{store: s, gates: gates}
}

// IsPremium reports premium access via the premium set or any assigned tier.
func (g *Gate) IsPremium(userID string) (bool, error) {
	doc, err := g.store.Load()
	if err != nil {
		return false, err
	}
	return doc.IsPremium(userID), nil
}

// Tier returns the user's subscription tier, empty if none.
func (g *Gate) Tier(userID string) (string, error) {
	doc, err := g.store.Load()
	if err != nil {
		return "", err
	}
	return doc.Tiers[userID], nil
}

// Level returns the user's current level, 1 for users never seen.
func (g *Gate) Level(userID string) (int, error) {
	doc, err := g.store.Load()
	if err != nil {
		return 0, err
	}
	if rec, ok := doc.XP[userID]; ok {
		return rec.Level, nil
	}
	return 1, nil
}

// HasUnlock reports whether the user may use the feature. Premium overrides
// every level gate; unknown features default to level 1 and are always open.
func (g *Gate) HasUnlock(userID, feature string) (bool, error) {
	doc, err := g.store.Load()
	if err != nil {
		return false, err
	}
	if doc.IsPremium(userID) {
		return true, nil
	}

	level := 1
	if rec, ok := doc.XP[userID]; ok {
		level = rec.Level
	}
	return level >= g.Requirement(feature), nil
}

// Requirement returns the level threshold for a feature, for user-facing
// "unlocks at level N" messaging.
func (g *Gate) Requirement(feature string) int {
	if req, ok := g.gates[feature]; ok {
		return req
	}
	return 1
}

// SetPremium adds or removes the user from the premium set.
func (g *Gate) SetPremium(userID string, premium bool) error {
	return g.store.Update(func(doc *store.Document) error {
		filtered := doc.PremiumUsers[:0]
		for _, id := range doc.PremiumUsers {
			if id != userID {
				filtered = append(filtered, id)
			}
		}
		doc.PremiumUsers = filtered
		if premium {
			doc.PremiumUsers = append(doc.PremiumUsers, userID)
		}
		return nil
	})
}

// SetTier assigns the user's subscription tier; an empty tier clears it.
func (g *Gate) SetTier(userID, tier string) error {
	return g.store.Update(func(doc *store.Document) error {
		if tier == "" {
			delete(doc.Tiers, userID)
			return nil
		}
		doc.Tiers[userID] = tier
		return nil
	})
}
