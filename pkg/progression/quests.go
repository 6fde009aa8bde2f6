package progression

import (
	"strings"

	"lunabot/pkg/store"
)

// Quest is one catalog entry. The keyword is matched case-insensitively as a
// substring of message text.
type Quest struct {
	ID      string
	Text    string
	XP      int
	Keyword string
}

// DefaultCatalog is the shipped quest set.
var DefaultCatalog = []Quest{
	{ID: "daily_greet", Text: "Say 'good morning'", XP: 10, Keyword: "good morning"},
	{ID: "share_thought", Text: "Tell Luna one thing on your mind", XP: 15, Keyword: "I feel"},
}

// QuestStatus is a catalog entry annotated with the user's completion state.
type QuestStatus struct {
	ID   string
	Text string
	XP   int
	Done bool
}

// ClaimResult is the outcome of a reward claim. A quest pays out at most
// once; a repeat claim or a claim on an incomplete quest is refused.
type ClaimResult struct {
	Granted bool
	XP      int
	Profile Profile
}

// Tracker manages keyword-triggered quests and their one-time rewards.
type Tracker struct {
	store    store.Store
	catalog  []Quest
	levelCap int
}

func NewTracker(s store.Store, catalog []Quest) *Tracker {
	if len(catalog) == 0 {
		catalog = DefaultCatalog
	}
	return &Tracker{store: s, catalog: catalog, levelCap: DefaultLevelCap}
}

// List returns the catalog in order with the user's completion flags.
func (t *Tracker) List(userID string) ([]QuestStatus, error) {
	doc, err := t.store.Load()
	if err != nil {
		return nil, err
	}
	done := toSet(doc.Quests.Completed[userID])

	items := make([]QuestStatus, 0, len(t.catalog))
	for _, q := range t.catalog {
		items = append(items, QuestStatus{
			ID:   q.ID,
			Text: q.Text,
			XP:   q.XP,
			Done: done[q.ID],
		})
	}
	return items, nil
}

// autocomplete mutates the document in place so callers can compose it with
// other mutations in one store transaction.
func (t *Tracker) autocomplete(doc *store.Document, userID, text string) []Quest {
	var updates []Quest
	lower := strings.ToLower(text)

	done := toSet(doc.Quests.Completed[userID])
	for _, q := range t.catalog {
		if done[q.ID] {
			continue
		}
		if strings.Contains(lower, strings.ToLower(q.Keyword)) {
			doc.Quests.Completed[userID] = append(doc.Quests.Completed[userID], q.ID)
			updates = append(updates, q)
		}
	}
	return updates
}

// TryAutocomplete marks every not-yet-completed quest whose keyword appears
// in the message text and returns the newly completed ones. Completion is
// permanent; a quest already in the completed set never re-triggers.
func (t *Tracker) TryAutocomplete(userID, text string) ([]Quest, error) {
	var updates []Quest
	err := t.store.Update(func(doc *store.Document) error {
		updates = t.autocomplete(doc, userID, text)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updates, nil
}

// Completed reports whether the quest is in the user's completed set.
func (t *Tracker) Completed(userID, questID string) (bool, error) {
	doc, err := t.store.Load()
	if err != nil {
		return false, err
	}
	return toSet(doc.Quests.Completed[userID])[questID], nil
}

// Claim pays out a completed quest's XP reward exactly once. The claimed set
// is tracked separately from completion, so retried or replayed claims are
// refused instead of granting the reward again.
func (t *Tracker) Claim(userID, questID string) (ClaimResult, error) {
	var res ClaimResult
	err := t.store.Update(func(doc *store.Document) error {
		if !toSet(doc.Quests.Completed[userID])[questID] {
			return nil
		}
		if toSet(doc.Quests.Claimed[userID])[questID] {
			return nil
		}

		doc.EnsureUser(userID)
		doc.Quests.Claimed[userID] = append(doc.Quests.Claimed[userID], questID)

		reward := t.QuestXP(questID)
		rec := doc.XP[userID]
		applyXP(rec, reward, t.levelCap)

		res = ClaimResult{Granted: true, XP: reward, Profile: profileOf(rec)}
		return nil
	})
	return res, err
}

// QuestXP returns the reward for a quest id, 0 if unknown.
func (t *Tracker) QuestXP(questID string) int {
	for _, q := range t.catalog {
		if q.ID == questID {
			return q.XP
		}
	}
	return 0
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
