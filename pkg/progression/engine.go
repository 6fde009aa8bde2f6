package progression

import (
	"time"

	"lunabot/pkg/config"
	"lunabot/pkg/store"
)

// Engine wires the progression components behind one per-message entry
// point. The command layer holds an Engine and calls the components directly
// for /profile, /daily, /quests, /claim and /leaderboard style commands.
type Engine struct {
	Ledger  *Ledger
	Meter   *Meter
	Tracker *Tracker
	Gate    *Gate
	Board   *Board

	store     store.Store
	messageXP int
}

// MessageOutcome aggregates everything one inbound message changed.
type MessageOutcome struct {
	Profile         Profile
	XPApplied       bool
	LevelsGained    int
	Bond            BondStatus
	CompletedQuests []Quest
}

func NewEngine(s store.Store, cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}

	catalog := make([]Quest, 0, len(cfg.Quests))
	for _, q := range cfg.Quests {
		catalog = append(catalog, Quest{ID: q.ID, Text: q.Text, XP: q.XP, Keyword: q.Keyword})
	}

	ledger := &Ledger{
		store:       s,
		levelCap:    cfg.Progression.LevelCap,
		cooldown:    time.Duration(cfg.Progression.GainCooldownSec) * time.Second,
		dailyReward: cfg.Progression.DailyReward,
		dailyWindow: time.Duration(cfg.Progression.DailyWindowHrs) * time.Hour,
		now:         time.Now,
	}
	meter := &Meter{
		store:       s,
		increment:   cfg.Bond.Increment,
		decayAfter:  time.Duration(cfg.Bond.DecayAfterHrs) * time.Hour,
		decayAmount: cfg.Bond.DecayAmount,
		now:         time.Now,
	}
	tracker := NewTracker(s, catalog)
	tracker.levelCap = cfg.Progression.LevelCap

	return &Engine{
		Ledger:    ledger,
		Meter:     meter,
		Tracker:   tracker,
		Gate:      NewGate(s, cfg.Gates),
		Board:     NewBoard(s),
		store:     s,
		messageXP: cfg.Progression.MessageXP,
	}
}

// HandleMessage runs the per-message sequence: XP gain (cooldown permitting),
// bond touch, quest autocomplete. The whole sequence runs inside a single
// store update, so one message is one atomic document transition: a failed
// write grants nothing, and a concurrent reader never observes the XP gain
// without the bond touch.
func (e *Engine) HandleMessage(userID, text string) (MessageOutcome, error) {
	out := MessageOutcome{}

	err := e.store.Update(func(doc *store.Document) error {
		doc.EnsureUser(userID)
		levelBefore := doc.XP[userID].Level

		profile, applied := e.Ledger.gainXP(doc, userID, e.messageXP)
		out.Profile = profile
		out.XPApplied = applied
		out.LevelsGained = profile.Level - levelBefore

		out.Bond = e.Meter.touch(doc, userID)
		out.CompletedQuests = e.Tracker.autocomplete(doc, userID, text)
		return nil
	})
	if err != nil {
		return MessageOutcome{}, err
	}
	return out, nil
}
