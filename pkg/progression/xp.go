package progression

import (
	"time"

	"lunabot/pkg/store"
)

// DefaultLevelCap is the maximum level; XP gained at the cap no longer levels.
const DefaultLevelCap = 50

// XPForNext returns the XP needed to clear the given level.
func XPForNext(level int) int {
	return 100 * level
}

// Profile is a user's experience snapshot. XP is progress within the current
// level and Need is the amount required to clear it.
type Profile struct {
	XP    int
	Level int
	Need  int
}

// DailyResult is the outcome of a daily claim. Refusal is a value, not an
// error: callers must check Granted before trusting Profile reflects a reward.
type DailyResult struct {
	Granted    bool
	RetryAfter time.Duration
	Profile    Profile
}

// Ledger manages experience accrual, the per-message cooldown, and the daily
// reward window.
type Ledger struct {
	store       store.Store
	levelCap    int
	cooldown    time.Duration
	dailyReward int
	dailyWindow time.Duration
	now         func() time.Time
}

func NewLedger(s store.Store) *Ledger {
	return &Ledger{
		store:       s,
		levelCap:    DefaultLevelCap,
		cooldown:    30 * time.Second,
		dailyReward: 20,
		dailyWindow: 24 * time.Hour,
		now:         time.Now,
	}
}

// applyXP adds amount (floored at 0) and runs the level-up cascade. A large
// amount can cascade several levels in one call. Message gains, daily claims,
// and quest rewards all share this so the level math never diverges.
func applyXP(rec *store.XPRecord, amount, levelCap int) {
	if amount < 0 {
		amount = 0
	}
	rec.XP += amount
	for rec.Level < levelCap && rec.XP >= XPForNext(rec.Level) {
		rec.XP -= XPForNext(rec.Level)
		rec.Level++
	}
}

func profileOf(rec *store.XPRecord) Profile {
	return Profile{XP: rec.XP, Level: rec.Level, Need: XPForNext(rec.Level)}
}

// Profile returns the user's current XP state. Pure read; a user never seen
// before gets the default profile without anything being persisted.
func (l *Ledger) Profile(userID string) (Profile, error) {
	doc, err := l.store.Load()
	if err != nil {
		return Profile{}, err
	}
	rec, ok := doc.XP[userID]
	if !ok {
		rec = &store.XPRecord{Level: 1}
	}
	return profileOf(rec), nil
}

// gainXP mutates the document in place so callers can compose it with other
// mutations in one store transaction.
func (l *Ledger) gainXP(doc *store.Document, userID string, amount int) (Profile, bool) {
	doc.EnsureUser(userID)
	rec := doc.XP[userID]
	now := l.now().Unix()

	if rec.LastMsgXP != 0 && now-rec.LastMsgXP < int64(l.cooldown/time.Second) {
		return profileOf(rec), false
	}

	applyXP(rec, amount, l.levelCap)
	rec.LastMsgXP = now
	return profileOf(rec), true
}

// GainXP awards message XP. Inside the cooldown window the call is a no-op
// that still returns the current profile; the XP is dropped, not queued.
// The second return reports whether the gain applied.
func (l *Ledger) GainXP(userID string, amount int) (Profile, bool, error) {
	var profile Profile
	var applied bool
	err := l.store.Update(func(doc *store.Document) error {
		profile, applied = l.gainXP(doc, userID, amount)
		return nil
	})
	return profile, applied, err
}

// ClaimDaily grants the daily reward if the claim window has passed. A claim
// inside the window is refused with the time remaining; the refusal leaves
// the user's state untouched.
func (l *Ledger) ClaimDaily(userID string) (DailyResult, error) {
	var res DailyResult
	err := l.store.Update(func(doc *store.Document) error {
		doc.EnsureUser(userID)
		rec := doc.XP[userID]
		now := l.now().Unix()
		window := int64(l.dailyWindow / time.Second)

		if rec.LastDaily != 0 && now-rec.LastDaily < window {
			res = DailyResult{
				Granted:    false,
				RetryAfter: time.Duration(window-(now-rec.LastDaily)) * time.Second,
				Profile:    profileOf(rec),
			}
			return nil
		}

		rec.LastDaily = now
		applyXP(rec, l.dailyReward, l.levelCap)
		res = DailyResult{Granted: true, Profile: profileOf(rec)}
		return nil
	})
	return res, err
}
