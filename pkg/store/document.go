package store

// Document is the whole persisted state of the progression subsystem: a set of
// maps keyed by stringified user ID, written and replaced as one unit. The JSON
// shape is the external interface other deployments read, so field names are
// stable.
type Document struct {
	PremiumUsers []string               `json:"premium_users"`
	Tiers        map[string]string      `json:"tiers"`
	XP           map[string]*XPRecord   `json:"xp"`
	Bond         map[string]*BondRecord `json:"bond"`
	Quests       *QuestRecords          `json:"quests"`
}

// XPRecord holds one user's experience state. XP is the amount within the
// current level, not a lifetime total.
type XPRecord struct {
	XP        int   `json:"xp"`
	Level     int   `json:"level"`
	LastDaily int64 `json:"last_daily"`
	LastMsgXP int64 `json:"last_msg_xp"`
}

// BondRecord holds one user's relationship strength (0..100).
type BondRecord struct {
	Score      int   `json:"score"`
	LastUpdate int64 `json:"last_update"`
}

// QuestRecords tracks quest progress per user. Completed is append-only;
// Claimed records which completed quests have already paid out their reward,
// so a retried claim can never grant XP twice.
type QuestRecords struct {
	Completed map[string][]string `json:"completed"`
	Claimed   map[string][]string `json:"claimed"`
}

// NewDocument returns an empty document with every top-level key present.
func NewDocument() *Document {
	return &Document{
		PremiumUsers: []string{},
		Tiers:        make(map[string]string),
		XP:           make(map[string]*XPRecord),
		Bond:         make(map[string]*BondRecord),
		Quests: &QuestRecords{
			Completed: make(map[string][]string),
			Claimed:   make(map[string][]string),
		},
	}
}

// normalize fills in any top-level keys missing from an older or hand-edited
// document so callers never have to nil-check maps.
func (d *Document) normalize() {
	if d.PremiumUsers == nil {
		d.PremiumUsers = []string{}
	}
	if d.Tiers == nil {
		d.Tiers = make(map[string]string)
	}
	if d.XP == nil {
		d.XP = make(map[string]*XPRecord)
	}
	if d.Bond == nil {
		d.Bond = make(map[string]*BondRecord)
	}
	if d.Quests == nil {
		d.Quests = &QuestRecords{}
	}
	if d.Quests.Completed == nil {
		d.Quests.Completed = make(map[string][]string)
	}
	if d.Quests.Claimed == nil {
		d.Quests.Claimed = make(map[string][]string)
	}
}

// EnsureUser creates default rows for a user the first time they are seen.
// Idempotent; every component calls this before touching a user's state.
func (d *Document) EnsureUser(userID string) {
	if _, ok := d.XP[userID]; !ok {
		d.XP[userID] = &XPRecord{XP: 0, Level: 1}
	}
	if _, ok := d.Bond[userID]; !ok {
		d.Bond[userID] = &BondRecord{}
	}
}

// IsPremium reports whether the user is in the premium set or has any paid
// tier assigned.
func (d *Document) IsPremium(userID string) bool {
	for _, id := range d.PremiumUsers {
		if id == userID {
			return true
		}
	}
	return d.Tiers[userID] != ""
}
