package domain

import "time"

// RewardType identifies the kind of mystery reward. The set is closed:
// consumers must switch exhaustively over these values.
type RewardType string

const (
	RewardTypeCoins           RewardType = "coins"
	RewardTypeXP              RewardType = "xp"
	RewardTypeCosmetic        RewardType = "cosmetic"
	RewardTypeScoreMultiplier RewardType = "score_multiplier"
	RewardTypeMysteryBox      RewardType = "mystery_box"
)

// RewardTypes lists every reward type, in catalog order.
var RewardTypes = []RewardType{
	RewardTypeCoins,
	RewardTypeXP,
	RewardTypeCosmetic,
	RewardTypeScoreMultiplier,
	RewardTypeMysteryBox,
}

// Rarity is the reward rarity band used by the second-stage weighted draw.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists rarities from most to least common.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// MysteryReward is an immutable reward value produced by the sampler.
// Amount carries countable values (coins, XP); ItemKey carries cosmetic and
// box identifiers; Multiplier carries score-multiplier values.
type MysteryReward struct {
	ID           string     `json:"id"`
	Type         RewardType `json:"type"`
	Rarity       Rarity     `json:"rarity"`
	Amount       int        `json:"amount,omitempty"`
	ItemKey      string     `json:"item_key,omitempty"`
	Multiplier   float64    `json:"multiplier,omitempty"`
	Announcement string     `json:"announcement,omitempty"`
	EffectTag    string     `json:"effect_tag,omitempty"`
}

// MysteryBalloon binds a sampled reward to a spawn position and pop state.
// Instances are transient session state and are never persisted.
type MysteryBalloon struct {
	ID        string        `json:"id"`
	Reward    MysteryReward `json:"reward"`
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
	SpawnedAt time.Time     `json:"spawned_at"`
	Popped    bool          `json:"popped"`
}

// RewardRecord is an entry in the player's reward history log.
type RewardRecord struct {
	Type      RewardType `json:"type"`
	Rarity    Rarity     `json:"rarity"`
	Amount    int        `json:"amount,omitempty"`
	ItemKey   string     `json:"item_key,omitempty"`
	GrantedAt time.Time  `json:"granted_at"`
}
