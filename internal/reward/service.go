package reward

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/skyburst-games/popmeta/internal/config"
	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/logger"
	"github.com/skyburst-games/popmeta/internal/utils"
)

// Service samples mystery rewards from the weighted catalog.
type Service interface {
	// Sample draws one reward for the given level using the two-stage
	// weighted draw: reward type first, then rarity within that type.
	Sample(ctx context.Context, level int) domain.MysteryReward

	// ExpandBox resolves a mystery box into its flattened leaf rewards.
	// Nested boxes are expanded recursively up to the configured depth cap.
	ExpandBox(ctx context.Context, box domain.MysteryReward, level int) []domain.MysteryReward

	// NewBalloon samples a reward and wraps it in a balloon at the given
	// position. Balloons are transient session state.
	NewBalloon(ctx context.Context, level int, x, y float64) domain.MysteryBalloon
}

type service struct {
	cfg      config.RewardConfig
	rng      utils.Rand
	catalog  map[domain.RewardType]map[domain.Rarity][]config.RewardTemplate
	fallback config.RewardTemplate
}

// NewService builds a sampler from a validated reward config. The catalog is
// indexed by type and rarity once at startup so draws never scan the template
// list.
func NewService(cfg config.RewardConfig, rng utils.Rand) (Service, error) {
	if rng == nil {
		return nil, errors.New(ErrMsgNilRandomSource)
	}
	if len(cfg.Templates) == 0 {
		return nil, errors.New(ErrMsgEmptyCatalog)
	}

	catalog := make(map[domain.RewardType]map[domain.Rarity][]config.RewardTemplate)
	for _, tmpl := range cfg.Templates {
		byRarity, ok := catalog[tmpl.Type]
		if !ok {
			byRarity = make(map[domain.Rarity][]config.RewardTemplate)
			catalog[tmpl.Type] = byRarity
		}
		byRarity[tmpl.Rarity] = append(byRarity[tmpl.Rarity], tmpl)
	}

	fallback, err := pickFallback(cfg, catalog)
	if err != nil {
		return nil, err
	}

	return &service{
		cfg:      cfg,
		rng:      rng,
		catalog:  catalog,
		fallback: fallback,
	}, nil
}

// pickFallback selects the lowest-rarity template of the most common type.
// When that type has no templates at all, the lowest-rarity template of any
// type serves instead.
func pickFallback(cfg config.RewardConfig, catalog map[domain.RewardType]map[domain.Rarity][]config.RewardTemplate) (config.RewardTemplate, error) {
	mostCommon := domain.RewardType("")
	best := 0
	for _, rewardType := range domain.RewardTypes {
		if weight := cfg.TypeWeights[rewardType]; weight > best {
			mostCommon = rewardType
			best = weight
		}
	}

	if byRarity, ok := catalog[mostCommon]; ok {
		for _, rarity := range domain.Rarities {
			if templates := byRarity[rarity]; len(templates) > 0 {
				return templates[0], nil
			}
		}
	}

	for _, rarity := range domain.Rarities {
		for _, rewardType := range domain.RewardTypes {
			if templates := catalog[rewardType][rarity]; len(templates) > 0 {
				return templates[0], nil
			}
		}
	}

	return config.RewardTemplate{}, errors.New(ErrMsgNoFallback)
}

func (s *service) Sample(ctx context.Context, level int) domain.MysteryReward {
	return s.sample(ctx, level, false)
}

func (s *service) sample(ctx context.Context, level int, excludeBoxes bool) domain.MysteryReward {
	log := logger.FromContext(ctx)

	rewardType := s.drawType(excludeBoxes)
	rarity := s.drawRarity(rewardType)

	tmpl, ok := s.pickTemplate(rewardType, rarity)
	if !ok {
		log.Debug(LogMsgFallbackTemplate, "type", rewardType, "rarity", rarity)
		tmpl = s.fallback
	}

	reward := s.materialize(tmpl, level)
	log.Debug(LogMsgRewardSampled, "type", reward.Type, "rarity", reward.Rarity, "level", level)
	return reward
}

// drawType runs the first-stage draw over the type weight table, which sums
// to 100. When excludeBoxes is set the box weight is removed from the total
// so nested expansion at the depth cap always lands on a leaf type.
func (s *service) drawType(excludeBoxes bool) domain.RewardType {
	total := config.TypeWeightTotal
	if excludeBoxes {
		total -= s.cfg.TypeWeights[domain.RewardTypeMysteryBox]
	}

	roll := s.rng.Intn(total)
	for _, rewardType := range domain.RewardTypes {
		if excludeBoxes && rewardType == domain.RewardTypeMysteryBox {
			continue
		}
		roll -= s.cfg.TypeWeights[rewardType]
		if roll < 0 {
			return rewardType
		}
	}
	// Unreachable when the table sums to the total; guard for safety.
	return s.fallback.Type
}

// drawRarity runs the second-stage draw. Rarity tables normalize by their own
// total, so they need not sum to any particular value.
func (s *service) drawRarity(rewardType domain.RewardType) domain.Rarity {
	table := s.cfg.RarityWeights[rewardType]

	total := 0
	for _, weight := range table {
		total += weight
	}
	if total <= 0 {
		return s.fallback.Rarity
	}

	roll := s.rng.Intn(total)
	for _, rarity := range domain.Rarities {
		roll -= table[rarity]
		if roll < 0 {
			return rarity
		}
	}
	return s.fallback.Rarity
}

func (s *service) pickTemplate(rewardType domain.RewardType, rarity domain.Rarity) (config.RewardTemplate, bool) {
	templates := s.catalog[rewardType][rarity]
	if len(templates) == 0 {
		return config.RewardTemplate{}, false
	}
	return templates[s.rng.Intn(len(templates))], true
}

// materialize turns a template into a concrete reward, applying level scaling
// to countable amounts. Scaled values always round down.
func (s *service) materialize(tmpl config.RewardTemplate, level int) domain.MysteryReward {
	reward := domain.MysteryReward{
		ID:           uuid.New().String(),
		Type:         tmpl.Type,
		Rarity:       tmpl.Rarity,
		ItemKey:      tmpl.ItemKey,
		Multiplier:   tmpl.Multiplier,
		Announcement: tmpl.Announcement,
		EffectTag:    tmpl.EffectTag,
	}

	if tmpl.Amount > 0 {
		levelScale := 1 + float64(level-1)*s.cfg.LevelFactor
		reward.Amount = utils.FloorScale(tmpl.Amount, levelScale*tmpl.ScalingFactor)
	}

	return reward
}

func (s *service) ExpandBox(ctx context.Context, box domain.MysteryReward, level int) []domain.MysteryReward {
	log := logger.FromContext(ctx)

	leaves := s.expand(ctx, box, level, 1)
	log.Info(LogMsgBoxExpanded, "box_rarity", box.Rarity, "rewards", len(leaves))
	return leaves
}

// expand draws the sub-rewards for one box and recursively flattens any boxes
// among them. Depth counts box layers; at MaxBoxDepth sub-draws exclude the
// box type entirely, which bounds the recursion.
func (s *service) expand(ctx context.Context, box domain.MysteryReward, level, depth int) []domain.MysteryReward {
	bounds, ok := s.cfg.BoxExpansion[box.Rarity]
	if !ok {
		bounds = config.BoxExpansion{MinRewards: 1, MaxRewards: 1}
	}

	count := utils.RandomInt(s.rng, bounds.MinRewards, bounds.MaxRewards)
	leaves := make([]domain.MysteryReward, 0, count)
	for i := 0; i < count; i++ {
		sub := s.sample(ctx, level, depth >= s.cfg.MaxBoxDepth)
		if sub.Type == domain.RewardTypeMysteryBox {
			leaves = append(leaves, s.expand(ctx, sub, level, depth+1)...)
			continue
		}
		leaves = append(leaves, sub)
	}
	return leaves
}

func (s *service) NewBalloon(ctx context.Context, level int, x, y float64) domain.MysteryBalloon {
	return domain.MysteryBalloon{
		ID:        uuid.New().String(),
		Reward:    s.Sample(ctx, level),
		X:         x,
		Y:         y,
		SpawnedAt: time.Now().UTC(),
	}
}
