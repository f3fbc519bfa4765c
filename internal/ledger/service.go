package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/skyburst-games/popmeta/internal/challenge"
	"github.com/skyburst-games/popmeta/internal/config"
	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/event"
	"github.com/skyburst-games/popmeta/internal/logger"
	"github.com/skyburst-games/popmeta/internal/reward"
	"github.com/skyburst-games/popmeta/internal/spawn"
	"github.com/skyburst-games/popmeta/internal/store"
	"github.com/skyburst-games/popmeta/internal/utils"
)

// Service is the progression aggregate root and sole persistence boundary.
// It owns player statistics, currency, mastery records, battle pass state,
// and achievement evaluation, and consumes the sampler, spawn scheduler, and
// challenge service outputs.
type Service interface {
	StartSession(ctx context.Context, playerID string, level int) error
	EndSession(ctx context.Context, playerID string) error

	// OnEnemySpawned drives the variable-ratio scheduler. When the bonus
	// threshold is hit a mystery balloon is spawned and returned.
	OnEnemySpawned(ctx context.Context, playerID string) (*domain.MysteryBalloon, error)

	// OnBalloonPopped records a pop. When balloonID names an active mystery
	// balloon its reward is applied and returned.
	OnBalloonPopped(ctx context.Context, playerID, balloonID string, combo int) (*domain.MysteryReward, error)

	OnShot(ctx context.Context, playerID string, hit bool) error

	RecordLevelCompletion(ctx context.Context, playerID, levelID string, timeMs int, accuracyPct float64, styleScore int) (*domain.LevelMasteryRecord, error)

	EarnXP(ctx context.Context, playerID string, amount int, source string) error
	ProcessMysteryReward(ctx context.Context, playerID string, r domain.MysteryReward) error

	CheckAchievements(ctx context.Context, playerID string) ([]domain.Achievement, error)
	NewAchievements(ctx context.Context, playerID string) ([]domain.Achievement, error)
	ClearNewAchievements(ctx context.Context, playerID string) error

	// ClaimChallengeReward claims via the challenge service and credits the
	// reward. Returns nil when the challenge is not claimable.
	ClaimChallengeReward(ctx context.Context, playerID, challengeID string) (*domain.ChallengeReward, error)

	// SpendCoins returns false when the balance is insufficient. Balances
	// never go negative.
	SpendCoins(ctx context.Context, playerID string, amount int) (bool, error)

	Progress(ctx context.Context, playerID string) (*domain.PlayerProgress, error)
	MasteryRecords(ctx context.Context, playerID string) (map[string]domain.LevelMasteryRecord, error)
	BattlePass(ctx context.Context, playerID string) (domain.BattlePassProgress, int, error)

	// Flush blocks until all in-flight storage writes complete.
	Flush()
}

// sessionState is transient per-session scope, never persisted.
type sessionState struct {
	active      bool
	level       int
	startedAt   time.Time
	balloons    map[string]domain.MysteryBalloon
	multipliers []float64
}

// playerAggregate is the in-memory source of truth for one player.
type playerAggregate struct {
	mu              sync.Mutex
	progress        *domain.PlayerProgress
	mastery         map[string]*domain.LevelMasteryRecord
	spawner         *spawn.Scheduler
	session         sessionState
	newAchievements []domain.Achievement
}

type service struct {
	cfg        *config.GameConfig
	storage    store.Store
	publisher  *event.ResilientPublisher
	sampler    reward.Service
	challenges challenge.Service
	rng        utils.Rand
	clock      func() time.Time

	mu         sync.Mutex
	players    *lru.Cache[string, *playerAggregate]
	thresholds *lru.Cache[string, domain.MasteryThresholds]

	saves sync.WaitGroup
}

// NewService creates the progression ledger. Live aggregates sit in an LRU;
// eviction is safe because every mutation writes through to storage.
func NewService(cfg *config.GameConfig, storage store.Store, publisher *event.ResilientPublisher, sampler reward.Service, challenges challenge.Service, rng utils.Rand) (Service, error) {
	if storage == nil {
		return nil, errors.New("storage must not be nil")
	}

	players, err := lru.New[string, *playerAggregate](MaxLivePlayers)
	if err != nil {
		return nil, err
	}
	thresholds, err := lru.New[string, domain.MasteryThresholds](ThresholdCacheSize)
	if err != nil {
		return nil, err
	}

	s := &service{
		cfg:        cfg,
		storage:    storage,
		publisher:  publisher,
		sampler:    sampler,
		challenges: challenges,
		rng:        rng,
		clock:      time.Now,
		players:    players,
		thresholds: thresholds,
	}

	// Challenge completions flow back as a cumulative statistic. The handler
	// must not call back into the challenge service.
	publisher.Subscribe(event.Type(domain.EventTypeChallengeCompleted), s.onChallengeCompleted)

	return s, nil
}

// aggregate returns the live aggregate for playerID, loading slots from
// storage on first touch. Slot failures fall back to fresh defaults so a
// corrupt slot never blocks play or poisons the other slots.
func (s *service) aggregate(ctx context.Context, playerID string) *playerAggregate {
	s.mu.Lock()
	defer s.mu.Unlock()

	if agg, ok := s.players.Get(playerID); ok {
		return agg
	}

	agg := s.loadAggregate(ctx, playerID)
	s.players.Add(playerID, agg)
	return agg
}

func (s *service) loadAggregate(ctx context.Context, playerID string) *playerAggregate {
	log := logger.FromContext(ctx)
	now := s.clock().UTC()

	progress := domain.NewPlayerProgress(playerID, now)
	if data, err := s.storage.Get(ctx, playerID, store.SlotPlayerProgress); err == nil {
		if err := json.Unmarshal(data, progress); err != nil {
			log.Warn(LogMsgSlotLoadFailed, "slot", store.SlotPlayerProgress, "player_id", playerID, "error", err)
			progress = domain.NewPlayerProgress(playerID, now)
		}
	} else if !errors.Is(err, domain.ErrSlotNotFound) {
		log.Warn(LogMsgSlotLoadFailed, "slot", store.SlotPlayerProgress, "player_id", playerID, "error", err)
	}

	// The battle pass slot is authoritative over the copy embedded in the
	// progress slot, so a corrupt progress slot cannot reset the season.
	if data, err := s.storage.Get(ctx, playerID, store.SlotBattlePass); err == nil {
		var bp domain.BattlePassProgress
		if err := json.Unmarshal(data, &bp); err != nil {
			log.Warn(LogMsgSlotLoadFailed, "slot", store.SlotBattlePass, "player_id", playerID, "error", err)
		} else {
			progress.BattlePass = bp
		}
	}

	mastery := make(map[string]*domain.LevelMasteryRecord)
	if data, err := s.storage.Get(ctx, playerID, store.SlotMastery); err == nil {
		if err := json.Unmarshal(data, &mastery); err != nil {
			log.Warn(LogMsgSlotLoadFailed, "slot", store.SlotMastery, "player_id", playerID, "error", err)
			mastery = make(map[string]*domain.LevelMasteryRecord)
		}
	}

	return &playerAggregate{
		progress: progress,
		mastery:  mastery,
		spawner:  spawn.NewScheduler(s.cfg.Spawn, s.rng),
	}
}

// saveSlot writes one slot in the background. In-memory state is the source
// of truth; failures are logged and never surfaced or rolled back.
func (s *service) saveSlot(ctx context.Context, playerID, slot string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgSlotSaveFailed, "slot", slot, "player_id", playerID, "error", err)
		return
	}

	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		if err := s.storage.Put(context.Background(), playerID, slot, data); err != nil {
			logger.FromContext(context.Background()).Warn(LogMsgSlotSaveFailed, "slot", slot, "player_id", playerID, "error", err)
		}
	}()
}

// Flush blocks until all in-flight slot writes complete. Used at shutdown.
func (s *service) Flush() {
	s.saves.Wait()
}

// saveProgressLocked persists the progress and battle pass slots. Callers
// hold the aggregate mutex.
func (s *service) saveProgressLocked(ctx context.Context, playerID string, agg *playerAggregate) {
	agg.progress.UpdatedAt = s.clock().UTC()
	s.saveSlot(ctx, playerID, store.SlotPlayerProgress, agg.progress)
	s.saveSlot(ctx, playerID, store.SlotBattlePass, agg.progress.BattlePass)
}

func (s *service) saveMasteryLocked(ctx context.Context, playerID string, agg *playerAggregate) {
	s.saveSlot(ctx, playerID, store.SlotMastery, agg.mastery)
}

// onChallengeCompleted bumps the cumulative challenge counter when the
// challenge service reports a completion edge.
func (s *service) onChallengeCompleted(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ChallengeCompletedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}

	agg := s.aggregate(ctx, payload.PlayerID)
	agg.mu.Lock()
	defer agg.mu.Unlock()

	agg.progress.ChallengesCompleted++
	s.saveProgressLocked(ctx, payload.PlayerID, agg)
	return nil
}

func (s *service) Progress(ctx context.Context, playerID string) (*domain.PlayerProgress, error) {
	agg := s.aggregate(ctx, playerID)
	agg.mu.Lock()
	defer agg.mu.Unlock()
	return copyProgress(agg.progress), nil
}

func (s *service) MasteryRecords(ctx context.Context, playerID string) (map[string]domain.LevelMasteryRecord, error) {
	agg := s.aggregate(ctx, playerID)
	agg.mu.Lock()
	defer agg.mu.Unlock()

	out := make(map[string]domain.LevelMasteryRecord, len(agg.mastery))
	for id, rec := range agg.mastery {
		out[id] = *rec
	}
	return out, nil
}

// copyProgress returns a snapshot safe to hand to consumers.
func copyProgress(p *domain.PlayerProgress) *domain.PlayerProgress {
	out := *p
	out.UnlockedCosmetics = make(map[string]bool, len(p.UnlockedCosmetics))
	for k, v := range p.UnlockedCosmetics {
		out.UnlockedCosmetics[k] = v
	}
	out.ActiveCosmetics = make(map[string]bool, len(p.ActiveCosmetics))
	for k, v := range p.ActiveCosmetics {
		out.ActiveCosmetics[k] = v
	}
	out.Achievements = make(map[string]*domain.AchievementProgress, len(p.Achievements))
	for k, v := range p.Achievements {
		ap := *v
		out.Achievements[k] = &ap
	}
	out.RewardHistory = append([]domain.RewardRecord(nil), p.RewardHistory...)
	return &out
}
