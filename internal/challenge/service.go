package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/skyburst-games/popmeta/internal/config"
	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/event"
	"github.com/skyburst-games/popmeta/internal/logger"
	"github.com/skyburst-games/popmeta/internal/store"
	"github.com/skyburst-games/popmeta/internal/utils"
)

// Service manages each player's daily challenge set, progress, and streak.
type Service interface {
	// CheckAndRefresh regenerates the daily set when a new calendar day has
	// started since the last refresh. Returns true when a refresh happened.
	CheckAndRefresh(ctx context.Context, playerID string, now time.Time) (bool, error)

	// State returns a snapshot of the player's challenges, progress, and
	// streak history.
	State(ctx context.Context, playerID string) (*Snapshot, error)

	// OnStatChanged advances progress on every active challenge tracking the
	// given metric by delta.
	OnStatChanged(ctx context.Context, playerID string, metric domain.StatMetric, delta int)

	// UpdateProgress merges newValue into a challenge's progress. Progress is
	// monotonic and completion is edge-triggered.
	UpdateProgress(ctx context.Context, playerID, challengeID string, newValue int) error

	// ClaimReward marks a completed challenge claimed and returns its reward
	// with the streak bonus applied. Returns (nil, nil) when the challenge is
	// not completed or already claimed.
	ClaimReward(ctx context.Context, playerID, challengeID string) (*domain.ChallengeReward, error)

	// ActivePlayers lists the players with state cached in memory. Used by
	// the background refresh job.
	ActivePlayers(ctx context.Context) []string

	// Flush blocks until all in-flight storage writes complete.
	Flush()
}

// Snapshot is an immutable read model for UI consumers.
type Snapshot struct {
	Challenges []domain.DailyChallenge    `json:"challenges"`
	Progress   []domain.ChallengeProgress `json:"progress"`
	History    domain.ChallengeHistory    `json:"history"`
	DayStart   time.Time                  `json:"day_start"`
}

// playerState is the per-player aggregate persisted in the challenges slot.
type playerState struct {
	Challenges  []domain.DailyChallenge              `json:"challenges"`
	Progress    map[string]*domain.ChallengeProgress `json:"progress"`
	History     domain.ChallengeHistory              `json:"history"`
	LastRefresh time.Time                            `json:"last_refresh"`
}

type service struct {
	cfg       config.ChallengeConfig
	storage   store.Store
	publisher *event.ResilientPublisher
	rng       utils.Rand
	clock     func() time.Time

	mu      sync.Mutex
	players map[string]*playerState
	saves   sync.WaitGroup
}

// NewService creates the daily challenge service. State is cached in memory
// per player and written back to storage best-effort after each mutation.
func NewService(cfg config.ChallengeConfig, storage store.Store, publisher *event.ResilientPublisher, rng utils.Rand) Service {
	return &service{
		cfg:       cfg,
		storage:   storage,
		publisher: publisher,
		rng:       rng,
		clock:     time.Now,
		players:   make(map[string]*playerState),
	}
}

// dayStart truncates t to the start of its UTC calendar day.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// loadLocked returns the cached state for playerID, reading from storage on
// first access. Any load or parse failure falls back to a fresh empty state
// so the player is never blocked.
func (s *service) loadLocked(ctx context.Context, playerID string) *playerState {
	if state, ok := s.players[playerID]; ok {
		return state
	}

	state := &playerState{Progress: make(map[string]*domain.ChallengeProgress)}
	data, err := s.storage.Get(ctx, playerID, store.SlotChallenges)
	if err == nil {
		if err := json.Unmarshal(data, state); err != nil {
			logger.FromContext(ctx).Warn(LogMsgStateLoadFailed, "player_id", playerID, "error", err)
			state = &playerState{Progress: make(map[string]*domain.ChallengeProgress)}
		}
	} else if !errors.Is(err, domain.ErrSlotNotFound) {
		logger.FromContext(ctx).Warn(LogMsgStateLoadFailed, "player_id", playerID, "error", err)
	}
	if state.Progress == nil {
		state.Progress = make(map[string]*domain.ChallengeProgress)
	}

	s.players[playerID] = state
	return state
}

// saveLocked snapshots the state and writes it in the background. In-memory
// state is the source of truth; storage failures are logged, never surfaced.
func (s *service) saveLocked(ctx context.Context, playerID string, state *playerState) {
	data, err := json.Marshal(state)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgStateSaveFailed, "player_id", playerID, "error", err)
		return
	}

	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		if err := s.storage.Put(context.Background(), playerID, store.SlotChallenges, data); err != nil {
			logger.FromContext(context.Background()).Warn(LogMsgStateSaveFailed, "player_id", playerID, "error", err)
		}
	}()
}

// Flush blocks until all in-flight slot writes complete. Used at shutdown.
func (s *service) Flush() {
	s.saves.Wait()
}

func (s *service) CheckAndRefresh(ctx context.Context, playerID string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadLocked(ctx, playerID)
	today := dayStart(now)
	if !state.LastRefresh.IsZero() && !today.After(dayStart(state.LastRefresh)) {
		return false, nil
	}

	s.generateLocked(ctx, playerID, state, now)
	s.saveLocked(ctx, playerID, state)
	return true, nil
}

// generateLocked evaluates streak continuity, then draws one template per
// configured difficulty tier and resets all progress records.
func (s *service) generateLocked(ctx context.Context, playerID string, state *playerState, now time.Time) {
	log := logger.FromContext(ctx)
	today := dayStart(now)

	if !state.LastRefresh.IsZero() {
		s.rollStreakLocked(ctx, state, today)
	}

	challenges := make([]domain.DailyChallenge, 0, len(s.cfg.SlotDifficulties))
	progress := make(map[string]*domain.ChallengeProgress, len(s.cfg.SlotDifficulties))
	drawn := make(map[string]bool, len(s.cfg.SlotDifficulties))
	for slot, difficulty := range s.cfg.SlotDifficulties {
		tmpl := s.drawTemplate(difficulty, drawn)
		drawn[tmpl.Key] = true
		id := fmt.Sprintf("daily_%d_%d", today.Unix(), slot)
		challenges = append(challenges, domain.DailyChallenge{
			ID:          id,
			TemplateKey: tmpl.Key,
			Name:        tmpl.Name,
			Description: tmpl.Description,
			Difficulty:  tmpl.Difficulty,
			Metric:      tmpl.Metric,
			Target:      tmpl.Target,
			Reward:      tmpl.Reward,
			DayStart:    today,
			Slot:        slot,
		})
		progress[id] = &domain.ChallengeProgress{ChallengeID: id}
	}

	state.Challenges = challenges
	state.Progress = progress
	state.LastRefresh = now.UTC()

	s.publisher.PublishWithRetry(ctx, event.NewChallengesRefreshedEvent(playerID, today, len(challenges), state.History.CurrentStreak))
	log.Info(LogMsgChallengesGenerated, "player_id", playerID, "day_start", today, "count", len(challenges), "streak", state.History.CurrentStreak)
}

// rollStreakLocked applies the day-boundary streak rule: the streak continues
// only when exactly one calendar day elapsed since the last refresh and at
// least one challenge was completed within that prior day.
func (s *service) rollStreakLocked(ctx context.Context, state *playerState, today time.Time) {
	log := logger.FromContext(ctx)
	lastDay := dayStart(state.LastRefresh)
	daysElapsed := int(today.Sub(lastDay).Hours() / 24)

	completedPriorDay := !state.History.LastCompletionAt.IsZero() &&
		dayStart(state.History.LastCompletionAt).Equal(lastDay)

	if daysElapsed == 1 && completedPriorDay {
		state.History.CurrentStreak++
		if state.History.CurrentStreak > state.History.LongestStreak {
			state.History.LongestStreak = state.History.CurrentStreak
		}
		log.Info(LogMsgStreakIncremented, "streak", state.History.CurrentStreak)
		return
	}

	if state.History.CurrentStreak > 0 {
		log.Info(LogMsgStreakReset, "days_elapsed", daysElapsed, "completed_prior_day", completedPriorDay)
	}
	state.History.CurrentStreak = 0
}

// drawTemplate runs a weighted draw within one difficulty tier, skipping keys
// in exclude so slots of the same difficulty get distinct templates. When the
// exclusions empty the tier, the full tier is used again. Validation
// guarantees at least one template per configured tier.
func (s *service) drawTemplate(difficulty domain.Difficulty, exclude map[string]bool) domain.ChallengeTemplate {
	total := s.tierWeight(difficulty, exclude)
	if total == 0 {
		exclude = nil
		total = s.tierWeight(difficulty, nil)
	}

	roll := s.rng.Intn(total)
	for _, tmpl := range s.cfg.Templates {
		if tmpl.Difficulty != difficulty || exclude[tmpl.Key] {
			continue
		}
		roll -= tmpl.Weight
		if roll < 0 {
			return tmpl
		}
	}
	// Unreachable: the loop above always terminates within the tier.
	return domain.ChallengeTemplate{}
}

func (s *service) tierWeight(difficulty domain.Difficulty, exclude map[string]bool) int {
	total := 0
	for _, tmpl := range s.cfg.Templates {
		if tmpl.Difficulty == difficulty && !exclude[tmpl.Key] {
			total += tmpl.Weight
		}
	}
	return total
}

func (s *service) State(ctx context.Context, playerID string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadLocked(ctx, playerID)
	snapshot := &Snapshot{
		Challenges: append([]domain.DailyChallenge(nil), state.Challenges...),
		History:    state.History,
		DayStart:   dayStart(state.LastRefresh),
	}
	snapshot.History.CompletedIDs = append([]string(nil), state.History.CompletedIDs...)
	for _, ch := range state.Challenges {
		if p, ok := state.Progress[ch.ID]; ok {
			snapshot.Progress = append(snapshot.Progress, *p)
		}
	}
	return snapshot, nil
}

// ActivePlayers returns the ids of all players with cached state.
func (s *service) ActivePlayers(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.players))
	for id := range s.players {
		ids = append(ids, id)
	}
	return ids
}

func (s *service) OnStatChanged(ctx context.Context, playerID string, metric domain.StatMetric, delta int) {
	if delta <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadLocked(ctx, playerID)
	changed := false
	for _, ch := range state.Challenges {
		if ch.Metric != metric {
			continue
		}
		if p, ok := state.Progress[ch.ID]; ok && !p.Completed {
			s.updateProgressLocked(ctx, playerID, state, ch.ID, p.Current+delta)
			changed = true
		}
	}
	if changed {
		s.saveLocked(ctx, playerID, state)
	}
}

func (s *service) UpdateProgress(ctx context.Context, playerID, challengeID string, newValue int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadLocked(ctx, playerID)
	if _, ok := state.Progress[challengeID]; !ok {
		return domain.ErrChallengeNotFound
	}

	s.updateProgressLocked(ctx, playerID, state, challengeID, newValue)
	s.saveLocked(ctx, playerID, state)
	return nil
}

func (s *service) updateProgressLocked(ctx context.Context, playerID string, state *playerState, challengeID string, newValue int) {
	log := logger.FromContext(ctx)
	progress := state.Progress[challengeID]

	progress.Attempts++
	if newValue > progress.Current {
		progress.Current = newValue
	}
	log.Debug(LogMsgProgressUpdated, "challenge_id", challengeID, "current", progress.Current)

	ch := s.findChallengeLocked(state, challengeID)
	if ch != nil && !progress.Completed && progress.Current >= ch.Target {
		now := s.clock().UTC()
		progress.Completed = true
		progress.CompletedAt = &now

		state.History.TotalCompleted++
		state.History.CompletedIDs = append(state.History.CompletedIDs, challengeID)
		state.History.LastCompletionAt = now

		s.publisher.PublishWithRetry(ctx, event.NewChallengeCompletedEvent(playerID, challengeID, ch.Difficulty, state.History.CurrentStreak))
		log.Info(LogMsgChallengeCompleted, "player_id", playerID, "challenge_id", challengeID, "difficulty", ch.Difficulty)
	}
}

func (s *service) ClaimReward(ctx context.Context, playerID, challengeID string) (*domain.ChallengeReward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadLocked(ctx, playerID)
	progress, ok := state.Progress[challengeID]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	if !progress.Completed || progress.Claimed {
		return nil, nil
	}

	ch := s.findChallengeLocked(state, challengeID)
	if ch == nil {
		return nil, domain.ErrChallengeNotFound
	}

	progress.Claimed = true
	reward := s.applyStreakBonus(ch.Reward, state.History.CurrentStreak)

	s.publisher.PublishWithRetry(ctx, event.NewChallengeClaimedEvent(playerID, challengeID, reward))
	logger.FromContext(ctx).Info(LogMsgRewardClaimed,
		"player_id", playerID, "challenge_id", challengeID, "coins", reward.Coins, "xp", reward.XP, "streak", state.History.CurrentStreak)

	s.saveLocked(ctx, playerID, state)
	return &reward, nil
}

// applyStreakBonus adds the capped streak bonus on top of the base reward.
// The bonus portion is floored: bonus = floor(base * multiplier - base).
func (s *service) applyStreakBonus(base domain.ChallengeReward, streak int) domain.ChallengeReward {
	multiplier := math.Min(1+float64(streak)*s.cfg.StreakBonusPerDay, s.cfg.StreakBonusCap)
	return domain.ChallengeReward{
		Coins: base.Coins + int(math.Floor(float64(base.Coins)*multiplier-float64(base.Coins))),
		XP:    base.XP + int(math.Floor(float64(base.XP)*multiplier-float64(base.XP))),
	}
}

func (s *service) findChallengeLocked(state *playerState, challengeID string) *domain.DailyChallenge {
	for i := range state.Challenges {
		if state.Challenges[i].ID == challengeID {
			return &state.Challenges[i]
		}
	}
	return nil
}
