package services

import (
	"os"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/playgrove-labs/grove_api/dto"
	"github.com/playgrove-labs/grove_api/model"
	"github.com/playgrove-labs/grove_api/shared"
	log "github.com/sirupsen/logrus"
)

// TreeService runs the cooperative tree growth engine: bounded daily
// watering, health and growth-stage updates from cumulative water, and the
// per-contributor ledger. Watering also feeds the shared point total via
// the progression service.
type TreeService struct {
	context.DefaultService

	catalogSvc     *CatalogService
	progressionSvc *ProgressionService

	mu    sync.Mutex
	trees map[string]*model.CommunityTree

	// When set, a watering call is clamped to the remaining daily
	// allowance instead of reproducing the reference pre-total check
	// that lets one call overshoot the cap.
	clampWater bool

	closed chan struct{}
}

const TREE_SVC = "tree_svc"

// Points granted per unit of water.
const pointsPerWater = 5

// Health gained per unit of water.
const healthPerWater = 2

// Cumulative water thresholds per growth stage, evaluated highest first.
var stageThresholds = []struct {
	stage      string
	water      int
	levelFloor int
}{
	{shared.StageAncient, 500, 10},
	{shared.StageMature, 200, 7},
	{shared.StageYoung, 100, 5},
	{shared.StageSapling, 50, 3},
	{shared.StageSprout, 20, 1},
}

var stageOrder = map[string]int{
	shared.StageSeed:    0,
	shared.StageSprout:  1,
	shared.StageSapling: 2,
	shared.StageYoung:   3,
	shared.StageMature:  4,
	shared.StageAncient: 5,
}

func (svc TreeService) Id() string {
	return TREE_SVC
}

func (svc *TreeService) Configure(ctx *context.Context) error {
	svc.trees = make(map[string]*model.CommunityTree)
	svc.closed = make(chan struct{})
	svc.clampWater = os.Getenv("TREE_CLAMP_WATER") == "true"
	return svc.DefaultService.Configure(ctx)
}

func (svc *TreeService) Start() error {
	svc.catalogSvc = svc.Service(CATALOG_SVC).(*CatalogService)
	svc.progressionSvc = svc.Service(PROGRESSION_SVC).(*ProgressionService)

	svc.plantFromCatalog()
	go svc.startDailyResetScheduler()

	return nil
}

func (svc *TreeService) Shutdown() {
	close(svc.closed)
}

func (svc *TreeService) plantFromCatalog() {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	now := time.Now()
	for _, def := range svc.catalogSvc.Trees() {
		tree := &model.CommunityTree{
			ID:            def.ID,
			DefinitionID:  def.ID,
			GrowthStage:   shared.StageSeed,
			Health:        def.MaxHealth / 2,
			Unlocked:      def.UnlockedByDefault,
			Contributors:  []*model.TreeContributor{},
			GrantedLevels: make(map[int]bool),
		}
		if tree.Unlocked {
			ts := now
			tree.PlantedAt = &ts
		}
		svc.trees[tree.ID] = tree
	}

	log.WithField("trees", len(svc.trees)).Info("Community trees planted")
}

// ==================== WATERING ====================

// WaterTree applies water to an unlocked tree. It fails without mutating
// anything for unknown or locked trees and once the daily allowance is
// used up. By default the cap check looks at the running total before this
// call, so a single call can push usage past the cap.
func (svc *TreeService) WaterTree(userID, treeID string, amount int) (*dto.WaterTreeResponse, bool) {
	def := svc.catalogSvc.GetTree(treeID)
	if def == nil || amount <= 0 {
		recordCommand("water_tree", false)
		return nil, false
	}
	recordCommand("water_tree", true)

	svc.mu.Lock()

	tree, ok := svc.trees[treeID]
	if !ok || !tree.Unlocked {
		svc.mu.Unlock()
		return nil, false
	}

	now := time.Now()
	svc.lazyDailyReset(tree, now)

	if tree.DailyWaterUsed >= def.MaxDailyWater {
		svc.mu.Unlock()
		return nil, false
	}
	if svc.clampWater {
		if remaining := def.MaxDailyWater - tree.DailyWaterUsed; amount > remaining {
			amount = remaining
		}
	}

	oldStage := tree.GrowthStage
	oldLevel := tree.Level

	tree.TotalWater += amount
	if tree.LastWateredAt == nil || !sameDay(*tree.LastWateredAt, now) {
		tree.WaterToday = amount
	} else {
		tree.WaterToday += amount
	}
	tree.Health += amount * healthPerWater
	if tree.Health > def.MaxHealth {
		tree.Health = def.MaxHealth
	}
	tree.DailyWaterUsed += amount
	treeWaterTotal.Add(float64(amount))
	ts := now
	tree.LastWateredAt = &ts

	svc.upsertContributor(tree, userID, amount, now)

	rewardPoints := svc.checkTreeGrowth(tree, def, oldLevel)

	points := amount * pointsPerWater
	for _, c := range tree.Contributors {
		if c.UserID == userID {
			c.PointsEarned += points
			break
		}
	}

	out := snapshotTree(tree)
	stageChanged := tree.GrowthStage != oldStage
	svc.mu.Unlock()

	// Shared point total updates happen outside the tree lock; they can
	// in turn trigger milestone and level evaluation.
	svc.progressionSvc.AwardPoints(userID, points, "tree_water")
	if rewardPoints > 0 {
		svc.progressionSvc.AwardPoints(userID, rewardPoints, "tree_level_reward")
	}

	return &dto.WaterTreeResponse{
		Tree:         out,
		PointsEarned: points,
		StageChanged: stageChanged,
	}, true
}

// snapshotTree deep-copies the live record so a response serialized after
// the lock is released cannot observe later mutations.
func snapshotTree(tree *model.CommunityTree) model.CommunityTree {
	out := *tree
	out.Contributors = make([]*model.TreeContributor, len(tree.Contributors))
	for i, c := range tree.Contributors {
		cc := *c
		out.Contributors[i] = &cc
	}
	out.GrantedLevels = make(map[int]bool, len(tree.GrantedLevels))
	for level, granted := range tree.GrantedLevels {
		out.GrantedLevels[level] = granted
	}
	return out
}

func (svc *TreeService) upsertContributor(tree *model.CommunityTree, userID string, amount int, now time.Time) {
	for _, c := range tree.Contributors {
		if c.UserID == userID {
			c.WaterGiven += amount
			c.LastContribute = now
			return
		}
	}
	tree.Contributors = append(tree.Contributors, &model.TreeContributor{
		UserID:         userID,
		WaterGiven:     amount,
		LastContribute: now,
	})
}

// checkTreeGrowth advances the growth stage to the highest threshold met
// and raises the level to the stage floor, never regressing either. Level
// rewards from the catalog table are granted exactly once per level.
// Returns the one-time reward points earned by this advance.
func (svc *TreeService) checkTreeGrowth(tree *model.CommunityTree, def *model.TreeDefinition, oldLevel int) int {
	for _, t := range stageThresholds {
		if tree.TotalWater >= t.water {
			if stageOrder[t.stage] > stageOrder[tree.GrowthStage] {
				tree.GrowthStage = t.stage
				log.WithFields(log.Fields{
					"tree_id": tree.ID,
					"stage":   t.stage,
				}).Info("Tree advanced growth stage")
			}
			if t.levelFloor > tree.Level {
				tree.Level = t.levelFloor
			}
			break
		}
	}

	rewardPoints := 0
	for level := oldLevel + 1; level <= tree.Level; level++ {
		points, ok := def.LevelRewards[level]
		if !ok || tree.GrantedLevels[level] {
			continue
		}
		tree.GrantedLevels[level] = true
		rewardPoints += points
	}
	return rewardPoints
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// lazyDailyReset zeroes the daily allowance when the calendar day rolled
// over since the last watering; backup for the midnight scheduler.
func (svc *TreeService) lazyDailyReset(tree *model.CommunityTree, now time.Time) {
	if tree.LastWateredAt != nil && !sameDay(*tree.LastWateredAt, now) {
		tree.DailyWaterUsed = 0
		tree.WaterToday = 0
	}
}

// ==================== UNLOCKING ====================

// CanUnlockTree checks the catalog requirement against the player's
// progression. The unlock command itself does not re-validate.
func (svc *TreeService) CanUnlockTree(userID, treeID string) bool {
	def := svc.catalogSvc.GetTree(treeID)
	if def == nil {
		return false
	}
	if def.UnlockRequirement == nil {
		return true
	}

	req := def.UnlockRequirement
	switch req.Type {
	case shared.TreeUnlockLevel:
		return svc.progressionSvc.PlayerLevel(userID).Level >= req.Value
	case shared.TreeUnlockMultiplayerWins:
		return svc.progressionSvc.MultiplayerWinCount(userID) >= req.Value
	case shared.TreeUnlockAchievementCount:
		return svc.progressionSvc.UnlockedAchievementCount(userID) >= req.Value
	}
	return false
}

// UnlockTree flips the lock flag and stamps the planted date. Callers are
// responsible for having verified the unlock requirement first.
func (svc *TreeService) UnlockTree(treeID string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	tree, ok := svc.trees[treeID]
	if !ok {
		return false
	}
	if tree.Unlocked {
		return true
	}

	tree.Unlocked = true
	now := time.Now()
	tree.PlantedAt = &now

	log.WithField("tree_id", treeID).Info("Tree unlocked")
	return true
}

// ==================== QUERIES ====================

func (svc *TreeService) GetTreeStats(treeID string) (*dto.TreeStatsResponse, bool) {
	def := svc.catalogSvc.GetTree(treeID)
	if def == nil {
		return nil, false
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	tree, ok := svc.trees[treeID]
	if !ok {
		return nil, false
	}

	snap := snapshotTree(tree)
	resp := &dto.TreeStatsResponse{
		Definition:   *def,
		Tree:         snap,
		Contributors: snap.Contributors,
	}

	// Next stage is the lowest threshold still above the current total.
	for i := len(stageThresholds) - 1; i >= 0; i-- {
		if tree.TotalWater < stageThresholds[i].water {
			resp.NextStage = stageThresholds[i].stage
			resp.WaterToNext = stageThresholds[i].water - tree.TotalWater
			break
		}
	}

	return resp, true
}

func (svc *TreeService) ListTrees() *dto.TreeListResponse {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	trees := make([]model.CommunityTree, 0, len(svc.trees))
	for _, t := range svc.trees {
		trees = append(trees, snapshotTree(t))
	}
	return &dto.TreeListResponse{Trees: trees}
}

// ==================== DAILY RESET ====================

// startDailyResetScheduler zeroes every tree's daily water at midnight.
func (svc *TreeService) startDailyResetScheduler() {
	for {
		now := time.Now()
		nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())

		timer := time.NewTimer(nextMidnight.Sub(now))
		select {
		case <-svc.closed:
			timer.Stop()
			return
		case <-timer.C:
			svc.resetDailyWater()
		}
	}
}

func (svc *TreeService) resetDailyWater() {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	for _, tree := range svc.trees {
		tree.DailyWaterUsed = 0
		tree.WaterToday = 0
	}
	log.Info("Daily tree water reset")
}
