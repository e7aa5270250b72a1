package services

import (
	"testing"
	"time"

	"github.com/playgrove-labs/grove_api/shared"
)

func TestWaterTree_PointsAndHealth(t *testing.T) {
	progression := newTestProgression()
	svc := newTestTrees(progression)

	resp, ok := svc.WaterTree("alice", "oak-tree-1", 5)
	if !ok {
		t.Fatal("expected watering to succeed")
	}

	if resp.PointsEarned != 25 {
		t.Errorf("points = %d, want 25 (5 x 5)", resp.PointsEarned)
	}
	// Health starts at half of the 100 max and gains 2 per unit.
	if resp.Tree.Health != 60 {
		t.Errorf("health = %d, want 60", resp.Tree.Health)
	}
	if resp.Tree.TotalWater != 5 {
		t.Errorf("total water = %d, want 5", resp.Tree.TotalWater)
	}

	// Watering feeds the shared point total.
	if got := progression.TotalPoints("alice"); got != 25 {
		t.Errorf("player total = %d, want 25", got)
	}
}

func TestWaterTree_Rejections(t *testing.T) {
	svc := newTestTrees(newTestProgression())

	if _, ok := svc.WaterTree("alice", "no-such-tree", 5); ok {
		t.Error("unknown tree should fail")
	}
	if _, ok := svc.WaterTree("alice", "oak-tree-1", 0); ok {
		t.Error("zero amount should fail")
	}
	if _, ok := svc.WaterTree("alice", "cherry-blossom", 5); ok {
		t.Error("locked tree should fail")
	}
}

func TestWaterTree_HealthClampedToMax(t *testing.T) {
	svc := newTestTrees(newTestProgression())

	resp, _ := svc.WaterTree("alice", "oak-tree-1", 40)
	if resp.Tree.Health != 100 {
		t.Errorf("health = %d, want clamped to 100", resp.Tree.Health)
	}
}

func TestWaterTree_DailyCapPreCheckAllowsOvershoot(t *testing.T) {
	svc := newTestTrees(newTestProgression())

	// The cap check runs against usage before the call, so a call started
	// below the 20 unit cap can push past it.
	svc.WaterTree("alice", "oak-tree-1", 19)
	resp, ok := svc.WaterTree("alice", "oak-tree-1", 10)
	if !ok {
		t.Fatal("watering below the cap should succeed")
	}
	if resp.Tree.DailyWaterUsed != 29 {
		t.Errorf("daily water used = %d, want 29", resp.Tree.DailyWaterUsed)
	}

	if _, ok := svc.WaterTree("alice", "oak-tree-1", 1); ok {
		t.Error("watering at or past the cap should fail")
	}
}

func TestWaterTree_ClampModeRespectsCap(t *testing.T) {
	svc := newTestTrees(newTestProgression())
	svc.clampWater = true

	svc.WaterTree("alice", "oak-tree-1", 19)
	resp, ok := svc.WaterTree("alice", "oak-tree-1", 10)
	if !ok {
		t.Fatal("watering below the cap should succeed")
	}
	if resp.Tree.DailyWaterUsed != 20 {
		t.Errorf("daily water used = %d, want exactly the 20 unit cap", resp.Tree.DailyWaterUsed)
	}
	if resp.PointsEarned != 5 {
		t.Errorf("points = %d, want 5 for the single clamped unit", resp.PointsEarned)
	}
}

func TestWaterTree_LazyDailyReset(t *testing.T) {
	svc := newTestTrees(newTestProgression())

	svc.WaterTree("alice", "oak-tree-1", 20)
	if _, ok := svc.WaterTree("alice", "oak-tree-1", 1); ok {
		t.Fatal("cap should be exhausted")
	}

	svc.mu.Lock()
	yesterday := time.Now().AddDate(0, 0, -1)
	svc.trees["oak-tree-1"].LastWateredAt = &yesterday
	svc.mu.Unlock()

	resp, ok := svc.WaterTree("alice", "oak-tree-1", 5)
	if !ok {
		t.Fatal("allowance should reset on the next day")
	}
	if resp.Tree.DailyWaterUsed != 5 {
		t.Errorf("daily water used = %d, want 5 after reset", resp.Tree.DailyWaterUsed)
	}
	if resp.Tree.WaterToday != 5 {
		t.Errorf("water today = %d, want 5 after reset", resp.Tree.WaterToday)
	}
	if resp.Tree.TotalWater != 25 {
		t.Errorf("total water = %d, want cumulative 25", resp.Tree.TotalWater)
	}
}

func TestTreeGrowth_StageAndLevelRewards(t *testing.T) {
	progression := newTestProgression()
	svc := newTestTrees(progression)

	resp, _ := svc.WaterTree("alice", "oak-tree-1", 20)
	if !resp.StageChanged {
		t.Error("20 units should advance seed to sprout")
	}
	if resp.Tree.GrowthStage != shared.StageSprout {
		t.Errorf("stage = %q, want %q", resp.Tree.GrowthStage, shared.StageSprout)
	}
	if resp.Tree.Level != 1 {
		t.Errorf("tree level = %d, want 1", resp.Tree.Level)
	}

	// 100 watering points plus the one-time level 1 reward of 10.
	if got := progression.TotalPoints("alice"); got != 110 {
		t.Errorf("player total = %d, want 110", got)
	}
}

func TestTreeGrowth_RewardsGrantedOncePerLevel(t *testing.T) {
	progression := newTestProgression()
	svc := newTestTrees(progression)

	svc.WaterTree("alice", "oak-tree-1", 20)

	// Roll the day over and push cumulative water to the sapling band,
	// which skips level 2 and lands on the level 3 floor.
	svc.mu.Lock()
	yesterday := time.Now().AddDate(0, 0, -1)
	svc.trees["oak-tree-1"].LastWateredAt = &yesterday
	svc.mu.Unlock()

	resp, ok := svc.WaterTree("alice", "oak-tree-1", 30)
	if !ok {
		t.Fatal("expected watering to succeed")
	}
	if resp.Tree.GrowthStage != shared.StageSapling {
		t.Errorf("stage = %q, want %q at 50 water", resp.Tree.GrowthStage, shared.StageSapling)
	}
	if resp.Tree.Level != 3 {
		t.Errorf("tree level = %d, want 3", resp.Tree.Level)
	}

	svc.mu.Lock()
	granted := svc.trees["oak-tree-1"].GrantedLevels
	svc.mu.Unlock()
	if !granted[1] || !granted[3] {
		t.Errorf("granted levels = %v, want 1 and 3 recorded", granted)
	}
	// Totals: 100 + 10 from the first day, 150 + 30 from the second.
	if got := progression.TotalPoints("alice"); got != 290 {
		t.Errorf("player total = %d, want 290", got)
	}
}

func TestTreeContributors_Upserted(t *testing.T) {
	svc := newTestTrees(newTestProgression())

	svc.WaterTree("alice", "oak-tree-1", 3)
	svc.WaterTree("bob", "oak-tree-1", 4)
	resp, _ := svc.WaterTree("alice", "oak-tree-1", 2)

	if len(resp.Tree.Contributors) != 2 {
		t.Fatalf("contributors = %d, want 2", len(resp.Tree.Contributors))
	}
	for _, c := range resp.Tree.Contributors {
		switch c.UserID {
		case "alice":
			if c.WaterGiven != 5 {
				t.Errorf("alice water = %d, want 5", c.WaterGiven)
			}
			if c.PointsEarned != 25 {
				t.Errorf("alice points = %d, want 25", c.PointsEarned)
			}
		case "bob":
			if c.WaterGiven != 4 {
				t.Errorf("bob water = %d, want 4", c.WaterGiven)
			}
		default:
			t.Errorf("unexpected contributor %q", c.UserID)
		}
	}
}

func TestCanUnlockTree_LevelRequirement(t *testing.T) {
	progression := newTestProgression()
	svc := newTestTrees(progression)

	if svc.CanUnlockTree("alice", "cherry-blossom") {
		t.Error("level 1 player should not unlock the cherry blossom")
	}

	// Enough points to clear level 5.
	progression.AwardPoints("alice", 4000, "test_grant")
	if !svc.CanUnlockTree("alice", "cherry-blossom") {
		t.Error("player past level 5 should unlock the cherry blossom")
	}

	if !svc.UnlockTree("cherry-blossom") {
		t.Fatal("unlock should succeed")
	}
	if _, ok := svc.WaterTree("alice", "cherry-blossom", 5); !ok {
		t.Error("an unlocked tree should accept water")
	}
}

func TestUnlockTree_Idempotent(t *testing.T) {
	svc := newTestTrees(newTestProgression())

	if !svc.UnlockTree("oak-tree-1") {
		t.Error("unlocking an already unlocked tree reports success")
	}
	if svc.UnlockTree("no-such-tree") {
		t.Error("unknown tree should fail")
	}
}

func TestGetTreeStats_NextStage(t *testing.T) {
	svc := newTestTrees(newTestProgression())

	svc.WaterTree("alice", "oak-tree-1", 5)

	stats, ok := svc.GetTreeStats("oak-tree-1")
	if !ok {
		t.Fatal("expected stats")
	}
	if stats.NextStage != shared.StageSprout {
		t.Errorf("next stage = %q, want %q", stats.NextStage, shared.StageSprout)
	}
	if stats.WaterToNext != 15 {
		t.Errorf("water to next = %d, want 15", stats.WaterToNext)
	}
}

func TestResetDailyWater(t *testing.T) {
	svc := newTestTrees(newTestProgression())

	svc.WaterTree("alice", "oak-tree-1", 20)
	svc.resetDailyWater()

	svc.mu.Lock()
	used := svc.trees["oak-tree-1"].DailyWaterUsed
	svc.mu.Unlock()
	if used != 0 {
		t.Errorf("daily water used = %d, want 0 after reset", used)
	}
	if _, ok := svc.WaterTree("alice", "oak-tree-1", 5); !ok {
		t.Error("watering should succeed after the midnight reset")
	}
}

func TestWaterTree_ResponseDetachedFromLiveState(t *testing.T) {
	svc := newTestTrees(newTestProgression())

	first, ok := svc.WaterTree("alice", "oak-tree-1", 5)
	if !ok {
		t.Fatal("expected watering to succeed")
	}

	svc.WaterTree("alice", "oak-tree-1", 3)

	// The earlier response keeps the state as of its own call.
	if first.Tree.TotalWater != 5 {
		t.Errorf("earlier response total water = %d, want 5", first.Tree.TotalWater)
	}
	if got := first.Tree.Contributors[0].WaterGiven; got != 5 {
		t.Errorf("earlier response contributor water = %d, want 5", got)
	}
}

func TestGetTreeStats_SnapshotDetachedFromLiveState(t *testing.T) {
	svc := newTestTrees(newTestProgression())

	svc.WaterTree("alice", "oak-tree-1", 5)
	stats, ok := svc.GetTreeStats("oak-tree-1")
	if !ok {
		t.Fatal("expected stats")
	}

	// Writing through the snapshot must not reach the live record.
	stats.Contributors[0].WaterGiven = 999
	stats.Tree.GrantedLevels[1] = true

	resp, _ := svc.WaterTree("bob", "oak-tree-1", 1)
	for _, c := range resp.Tree.Contributors {
		if c.UserID == "alice" && c.WaterGiven != 5 {
			t.Errorf("live contributor water = %d, want 5", c.WaterGiven)
		}
	}
	svc.mu.Lock()
	granted := svc.trees["oak-tree-1"].GrantedLevels[1]
	svc.mu.Unlock()
	if granted {
		t.Error("snapshot granted-levels map aliases the live record")
	}
}
