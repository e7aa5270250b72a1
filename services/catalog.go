package services

import (
	"fmt"
	"os"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/playgrove-labs/grove_api/model"
	log "github.com/sirupsen/logrus"
)

// CatalogService holds the static game and tree catalogs. Entries are
// read-only input to the engine; nothing mutates them after Start.
type CatalogService struct {
	context.DefaultService

	games      map[string]*model.GameDefinition
	trees      map[string]*model.TreeDefinition
	levelTiers []model.LevelTier
}

const CATALOG_SVC = "catalog_svc"

func (svc CatalogService) Id() string {
	return CATALOG_SVC
}

func (svc *CatalogService) Configure(ctx *context.Context) error {
	svc.games = defaultGameCatalog()
	svc.trees = defaultTreeCatalog()
	svc.levelTiers = defaultLevelTiers()
	return svc.DefaultService.Configure(ctx)
}

func (svc *CatalogService) Start() error {
	if path := os.Getenv("GAME_CATALOG_PATH"); path != "" {
		if err := svc.loadGameCatalog(path); err != nil {
			return fmt.Errorf("failed to load game catalog: %w", err)
		}
	}

	log.WithFields(log.Fields{
		"games": len(svc.games),
		"trees": len(svc.trees),
	}).Info("Catalog loaded")
	return nil
}

func (svc *CatalogService) loadGameCatalog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var games []model.GameDefinition
	if err := sonic.Unmarshal(data, &games); err != nil {
		return err
	}

	for i := range games {
		svc.games[games[i].ID] = &games[i]
	}
	return nil
}

// GetGame returns nil for unknown ids; callers treat that as a no-op.
func (svc *CatalogService) GetGame(gameID string) *model.GameDefinition {
	return svc.games[gameID]
}

func (svc *CatalogService) GetTree(treeID string) *model.TreeDefinition {
	return svc.trees[treeID]
}

func (svc *CatalogService) Games() []model.GameDefinition {
	out := make([]model.GameDefinition, 0, len(svc.games))
	for _, g := range svc.games {
		out = append(out, *g)
	}
	return out
}

func (svc *CatalogService) Trees() []model.TreeDefinition {
	out := make([]model.TreeDefinition, 0, len(svc.trees))
	for _, t := range svc.trees {
		out = append(out, *t)
	}
	return out
}

// LevelTier returns the tier for a level, clamped to the last defined entry.
func (svc *CatalogService) LevelTier(level int) model.LevelTier {
	if level < 1 {
		level = 1
	}
	if level > len(svc.levelTiers) {
		return svc.levelTiers[len(svc.levelTiers)-1]
	}
	return svc.levelTiers[level-1]
}

func defaultGameCatalog() map[string]*model.GameDefinition {
	games := []*model.GameDefinition{
		{
			ID:                  "memory-game",
			Name:                "Memory Match",
			StreakMultiplier:    1.5,
			SupportsMultiplayer: true,
			MultiplayerBonus:    50,
			UnlockedByDefault:   true,
		},
		{
			ID:                  "math-quiz",
			Name:                "Math Quiz",
			StreakMultiplier:    2.0,
			SupportsMultiplayer: true,
			MultiplayerBonus:    75,
			UnlockedByDefault:   true,
		},
		{
			ID:                "word-puzzle",
			Name:              "Word Puzzle",
			StreakMultiplier:  1.2,
			UnlockedByDefault: true,
		},
		{
			ID:                "color-match",
			Name:              "Color Match",
			StreakMultiplier:  1.0,
			UnlockedByDefault: false,
			UnlockRequirement: "reach level 3",
		},
		{
			ID:                  "speed-tap",
			Name:                "Speed Tap",
			StreakMultiplier:    0.8,
			SupportsMultiplayer: true,
			MultiplayerBonus:    30,
			UnlockedByDefault:   false,
			UnlockRequirement:   "milestone reward",
		},
	}

	out := make(map[string]*model.GameDefinition, len(games))
	for _, g := range games {
		out[g.ID] = g
	}
	return out
}

func defaultTreeCatalog() map[string]*model.TreeDefinition {
	trees := []*model.TreeDefinition{
		{
			ID:                "oak-tree-1",
			Name:              "Community Oak",
			Type:              "oak",
			Rarity:            "common",
			MaxHealth:         100,
			MaxDailyWater:     20,
			UnlockedByDefault: true,
			LevelRewards:      map[int]int{1: 10, 3: 30, 5: 75, 7: 150, 10: 400},
		},
		{
			ID:            "cherry-blossom",
			Name:          "Cherry Blossom",
			Type:          "cherry",
			Rarity:        "rare",
			MaxHealth:     150,
			MaxDailyWater: 30,
			UnlockRequirement: &model.TreeUnlockRequirement{
				Type:  "level",
				Value: 5,
			},
			LevelRewards: map[int]int{1: 20, 3: 50, 5: 120, 7: 250, 10: 600},
		},
		{
			ID:            "golden-ginkgo",
			Name:          "Golden Ginkgo",
			Type:          "ginkgo",
			Rarity:        "legendary",
			MaxHealth:     200,
			MaxDailyWater: 40,
			UnlockRequirement: &model.TreeUnlockRequirement{
				Type:  "multiplayer_wins",
				Value: 10,
			},
			LevelRewards: map[int]int{1: 50, 3: 100, 5: 200, 7: 400, 10: 1000},
		},
	}

	out := make(map[string]*model.TreeDefinition, len(trees))
	for _, t := range trees {
		out[t.ID] = t
	}
	return out
}

func defaultLevelTiers() []model.LevelTier {
	return []model.LevelTier{
		{Level: 1, Title: "Newcomer", Icon: "/assets/levels/newcomer.png"},
		{Level: 2, Title: "Window Shopper", Icon: "/assets/levels/shopper.png"},
		{Level: 3, Title: "Explorer", Icon: "/assets/levels/explorer.png"},
		{Level: 4, Title: "Collector", Icon: "/assets/levels/collector.png"},
		{Level: 5, Title: "Strategist", Icon: "/assets/levels/strategist.png"},
		{Level: 6, Title: "Challenger", Icon: "/assets/levels/challenger.png"},
		{Level: 7, Title: "Champion", Icon: "/assets/levels/champion.png"},
		{Level: 8, Title: "Grove Keeper", Icon: "/assets/levels/keeper.png"},
		{Level: 9, Title: "Grove Master", Icon: "/assets/levels/master.png"},
		{Level: 10, Title: "Legend", Icon: "/assets/levels/legend.png"},
	}
}
