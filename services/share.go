package services

import (
	"context"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/playgrove-labs/grove_api/dto"
	log "github.com/sirupsen/logrus"
)

// ShareService builds social share content from the player's progression
// snapshot, with share-card images served from object storage. Presigned
// image URLs are cached in Redis so repeated shares don't re-sign.
type ShareService struct {
	appContext.DefaultService

	progressionSvc *ProgressionService
	minioSvc       *MinIOService
	redisSvc       *RedisService
}

const SHARE_SVC = "share_svc"

const shareImageExpiry = 24 * time.Hour

const shareImageCachePrefix = "grove:share:image:"

func (svc ShareService) Id() string {
	return SHARE_SVC
}

func (svc *ShareService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ShareService) Start() error {
	svc.progressionSvc = svc.Service(PROGRESSION_SVC).(*ProgressionService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

func (svc *ShareService) CreateShareContent(userID string, req dto.ShareRequest) (*dto.ShareResponse, error) {
	stats := svc.progressionSvc.GetPlayerStats(userID)

	var shareText string
	var imageObject string

	switch req.Type {
	case "achievement":
		shareText = fmt.Sprintf("🏆 New achievement unlocked in Grove! Level %d and climbing!", stats.Level.Level)
		imageObject = "share/achievement.png"
	case "level_up":
		shareText = fmt.Sprintf("⭐ Level UP! I just hit level %d (%s) in Grove!", stats.Level.Level, stats.Level.Title)
		imageObject = "share/level_up.png"
	case "tree_growth":
		shareText = fmt.Sprintf("🌳 Our community tree is growing! Come water it with me in Grove — I'm level %d!", stats.Level.Level)
		imageObject = "share/tree_growth.png"
	default:
		shareText = fmt.Sprintf("🎮 Playing mini games and growing trees in Grove! Level %d — join me!", stats.Level.Level)
		imageObject = "share/general.png"
	}

	shareURL := fmt.Sprintf("https://grove.app/shared/%s/%s", req.Type, userID)

	return &dto.ShareResponse{
		ShareURL:   shareURL,
		ShareImage: svc.shareImageURL(imageObject),
		ShareText:  shareText,
		Platforms:  []string{"facebook", "instagram", "tiktok", "twitter"},
	}, nil
}

// shareImageURL resolves the share-card image, preferring the cached
// presigned URL. Falls back to a static asset path when storage is down.
func (svc *ShareService) shareImageURL(object string) string {
	cacheKey := shareImageCachePrefix + object
	if svc.redisSvc != nil {
		if cached, err := svc.redisSvc.Get(context.Background(), cacheKey); err == nil && cached != "" {
			return cached
		}
	}

	url, err := svc.minioSvc.PresignedAssetURL(object, shareImageExpiry)
	if err != nil {
		log.WithError(err).WithField("object", object).Warn("Failed to presign share image")
		return "/assets/" + object
	}

	if svc.redisSvc != nil {
		// Half the presign window keeps cached links usable until expiry.
		if err := svc.redisSvc.Set(context.Background(), cacheKey, url, shareImageExpiry/2); err != nil {
			log.WithError(err).Debug("Failed to cache share image url")
		}
	}
	return url
}
