package services

import (
	"strings"
	"testing"

	"github.com/playgrove-labs/grove_api/dto"
)

func newTestShare(progression *ProgressionService) *ShareService {
	return &ShareService{
		progressionSvc: progression,
		minioSvc:       &MinIOService{},
	}
}

func TestCreateShareContent_TypedTextAndImage(t *testing.T) {
	progression := newTestProgression()
	svc := newTestShare(progression)

	tests := []struct {
		shareType string
		image     string
	}{
		{"achievement", "share/achievement.png"},
		{"level_up", "share/level_up.png"},
		{"tree_growth", "share/tree_growth.png"},
		{"general", "share/general.png"},
	}

	for _, tt := range tests {
		resp, err := svc.CreateShareContent("alice", dto.ShareRequest{Type: tt.shareType})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.shareType, err)
		}
		if resp.ShareText == "" {
			t.Errorf("%s: share text empty", tt.shareType)
		}
		if !strings.Contains(resp.ShareURL, tt.shareType) {
			t.Errorf("%s: share url = %q, want type in path", tt.shareType, resp.ShareURL)
		}
		// Without object storage the image falls back to the static asset.
		if resp.ShareImage != "/assets/"+tt.image {
			t.Errorf("%s: share image = %q, want /assets/%s", tt.shareType, resp.ShareImage, tt.image)
		}
	}
}

func TestCreateShareContent_ReflectsPlayerLevel(t *testing.T) {
	progression := newTestProgression()
	svc := newTestShare(progression)

	progression.AwardPoints("alice", 600, "test_grant")

	resp, err := svc.CreateShareContent("alice", dto.ShareRequest{Type: "level_up"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.ShareText, "level 2") {
		t.Errorf("share text = %q, want the player's level in it", resp.ShareText)
	}
}
