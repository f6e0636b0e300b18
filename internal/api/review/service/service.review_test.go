// Package reviewsvc - Test phân quyền bình luận và định vị job trong campaign.
package reviewsvc

import (
	"testing"

	campmodels "kol_market/internal/api/campaign/models"
	"kol_market/internal/api/middleware"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLocateJob(t *testing.T) {
	influencerID := primitive.NewObjectID()
	campaign := &campmodels.Campaign{
		AssignedInfluencers: []campmodels.AssignedInfluencer{
			{
				InfluencerID: influencerID,
				SubmittedJobs: []campmodels.SubmittedJob{
					{JobID: "job-1", Platform: "instagram"},
					{JobID: "job-2", Platform: "tiktok"},
				},
			},
		},
	}

	t.Run("tìm thấy job và assignment chứa nó", func(t *testing.T) {
		assignment, job, err := locateJob(campaign, "job-2")
		if err != nil {
			t.Fatalf("locateJob lỗi: %v", err)
		}
		if assignment.InfluencerID != influencerID {
			t.Errorf("assignment.InfluencerID = %s, muốn %s", assignment.InfluencerID.Hex(), influencerID.Hex())
		}
		if job.Platform != "tiktok" {
			t.Errorf("job.Platform = %q, muốn tiktok", job.Platform)
		}
	})

	t.Run("job không tồn tại trả về lỗi", func(t *testing.T) {
		_, _, err := locateJob(campaign, "job-404")
		if err == nil {
			t.Fatal("muốn lỗi not found, nhận nil")
		}
	})
}

func TestCanComment(t *testing.T) {
	brandID := primitive.NewObjectID()
	influencerID := primitive.NewObjectID()
	outsiderID := primitive.NewObjectID()

	campaign := &campmodels.Campaign{BrandID: brandID}
	assignment := &campmodels.AssignedInfluencer{InfluencerID: influencerID}

	cases := []struct {
		name   string
		caller Caller
		want   bool
	}{
		{"brand sở hữu chiến dịch", Caller{ID: brandID, Role: middleware.RoleBrand}, true},
		{"brand khác", Caller{ID: outsiderID, Role: middleware.RoleBrand}, false},
		{"influencer của assignment", Caller{ID: influencerID, Role: middleware.RoleInfluencer}, true},
		{"influencer khác", Caller{ID: outsiderID, Role: middleware.RoleInfluencer}, false},
		{"admin không tham gia thread", Caller{ID: outsiderID, Role: middleware.RoleAdmin}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := canComment(campaign, assignment, &tc.caller); got != tc.want {
				t.Errorf("canComment = %v, muốn %v", got, tc.want)
			}
		})
	}
}
