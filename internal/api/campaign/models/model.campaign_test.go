package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCompletionStatusValid(t *testing.T) {
	valid := []CompletionStatus{CompletionPending, CompletionInProgress, CompletionCompleted}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("CompletionStatus(%q).Valid() = false, muốn true", s)
		}
	}

	invalid := []CompletionStatus{"", "done", "Pending"}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("CompletionStatus(%q).Valid() = true, muốn false", s)
		}
	}
}

func TestFindAssignment(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	campaign := Campaign{
		AssignedInfluencers: []AssignedInfluencer{
			{InfluencerID: a, AcceptanceStatus: AcceptanceStatusAccepted},
		},
	}

	t.Run("tìm thấy assignment theo influencer id", func(t *testing.T) {
		got := campaign.FindAssignment(a)
		if got == nil {
			t.Fatal("FindAssignment trả về nil cho influencer đã gán")
		}
		if got.InfluencerID != a {
			t.Errorf("InfluencerID = %s, muốn %s", got.InfluencerID.Hex(), a.Hex())
		}
	})

	t.Run("influencer chưa gán trả về nil", func(t *testing.T) {
		if got := campaign.FindAssignment(b); got != nil {
			t.Errorf("FindAssignment = %v, muốn nil", got)
		}
	})
}
