// Package campaignsvc - Test các helper gán influencer: parse id, lọc trùng, lỗi giới hạn.
package campaignsvc

import (
	"errors"
	"testing"

	campmodels "kol_market/internal/api/campaign/models"
	"kol_market/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseInfluencerIDs(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	t.Run("khử trùng lặp và giữ thứ tự", func(t *testing.T) {
		got, err := parseInfluencerIDs([]string{a.Hex(), b.Hex(), a.Hex()})
		if err != nil {
			t.Fatalf("parseInfluencerIDs lỗi: %v", err)
		}
		if len(got) != 2 || got[0] != a || got[1] != b {
			t.Errorf("parseInfluencerIDs = %v, muốn [%s %s]", got, a.Hex(), b.Hex())
		}
	})

	t.Run("id sai định dạng trả về 400", func(t *testing.T) {
		_, err := parseInfluencerIDs([]string{"không-phải-objectid"})
		if err == nil {
			t.Fatal("muốn lỗi định dạng, nhận nil")
		}
		var customErr *common.Error
		if !errors.As(err, &customErr) {
			t.Fatalf("muốn *common.Error, nhận %T", err)
		}
		if customErr.StatusCode != common.StatusBadRequest {
			t.Errorf("StatusCode = %d, muốn %d", customErr.StatusCode, common.StatusBadRequest)
		}
	})
}

func TestFilterNewAssignees(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	existing := []campmodels.AssignedInfluencer{
		{InfluencerID: a, AcceptanceStatus: campmodels.AcceptanceStatusPending},
	}

	t.Run("loại id đã được gán", func(t *testing.T) {
		got := filterNewAssignees(existing, []primitive.ObjectID{a, b, c})
		if len(got) != 2 || got[0] != b || got[1] != c {
			t.Errorf("filterNewAssignees = %v, muốn [%s %s]", got, b.Hex(), c.Hex())
		}
	})

	t.Run("tất cả đã gán thì trả về rỗng", func(t *testing.T) {
		got := filterNewAssignees(existing, []primitive.ObjectID{a})
		if len(got) != 0 {
			t.Errorf("filterNewAssignees = %v, muốn rỗng", got)
		}
	})

	t.Run("danh sách gán rỗng thì giữ nguyên", func(t *testing.T) {
		got := filterNewAssignees(nil, []primitive.ObjectID{a, b})
		if len(got) != 2 {
			t.Errorf("filterNewAssignees trả về %d id, muốn 2", len(got))
		}
	})
}

func TestCapacityError(t *testing.T) {
	err := capacityError(2, 2)

	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("muốn *common.Error, nhận %T", err)
	}
	if customErr.StatusCode != common.StatusBadRequest {
		t.Errorf("StatusCode = %d, muốn %d", customErr.StatusCode, common.StatusBadRequest)
	}

	want := "Cannot assign more influencers: limit is 2, currently 2 assigned"
	if customErr.Message != want {
		t.Errorf("Message = %q, muốn %q", customErr.Message, want)
	}
}
