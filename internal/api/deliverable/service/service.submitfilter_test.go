package deliverablesvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	campmodels "kol_market/internal/api/campaign/models"
)

// TestSubmitFilter kiểm tra filter nộp bài chỉ match khi assignment còn hạn mức
// và đang ở trạng thái cho phép nộp.
func TestSubmitFilter(t *testing.T) {
	campaignID := primitive.NewObjectID()
	influencerID := primitive.NewObjectID()

	filter := submitFilter(campaignID, influencerID, 2, 5)

	t.Run("Giới hạn theo _id chiến dịch", func(t *testing.T) {
		if filter["_id"] != campaignID {
			t.Errorf("_id = %v, mong muốn %v", filter["_id"], campaignID)
		}
	})

	t.Run("Chỉ match assignment đã chấp nhận và chưa hoàn thành", func(t *testing.T) {
		elem, ok := filter["assignedInfluencers"].(bson.M)
		if !ok {
			t.Fatalf("assignedInfluencers không phải bson.M: %T", filter["assignedInfluencers"])
		}
		cond, ok := elem["$elemMatch"].(bson.M)
		if !ok {
			t.Fatalf("$elemMatch không phải bson.M: %T", elem["$elemMatch"])
		}
		if cond["influencerId"] != influencerID {
			t.Errorf("influencerId = %v, mong muốn %v", cond["influencerId"], influencerID)
		}
		if cond["acceptanceStatus"] != campmodels.AcceptanceStatusAccepted {
			t.Errorf("acceptanceStatus = %v, mong muốn %v", cond["acceptanceStatus"], campmodels.AcceptanceStatusAccepted)
		}
		ne, ok := cond["completionStatus"].(bson.M)
		if !ok || ne["$ne"] != campmodels.CompletionCompleted {
			t.Errorf("completionStatus = %v, mong muốn $ne %v", cond["completionStatus"], campmodels.CompletionCompleted)
		}
	})

	t.Run("Ràng buộc tổng số bài qua biểu thức", func(t *testing.T) {
		expr, ok := filter["$expr"].(bson.M)
		if !ok {
			t.Fatalf("$expr không phải bson.M: %T", filter["$expr"])
		}
		lte, ok := expr["$lte"].(bson.A)
		if !ok || len(lte) != 2 {
			t.Fatalf("$lte không đúng dạng: %v", expr["$lte"])
		}
		if lte[1] != 5 {
			t.Errorf("Cận trên = %v, mong muốn số bài yêu cầu 5", lte[1])
		}
		add, ok := lte[0].(bson.M)["$add"].(bson.A)
		if !ok || len(add) != 2 {
			t.Fatalf("$add không đúng dạng: %v", lte[0])
		}
		if add[1] != 2 {
			t.Errorf("Số bài nộp thêm = %v, mong muốn 2", add[1])
		}
	})
}
