package middleware

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kol_market/internal/api/events"
	"kol_market/internal/global"
)

type eventDocSample struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// TestDocumentID kiểm tra lấy _id dạng hex từ document của event.
func TestDocumentID(t *testing.T) {
	oid := primitive.NewObjectID()

	t.Run("Struct có ObjectID", func(t *testing.T) {
		id, ok := documentID(eventDocSample{ID: oid, Name: "x"})
		if !ok || id != oid.Hex() {
			t.Errorf("documentID = (%q, %v), mong muốn (%q, true)", id, ok, oid.Hex())
		}
	})

	t.Run("Map có _id kiểu string", func(t *testing.T) {
		id, ok := documentID(bson.M{"_id": "68a0000000000000000000cc"})
		if !ok || id != "68a0000000000000000000cc" {
			t.Errorf("documentID = (%q, %v), mong muốn hex string", id, ok)
		}
	})

	t.Run("Document nil", func(t *testing.T) {
		if _, ok := documentID(nil); ok {
			t.Error("documentID(nil) phải trả về false")
		}
	})

	t.Run("Document không có _id", func(t *testing.T) {
		if _, ok := documentID(bson.M{"name": "x"}); ok {
			t.Error("documentID phải trả về false khi thiếu _id")
		}
	})
}

// TestRoleForCollection kiểm tra ánh xạ collection tài khoản sang vai trò.
func TestRoleForCollection(t *testing.T) {
	global.MongoDB_ColNames.Brands = "account_brands"
	global.MongoDB_ColNames.Influencers = "account_influencers"
	global.MongoDB_ColNames.Admins = "account_admins"

	cases := []struct {
		colName string
		want    string
	}{
		{"account_brands", RoleBrand},
		{"account_influencers", RoleInfluencer},
		{"account_admins", RoleAdmin},
		{"campaigns", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := roleForCollection(tc.colName); got != tc.want {
			t.Errorf("roleForCollection(%q) = %q, mong muốn %q", tc.colName, got, tc.want)
		}
	}
}

// TestInvalidateAccountCacheKhiTaiKhoanThayDoi kiểm tra cache của Authenticator
// bị vô hiệu khi collection tài khoản phát sự kiện thay đổi.
func TestInvalidateAccountCacheKhiTaiKhoanThayDoi(t *testing.T) {
	global.MongoDB_ColNames.Brands = "account_brands"

	oid := primitive.NewObjectID()
	a := GetAuthenticator()
	cacheKey := "account:" + RoleBrand + ":" + oid.Hex()
	a.cache.Set(cacheKey, bson.M{"_id": oid, "name": "Brand A"})

	invalidateAccountCache(context.Background(), events.DataChangeEvent{
		CollectionName: "account_brands",
		Operation:      events.OpUpdate,
		Document:       eventDocSample{ID: oid, Name: "Brand A đổi tên"},
	})

	cached, found := a.cache.Get(cacheKey)
	if !found {
		t.Fatal("Khóa cache biến mất thay vì bị vô hiệu")
	}
	if cached != nil {
		t.Errorf("Cache vẫn còn document sau khi tài khoản thay đổi: %v", cached)
	}

	// Collection không phải tài khoản thì cache giữ nguyên
	a.cache.Set(cacheKey, bson.M{"_id": oid, "name": "Brand A"})
	invalidateAccountCache(context.Background(), events.DataChangeEvent{
		CollectionName: "campaigns",
		Operation:      events.OpUpdate,
		Document:       eventDocSample{ID: oid},
	})
	cached, _ = a.cache.Get(cacheKey)
	if cached == nil {
		t.Error("Cache bị vô hiệu nhầm cho collection không phải tài khoản")
	}
}
