package utility

import (
	"testing"
)

type toMapSample struct {
	Name      string `bson:"name"`
	Email     string `bson:"email,omitempty"`
	CreatedAt int64  `bson:"createdAt"`
}

// TestToMap kiểm tra chuyển đổi struct thành bản đồ theo tag bson.
func TestToMap(t *testing.T) {
	t.Run("Chuyển đổi đầy đủ các trường", func(t *testing.T) {
		m, err := ToMap(toMapSample{Name: "Lan", Email: "lan@example.com", CreatedAt: 1700000000000})
		if err != nil {
			t.Fatalf("ToMap trả về lỗi không mong muốn: %v", err)
		}
		if m["name"] != "Lan" {
			t.Errorf("name = %v, mong muốn Lan", m["name"])
		}
		if m["email"] != "lan@example.com" {
			t.Errorf("email = %v, mong muốn lan@example.com", m["email"])
		}
		if m["createdAt"] != int64(1700000000000) {
			t.Errorf("createdAt = %v, mong muốn 1700000000000", m["createdAt"])
		}
	})

	t.Run("Trường omitempty rỗng không xuất hiện", func(t *testing.T) {
		m, err := ToMap(toMapSample{Name: "Lan"})
		if err != nil {
			t.Fatalf("ToMap trả về lỗi không mong muốn: %v", err)
		}
		if _, ok := m["email"]; ok {
			t.Errorf("email rỗng vẫn xuất hiện trong map: %v", m)
		}
	})

	t.Run("Con trỏ struct cũng chuyển đổi được", func(t *testing.T) {
		m, err := ToMap(&toMapSample{Name: "Minh"})
		if err != nil {
			t.Fatalf("ToMap trả về lỗi không mong muốn: %v", err)
		}
		if m["name"] != "Minh" {
			t.Errorf("name = %v, mong muốn Minh", m["name"])
		}
	})
}
