package middleware

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"kol_market/internal/utility"
)

// TestLoadAccountTraCacheBanSao kiểm tra mỗi request nhận được bản sao riêng
// của document tài khoản trong cache, mutation trên một request không ảnh hưởng
// đến request khác hay đến document gốc.
func TestLoadAccountTraCacheBanSao(t *testing.T) {
	a := &Authenticator{cache: utility.NewCache(5*time.Minute, 10*time.Minute)}

	original := bson.M{
		"_id":   "68a0000000000000000000aa",
		"name":  "Brand A",
		"email": "brand@example.com",
	}
	a.cache.Set("account:brand:68a0000000000000000000aa", original)

	first, err := a.loadAccount(context.Background(), "brand", "68a0000000000000000000aa")
	if err != nil {
		t.Fatalf("loadAccount trả về lỗi không mong muốn: %v", err)
	}

	// Mutation trên bản sao của request này
	delete(first, "email")
	first["name"] = "đã sửa"

	second, err := a.loadAccount(context.Background(), "brand", "68a0000000000000000000aa")
	if err != nil {
		t.Fatalf("loadAccount trả về lỗi không mong muốn: %v", err)
	}
	if second["email"] != "brand@example.com" {
		t.Errorf("email trong cache bị mất sau mutation của request khác: %v", second)
	}
	if second["name"] != "Brand A" {
		t.Errorf("name trong cache bị ghi đè bởi request khác: %v", second["name"])
	}
	if original["email"] != "brand@example.com" {
		t.Errorf("document gốc trong cache bị thay đổi: %v", original)
	}
}

// TestLoadAccountDocThayDoiDongThoi kiểm tra nhiều goroutine cùng đọc và
// chỉnh sửa bản sao tài khoản mà không tranh chấp trên map chia sẻ.
func TestLoadAccountDocThayDoiDongThoi(t *testing.T) {
	a := &Authenticator{cache: utility.NewCache(5*time.Minute, 10*time.Minute)}
	a.cache.Set("account:influencer:68a0000000000000000000bb", bson.M{
		"_id":  "68a0000000000000000000bb",
		"name": "Influencer B",
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acc, err := a.loadAccount(context.Background(), "influencer", "68a0000000000000000000bb")
			if err != nil {
				t.Errorf("loadAccount trả về lỗi không mong muốn: %v", err)
				return
			}
			// Mỗi goroutine chỉnh sửa bản sao riêng của mình
			delete(acc, "name")
			acc["scratch"] = true
		}()
	}
	wg.Wait()

	final, err := a.loadAccount(context.Background(), "influencer", "68a0000000000000000000bb")
	if err != nil {
		t.Fatalf("loadAccount trả về lỗi không mong muốn: %v", err)
	}
	if final["name"] != "Influencer B" {
		t.Errorf("document trong cache bị thay đổi bởi goroutine: %v", final)
	}
	if _, ok := final["scratch"]; ok {
		t.Errorf("trường tạm của goroutine rò rỉ vào cache: %v", final)
	}
}

// TestCloneAccountDocLap kiểm tra bản sao nông độc lập với map gốc.
func TestCloneAccountDocLap(t *testing.T) {
	src := bson.M{"a": 1, "b": "x"}
	dst := cloneAccount(src)

	dst["a"] = 2
	delete(dst, "b")

	if src["a"] != 1 || src["b"] != "x" {
		t.Errorf("map gốc bị thay đổi qua bản sao: %v", src)
	}
}
