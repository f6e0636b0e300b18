// Package deliverablesvc - Test đọc số bài yêu cầu từ chuỗi tần suất đăng bài.
package deliverablesvc

import (
	"testing"

	campmodels "kol_market/internal/api/campaign/models"
)

func TestExtractPostCount(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int
	}{
		{"tổng số bài", "5 posts in total", 5},
		{"tổng số bài - số ít", "1 post in total", 1},
		{"lần mỗi tuần trong N tuần", "3 times per week for 4 weeks", 12},
		{"một lần mỗi tuần trong 1 tuần", "1 time per week for 1 week", 1},
		{"bài mỗi tuần", "2 posts per week", 2},
		{"bài mỗi ngày", "1 post per day", 1},
		{"chỉ số bài", "10 posts", 10},
		{"không viết hoa thống nhất", "5 Posts In Total", 5},
		{"pattern tổng ưu tiên hơn pattern tuần", "3 times per week for 4 weeks = 12 posts in total", 12},
		{"chuỗi tự do không đọc được", "đăng thường xuyên lên Instagram", 1},
		{"chuỗi rỗng", "", 1},
		{"số 0 quy về 1", "0 posts in total", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractPostCount(tc.in)
			if got != tc.want {
				t.Errorf("ExtractPostCount(%q) = %d, muốn %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestRequiredPosts(t *testing.T) {
	t.Run("postCount đặt sẵn được ưu tiên", func(t *testing.T) {
		c := &campmodels.Campaign{PostCount: 7, PostFrequency: "2 posts per week"}
		if got := RequiredPosts(c); got != 7 {
			t.Errorf("RequiredPosts = %d, muốn 7", got)
		}
	})

	t.Run("postCount bằng 0 thì đọc từ postFrequency", func(t *testing.T) {
		c := &campmodels.Campaign{PostFrequency: "2 posts per week"}
		if got := RequiredPosts(c); got != 2 {
			t.Errorf("RequiredPosts = %d, muốn 2", got)
		}
	})
}
