package deliverablesvc

import (
	"regexp"
	"strconv"
)

// Các pattern đọc số bài yêu cầu từ mô tả tần suất đăng bài tự do của brand.
// Thứ tự khai báo là thứ tự ưu tiên, pattern khớp đầu tiên thắng.
var (
	reTotalPosts   = regexp.MustCompile(`(?i)(\d+)\s*posts?\s*in\s*total`)
	reTimesPerWeek = regexp.MustCompile(`(?i)(\d+)\s*times?\s*per\s*week\s*for\s*(\d+)\s*weeks?`)
	rePostsPerWeek = regexp.MustCompile(`(?i)(\d+)\s*posts?\s*per\s*week`)
	rePostsPerDay  = regexp.MustCompile(`(?i)(\d+)\s*posts?\s*per\s*day`)
	reBarePosts    = regexp.MustCompile(`(?i)(\d+)\s*posts?`)
)

// ExtractPostCount đọc số bài yêu cầu từ chuỗi tần suất đăng bài.
// Ví dụ: "3 times per week for 4 weeks" -> 12, "5 posts in total" -> 5.
// Chuỗi không đọc được (hoặc ra số <= 0) trả về 1.
func ExtractPostCount(postFrequency string) int {
	if m := reTotalPosts.FindStringSubmatch(postFrequency); m != nil {
		return positiveOrOne(atoi(m[1]))
	}
	if m := reTimesPerWeek.FindStringSubmatch(postFrequency); m != nil {
		return positiveOrOne(atoi(m[1]) * atoi(m[2]))
	}
	if m := rePostsPerWeek.FindStringSubmatch(postFrequency); m != nil {
		return positiveOrOne(atoi(m[1]))
	}
	if m := rePostsPerDay.FindStringSubmatch(postFrequency); m != nil {
		return positiveOrOne(atoi(m[1]))
	}
	if m := reBarePosts.FindStringSubmatch(postFrequency); m != nil {
		return positiveOrOne(atoi(m[1]))
	}
	return 1
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func positiveOrOne(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
