package reviewdto

// AddReviewInput đầu vào thêm bình luận review cho một bài đã nộp.
type AddReviewInput struct {
	Comment string `json:"comment" validate:"required,no_xss,max=1000"`
}

// UpdateReviewInput đầu vào sửa bình luận review (chỉ tác giả).
type UpdateReviewInput struct {
	Comment string `json:"comment" validate:"required,no_xss,max=1000"`
}
