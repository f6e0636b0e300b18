package deliverabledto

// DeliverableInput là một deliverable trong request nộp bài hoặc lưu nháp.
type DeliverableInput struct {
	Platform    string `json:"platform" validate:"required,platform"`
	URL         string `json:"url" validate:"required,max=2000"`
	Description string `json:"description" validate:"omitempty,no_xss,max=1000"`
}

// SubmitDeliverablesInput đầu vào nộp bài của influencer.
type SubmitDeliverablesInput struct {
	Deliverables []DeliverableInput `json:"deliverables" validate:"required,min=1,dive"`
}

// UpdateDeliverableInput đầu vào sửa một bài đã nộp (chưa được duyệt).
type UpdateDeliverableInput struct {
	URL         string `json:"url" validate:"omitempty,max=2000"`
	Description string `json:"description" validate:"omitempty,no_xss,max=1000"`
}

// StashDeliverablesInput đầu vào lưu nháp deliverable.
type StashDeliverablesInput struct {
	Deliverables []DeliverableInput `json:"deliverables" validate:"required,min=1,dive"`
}
