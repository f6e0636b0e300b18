package paymentdto

// VerifyPaymentInput đầu vào xác minh thanh toán cho chiến dịch.
// CampaignID phải tồn tại trong collection campaigns.
type VerifyPaymentInput struct {
	TransactionID string `json:"transactionId" validate:"required"`
	CampaignID    string `json:"campaignId" validate:"required,exists=campaigns"`
}
