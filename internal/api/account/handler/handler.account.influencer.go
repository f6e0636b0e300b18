package accounthdl

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"

	accountdto "kol_market/internal/api/account/dto"
	accmodels "kol_market/internal/api/account/models"
	accountsvc "kol_market/internal/api/account/service"
	basehdl "kol_market/internal/api/base/handler"
	"kol_market/internal/common"
	"kol_market/internal/logger"
	"kol_market/internal/storage"

	"github.com/gofiber/fiber/v3"
)

// proofFieldPrefix là tiền tố của file field minh chứng theo platform
// trong form đăng ký influencer (ví dụ: proof_instagram, proof_tiktok).
const proofFieldPrefix = "proof_"

// audienceProofField là tên file field chứa minh chứng audience tổng hợp.
const audienceProofField = "audienceProof"

// InfluencerHandler xử lý các request liên quan đến tài khoản influencer
type InfluencerHandler struct {
	*basehdl.BaseHandler[accmodels.Influencer, accountdto.InfluencerCreateInput, accountdto.InfluencerUpdateInput]
	influencerService *accountsvc.InfluencerService
	uploader          storage.Uploader
}

// NewInfluencerHandler tạo mới InfluencerHandler.
// uploader có thể nil khi S3 chưa được cấu hình, khi đó các URL minh chứng để trống.
func NewInfluencerHandler(influencerService *accountsvc.InfluencerService, uploader storage.Uploader) (*InfluencerHandler, error) {
	if influencerService == nil {
		return nil, fmt.Errorf("influencer service is required")
	}

	hdl := &InfluencerHandler{
		BaseHandler:       basehdl.NewBaseHandler[accmodels.Influencer, accountdto.InfluencerCreateInput, accountdto.InfluencerUpdateInput](influencerService),
		influencerService: influencerService,
		uploader:          uploader,
	}
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"passwordHash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// HandleCreateInfluencer xử lý đăng ký influencer qua multipart/form-data.
// Field "data" chứa JSON hồ sơ, các file minh chứng được upload lên S3 trước khi insert.
func (h *InfluencerHandler) HandleCreateInfluencer(c fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Request phải là multipart/form-data", common.StatusBadRequest, err))
		return nil
	}

	dataValues := form.Value["data"]
	if len(dataValues) == 0 {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu field 'data' chứa thông tin hồ sơ", common.StatusBadRequest, nil))
		return nil
	}

	var input accountdto.InfluencerCreateInput
	if err := json.Unmarshal([]byte(dataValues[0]), &input); err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Field 'data' không phải JSON hợp lệ", common.StatusBadRequest, err))
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	platformProofURLs := make(map[string]string)
	audienceProofURL := ""

	if h.uploader != nil {
		for field, files := range form.File {
			if len(files) == 0 {
				continue
			}
			switch {
			case field == audienceProofField:
				url, err := h.uploadProof(c, files[0])
				if err != nil {
					h.HandleResponse(c, nil, err)
					return nil
				}
				audienceProofURL = url
			case strings.HasPrefix(field, proofFieldPrefix):
				platform := strings.TrimPrefix(field, proofFieldPrefix)
				url, err := h.uploadProof(c, files[0])
				if err != nil {
					h.HandleResponse(c, nil, err)
					return nil
				}
				platformProofURLs[platform] = url
			}
		}
	}

	influencer, err := h.influencerService.Register(c.Context(), &input, platformProofURLs, audienceProofURL)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	influencer.PasswordHash = ""
	h.HandleResponse(c, influencer, nil)
	return nil
}

// uploadProof stream một file từ form lên S3 và trả về URL công khai
func (h *InfluencerHandler) uploadProof(c fiber.Ctx, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", common.NewError(common.ErrCodeValidationFormat, "Không đọc được file upload", common.StatusBadRequest, err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.uploader.Upload(c.Context(), "influencer-proofs", fileHeader.Filename, contentType, file)
	if err != nil {
		logger.GetAppLogger().WithError(err).
			WithField("filename", fileHeader.Filename).
			Error("Upload minh chứng lên S3 thất bại")
		return "", common.NewError(common.ErrCodeInternalServer, "Upload file minh chứng thất bại", common.StatusInternalServerError, nil)
	}
	return url, nil
}
