package accounthdl

import (
	"fmt"

	accountdto "kol_market/internal/api/account/dto"
	accmodels "kol_market/internal/api/account/models"
	accountsvc "kol_market/internal/api/account/service"
	basehdl "kol_market/internal/api/base/handler"

	"github.com/gofiber/fiber/v3"
)

// BrandHandler xử lý các request liên quan đến tài khoản nhãn hàng
type BrandHandler struct {
	*basehdl.BaseHandler[accmodels.Brand, accountdto.BrandCreateInput, accountdto.BrandUpdateInput]
	brandService *accountsvc.BrandService
}

// NewBrandHandler tạo mới BrandHandler
func NewBrandHandler(brandService *accountsvc.BrandService) (*BrandHandler, error) {
	if brandService == nil {
		return nil, fmt.Errorf("brand service is required")
	}

	hdl := &BrandHandler{
		BaseHandler:  basehdl.NewBaseHandler[accmodels.Brand, accountdto.BrandCreateInput, accountdto.BrandUpdateInput](brandService),
		brandService: brandService,
	}
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"passwordHash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// HandleRegister xử lý đăng ký tài khoản nhãn hàng
func (h *BrandHandler) HandleRegister(c fiber.Ctx) error {
	var input accountdto.BrandCreateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	brand, err := h.brandService.Register(c.Context(), &input)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	brand.PasswordHash = ""
	h.HandleResponse(c, brand, nil)
	return nil
}
