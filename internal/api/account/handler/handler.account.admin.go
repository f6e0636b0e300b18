package accounthdl

import (
	"fmt"

	accountdto "kol_market/internal/api/account/dto"
	accmodels "kol_market/internal/api/account/models"
	accountsvc "kol_market/internal/api/account/service"
	basehdl "kol_market/internal/api/base/handler"

	"github.com/gofiber/fiber/v3"
)

// AdminHandler xử lý các request liên quan đến tài khoản quản trị viên
type AdminHandler struct {
	*basehdl.BaseHandler[accmodels.Admin, accountdto.AdminCreateInput, accountdto.AdminUpdateInput]
	adminService *accountsvc.AdminService
}

// NewAdminHandler tạo mới AdminHandler
func NewAdminHandler(adminService *accountsvc.AdminService) (*AdminHandler, error) {
	if adminService == nil {
		return nil, fmt.Errorf("admin service is required")
	}

	hdl := &AdminHandler{
		BaseHandler:  basehdl.NewBaseHandler[accmodels.Admin, accountdto.AdminCreateInput, accountdto.AdminUpdateInput](adminService),
		adminService: adminService,
	}
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"passwordHash"},
		AllowedOperators: []string{"$eq", "$in", "$exists"},
		MaxFields:        5,
	})
	return hdl, nil
}

// HandleRegister tạo tài khoản quản trị viên mới (chỉ admin hiện hữu được phép)
func (h *AdminHandler) HandleRegister(c fiber.Ctx) error {
	var input accountdto.AdminCreateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	admin, err := h.adminService.Register(c.Context(), &input)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	admin.PasswordHash = ""
	h.HandleResponse(c, admin, nil)
	return nil
}
