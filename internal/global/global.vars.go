package global

import (
	"kol_market/config"
	"kol_market/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// Validate là instance validator dùng chung cho toàn bộ ứng dụng.
// Được khởi tạo một lần trong InitValidator.
var Validate *validator.Validate

// MongoDB_Session là client MongoDB dùng chung, khởi tạo lúc server start.
var MongoDB_Session *mongo.Client

// MongoDB_ServerConfig giữ cấu hình server đã parse từ env.
var MongoDB_ServerConfig *config.Configuration

// ColNames định nghĩa tên các collection trong database.
// Gán giá trị một lần ở init, các service đọc qua MongoDB_ColNames.
type ColNames struct {
	Brands      string // Tài khoản brand
	Influencers string // Tài khoản influencer
	Admins      string // Tài khoản admin
	Campaigns   string // Chiến dịch marketing (kèm assignment nhúng)
}

// MongoDB_ColNames chứa tên collection thực tế, gán trong initColNames.
var MongoDB_ColNames ColNames

// RegistryCollections lưu các *mongo.Collection đã khởi tạo theo tên.
// Service lấy collection qua registry thay vì giữ tham chiếu trực tiếp.
var RegistryCollections = registry.NewRegistry[*mongo.Collection]()
