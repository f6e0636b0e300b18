package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Các giá trị được đọc từ file env theo môi trường (GO_ENV).
type Configuration struct {
	InitMode              bool   `env:"INITMODE" envDefault:"false"`               // Chế độ khởi tạo dữ liệu mặc định
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	JwtSecret             string `env:"JWT_SECRET,required"`                       // Bí mật ký access token
	JwtRefreshSecret      string `env:"JWT_REFRESH_SECRET,required"`               // Bí mật ký refresh token
	MongoDB_ConnectionURI string `env:"MONGO_URI,required"`                        // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"kol_market"`    // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"ALLOWED_ORIGIN" envDefault:"*"`             // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting
	// Email (SMTP) Configuration
	EmailHost string `env:"EMAIL_HOST" envDefault:"smtp.gmail.com"` // SMTP host
	EmailPort int    `env:"EMAIL_PORT" envDefault:"587"`            // SMTP port
	EmailUser string `env:"EMAIL_USER"`                             // Tài khoản gửi email (trống = tắt kênh email)
	EmailPass string `env:"EMAIL_PASS"`                             // Mật khẩu ứng dụng của tài khoản gửi
	// Twilio WhatsApp Configuration
	TwilioAccountSID   string `env:"TWILIO_ACCOUNT_SID"`   // Account SID (trống = tắt kênh WhatsApp)
	TwilioAuthToken    string `env:"TWILIO_AUTH_TOKEN"`    // Auth token
	TwilioWhatsAppFrom string `env:"TWILIO_WHATSAPP_FROM"` // Số gửi WhatsApp, dạng "whatsapp:+1415..."
	// Flutterwave Payment Configuration
	FlutterwaveSecretKey string `env:"FLUTTERWAVE_SECRET_KEY"`                                        // Secret key gọi API verify giao dịch
	FlutterwaveBaseURL   string `env:"FLUTTERWAVE_BASE_URL" envDefault:"https://api.flutterwave.com"` // Base URL gateway (đổi được khi test)
	// AWS S3 Configuration (upload hồ sơ influencer)
	AWSRegion          string `env:"AWS_REGION"`            // Region S3 (trống = tắt upload)
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`     // Access key
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"` // Secret key
	AWSBucket          string `env:"AWS_S3_BUCKET"`         // Tên bucket chứa file hồ sơ
	// Admin bootstrap
	AdminEmail    string `env:"ADMIN_EMAIL"`    // Email admin khởi tạo (nhận thông báo deliverable)
	AdminPassword string `env:"ADMIN_PASSWORD"` // Mật khẩu admin khởi tạo (chỉ dùng ở init)
	AdminName     string `env:"ADMIN_NAME" envDefault:"System Admin"`
	// Frontend URL
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"` // URL frontend (link reset mật khẩu)
	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			// Tìm thấy thư mục config/env
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
