package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	accountrouter "kol_market/internal/api/account/router"
	authrouter "kol_market/internal/api/auth/router"
	campaignrouter "kol_market/internal/api/campaign/router"
	deliverablerouter "kol_market/internal/api/deliverable/router"
	paymentrouter "kol_market/internal/api/payment/router"
	paymentsvc "kol_market/internal/api/payment/service"
	reviewrouter "kol_market/internal/api/review/router"
	"kol_market/internal/api/router"
	"kol_market/internal/common"
	"kol_market/internal/global"
	"kol_market/internal/logger"
	"kol_market/internal/notification/channels"
	"kol_market/internal/payment"
	"kol_market/internal/storage"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp() *fiber.App {
	// Khởi tạo app với cấu hình nâng cao
	app := fiber.New(fiber.Config{
		// =========================================
		// 1. CẤU HÌNH CƠ BẢN
		// =========================================
		AppName:       "KOL Market API", // Tên ứng dụng hiển thị
		ServerHeader:  "KOL Market API", // Header server trong response
		StrictRouting: true,             // /foo và /foo/ là khác nhau
		CaseSensitive: true,             // /Foo và /foo là khác nhau
		UnescapePath:  true,             // Tự động decode URL-encoded paths
		Immutable:     false,            // Tính năng immutable cho ctx

		// =========================================
		// 2. CẤU HÌNH PERFORMANCE
		// =========================================
		BodyLimit:       10 * 1024 * 1024, // Max size của request body (10MB, đủ cho file hồ sơ influencer)
		Concurrency:     256 * 1024,       // Số lượng goroutines tối đa
		ReadBufferSize:  4096,             // Buffer size cho request reading
		WriteBufferSize: 4096,             // Buffer size cho response writing

		// =========================================
		// 3. CẤU HÌNH TIMEOUT
		// =========================================
		ReadTimeout:  15 * time.Second,  // Timeout đọc request
		WriteTimeout: 30 * time.Second,  // Timeout ghi response
		IdleTimeout:  120 * time.Second, // Timeout cho idle connections

		// =========================================
		// 4. CẤU HÌNH ERROR HANDLING
		// =========================================
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			errorCode := common.ErrCodeInternalServer.Code

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
				// Map HTTP status code to error code
				switch code {
				case fiber.StatusBadRequest:
					errorCode = common.ErrCodeValidationInput.Code
				case fiber.StatusUnauthorized:
					errorCode = common.ErrCodeAuthToken.Code
				case fiber.StatusForbidden:
					errorCode = common.ErrCodeAuthRole.Code
				case fiber.StatusNotFound:
					errorCode = common.ErrCodeDatabaseQuery.Code
				case fiber.StatusConflict:
					errorCode = common.ErrCodeDatabaseQuery.Code
				}
			}

			// Kiểm tra xem có phải lỗi TLS handshake không (HTTPS đến HTTP server)
			// TLS handshake bắt đầu với byte 0x16 0x03 0x01 (trong error message có thể hiển thị là \x16\x03\x01)
			errMsg := err.Error()
			isTLSHandshake := strings.Contains(errMsg, "unsupported http request method") &&
				(strings.Contains(errMsg, "\\x16\\x03\\x01") ||
					strings.Contains(errMsg, "\x16\x03\x01") ||
					strings.Contains(errMsg, "error when reading request headers"))

			// Nếu là TLS handshake, downgrade log level và trả về lỗi phù hợp
			if isTLSHandshake {
				// Không log TLS handshake để giảm log (đây là hành vi bình thường)
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"code":    common.ErrCodeValidationInput.Code,
					"message": "Server chỉ hỗ trợ HTTP. Vui lòng sử dụng http:// thay vì https://",
					"status":  "error",
					"details": fiber.Map{
						"protocol":   "HTTP only",
						"suggestion": "Sử dụng URL: http://localhost" + global.MongoDB_ServerConfig.Address,
					},
				})
			}

			// Log error cho các lỗi khác
			logger.GetErrorLogger().WithFields(map[string]interface{}{
				"requestId": c.Get("X-Request-ID"),
				"method":    c.Method(),
				"path":      c.Path(),
				"ip":        c.IP(),
				"code":      code,
				"errorCode": errorCode,
				"message":   message,
			}).Error("Request error")

			// Return JSON error với format thống nhất
			return c.Status(code).JSON(fiber.Map{
				"code":    errorCode,
				"message": message,
				"status":  "error",
			})
		},
	})

	// =========================================
	// MIDDLEWARE STACK
	// =========================================

	// 1. Request ID Middleware - Tạo ID duy nhất cho mỗi request để trace
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return fmt.Sprintf("%d", time.Now().UnixNano())
		},
	}))

	// 2. CORS Middleware - PHẢI ĐẶT Ở ĐẦU để xử lý preflight requests trước các middleware khác
	corsOrigins := global.MongoDB_ServerConfig.CORS_Origins
	var allowOrigins []string
	if corsOrigins == "*" {
		// Development mode: cho phép tất cả
		allowOrigins = []string{"*"}
	} else {
		// Production mode: chỉ cho phép các origins cụ thể
		allowOrigins = strings.Split(corsOrigins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Request-ID",
			"X-Requested-With",
		},
		AllowCredentials: global.MongoDB_ServerConfig.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "Content-Range", "X-Request-ID"},
		MaxAge:           24 * 60 * 60, // Thời gian cache preflight requests (24 giờ)
	}))

	// 3. Security Headers Middleware - Thêm các security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Rate Limiting Middleware - Giới hạn số request
	// Chỉ bật rate limit nếu được enable và Max > 0
	if global.MongoDB_ServerConfig.RateLimit_Enabled && global.MongoDB_ServerConfig.RateLimit_Max > 0 {
		rateLimitMax := global.MongoDB_ServerConfig.RateLimit_Max
		rateLimitWindow := time.Duration(global.MongoDB_ServerConfig.RateLimit_Window) * time.Second
		app.Use(limiter.New(limiter.Config{
			Max:        rateLimitMax,
			Expiration: rateLimitWindow,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP() // Giới hạn theo IP
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"code":    common.ErrCodeBusinessOperation.Code,
					"message": "Quá nhiều yêu cầu, vui lòng thử lại sau",
					"status":  "error",
				})
			},
			SkipFailedRequests:     false,
			SkipSuccessfulRequests: false,
			Next: func(c fiber.Ctx) bool {
				// Bỏ qua rate limit cho health check và OPTIONS requests (preflight)
				return c.Path() == "/health" ||
					c.Path() == "/api/v1/system/health" ||
					c.Method() == "OPTIONS"
			},
		}))
		log := logger.GetAppLogger()
		log.Infof("Rate limiting enabled: %d requests per %d seconds", rateLimitMax, global.MongoDB_ServerConfig.RateLimit_Window)
	} else {
		log := logger.GetAppLogger()
		log.Info("Rate limiting disabled")
	}

	// 5. Recover Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace:  true,
		StackTraceHandler: recoverStackTraceHandler,
		Next: func(c fiber.Ctx) bool {
			// Bỏ qua health check
			return c.Path() == "/health" ||
				c.Path() == "/api/v1/system/health"
		},
	}))

	// =========================================
	// KHỞI TẠO CÁC SINGLETON GỬI THÔNG BÁO / UPLOAD / GATEWAY
	// =========================================
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()

	email, err := channels.NewEmailSender(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize email sender: %v", err)
	}
	if email == nil {
		log.Warn("Email channel disabled: missing SMTP config")
	}

	whatsapp, err := channels.NewWhatsAppSender(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize WhatsApp sender: %v", err)
	}
	if whatsapp == nil {
		log.Warn("WhatsApp channel disabled: missing Twilio config")
	}

	// Gán qua biến interface có kiểm tra nil để tránh interface bọc con trỏ nil
	var uploader storage.Uploader
	if s3up, err := storage.NewS3Uploader(cfg); err != nil {
		log.Fatalf("Failed to initialize S3 uploader: %v", err)
	} else if s3up != nil {
		uploader = s3up
	} else {
		log.Warn("S3 upload disabled: missing AWS config")
	}

	var gateway paymentsvc.Gateway
	if fw := payment.NewClient(cfg); fw != nil {
		gateway = fw
	} else {
		log.Warn("Payment verification disabled: missing Flutterwave secret key")
	}

	// Khởi tạo routes
	if err := router.SetupRoutes(app,
		authrouter.Register(cfg, email),
		accountrouter.Register(email, uploader),
		campaignrouter.Register(email),
		deliverablerouter.Register(email, whatsapp, cfg.AdminEmail),
		reviewrouter.Register(),
		paymentrouter.Register(gateway),
	); err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}

	return app
}

// recoverStackTraceHandler log panic kèm stack trace và trả về response
// theo envelope chuẩn của API: {code, message, status}
func recoverStackTraceHandler(c fiber.Ctx, e interface{}) {
	logger.GetErrorLogger().WithFields(map[string]interface{}{
		"requestId": c.Get("X-Request-ID"),
		"method":    c.Method(),
		"path":      c.Path(),
		"panic":     e,
		"headers":   c.GetReqHeaders(),
		"body":      string(c.Body()),
	}).Error("Panic recovered")

	c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": "Internal Server Error",
		"status":  "error",
	})
}
