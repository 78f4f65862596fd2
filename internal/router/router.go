package router

import (
	"sort"
	"strings"

	"github.com/Selinclb/eticaretsitesi/internal/authz"
	"github.com/Selinclb/eticaretsitesi/internal/cache"
	"github.com/Selinclb/eticaretsitesi/internal/config"
	adminhandlers "github.com/Selinclb/eticaretsitesi/internal/http/handlers/admin"
	publichandlers "github.com/Selinclb/eticaretsitesi/internal/http/handlers/public"
	"github.com/Selinclb/eticaretsitesi/internal/http/response"
	"github.com/Selinclb/eticaretsitesi/internal/logger"
	"github.com/Selinclb/eticaretsitesi/internal/metrics"
	"github.com/Selinclb/eticaretsitesi/internal/provider"

	"github.com/gin-gonic/gin"
)

func buildRule(prefix string, cfg config.RateLimitConfig, messageKey string) RateLimitRule {
	return RateLimitRule{
		Prefix:        prefix,
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxAttempts,
		MessageKey:    messageKey,
	}
}

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := cache.Client()
	loginRule := buildRule("rate:login", cfg.Security.LoginRateLimit, "error.login_too_many")
	adminLoginRule := buildRule("rate:admin_login", cfg.Security.LoginRateLimit, "error.login_too_many")
	verifyRule := buildRule("rate:verify", cfg.Security.VerifyRateLimit, "error.verify_too_many")
	sendRule := buildRule("rate:send", cfg.Security.SendRateLimit, "error.send_too_many")

	metricsPath := strings.TrimSpace(cfg.Metrics.Path)
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	if cfg.Metrics.Enabled {
		r.Use(MetricsMiddleware(metricsPath))
		r.GET(metricsPath, gin.WrapH(metrics.Handler()))
	}

	// 上传图片静态访问
	if c.UploadService != nil {
		r.Static("/uploads", c.UploadService.Dir())
	}

	userAuth := UserJWTAuthMiddleware(c.SessionService, c.UserRepo)
	adminAuth := AdminJWTAuthMiddleware(c.AuthService, c.AdminRepo)
	adminRBAC := AdminRBACMiddleware(c.AuthzService)

	apiV1 := r.Group("/api/v1")
	{
		// 商品目录
		apiV1.GET("/categories", publicHandler.GetCategories)
		apiV1.GET("/categories/:slug", publicHandler.GetCategory)
		apiV1.GET("/categories/:slug/subcategories", publicHandler.GetCategorySubCategories)
		apiV1.GET("/subcategories", publicHandler.GetSubCategories)
		apiV1.GET("/subcategories/:slug", publicHandler.GetSubCategory)
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:slug", publicHandler.GetProductBySlug)
		apiV1.GET("/products/:slug/variants", publicHandler.GetProductVariants)
		apiV1.GET("/products/:slug/check_stock", publicHandler.CheckProductStock)
		apiV1.GET("/products/:slug/reviews", publicHandler.GetProductReviews)
		apiV1.POST("/products/:slug/review", userAuth, publicHandler.CreateProductReview)
		apiV1.GET("/sliders", publicHandler.GetSliders)

		// 站点设置：公开读取，管理员整体替换
		apiV1.GET("/settings/:name", publicHandler.GetSetting)
		apiV1.PUT("/settings/:name", adminAuth, adminRBAC, adminHandler.UpdateSetting)

		// 验证码
		apiV1.GET("/captcha/config", publicHandler.GetCaptchaConfig)
		apiV1.GET("/captcha/image", publicHandler.GetImageCaptcha)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, sendRule, KeyByIPAndJSONField("email")), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
			auth.POST("/2fa/verify", RateLimitMiddleware(redisClient, verifyRule, KeyByIPAndJSONField("email")), publicHandler.VerifyTwoFactor)
			auth.POST("/verify-email", RateLimitMiddleware(redisClient, verifyRule, KeyByIP), publicHandler.VerifyEmail)
			auth.POST("/resend-verification", RateLimitMiddleware(redisClient, sendRule, KeyByIPAndJSONField("email")), publicHandler.ResendVerification)
			auth.POST("/password-reset", RateLimitMiddleware(redisClient, sendRule, KeyByIPAndJSONField("email")), publicHandler.RequestPasswordReset)
			auth.POST("/password-reset/confirm", RateLimitMiddleware(redisClient, verifyRule, KeyByIP), publicHandler.ConfirmPasswordReset)
			auth.POST("/token/refresh", publicHandler.RefreshToken)

			// 需登录
			authed := auth.Group("")
			authed.Use(userAuth)
			{
				authed.POST("/logout", publicHandler.Logout)
				authed.POST("/2fa/enable", publicHandler.EnableTwoFactor)
				authed.POST("/2fa/disable", publicHandler.DisableTwoFactor)
				authed.GET("/profile", publicHandler.GetProfile)
				authed.PATCH("/profile", publicHandler.UpdateProfile)
				authed.PUT("/profile", publicHandler.UpdateProfile)
				authed.POST("/change-password", RateLimitMiddleware(redisClient, verifyRule, KeyByUserID), publicHandler.ChangePassword)
				authed.POST("/delete-account", RateLimitMiddleware(redisClient, verifyRule, KeyByUserID), publicHandler.DeleteAccount)
				authed.GET("/login-logs", publicHandler.GetMyLoginLogs)
			}
		}

		// 订单接口（需登录）
		orders := apiV1.Group("/orders")
		orders.Use(userAuth)
		{
			orders.GET("", publicHandler.ListOrders)
			orders.POST("", publicHandler.CreateOrder)
			orders.GET("/:id", publicHandler.GetOrder)
			orders.POST("/:id/cancel", publicHandler.CancelOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Group("")
			authorized.Use(adminAuth, adminRBAC)
			{
				authorized.GET("/me", adminHandler.GetAdminMe)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)
				authorized.GET("/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
				authorized.PUT("/admins/:id/roles", adminHandler.SetAdminRoles)

				// 分类管理
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)
				authorized.GET("/subcategories", adminHandler.GetAdminSubCategories)
				authorized.POST("/subcategories", adminHandler.CreateSubCategory)
				authorized.PUT("/subcategories/:id", adminHandler.UpdateSubCategory)
				authorized.DELETE("/subcategories/:id", adminHandler.DeleteSubCategory)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)
				authorized.POST("/products/:id/images", adminHandler.AddProductImage)
				authorized.PUT("/product-images/:id", adminHandler.UpdateProductImage)
				authorized.DELETE("/product-images/:id", adminHandler.DeleteProductImage)
				authorized.POST("/products/:id/variants", adminHandler.AddProductVariant)
				authorized.PUT("/product-variants/:id", adminHandler.UpdateProductVariant)
				authorized.DELETE("/product-variants/:id", adminHandler.DeleteProductVariant)

				// 轮播图与评价
				authorized.GET("/sliders", adminHandler.GetAdminSliders)
				authorized.POST("/sliders", adminHandler.CreateSlider)
				authorized.PUT("/sliders/:id", adminHandler.UpdateSlider)
				authorized.DELETE("/sliders/:id", adminHandler.DeleteSlider)
				authorized.GET("/reviews", adminHandler.GetAdminReviews)
				authorized.PATCH("/reviews/:id", adminHandler.ApproveReview)
				authorized.DELETE("/reviews/:id", adminHandler.DeleteReview)

				// 文件上传
				authorized.POST("/upload", adminHandler.UploadFile)

				// 订单管理
				authorized.GET("/orders", adminHandler.GetAdminOrders)
				authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
				authorized.PATCH("/orders/:id", adminHandler.UpdateOrderStatus)

				// 用户管理
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.GET("/user-login-logs", adminHandler.GetUserLoginLogs)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !isAdminManagedPath(method, item.Path) {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}

func isAdminManagedPath(method, path string) bool {
	if strings.HasPrefix(path, "/api/v1/admin/") {
		return true
	}
	return method != "GET" && strings.HasPrefix(path, "/api/v1/settings/")
}
