package provider

import (
	"github.com/Selinclb/eticaretsitesi/internal/authz"
	"github.com/Selinclb/eticaretsitesi/internal/cache"
	"github.com/Selinclb/eticaretsitesi/internal/config"
	"github.com/Selinclb/eticaretsitesi/internal/logger"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/queue"
	"github.com/Selinclb/eticaretsitesi/internal/repository"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo          repository.AdminRepository
	UserRepo           repository.UserRepository
	AuthTokenRepo      repository.AuthTokenRepository
	RevokedTokenRepo   repository.RevokedTokenRepository
	CategoryRepo       repository.CategoryRepository
	SubCategoryRepo    repository.SubCategoryRepository
	ProductRepo        repository.ProductRepository
	ProductImageRepo   repository.ProductImageRepository
	ProductVariantRepo repository.ProductVariantRepository
	ReviewRepo         repository.ReviewRepository
	SliderRepo         repository.SliderRepository
	OrderRepo          repository.OrderRepository
	SettingRepo        repository.SettingRepository
	UserLoginLogRepo   repository.UserLoginLogRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	EmailService        *service.EmailService
	TokenService        *service.TokenService
	SessionService      *service.SessionService
	UserAuthService     *service.UserAuthService
	UserLoginLogService *service.UserLoginLogService
	CaptchaService      *service.CaptchaService
	UploadService       *service.UploadService
	CategoryService     *service.CategoryService
	ProductService      *service.ProductService
	ReviewService       *service.ReviewService
	SliderService       *service.SliderService
	OrderService        *service.OrderService
	SettingService      *service.SettingService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	return Build(cfg, models.DB, queueClient, authzService)
}

// Build 基于给定数据库与队列客户端组装容器
func Build(cfg *config.Config, db *gorm.DB, queueClient *queue.Client, authzService *authz.Service) *Container {
	c := &Container{
		Config:       cfg,
		QueueClient:  queueClient,
		AuthzService: authzService,
	}
	c.initRepositories(db)
	c.initServices()
	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.AuthTokenRepo = repository.NewAuthTokenRepository(db)
	c.RevokedTokenRepo = repository.NewRevokedTokenRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.SubCategoryRepo = repository.NewSubCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ProductImageRepo = repository.NewProductImageRepository(db)
	c.ProductVariantRepo = repository.NewProductVariantRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.SliderRepo = repository.NewSliderRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email, c.Config.AuthToken)
	c.TokenService = service.NewTokenService(c.Config.AuthToken, c.AuthTokenRepo, c.EmailService)
	c.SessionService = service.NewSessionService(c.Config.UserJWT, c.UserRepo, c.RevokedTokenRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.TokenService, c.SessionService)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(c.Config.Upload)
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.SubCategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.ProductImageRepo, c.ProductVariantRepo, c.ReviewRepo, c.CategoryService)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.OrderRepo, c.ProductService)
	c.SliderService = service.NewSliderService(c.SliderRepo)

	var notifier service.OrderStatusNotifier
	if c.QueueClient != nil {
		notifier = c.QueueClient
	}
	c.OrderService = service.NewOrderService(c.Config.Order, c.OrderRepo, c.ProductRepo, notifier)
}
