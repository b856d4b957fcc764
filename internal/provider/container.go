package provider

import (
	"github.com/kasuwa-shop/internal/authz"
	"github.com/kasuwa-shop/internal/cache"
	"github.com/kasuwa-shop/internal/config"
	"github.com/kasuwa-shop/internal/logger"
	"github.com/kasuwa-shop/internal/models"
	"github.com/kasuwa-shop/internal/queue"
	"github.com/kasuwa-shop/internal/repository"
	"github.com/kasuwa-shop/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo           repository.UserRepository
	AddressRepo        repository.AddressRepository
	CategoryRepo       repository.CategoryRepository
	ProductRepo        repository.ProductRepository
	ProductVariantRepo repository.ProductVariantRepository
	ProductImageRepo   repository.ProductImageRepository
	OrderRepo          repository.OrderRepository

	// Services
	AuthzService          *authz.Service
	UserAuthService       *service.UserAuthService
	UserAdminService      *service.UserAdminService
	AddressService        *service.AddressService
	CategoryService       *service.CategoryService
	ProductService        *service.ProductService
	ProductVariantService *service.ProductVariantService
	ProductImageService   *service.ProductImageService
	OrderNumberAllocator  *service.OrderNumberAllocator
	OrderService          *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ProductVariantRepo = repository.NewProductVariantRepository(db)
	c.ProductImageRepo = repository.NewProductImageRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo, c.OrderRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ProductRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.OrderRepo, c.Config.Catalog.ProductCacheTTLSeconds)
	c.ProductVariantService = service.NewProductVariantService(c.ProductVariantRepo, c.ProductRepo, c.OrderRepo)
	c.ProductImageService = service.NewProductImageService(c.ProductImageRepo, c.ProductRepo)
	c.OrderNumberAllocator = service.NewOrderNumberAllocator(c.OrderRepo, c.Config.Order.NumberMaxAttempts)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.AddressRepo,
		c.ProductRepo,
		c.ProductVariantRepo,
		c.OrderNumberAllocator,
		c.QueueClient,
		c.Config.Order.PaymentExpireMinutes,
	)
}
