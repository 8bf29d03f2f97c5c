package main

import (
	"time"

	"store-service/internal/config"
	httpctl "store-service/internal/controllers/http"
	"store-service/internal/infra/filestore"
	mmysql "store-service/internal/infra/mysql"
	"store-service/internal/infra/rabbitmq"
	mysqlrepo "store-service/internal/repository/mysql"
	"store-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg := config.Load()

	db, err := mmysql.New(cfg)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	userRepo := mysqlrepo.NewUserRepository(db)
	customerRepo := mysqlrepo.NewCustomerRepository(db)
	categoryRepo := mysqlrepo.NewCategoryRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)
	fileRepo := mysqlrepo.NewProductFileRepository(db)
	orderRepo := mysqlrepo.NewOrderRepository(db)

	blobs, err := filestore.New(cfg.FileStoreDir)
	if err != nil {
		log.Fatalf("filestore: %v", err)
	}

	var publisher rabbitmq.PublisherInterface
	if cfg.RabbitMQURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, "store.events")
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	userSvc := services.NewUserService(userRepo, publisher, log)
	customerSvc := services.NewCustomerService(customerRepo)
	catalogSvc := services.NewCatalogService(categoryRepo, productRepo, fileRepo, blobs, log)
	entitlementSvc := services.NewEntitlementService(productRepo, customerRepo, orderRepo)
	orderSvc := services.NewOrderService(orderRepo, customerRepo, publisher, log)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		DB:           0,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	catalogSvc.SetRedisClient(redisClient)

	handler := httpctl.NewHandler(userSvc, customerSvc, catalogSvc, entitlementSvc, orderSvc, cfg.AuthSecret)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	log.Infof("starting store service on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
