package app

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/caiobtc/velocompra-backend/configs"
	"github.com/caiobtc/velocompra-backend/internal/adapter/cache"
	"github.com/caiobtc/velocompra-backend/internal/adapter/http"
	"github.com/caiobtc/velocompra-backend/internal/adapter/http/middleware"
	"github.com/caiobtc/velocompra-backend/internal/adapter/kafka"
	"github.com/caiobtc/velocompra-backend/internal/adapter/queue"
	"github.com/caiobtc/velocompra-backend/internal/adapter/repo"
	"github.com/caiobtc/velocompra-backend/internal/adapter/viacep"
	"github.com/caiobtc/velocompra-backend/internal/logging"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.Init(cfg.App.Name, cfg.App.LogFile, cfg.App.LogLevel)

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ReadTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	log.Info("velocompra-api: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// init rabbitmq
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}

	// infra
	orderRepo := repo.NewMySQLOrderRepo(db)
	customerRepo := repo.NewMySQLCustomerRepo(db)
	productRepo := repo.NewMySQLProductRepo(db)
	userRepo := repo.NewMySQLUserRepo(db)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	cepCache := cache.NewRedisCEPCache(rdb, cfg.ViaCEP.CacheTTL)
	cepLookup := viacep.NewCached(viacep.NewClient(cfg.ViaCEP.BaseURL, cfg.ViaCEP.Timeout), cepCache)
	producer, err := queue.NewRabbitProducer(ch, cfg.Rabbit.Exchange)
	if err != nil {
		return nil, nil, err
	}

	// services
	orderSvc := usecase.NewOrderService(orderRepo, customerRepo, productRepo, idem, producer)
	customerSvc := usecase.NewCustomerService(customerRepo, cepLookup)
	productSvc := usecase.NewProductService(productRepo)
	userSvc := usecase.NewUserService(userRepo)
	authSvc := usecase.NewAuthService(userRepo, customerRepo)

	// register kafka-listener for payment outcomes
	if err := setupKafkaListener(cfg, orderSvc, log); err != nil {
		return nil, nil, err
	}

	// handlers + router + middleware
	h := http.Handlers{
		Login:     http.NewLoginHandler(cfg, authSvc),
		Orders:    http.NewOrderHandler(orderSvc),
		AdminOrd:  http.NewOrderAdminHandler(orderSvc),
		Customers: http.NewCustomerHandler(customerSvc),
		Products:  http.NewProductHandler(productSvc),
		Users:     http.NewUserAdminHandler(userSvc),
		CEP:       http.NewCEPHandler(cepLookup),
	}
	router := http.NewRouter(h, middleware.NewAuthz(cfg), log)

	cleanup := func() {
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func setupKafkaListener(cfg configs.Config, orders *usecase.OrderService, log *slog.Logger) error {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return err
	}

	h := kafka.NewPaymentStatusHandler(orders, log)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.PaymentTopic}, h.Handle, log)

	go func() {
		if err := consumer.Start(context.Background()); err != nil {
			log.Error("kafka consumer stopped", "err", err)
		}
	}()
	return nil
}
