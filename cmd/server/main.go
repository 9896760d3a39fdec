package main

import (
	"context"
	"log"
	"os"
	"time"

	"watchstore/internal/controllers/http"
	"watchstore/internal/infra/mailer"
	mmysql "watchstore/internal/infra/mysql"
	"watchstore/internal/infra/rabbitmq"
	mysqlrepo "watchstore/internal/repository/mysql"
	"watchstore/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1000)
	sqlDB.SetMaxIdleConns(200)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	repos := mysqlrepo.NewRepositories(db)
	uow := mysqlrepo.NewUnitOfWork(db)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "order.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	notifier := mailer.NewSMTPMailer(
		os.Getenv("SMTP_HOST"),
		os.Getenv("SMTP_PORT"),
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASSWORD"),
		os.Getenv("SMTP_FROM"),
	)

	orderService := services.NewOrderService(uow, repos.Orders, notifier, publisher)
	userService := services.NewUserService(repos.Users, notifier)
	productService := services.NewProductService(repos.Products, repos.Categories)
	categoryService := services.NewCategoryService(repos.Categories)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     200,
		MinIdleConns: 20,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	productService.SetRedisClient(redisClient)

	ctx := context.Background()
	go func() {
		time.Sleep(5 * time.Second)
		products, err := productService.ListProducts(ctx)
		if err != nil {
			log.Printf("Failed to list products for cache warmup: %v", err)
			return
		}
		ids := make([]uint64, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		if err := productService.WarmupCache(ctx, ids); err != nil {
			log.Printf("Failed to warm up cache: %v", err)
		} else {
			log.Println("Cache warmed up successfully")
		}
	}()

	handler := http.NewHandler(orderService, userService, productService, categoryService, redisClient)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting watch store backend on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
