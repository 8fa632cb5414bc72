package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"weather-api/internal/application/controller"
	"weather-api/internal/application/middleware"
	"weather-api/internal/application/processor"
	"weather-api/internal/application/schedule"
	"weather-api/internal/domain/gateway/api"
	"weather-api/internal/domain/gateway/cache"
	"weather-api/internal/domain/gateway/db"
	"weather-api/internal/domain/gateway/queue"
	"weather-api/internal/domain/usecase/auth"
	"weather-api/internal/domain/usecase/health"
	"weather-api/internal/domain/usecase/user"
	"weather-api/internal/domain/usecase/weather"
	"weather-api/internal/infra/aws"
	"weather-api/internal/infra/database/gorm"
	"weather-api/pkg/http"
	"weather-api/pkg/log"
	"weather-api/pkg/msg"
	"weather-api/pkg/redis"
	"weather-api/pkg/resource"
	"weather-api/pkg/sqs"
)

func main() {
	log.Info(msg.GetMessage("app.start"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init infra
	e := echo.New()
	e.HideBanner = true
	middleware.SetupRequestLogger(e)
	apiGroup := e.Group(resource.GetString("app.server.context-path"))

	redisClient := redis.NewClient(redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database")).
		WithCacheTTL("weather", resource.GetDuration("app.weather.cache-ttl")).
		WithCacheTTL("session", resource.GetDuration("app.auth.session-ttl")))
	defer redisClient.Close()

	sqsClient := aws.NewSqsClient()
	refreshQueue := resource.GetString("app.weather.refresh.queue-name")

	// Init Gateways
	weatherGateway := api.NewWeatherGateway(
		resource.GetString("app.weather.provider.base-url"),
		resource.GetString("app.weather.provider.api-key"),
		http.ClientOptions{
			ConnectionTimeout: resource.GetDuration("app.weather.provider.connection-timeout"),
			ReadTimeout:       resource.GetDuration("app.weather.provider.read-timeout"),
		},
	)
	weatherCache := cache.NewLayeredWeatherCache(
		cache.NewRedisWeatherCache(redisClient),
		cache.NewMemoryWeatherCache(),
	)
	userGateway := db.NewGormUserGateway(gorm.Db)
	weatherQueryGateway := db.NewGormWeatherQueryGateway(gorm.Db)
	queueSender := aws.NewSQSSenderAdapter(sqsClient)

	// Init UseCases
	healthUseCase := health.NewHealthUseCase(
		db.NewGormHealthDBGateway(gorm.Db),
		cache.NewRedisHealthGateway(redisClient),
		queue.NewSQSHealthGateway(sqsClient, refreshQueue),
	)
	authUseCase := auth.NewAuthUseCase(
		resource.GetDuration("app.auth.session-ttl"),
		userGateway,
		redis.NewCache(redisClient, redis.NewCacheOptions().WithCacheName("session")),
		redis.NewRateLimiter(redisClient, redis.NewRateLimiterOptions().
			WithLimit(resource.GetInt("app.auth.login.limit")).
			WithWindow(resource.GetDuration("app.auth.login.window")).
			WithNamespace("login")),
	)
	userUseCase := user.NewUserUseCase(userGateway)
	weatherUseCase := weather.NewWeatherUseCase(
		refreshQueue,
		resource.GetDuration("app.weather.cache-ttl"),
		weatherCache,
		weatherGateway,
		weatherQueryGateway,
		queueSender,
	)

	// Init Controllers and Routes
	secured := apiGroup.Group("", middleware.Authenticate(authUseCase))

	controller.NewHealthController(apiGroup, healthUseCase).InitHealthRoutes()
	controller.NewAuthController(apiGroup, authUseCase).InitAuthRoutes()
	controller.NewUserController(secured, userUseCase).InitUserRoutes()
	controller.NewWeatherController(secured, weatherUseCase,
		resource.GetDuration("app.weather.request-timeout")).InitWeatherRoutes()

	// Init queue worker
	refreshWorker, err := sqs.NewWorker(ctx, sqsClient, refreshQueue,
		processor.NewRefreshProcessor(weatherUseCase), &sqs.WorkerConfig{
			MaxNumberOfMessages: int32(resource.GetInt("app.weather.refresh.max-messages")),
			WaitTimeSeconds:     int32(resource.GetInt("app.weather.refresh.wait-seconds")),
			PoolSize:            resource.GetInt("app.weather.refresh.pool-size"),
		})
	if err != nil {
		log.Fatalf("Failed to initialize refresh worker: %v", err)
	}
	go refreshWorker.Start(ctx)

	// Init Schedule
	historyScheduler := schedule.NewHistoryScheduler(weatherUseCase, redisClient, &schedule.HistorySchedulerConfig{
		CronExpression: resource.GetString("app.weather.history.prune-cron"),
		Retention:      time.Duration(resource.GetInt("app.weather.history.retention-days")) * 24 * time.Hour,
	})
	historyScheduler.InitHistoryScheduleTasks(ctx)
	defer historyScheduler.Stop()

	// Start server
	log.Info(msg.GetMessage("app.started"))
	e.Logger.Fatal(e.Start(":" + resource.GetString("app.server.port")))
}
