package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard/configs"
	"taskboard/internal/application/middleware"
	"taskboard/internal/application/report"
	"taskboard/internal/application/schedule"
	"taskboard/internal/application/server"
	"taskboard/internal/domain/gateway/cache"
	"taskboard/internal/domain/gateway/db"
	"taskboard/internal/domain/gateway/queue"
	"taskboard/internal/domain/usecase/health"
	"taskboard/internal/domain/usecase/task"
	"taskboard/internal/infra/aws"
	gormdb "taskboard/internal/infra/database/gorm"
	"taskboard/pkg/log"
	"taskboard/pkg/msg"
	"taskboard/pkg/redis"
	"taskboard/pkg/resource"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	cachePingTimeout       = 2 * time.Second
)

func main() {
	// Init config
	env, err := configs.LoadEnv()
	if err != nil {
		log.Fatal(err.Error())
	}
	loadProperties()
	log.Init(log.Options{Name: env.ApplicationName, Level: resource.GetString("app.log.level")})
	defer func() { _ = log.Sync() }()

	log.Info(msg.GetMessage("app.start", env.ApplicationName))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init infra
	database := openDatabase(env.DatabaseURL)
	defer func() { _ = gormdb.Close(database) }()

	listCache, closeCache := newTaskListCache()
	defer closeCache()

	events := newTaskEventGateway(ctx)

	// Init UseCase
	taskUseCase := task.NewTaskUseCase(db.NewGormTaskGateway(database), listCache, events)
	healthUseCase := health.NewHealthUseCase(db.NewGormHealthDBGateway(database), listCache)

	// Init Server
	var rateLimit *middleware.RateLimitConfig
	if resource.GetBool("app.server.rate-limit.enabled") {
		rateLimit = &middleware.RateLimitConfig{
			RequestsPerSecond: resource.GetFloat64("app.server.rate-limit.requests-per-second"),
			Burst:             resource.GetInt("app.server.rate-limit.burst"),
			ExpiresIn:         resource.GetDuration("app.server.rate-limit.expires-in"),
		}
	}

	e, err := server.New(server.Options{
		ContextPath:   resource.GetString("app.server.context-path"),
		RateLimit:     rateLimit,
		TaskUseCase:   taskUseCase,
		HealthUseCase: healthUseCase,
		Exporter:      report.NewExporter(),
	})
	if err != nil {
		log.Fatal(msg.GetMessage("app.error.internal"), zap.Error(err))
	}

	// Init Schedule
	if resource.GetBool("app.tasks.overdue.enabled") {
		overdueScheduler := schedule.NewOverdueScheduler(taskUseCase, resource.GetString("app.tasks.overdue.cron"))
		if err := overdueScheduler.InitOverdueScheduleTasks(); err != nil {
			log.Fatal(msg.GetMessage("task.overdue.failed"), zap.Error(err))
		}
		defer overdueScheduler.Stop()
	} else {
		log.Info(msg.GetMessage("task.overdue.disabled"))
	}

	// Start Routes
	go func() {
		log.Info(msg.GetMessage("app.started", env.ApplicationName, env.Addr()))
		if err := e.Start(env.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(msg.GetMessage("app.error.internal"), zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stopping", env.ApplicationName))

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		resource.GetDurationOrDefault("app.server.shutdown-timeout", defaultShutdownTimeout))
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error(msg.GetMessage("app.error.internal"), zap.Error(err))
	}

	log.Info(msg.GetMessage("app.stopped", env.ApplicationName))
}

// loadProperties reads PROPERTIES_FILE_PATH when set, the embedded defaults otherwise.
func loadProperties() {
	if path := os.Getenv("PROPERTIES_FILE_PATH"); path != "" {
		if err := resource.Init(path); err != nil {
			log.Fatal(err.Error())
		}
		log.Info(msg.GetMessage("config.loaded", path))
		return
	}
	if err := resource.Load(bytes.NewReader(configs.Application)); err != nil {
		log.Fatal(err.Error())
	}
}

func openDatabase(url string) *gorm.DB {
	database, err := gormdb.Open(gormdb.Config{
		URL:             url,
		MaxOpenConns:    resource.GetInt("app.db.max-open-conns"),
		MaxIdleConns:    resource.GetInt("app.db.max-idle-conns"),
		ConnMaxLifetime: resource.GetDuration("app.db.conn-max-lifetime"),
		SlowThreshold:   resource.GetDuration("app.db.slow-threshold"),
	})
	if err != nil {
		log.Fatal(msg.GetMessage("db.error.connect"), zap.Error(err))
	}

	if err := gormdb.Migrate(database); err != nil {
		log.Fatal(msg.GetMessage("db.error.migrate"), zap.Error(err))
	}
	return database
}

func newTaskListCache() (cache.TaskListCache, func()) {
	if !resource.GetBool("app.redis.enabled") {
		log.Info(msg.GetMessage("cache.disabled"))
		return cache.NoopTaskListCache{}, func() {}
	}

	config := redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database"))

	client, err := redis.NewClient(config)
	if err != nil {
		log.Fatal(err.Error())
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), cachePingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		log.Warn(msg.GetMessage("cache.unreachable", config.Addr()), zap.Error(err))
	} else {
		log.Info(msg.GetMessage("cache.connected", config.Addr()))
	}

	ttl := resource.GetDuration("app.redis.task-list-ttl")
	return cache.NewRedisTaskListCache(client, ttl), func() { _ = client.Close() }
}

func newTaskEventGateway(ctx context.Context) queue.TaskEventGateway {
	if !resource.GetBool("app.events.enabled") {
		log.Info(msg.GetMessage("events.disabled"))
		return queue.NoopTaskEventGateway{}
	}

	awsConfig := aws.Config{
		Region:          resource.GetString("app.cloud.aws-region"),
		Endpoint:        resource.GetString("app.cloud.aws-endpoint"),
		AccessKeyID:     resource.GetString("app.cloud.aws-access-key-id"),
		SecretAccessKey: resource.GetString("app.cloud.aws-secret-access-key"),
	}
	cfg, err := aws.LoadConfig(ctx, awsConfig)
	if err != nil {
		log.Fatal(err.Error())
	}

	queueName := resource.GetString("app.events.queue")
	log.Info(msg.GetMessage("events.enabled", queueName))
	return queue.NewSenderTaskEventGateway(aws.NewSQSSenderAdapter(aws.NewSqsClient(cfg, awsConfig)), queueName)
}
