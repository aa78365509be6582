package main

import (
	"context"
	"errors"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	notifhttp "github.com/soclink/notify/internal/api/handlers/notification"
	prefhttp "github.com/soclink/notify/internal/api/handlers/preference"
	"github.com/soclink/notify/internal/api/handlers/stream"
	"github.com/soclink/notify/internal/api/router"
	"github.com/soclink/notify/internal/api/server"
	"github.com/soclink/notify/internal/channel"
	emailch "github.com/soclink/notify/internal/channel/email"
	"github.com/soclink/notify/internal/channel/inapp"
	pushch "github.com/soclink/notify/internal/channel/push"
	"github.com/soclink/notify/internal/config"
	"github.com/soclink/notify/internal/model"
	"github.com/soclink/notify/internal/preference"
	deliverymsg "github.com/soclink/notify/internal/rabbitmq/handlers/delivery"
	"github.com/soclink/notify/internal/rabbitmq/queue"
	"github.com/soclink/notify/internal/realtime"
	deliveryrepo "github.com/soclink/notify/internal/repository/delivery"
	notifrepo "github.com/soclink/notify/internal/repository/notification"
	prefrepo "github.com/soclink/notify/internal/repository/preference"
	notifsvc "github.com/soclink/notify/internal/service/notification"
	"github.com/soclink/notify/internal/worker"
	"github.com/soclink/notify/pkg/directory"
	"github.com/soclink/notify/pkg/email"
	"github.com/soclink/notify/pkg/push"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
	}

	q, err := queue.NewDeliveryQueue(ch, cfg)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to declare delivery queue")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	notifications := notifrepo.NewRepository(db)
	deliveries := deliveryrepo.NewRepository(db)
	preferences := prefrepo.NewRepository(db)

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse redis database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	resolver := preference.NewResolver(preferences, rdb.Client, cfg.Preferences.CacheTTL)

	smtpPort, err := strconv.Atoi(cfg.Email.SMTPPort)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse email smtp port")
	}

	emailClient := email.NewClient(
		cfg.Email.SMTPHost,
		smtpPort,
		cfg.Email.Username,
		cfg.Email.Password,
		cfg.Email.From,
	)
	pushClient := push.NewClient(cfg.Push.GatewayURL, cfg.Push.APIKey, cfg.Push.Timeout)
	dirClient := directory.NewClient(cfg.Directory.BaseURL, cfg.Directory.Timeout)

	hub := realtime.NewHub()
	go hub.Heartbeat(ctx, 30*time.Second)

	senders := map[model.Channel]channel.Sender{
		model.ChannelInApp: inapp.NewSender(hub),
		model.ChannelEmail: emailch.NewSender(emailClient),
		model.ChannelPush:  pushch.NewSender(pushClient),
	}

	service := notifsvc.NewService(
		notifications,
		deliveries,
		q,
		rdb,
		resolver,
		dirClient,
		hub,
		cfg.Retry,
		cfg.Fanout.Workers,
	)

	jobHandler := deliverymsg.NewHandler(service, deliveries, senders, cfg.Retry, cfg.Delivery.MaxDelay)
	dispatcher := worker.NewDispatcher(q, jobHandler, service)

	go dispatcher.Run(ctx, cfg.Retry, cfg.Workers.Count)

	apiHandler := notifhttp.NewHandler(service, val)
	prefHandler := prefhttp.NewHandler(preferences, resolver, val)
	wsHandler := stream.NewHandler(hub)

	r := router.New(apiHandler, prefHandler, wsHandler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Printf("failed to close master DB: %v", err)
	}

	for i, slave := range db.Slaves {
		if err := slave.Close(); err != nil {
			zlog.Logger.Printf("failed to close slave DB %d: %v", i, err)
		}
	}

	if err := ch.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}
}
