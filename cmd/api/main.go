package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/manim-render-service/config"
	httpapi "github.com/GoSim-25-26J-441/manim-render-service/internal/api/http"
	"github.com/GoSim-25-26J-441/manim-render-service/internal/bootstrap"
	"github.com/GoSim-25-26J-441/manim-render-service/internal/render/engine"
	"github.com/GoSim-25-26J-441/manim-render-service/internal/render/service"
	"github.com/GoSim-25-26J-441/manim-render-service/internal/render/stats"
	"github.com/GoSim-25-26J-441/manim-render-service/internal/render/workspace"
)

const serviceName = "manim-render-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	host := flag.String("host", cfg.Server.Host, "bind host")
	port := flag.String("port", cfg.Server.Port, "bind port")
	flag.Parse()
	cfg.Server.Host, cfg.Server.Port = *host, *port
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)
	service.SetLogLevel(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		recorder   stats.Recorder = stats.NewMemoryRecorder()
		statsStore httpapi.Pinger
	)
	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
		redisRecorder := stats.NewRedisRecorder(rdb)
		recorder, statsStore = redisRecorder, redisRecorder
		log.Printf("[info] render stats stored in redis at %s", cfg.Redis.Addr)
	}

	runner := engine.NewExecRunner(cfg.Render.Binary)
	if !runner.Available() {
		log.Printf("[warn] render engine %q not found on PATH; renders will fail until it is installed", cfg.Render.Binary)
	}

	renderService := service.NewRenderService(runner, recorder, service.Options{
		TempRoot:      cfg.Render.TempDir,
		FlushDelay:    cfg.Render.FlushDelay,
		Timeout:       cfg.Render.Timeout,
		MaxConcurrent: cfg.Render.MaxConcurrent,
	})

	sweeper := workspace.NewSweeper(cfg.Render.TempDir, cfg.Sweeper.MaxAge, renderService.Workspaces())
	if err := sweeper.Start(cfg.Sweeper.Schedule); err != nil {
		log.Fatalf("sweeper: %v", err)
	}
	defer sweeper.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimit:      cfg.Render.RateLimit,
		RateBurst:      cfg.Render.RateBurst,
		RenderService:  renderService,
		Engine:         runner,
		StatsStore:     statsStore,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	grace := cfg.Render.ShutdownGrace()
	log.Printf("[info] waiting up to %s for %d in-flight render(s)", grace, renderService.Workspaces().Len())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[warn] shutdown: %v; %d workspace(s) left for the sweeper", err, renderService.Workspaces().Len())
	}
}
