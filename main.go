package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-maze-race/api"
	api_i "github.com/beka-birhanu/vinom-maze-race/api/i"
	raceapi "github.com/beka-birhanu/vinom-maze-race/api/race"
	"github.com/beka-birhanu/vinom-maze-race/config"
	"github.com/beka-birhanu/vinom-maze-race/infrastruture/leaderboard"
	logger "github.com/beka-birhanu/vinom-maze-race/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze-race/race"
	"github.com/beka-birhanu/vinom-maze-race/service"
	"github.com/beka-birhanu/vinom-maze-race/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Global variables for dependencies
var (
	redisClient        *redis.Client
	raceLeaderboard    i.Leaderboard
	raceConfig         *race.Config
	raceSessionManager *service.RaceSessionManager
	raceController     api_i.Controller
	router             *api.Router
	appLogger          i.Logger
)

func initRedis(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		appLogger.Warning("REDIS_ADDR not set, leaderboard disabled")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis", "addr", config.Envs.RedisAddr)
}

func initLeaderboard() {
	if redisClient == nil {
		return
	}

	leaderboardLogger, err := logger.New("LEADERBOARD", config.ColorMagenta, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard logger: %v", err))
		os.Exit(1)
	}

	lb, err := leaderboard.NewRedisLeaderboard(redisClient, config.Envs.LeaderboardKey, leaderboardLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		os.Exit(1)
	}
	raceLeaderboard = lb
	appLogger.Info("Leaderboard initialized", "key", config.Envs.LeaderboardKey)
}

func initRaceConfig() {
	raceConfig = &race.Config{
		Cols:       config.Envs.Cols(),
		Rows:       config.Envs.Rows(),
		EntryRow:   config.Envs.EntryRow,
		EntrySides: config.Envs.EntrySides,
		MoveDelay:  config.Envs.MoveDelay,
		TimeLimit:  config.Envs.TimeLimit,
	}

	// A throwaway race catches bad dimensions or entry rows before serving.
	if _, err := race.New(*raceConfig, time.Now()); err != nil {
		appLogger.Error(fmt.Sprintf("Invalid race configuration: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Race configuration loaded",
		"cols", raceConfig.Cols, "rows", raceConfig.Rows,
		"move_delay", raceConfig.MoveDelay, "time_limit", raceConfig.TimeLimit)
}

func initSessionManager() {
	sessionLogger, err := logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager logger: %v", err))
		os.Exit(1)
	}

	raceSessionManager, err = service.NewRaceSessionManager(&service.Config{
		RaceConfig:   raceConfig,
		FixedSeed:    config.Envs.MazeSeed,
		TickInterval: config.Envs.TickInterval(),
		SessionTTL:   config.Envs.SessionTTL,
		Leaderboard:  raceLeaderboard,
		Logger:       sessionLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating race session manager: %v", err))
		os.Exit(1)
	}

	appLogger.Info("Session manager initialized")
}

func initRaceController() {
	var err error
	raceController, err = raceapi.NewRaceController(raceSessionManager)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating race controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Race controller initialized")
}

func initRouter() {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:     "/api",
		Controllers: []api_i.Controller{raceController},
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize dependencies
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Creating app logger: %v", err)
	}

	initRedis(ctx)
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	initLeaderboard()
	initRaceConfig()
	initSessionManager()
	defer raceSessionManager.StopAll()
	initRaceController()
	initRouter()

	// Run HTTP server
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- router.Run()
	}()

	signals, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
	case <-signals.Done():
		appLogger.Info("Shutting down")
	}
}
