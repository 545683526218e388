package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/maze-runner/api"
	api_i "github.com/beka-birhanu/maze-runner/api/i"
	"github.com/beka-birhanu/maze-runner/api/identity"
	levelsapi "github.com/beka-birhanu/maze-runner/api/levels"
	playapi "github.com/beka-birhanu/maze-runner/api/play"
	"github.com/beka-birhanu/maze-runner/config"
	"github.com/beka-birhanu/maze-runner/infrastruture/sessionstore"
	"github.com/beka-birhanu/maze-runner/infrastruture/token"
	"github.com/beka-birhanu/maze-runner/level"
	"github.com/beka-birhanu/maze-runner/logger"
	"github.com/beka-birhanu/maze-runner/service"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Global variables for dependencies
var (
	redisClient      *redis.Client
	sessionStore     i.SessionStore
	levelService     i.LevelProvider
	playService      i.PlayManager
	jwtTokenizer     i.Tokenizer
	levelsController api_i.Controller
	playController   api_i.Controller
	router           *api.Router
	appLogger        *logger.Logger
)

func newLogger(prefix, color string) *logger.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		os.Exit(1)
	}
	return l
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initSessionStore(ctx context.Context) {
	storeLogger := newLogger("STORE", logger.ColorCyan)

	switch config.Envs.SessionStore {
	case "redis":
		initRedis(ctx)
		var err error
		sessionStore, err = sessionstore.NewRedisSessionStore(redisClient, config.Envs.SessionTTLSeconds)
		if err != nil {
			storeLogger.Error(fmt.Sprintf("Creating redis session store: %v", err))
			os.Exit(1)
		}
	case "memory", "":
		sessionStore = sessionstore.NewMemorySessionStore(config.Envs.SessionTTLSeconds)
	default:
		storeLogger.Error(fmt.Sprintf("Unknown session store %q", config.Envs.SessionStore))
		os.Exit(1)
	}

	storeLogger.Info(fmt.Sprintf("Session store initialized (%s)", config.Envs.SessionStore))
}

func initLevelService() {
	d, err := level.ParseDifficulty(config.Envs.DefaultDifficulty)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Reading default difficulty: %v", err))
		os.Exit(1)
	}

	levelService, err = service.NewLevelService(newLogger("CATALOG", logger.ColorMagenta), d)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating level service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Level service initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initPlayService() {
	var err error
	playService, err = service.NewPlayService(&service.Config{
		Store:     sessionStore,
		Tokenizer: jwtTokenizer,
		Logger:    newLogger("PLAY", logger.ColorBlue),
		TokenTTL:  time.Duration(config.Envs.SessionTTLSeconds) * time.Second,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating play service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Play service initialized")
}

func initControllers() {
	levelsController = levelsapi.NewLevelsController(levelService)
	playController = playapi.NewPlayController(playService)
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{levelsController, playController},
		AuthorizationMiddleware: identity.Authorize(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	appLogger, _ = logger.New("APP", logger.ColorGreen, os.Stdout)
	gin.SetMode(config.Envs.GinMode)

	initSessionStore(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	initLevelService()
	initJWTTokenizer()
	initPlayService()
	initControllers()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
