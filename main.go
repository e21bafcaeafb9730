package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/mindful-maze/api"
	crisisapi "github.com/beka-birhanu/mindful-maze/api/crisis"
	gameapi "github.com/beka-birhanu/mindful-maze/api/game"
	api_i "github.com/beka-birhanu/mindful-maze/api/i"
	"github.com/beka-birhanu/mindful-maze/api/identity"
	"github.com/beka-birhanu/mindful-maze/config"
	"github.com/beka-birhanu/mindful-maze/crisis"
	"github.com/beka-birhanu/mindful-maze/infrastruture/leaderboard"
	logger "github.com/beka-birhanu/mindful-maze/infrastruture/log"
	"github.com/beka-birhanu/mindful-maze/infrastruture/repo"
	"github.com/beka-birhanu/mindful-maze/infrastruture/sessionstore"
	"github.com/beka-birhanu/mindful-maze/infrastruture/token"
	"github.com/beka-birhanu/mindful-maze/maze"
	"github.com/beka-birhanu/mindful-maze/service"
	"github.com/beka-birhanu/mindful-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	playerRepo         *repo.PlayerRepo
	levelHistory       i.LevelHistory
	alertRepo          i.AlertRepo
	sessionStore       i.SessionStore
	scoreBoard         i.Leaderboard
	gameSessionManager i.GameSessionManager
	mazeController     api_i.Controller
	crisisResponder    i.CrisisResponder
	crisisController   api_i.Controller
	jwtTokenizer       i.Tokenizer
	authService        i.Authenticator
	authController     api_i.Controller
	router             *api.Router
	appLogger          *logger.Logger
)

func newLogger(prefix, colour string) *logger.Logger {
	l, err := logger.New(prefix, colour, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRepos(ctx context.Context) {
	playerRepo = repo.NewPlayerRepo(mongoClient, config.Envs.DBName, "players")
	if err := playerRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating player indexes: %v", err))
		os.Exit(1)
	}
	levelHistory = repo.NewLevelHistoryRepo(mongoClient, config.Envs.DBName, "levels")
	alertRepo = repo.NewAlertRepo(mongoClient, config.Envs.DBName, "alerts")
	appLogger.Info("Repositories initialized")
}

// initSessionStorage picks Redis when REDIS_ADDR is set and memory otherwise.
func initSessionStorage(ctx context.Context) {
	ttl := time.Duration(config.Envs.SessionTTLMinutes) * time.Minute

	if config.Envs.RedisAddr == "" {
		sessionStore = sessionstore.NewMemoryStore(ttl)
		scoreBoard = leaderboard.NewMemoryLeaderboard()
		appLogger.Warning("REDIS_ADDR not set, keeping sessions and leaderboard in memory")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}

	sessionStore = sessionstore.NewRedisStore(redisClient, ttl)
	scoreBoard = leaderboard.NewRedisLeaderboard(redisClient, leaderboard.DefaultKey, 0)
	appLogger.Info("Connected to Redis")
}

func initSessionManager() {
	gen, err := maze.NewGenerator(config.Envs.MazeSize, nil)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze generator: %v", err))
		os.Exit(1)
	}

	gameSessionManager, err = service.NewGameSessionManager(&service.Config{
		Store:       sessionStore,
		Leaderboard: scoreBoard,
		History:     levelHistory,
		Players:     playerRepo,
		Generator:   gen,
		Logger:      newLogger("SESSION-MANAGER", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}

	appLogger.Info("Session manager initialized")
}

func initMazeController() {
	var err error
	mazeController, err = gameapi.NewMazeController(gameSessionManager)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initCrisis() {
	var err error
	crisisResponder, err = service.NewCrisisService(crisis.NewDetector(), alertRepo, newLogger("CRISIS", config.ColorRed))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating crisis service: %v", err))
		os.Exit(1)
	}

	crisisController, err = crisisapi.NewCrisisController(crisisResponder)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating crisis controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Crisis service initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(playerRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController, crisisController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)
	defer func() { _ = appLogger.Sync() }()
	if err := logger.SetLevel(config.Envs.LogLevel); err != nil {
		appLogger.Warning(fmt.Sprintf("Ignoring LOG_LEVEL %q: %v", config.Envs.LogLevel, err))
	}

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRepos(ctx)
	initSessionStorage(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	initSessionManager()
	initMazeController()
	initCrisis()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
