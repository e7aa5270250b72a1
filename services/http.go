package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	docs "github.com/playgrove-labs/grove_api/docs"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"github.com/playgrove-labs/grove_api/services/handlers"
	"github.com/playgrove-labs/grove_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc        *AuthService
	jwtSvc         *JWTService
	progressionSvc *ProgressionService
	multiplayerSvc *MultiplayerService
	treeSvc        *TreeService
	shareSvc       *ShareService
	redisSvc       *RedisService
	sqlSvc         *PostgresService
	rateLimitSvc   *RateLimitService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.progressionSvc = svc.Service(PROGRESSION_SVC).(*ProgressionService)
	svc.multiplayerSvc = svc.Service(MULTIPLAYER_SVC).(*MultiplayerService)
	svc.treeSvc = svc.Service(TREE_SVC).(*TreeService)
	svc.shareSvc = svc.Service(SHARE_SVC).(*ShareService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)

	docs.SwaggerInfo.BasePath = ""

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.errorHandler,
	})

	app.Use(recover.New())
	app.Use(MonitoringMiddleware())
	if os.Getenv("LOG_LEVEL") == "TRACE" {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	svc.registerRoutes(app)

	svc.server = app
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler(svc.authSvc, svc.jwtSvc)
	gameHandler := handlers.NewGameHandler(svc.progressionSvc)
	playerHandler := handlers.NewPlayerHandler(svc.progressionSvc, svc.shareSvc, svc.redisSvc, svc.sqlSvc)
	multiplayerHandler := handlers.NewMultiplayerHandler(svc.multiplayerSvc, svc.progressionSvc)
	treeHandler := handlers.NewTreeHandler(svc.treeSvc)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	auth := v1.Group("/auth", svc.rateLimitSvc.Limit("auth"))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	required := svc.authSvc.RequiredAuth()
	command := svc.rateLimitSvc.Limit("command")
	query := svc.rateLimitSvc.Limit("query")

	games := v1.Group("/games", required)
	games.Get("/", query, gameHandler.ListGames)
	games.Post("/:gameId/play", command, gameHandler.PlayGame)
	games.Post("/:gameId/complete", command, gameHandler.CompleteGame)
	games.Post("/:gameId/unlock", command, gameHandler.UnlockGame)
	games.Get("/:gameId/stats", query, gameHandler.GetGameStats)

	player := v1.Group("/player", required, query)
	player.Get("/stats", playerHandler.GetPlayerStats)
	player.Get("/multiplayer/stats", playerHandler.GetMultiplayerStats)

	v1.Post("/checkin", required, command, playerHandler.Checkin)
	v1.Post("/share", required, command, playerHandler.CreateShareContent)
	v1.Get("/leaderboard", required, query, playerHandler.GetLeaderboard)

	matches := v1.Group("/matches", required, command)
	matches.Post("/", multiplayerHandler.CreateMatch)
	matches.Post("/join", multiplayerHandler.JoinMatch)
	matches.Post("/:matchId/complete", multiplayerHandler.CompleteMatch)
	matches.Post("/:matchId/cancel", multiplayerHandler.CancelMatch)

	trees := v1.Group("/trees", required)
	trees.Get("/", query, treeHandler.ListTrees)
	trees.Get("/:treeId/stats", query, treeHandler.GetTreeStats)
	trees.Post("/:treeId/water", command, treeHandler.WaterTree)
	trees.Post("/:treeId/unlock", command, treeHandler.UnlockTree)
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

func (svc *HttpService) errorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}
