package app

import (
	"speedballhub/config"
	"speedballhub/internal/database"
	"speedballhub/internal/events"
	"speedballhub/internal/handlers/middleware"
	"speedballhub/internal/logger"
	"speedballhub/internal/repositories"
	"speedballhub/internal/services"
	"speedballhub/internal/websockets"

	authController "speedballhub/internal/controllers/auth"
	playersController "speedballhub/internal/controllers/players"
	resultsController "speedballhub/internal/controllers/results"
	testsController "speedballhub/internal/controllers/tests"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	TransactionService *services.TransactionService

	// Repositories
	PlayerRepo repositories.PlayerRepository
	TestRepo   repositories.TestRepository
	ResultRepo repositories.ResultRepository

	// Controllers
	AuthController    *authController.AuthController
	PlayersController *playersController.PlayersController
	TestsController   *testsController.TestsController
	ResultsController *resultsController.ResultsController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	// Initialize services
	transactionService := services.NewTransactionService(db)

	// Initialize repositories
	playerRepo := repositories.NewPlayer(db)
	testRepo := repositories.NewTest(db)
	resultRepo := repositories.NewResult(db)

	// Initialize controllers with repositories and services
	authController, err := authController.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to create auth controller", err)
	}

	playersController := playersController.New(playerRepo, resultRepo, eventBus)
	testsController := testsController.New(testRepo, resultRepo, eventBus)
	resultsController := resultsController.New(resultRepo, playerRepo, testRepo, transactionService, eventBus)

	middleware := middleware.New(db, config, authController)

	websocket, err := websockets.New(db, eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:           db,
		Config:             config,
		Middleware:         middleware,
		TransactionService: transactionService,
		PlayerRepo:         playerRepo,
		TestRepo:           testRepo,
		ResultRepo:         resultRepo,
		AuthController:     authController,
		PlayersController:  playersController,
		TestsController:    testsController,
		ResultsController:  resultsController,
		Websocket:          websocket,
		EventBus:           eventBus,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.TransactionService,
		a.AuthController,
		a.PlayersController,
		a.TestsController,
		a.ResultsController,
		a.PlayerRepo,
		a.TestRepo,
		a.ResultRepo,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
