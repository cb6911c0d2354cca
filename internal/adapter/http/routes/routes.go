package routes

import (
	"context"
	"log"
	"strconv"
	"time"

	_ "tendorai/docs" // This will be auto-generated
	"tendorai/internal/adapter/http/handlers"
	"tendorai/internal/adapter/persistence/repository"
	"tendorai/internal/config"
	"tendorai/internal/infrastructure/database"
	"tendorai/internal/logger"
	"tendorai/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

var router = gin.Default()

const PORT = 8080

const sweepTimeout = 2 * time.Minute

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(cfg, zl)

	err = router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(cfg config.Config, zl *zap.Logger) {
	ddb := database.ConnectDynamoDB()

	requestRepo := repository.NewQuoteRequestDynamoRepository(ddb)
	productRepo := repository.NewVendorProductDynamoRepository(ddb)
	vendorRepo := repository.NewVendorDynamoRepository(ddb)
	quoteRepo := repository.NewQuoteDynamoRepository(ddb)
	orderRepo := repository.NewOrderDynamoRepository(ddb)

	clock := usecase.SystemClock()

	engineUseCase := usecase.NewQuoteEngineUseCase(requestRepo, productRepo, vendorRepo, quoteRepo, cfg, clock, zl)
	decisionUseCase := usecase.NewQuoteDecisionUseCase(quoteRepo, requestRepo, orderRepo, clock, zl)
	sweeper := usecase.NewExpirySweeper(quoteRepo, clock, zl)

	startExpirySweeper(cfg.Sweeper.Schedule, sweeper, zl)

	quoteRequestHandler := handlers.NewQuoteRequestHandler(engineUseCase, decisionUseCase)
	quoteHandler := handlers.NewQuoteHandler(decisionUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, quoteRequestHandler, quoteHandler)
}

// startExpirySweeper runs the quote expiry sweep on the configured cron
// schedule for the lifetime of the process.
func startExpirySweeper(schedule string, sweeper *usecase.ExpirySweeper, zl *zap.Logger) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		if _, err := sweeper.Sweep(ctx); err != nil {
			zl.Warn("expiry sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule expiry sweeper: %v", err)
	}
	c.Start()
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
