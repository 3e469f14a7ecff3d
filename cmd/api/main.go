package main

import (
	"context"
	"log"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/logging"
	appmw "app/internal/middleware"
	"app/internal/server"
	"app/internal/token"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type uuidOrderNumberGenerator struct{}

func (g *uuidOrderNumberGenerator) NewOrderNumber() string {
	return uuid.NewString()
}

func main() {
	// .envは無ければ環境変数だけで動く
	_ = godotenv.Load()

	// JWT_SECRET無しはここで止まる（起動させない）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.GoEnv)

	// DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Protein{},
		&model.Cut{},
		&model.Flavour{},
		&model.ProteinCut{},
		&model.ProteinFlavour{},
		&model.Order{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Repository（GORM実装）生成
	userRepo := infraRepo.NewUserRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	proteinRepo := infraRepo.NewProteinRepository(gormDB)
	cutRepo := infraRepo.NewCutRepository(gormDB)
	flavourRepo := infraRepo.NewFlavourRepository(gormDB)
	orderRepo := infraRepo.NewOrderRepository(gormDB)

	// Token codec
	codec, err := token.NewCodec(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}

	// Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, rtRepo, codec, validator.NewAuthValidator())
	proteinUC := usecase.NewProteinUsecase(proteinRepo, cutRepo, flavourRepo)
	catalogUC := usecase.NewCatalogUsecase(cutRepo, flavourRepo)
	orderUC := usecase.NewOrderUsecase(orderRepo, &uuidOrderNumberGenerator{})

	// 認証ミドルウェア
	requireAuth := appmw.Auth(appmw.AuthConfig{
		Users:  userRepo,
		Codec:  codec,
		Logger: logger,
	})
	optionalAuth := appmw.Auth(appmw.AuthConfig{
		Users:    userRepo,
		Codec:    codec,
		Logger:   logger,
		Optional: true,
	})

	// 期限切れrefresh tokenの掃除（毎日03:00。リクエスト経路では走らない）
	c := cron.New()
	_, err = c.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		deleted, err := rtRepo.DeleteExpired(ctx, time.Now())
		if err != nil {
			logger.Error("refresh token sweep failed", logging.Fields{"error": err.Error()})
			return
		}
		logger.Info("refresh token sweep done", logging.Fields{"deleted": deleted})
	})
	if err != nil {
		log.Fatalf("cron: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Server起動
	e := server.New()
	server.RegisterRoutes(e,
		server.Handlers{
			Auth:    handler.NewAuthHandler(authUC, logger),
			Protein: handler.NewProteinHandler(proteinUC),
			Catalog: handler.NewCatalogHandler(catalogUC),
			Orders:  handler.NewOrdersHandler(orderUC),
		},
		server.Middlewares{
			RequireAuth:  requireAuth,
			OptionalAuth: optionalAuth,
			AdminOnly:    appmw.AdminRoleGuard(),
		},
	)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
