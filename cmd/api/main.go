package main

import (
	"os"
	"strconv"
	"time"

	"github.com/SafatUddin/CAR-Hub/internal/access"
	"github.com/SafatUddin/CAR-Hub/internal/config"
	"github.com/SafatUddin/CAR-Hub/internal/currency"
	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
	"github.com/SafatUddin/CAR-Hub/internal/handler"
	"github.com/SafatUddin/CAR-Hub/internal/infra/db"
	infraRepo "github.com/SafatUddin/CAR-Hub/internal/infra/repository"
	"github.com/SafatUddin/CAR-Hub/internal/infra/storage"
	"github.com/SafatUddin/CAR-Hub/internal/logging"
	"github.com/SafatUddin/CAR-Hub/internal/server"
	"github.com/SafatUddin/CAR-Hub/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func main() {
	// .env is optional outside local dev.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewLogger(cfg.LogLevel)

	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.Car{},
		&model.CarImage{},
		&model.Order{},
		&model.Payment{},
		&model.Notification{},
		&model.AuditLog{},
	); err != nil {
		logger.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	carRepo := infraRepo.NewCarGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	notificationRepo := infraRepo.NewNotificationGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	carAccess := access.NewCarAccess(carRepo)
	converter := currency.NewConverter()

	idGen := &uuidGenerator{}
	clock := &realClock{}
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()
	issuer := &jwtIssuer{secret: []byte(cfg.JWTSecret), accessTTL: 24 * time.Hour}

	authUC := usecase.NewAuthUsecase(userRepo, hasher, verifier, issuer, clock)
	carUC := usecase.NewCarUsecase(txManager, carRepo, carAccess, converter)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, carRepo)
	paymentUC := usecase.NewPaymentUsecase(txManager, idGen, clock)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)
	adminUC := usecase.NewAdminUsecase(txManager, carRepo, userRepo, orderRepo, paymentRepo, auditRepo, carAccess, clock)

	var uploader storage.Uploader
	if cfg.CloudinaryEnabled() {
		cld, err := storage.NewCloudinaryUploader(cfg)
		if err != nil {
			logger.Error("cloudinary init failed", "err", err)
			os.Exit(1)
		}
		uploader = cld
	} else {
		logger.Warn("cloudinary not configured; listing creation is disabled")
	}

	e := server.New(logger)
	handler.NewAuthHandler(authUC).RegisterRoutes(e, cfg)
	handler.NewCarHandler(carUC, uploader).RegisterRoutes(e, cfg)
	handler.NewOrderHandler(orderUC).RegisterRoutes(e, cfg)
	handler.NewPaymentHandler(paymentUC).RegisterRoutes(e, cfg)
	handler.NewNotificationHandler(notificationUC).RegisterRoutes(e, cfg)
	handler.NewAdminHandler(adminUC).RegisterRoutes(e, cfg)

	logger.Info("starting api", "port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
