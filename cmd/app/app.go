package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/soil2spoon/go-backend/internal/app"
	config "github.com/soil2spoon/go-backend/internal/cfg"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

// @title Soil2Spoon API
// @version 1.0
// @description Бэкенд интернет-магазина фермерских продуктов: каталог, корзина, заказы, отзывы и адреса доставки.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.NewSlogLogger()

	// .env опционален, в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file found, using environment variables")
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
