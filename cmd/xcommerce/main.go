package main

import (
	"context"
	"fmt"

	"github.com/xcommerce/backend/internal/adapter/auth"
	"github.com/xcommerce/backend/internal/adapter/config"
	"github.com/xcommerce/backend/internal/adapter/events"
	"github.com/xcommerce/backend/internal/adapter/handler/http"
	"github.com/xcommerce/backend/internal/adapter/logger"
	"github.com/xcommerce/backend/internal/adapter/storage"
	"github.com/xcommerce/backend/internal/adapter/storage/repository"
	"github.com/xcommerce/backend/internal/core/port"
	"github.com/xcommerce/backend/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	var publisher port.EventPublisher
	if conf.Broker.URL != "" {
		rabbit, err := events.NewPublisher(conf.Broker, log.Named("Events"))
		if err != nil {
			log.Error("event publisher creating error", zap.Error(err))
			return
		}
		defer func() {
			if err := rabbit.Close(); err != nil {
				log.Error("event publisher close error", zap.Error(err))
			}
		}()
		publisher = rabbit
	} else {
		publisher = events.NewNoopPublisher()
	}

	svc, err := service.NewService(repo, tokenService, publisher, log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}

	userHandler, err := http.NewUserHandler(svc, log.Named("User handler"))
	if err != nil {
		log.Error("user handler creating error", zap.Error(err))
		return
	}
	productHandler, err := http.NewProductHandler(svc, log.Named("Product handler"))
	if err != nil {
		log.Error("product handler creating error", zap.Error(err))
		return
	}
	addressHandler, err := http.NewAddressHandler(svc, log.Named("Address handler"))
	if err != nil {
		log.Error("address handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService,
		userHandler, productHandler, addressHandler, orderHandler, log.Named("Router"))
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
