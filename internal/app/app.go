package app

import (
	"context"
	"net/http"
	"time"

	"amparo-go/internal/config"
	"amparo-go/internal/db"
	attendancedomain "amparo-go/internal/domain/attendance"
	authdomain "amparo-go/internal/domain/auth"
	basketdomain "amparo-go/internal/domain/basket"
	classgroupdomain "amparo-go/internal/domain/classgroup"
	familydomain "amparo-go/internal/domain/family"
	memberdomain "amparo-go/internal/domain/member"
	reportdomain "amparo-go/internal/domain/report"
	attendancerepo "amparo-go/internal/repository/postgres/attendance"
	authrepo "amparo-go/internal/repository/postgres/auth"
	basketrepo "amparo-go/internal/repository/postgres/basket"
	classgrouprepo "amparo-go/internal/repository/postgres/classgroup"
	familyrepo "amparo-go/internal/repository/postgres/family"
	memberrepo "amparo-go/internal/repository/postgres/member"
	reportrepo "amparo-go/internal/repository/postgres/report"
	"amparo-go/internal/transport/httpserver"
	"amparo-go/internal/transport/httpserver/handler"
	"amparo-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg := config.Load(log)

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	authSvc := authdomain.NewService(authrepo.NewPostgres(dbConn), cfg.Auth.Secret, cfg.Auth.TokenTTL)
	familySvc := familydomain.NewService(familyrepo.NewPostgres(dbConn))
	memberSvc := memberdomain.NewService(memberrepo.NewPostgres(dbConn))
	classGroupSvc := classgroupdomain.NewService(classgrouprepo.NewPostgres(dbConn))
	attendanceSvc := attendancedomain.NewService(attendancerepo.NewPostgres(dbConn))
	basketSvc := basketdomain.NewService(basketrepo.NewPostgres(dbConn))
	reportSvc := reportdomain.NewService(reportrepo.NewPostgres(dbConn), attendanceSvc, basketSvc, cfg.Reports.Dir)

	bootstrapCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := authSvc.EnsureBootstrapUser(bootstrapCtx, cfg.Auth.BootstrapEmail, cfg.Auth.BootstrapPass); err != nil {
		return nil, err
	}

	log.Info("app: initializing router")
	handlers := handler.New(log, authSvc, familySvc, memberSvc, classGroupSvc, attendanceSvc, basketSvc, reportSvc)
	router := httpserver.NewRouter(cfg, handlers, authSvc, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
