package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/usmcsd/mycsd-api/internal/api"
	"github.com/usmcsd/mycsd-api/internal/config"
	"github.com/usmcsd/mycsd-api/internal/db"
	"github.com/usmcsd/mycsd-api/internal/logger"
	"github.com/usmcsd/mycsd-api/internal/repository"
	"github.com/usmcsd/mycsd-api/internal/repository/dao"
	"github.com/usmcsd/mycsd-api/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	// The administrator account is provisioned, never signed up.
	authSvc := service.NewAuthService(repository.NewProfileRepository(dao.NewProfileDAO(postgresDB)), conf.API.AdminEmail)
	if err = authSvc.EnsureAdmin(context.Background(), conf.API.AdminPassword); err != nil {
		return fmt.Errorf("failed to provision admin -> %w", err)
	}

	s := api.NewServer(conf, postgresDB)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
