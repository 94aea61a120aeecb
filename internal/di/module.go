package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/pointbank/internal/app"
	"github.com/polkiloo/pointbank/internal/config"
	"github.com/polkiloo/pointbank/internal/logger"
	"github.com/polkiloo/pointbank/internal/server/http/handlers"
	"github.com/polkiloo/pointbank/internal/server/http/router"
	"github.com/polkiloo/pointbank/internal/storage/postgres"
	"github.com/polkiloo/pointbank/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.PointFacade) handlers.PointFacade { return f },
			func(s *postgres.Storage) handlers.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
