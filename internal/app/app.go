package app

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/aether-shop/internal/cache"
	"github.com/fsdevblog/aether-shop/internal/config"
	"github.com/fsdevblog/aether-shop/internal/repository/pgrepo"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/internal/service"
	"github.com/fsdevblog/aether-shop/internal/service/psswd"
	"github.com/fsdevblog/aether-shop/internal/transport/api"
	"github.com/fsdevblog/aether-shop/internal/transport/events"
	"github.com/fsdevblog/aether-shop/pkg/uow"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app on %s", a.Config.RunAddress)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	deps := service.FactoryDeps{
		UOW:       unitOfWork,
		Hasher:    psswd.PasswordHash(""),
		JWTSecret: []byte(a.Config.JWTUserSecret),
		Logger:    a.Logger,
	}

	if a.Config.KafkaBrokers != "" {
		publisher := events.NewSettlementPublisher(
			strings.Split(a.Config.KafkaBrokers, ","),
			a.Config.KafkaTopic,
			a.Logger,
		)
		defer func() {
			if closeErr := publisher.Close(); closeErr != nil {
				a.Logger.WithError(closeErr).Warn("kafka publisher close")
			}
		}()
		deps.Publisher = publisher
	}

	if a.Config.RedisAddr != "" {
		viewCounter, vcErr := cache.NewViewCounter(notifyCtx, a.Config.RedisAddr)
		if vcErr != nil {
			// счетчик просмотров вспомогательный, без redis продолжаем работать
			a.Logger.WithError(vcErr).Warn("redis unavailable, views counter disabled")
		} else {
			defer func() {
				if closeErr := viewCounter.Close(); closeErr != nil {
					a.Logger.WithError(closeErr).Warn("redis close")
				}
			}()
			deps.ViewCounter = viewCounter
		}
	}

	services, sErr := service.Factory(deps)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router := api.New(api.RouterArgs{
		Logger:          a.Logger,
		UserService:     services.UserService,
		AccountService:  services.AccountService,
		ProductService:  services.ProductService,
		AddressService:  services.AddressService,
		OrderService:    services.OrderService,
		PaymentService:  services.PaymentService,
		CommentService:  services.CommentService,
		ReviewService:   services.ReviewService,
		FeaturedService: services.FeaturedService,
		JWTSecretKey:    []byte(a.Config.JWTUserSecret),
	})

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName:     func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewUserRepository(dbtx) },
		repoargs.AccountRepoName:  func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewAccountRepository(dbtx) },
		repoargs.ProductRepoName:  func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewProductRepository(dbtx) },
		repoargs.AddressRepoName:  func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewAddressRepository(dbtx) },
		repoargs.OrderRepoName:    func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewOrderRepository(dbtx) },
		repoargs.PaymentRepoName:  func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewPaymentRepository(dbtx) },
		repoargs.CommentRepoName:  func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewCommentRepository(dbtx) },
		repoargs.ReviewRepoName:   func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewReviewRepository(dbtx) },
		repoargs.FeaturedRepoName: func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewFeaturedRepository(dbtx) },
	}

	for name, factoryFn := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factoryFn); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}
	return unitOfWork, nil
}
