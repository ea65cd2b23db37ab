package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/authsvc/domain"
	"github.com/you/authsvc/internal/config"
	"github.com/you/authsvc/internal/infrastructure/auth"
	"github.com/you/authsvc/internal/infrastructure/database"
	"github.com/you/authsvc/internal/infrastructure/repositories"
	"github.com/you/authsvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo domain.UserRepository

	PasswordSvc   domain.PasswordService
	TokenSvc      domain.TokenService
	TOTPSvc       domain.TOTPService
	CredentialSvc domain.CredentialValidator
	TwoFactorSvc  domain.TwoFactorService
	AuthSvc       domain.AuthService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
}

func (c *Container) initRepositories() {
	userRepo := repositories.NewUserRepository(c.DB)
	c.UserRepo = repositories.NewCachedUserRepository(userRepo, c.RedisClient, c.Config.CacheTTL)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.AccessTTL)
	c.TOTPSvc = auth.NewTOTPService(c.Config.TOTPIssuer)

	c.CredentialSvc = services.NewCredentialValidator(c.UserRepo, c.PasswordSvc)
	c.TwoFactorSvc = services.NewTwoFactorService(c.UserRepo, c.TOTPSvc)
	c.AuthSvc = services.NewAuthService(c.UserRepo, c.CredentialSvc, c.PasswordSvc, c.TokenSvc, c.TOTPSvc)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
