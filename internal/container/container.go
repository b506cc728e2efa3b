package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hitbridge/traffic-exchange/config"
	"github.com/hitbridge/traffic-exchange/internal/application"
	"github.com/hitbridge/traffic-exchange/internal/domain/repository"
	"github.com/hitbridge/traffic-exchange/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager *helpers.JWTManager
	restarter  *application.Restarter

	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	urlRepo     repository.UrlRepository
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetRestarter(r *application.Restarter) { restarter = r }
func GetRestarter() *application.Restarter  { return restarter }

func SetUserRepo(r repository.UserRepository)       { userRepo = r }
func GetUserRepo() repository.UserRepository        { return userRepo }
func SetSessionRepo(r repository.SessionRepository) { sessionRepo = r }
func GetSessionRepo() repository.SessionRepository  { return sessionRepo }
func SetUrlRepo(r repository.UrlRepository)         { urlRepo = r }
func GetUrlRepo() repository.UrlRepository          { return urlRepo }
