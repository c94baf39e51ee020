package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/sify-labs/boq-backend/internal/api/http/middleware"
	"github.com/sify-labs/boq-backend/internal/boq"
	"github.com/sify-labs/boq-backend/internal/catalog"
	projecthttp "github.com/sify-labs/boq-backend/internal/projects/http"
	"github.com/sify-labs/boq-backend/internal/projects/repository"
	"github.com/sify-labs/boq-backend/internal/projects/service"
	"github.com/sify-labs/boq-backend/internal/session"
	"github.com/sify-labs/boq-backend/internal/transfer"

	httpapi "github.com/sify-labs/boq-backend/internal/api/http"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Rates       boq.RateCard
	DB          *pgxpool.Pool // nil disables reference prices
	SQLDB       *sql.DB       // nil disables the archive
	Redis       *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	// The client is a browser demo; keep CORS permissive.
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	sessionStore := session.NewRedisStore(dep.Redis)
	liveRepo := repository.NewLiveRepository(dep.Redis)

	var archiveRepo *repository.ArchiveRepository
	if dep.SQLDB != nil {
		archiveRepo = repository.NewArchiveRepository(dep.SQLDB)
	}

	var priceStore *catalog.ReferencePriceStore
	if dep.DB != nil {
		priceStore = catalog.NewReferencePriceStore(dep.DB)
	}

	svc := service.NewProjectService(liveRepo, archiveRepo, sessionStore, dep.Rates)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())
	api.Use(session.Middleware(sessionStore))

	projectHandler := projecthttp.New(svc, archiveRepo)
	projectHandler.Register(api.Group("/projects"))
	projectHandler.RegisterArchive(api.Group("/archive"))

	session.NewHandler(sessionStore).Register(api.Group("/session"))
	catalog.NewHandler(dep.Rates, priceStore).Register(api.Group("/catalog"))
	transfer.NewHandler(liveRepo).Register(api)

	return r
}
