package bootstrap

import (
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/tilemaker-app/tilemaker-backend/internal/api/http"
	"github.com/tilemaker-app/tilemaker-backend/internal/api/http/middleware"
	authmw "github.com/tilemaker-app/tilemaker-backend/internal/auth/middleware"
	"github.com/tilemaker-app/tilemaker-backend/internal/images"
	imghttp "github.com/tilemaker-app/tilemaker-backend/internal/images/http"
	"github.com/tilemaker-app/tilemaker-backend/internal/projects"
	projhttp "github.com/tilemaker-app/tilemaker-backend/internal/projects/http"
)

type RouterDeps struct {
	ServiceName   string
	Version       string
	ImagesBackend string
	DB            *pgxpool.Pool
	Auth          *fbauth.Client
	ImageStore    *images.Store
	Blob          *images.BlobStore // nil unless IMAGE_BACKEND=s3
	ImageCache    *redis.Client     // nil unless REDIS_ADDR set
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.ImagesBackend, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	api.Use(middleware.RequestID())

	imgHandler := imghttp.New(dep.ImageStore, blobPutter(dep.Blob), dep.ImageCache, dep.ImageStore.MaxBytes())
	imgHandler.RegisterPublic(api)

	authed := api.Group("")
	authed.Use(authmw.RequireUser(dep.Auth))

	projHandler := projhttp.New(projects.NewRepo(dep.DB))
	projHandler.Register(authed.Group("/projects"))

	uploads := authed.Group("")
	uploads.Use(middleware.UploadRateLimit(rate.Every(2*time.Second), 5))
	imgHandler.RegisterUpload(uploads)

	return r
}

// blobPutter keeps a nil *BlobStore from becoming a non-nil interface value.
func blobPutter(b *images.BlobStore) imghttp.BlobPutter {
	if b == nil {
		return nil
	}
	return b
}
