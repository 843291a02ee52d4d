package router

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/monocle-dev/notes/internal/auth"
	"github.com/monocle-dev/notes/internal/handlers"
	"github.com/monocle-dev/notes/internal/middleware"
	"github.com/monocle-dev/notes/internal/store"
	"github.com/monocle-dev/notes/internal/types"
)

type Options struct {
	Store          store.Store
	Authenticator  *auth.Authenticator
	Handler        *handlers.Handler
	AllowedOrigins []string
	// Quiet disables the request logger.
	Quiet          bool
}

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report the JSON name of a field.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
}

func NewRouter(opts Options) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()

	if !opts.Quiet {
		r.Use(gin.Logger())
	}
	r.Use(middleware.Recovery())

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = types.AllowedOrigins("")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.Store(opts.Store))
	r.NoRoute(middleware.NotFound)

	h := opts.Handler
	requireUser := middleware.AuthMiddleware(opts.Authenticator)

	r.GET("/health", handlers.Health)

	tokens := r.Group("/auth/token", requireUser)
	{
		tokens.POST("", h.IssueToken)
		tokens.DELETE("", h.RevokeToken)
	}

	users := r.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", requireUser, h.UpdateUser)
		users.DELETE("/:id", requireUser, h.DeleteUser)
	}

	notes := r.Group("/notes", requireUser)
	{
		notes.GET("", h.ListNotes)
		notes.POST("", h.CreateNote)
		notes.GET("/:id", h.GetNote)
		notes.PUT("/:id", h.UpdateNote)
		notes.DELETE("/:id", h.DeleteNote)
	}

	return r
}
