package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/rekabarchive/memorial-service/docs"
	"github.com/rekabarchive/memorial-service/internal/config"
	"github.com/rekabarchive/memorial-service/internal/http/handlers/embeds"
	"github.com/rekabarchive/memorial-service/internal/http/handlers/gallery"
	"github.com/rekabarchive/memorial-service/internal/http/handlers/music"
	"github.com/rekabarchive/memorial-service/internal/http/handlers/tributes"
	"github.com/rekabarchive/memorial-service/internal/http/handlers/users"
	"github.com/rekabarchive/memorial-service/internal/http/middleware"
	"github.com/rekabarchive/memorial-service/internal/mixcloud"
	"github.com/rekabarchive/memorial-service/internal/roles"
	"github.com/rekabarchive/memorial-service/internal/services/media"
	"github.com/rekabarchive/memorial-service/internal/storage/postgres"
	"github.com/rekabarchive/memorial-service/internal/web"
)

// @title Memorial Site API
// @version 1.0
// @description Music archive, memory gallery and tributes for the James Baker memorial site.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// load config
	cfg := config.MustLoad()

	// database setup
	store, err := postgres.NewPostgres(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	slog.Info("Connected to Postgres database")

	// object storage
	mediaService, err := media.NewService(cfg)
	if err != nil {
		log.Fatal("Failed to initialize media storage:", err)
	}

	// redis backs the rate limiters
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	resolver := roles.NewResolver(store)
	mixcloudClient := mixcloud.NewClient(cfg.Mixcloud.BaseURL, cfg.Mixcloud.User)

	shell, err := web.NewHandler(cfg.Embeds)
	if err != nil {
		log.Fatal("Failed to load templates:", err)
	}

	auth := middleware.AuthMiddleware(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg.JWTSecret)
	rateLimits := middleware.NewRateLimitConfig(redisClient)
	adminUpload := func(h http.HandlerFunc) http.Handler {
		return auth(middleware.RequireAdmin(resolver)(rateLimits.RateLimitMiddleware("uploads")(h)))
	}

	// setup server
	router := http.NewServeMux()

	// auth provider surface
	router.HandleFunc("POST /api/signup", users.SignUp(store))
	router.HandleFunc("POST /api/login", users.Login(store, cfg.JWTSecret))
	router.Handle("GET /api/me", auth(users.Me(resolver)))

	// content collections
	router.HandleFunc("GET /api/gallery", gallery.List(store, mediaService))
	router.Handle("POST /api/gallery", adminUpload(gallery.Upload(store, mediaService, cfg.Media.MaxUploadSize)))
	router.HandleFunc("GET /api/music", music.List(store, mediaService))
	router.Handle("POST /api/music", adminUpload(music.Upload(store, mediaService, cfg.Media.MaxUploadSize)))
	router.HandleFunc("GET /api/music/cloudcasts", music.Cloudcasts(mixcloudClient))

	// tributes
	router.HandleFunc("GET /api/tributes", tributes.List(store))
	// Signed-in visitors get a per-user bucket, anonymous ones share a
	// per-address bucket.
	router.Handle("POST /api/tributes", optionalAuth(rateLimits.RateLimitMiddleware("tributes")(tributes.Submit(store))))

	// embeds + docs
	router.HandleFunc("GET /api/embeds", embeds.Get(cfg.Embeds))
	router.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// presentation shell
	router.HandleFunc("GET /{$}", shell.Page("home", "Home"))
	router.HandleFunc("GET /music", shell.Page("music", "Music"))
	router.HandleFunc("GET /gallery", shell.Page("gallery", "Gallery"))
	router.HandleFunc("GET /about", shell.Page("about", "About"))
	router.HandleFunc("GET /tributes", shell.Page("tributes", "Tributes"))
	router.HandleFunc("GET /auth", shell.Page("auth", "Sign In"))
	router.HandleFunc("/", shell.NotFound())

	server := http.Server{
		Addr:    cfg.HTTPServer.Address,
		Handler: router,
	}

	log.Println("server started on", cfg.HTTPServer.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %s", err)
		}
	}()

	<-done

	slog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = server.Shutdown(ctx)
	if err != nil {
		slog.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
		return
	}

	slog.Info("Server stopped")
}
