package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"couplesync-backend/internal/config"
	"couplesync-backend/internal/handlers"
	"couplesync-backend/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(authHandler *handlers.AuthHandler, photoHandler *handlers.PhotoHandler, healthHandler *handlers.HealthHandler, jwtCfg *config.JWTConfig) {
	// Health check routes
	http.HandleFunc("/healthz", healthHandler.HealthCheck)
	http.HandleFunc("/livez", healthHandler.LivenessCheck)
	http.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	http.HandleFunc("/api/register", authHandler.Register)
	http.HandleFunc("/api/login", authHandler.Login)

	// Photo routes (bearer token required)
	http.HandleFunc("/api/fotos", middleware.AuthMiddleware(photoHandler.Photos, jwtCfg))
	http.HandleFunc("/api/fotos/", middleware.AuthMiddleware(photoHandler.Photos, jwtCfg))
	http.HandleFunc("/api/upload", middleware.AuthMiddleware(photoHandler.UploadPhoto, jwtCfg))

	// API documentation
	http.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("CoupleSync gallery backend is running."))
}
