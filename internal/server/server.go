// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package server wires the application together and runs it.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/oliverandrich/cms/internal/config"
	"codeberg.org/oliverandrich/cms/internal/database"
	"codeberg.org/oliverandrich/cms/internal/handlers"
	appmw "codeberg.org/oliverandrich/cms/internal/middleware"
	"codeberg.org/oliverandrich/cms/internal/repository"
	"codeberg.org/oliverandrich/cms/internal/services/assist"
	"codeberg.org/oliverandrich/cms/internal/services/auth"
	"codeberg.org/oliverandrich/cms/internal/services/cors"
	"codeberg.org/oliverandrich/cms/internal/services/media"
	"codeberg.org/oliverandrich/cms/internal/services/session"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

// Login attempts allowed per client IP before a 429.
const (
	loginRateLimit  = 5
	loginRateWindow = 15 * time.Minute
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database, migrations run inside Open
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	repo := repository.New(db)

	// Services
	sessions := session.NewManager(cfg.Session)
	authService := auth.NewService(repo, sessions)
	corsResolver := cors.NewResolver(repo)
	uploads := media.NewStore(cfg.Upload.Dir, cfg.Upload.MaxSize)
	assistClient := assist.NewClient(cfg.AI)

	if err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if err := repo.EnsureSettings(ctx, "My CMS"); err != nil {
		return fmt.Errorf("failed to seed site settings: %w", err)
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg, sessions)

	h := handlers.New(repo, authService, sessions, corsResolver, uploads, assistClient)
	setupRoutes(e, h, cfg)

	return startWithGracefulShutdown(e, cfg)
}

func setupRoutes(e *echo.Echo, h *handlers.Handlers, cfg *config.Config) {
	e.GET("/health", h.Health)

	// Uploaded media is served straight from disk.
	e.Static("/uploads", cfg.Upload.Dir)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Login, appmw.RateLimit(loginRateLimit, loginRateWindow))
	authGroup.POST("/logout", h.Logout)

	pages := api.Group("/pages")
	pages.OPTIONS("", h.PagesOptions)
	pages.GET("", h.ListPages)
	pages.POST("", h.CreatePage)
	pages.PATCH("/reorder", h.ReorderPages)
	pages.GET("/:id", h.GetPage)
	pages.PUT("/:id", h.UpdatePage)
	pages.DELETE("/:id", h.DeletePage)

	posts := api.Group("/posts")
	posts.OPTIONS("", h.PostsOptions)
	posts.GET("", h.ListPosts)
	posts.POST("", h.CreatePost)
	posts.PATCH("/reorder", h.ReorderPosts)
	posts.GET("/:id", h.GetPost)
	posts.PUT("/:id", h.UpdatePost)
	posts.DELETE("/:id", h.DeletePost)

	products := api.Group("/products")
	products.OPTIONS("", h.ProductsOptions)
	products.GET("", h.ListProducts)
	products.POST("", h.CreateProduct)
	products.PATCH("/reorder", h.ReorderProducts)
	products.GET("/:id", h.GetProduct)
	products.PUT("/:id", h.UpdateProduct)
	products.DELETE("/:id", h.DeleteProduct)
	products.GET("/:id/images", h.ListProductImages)
	products.POST("/:id/images", h.AddProductImage)
	products.DELETE("/:id/images/:imageID", h.DeleteProductImage)

	mediaGroup := api.Group("/media")
	mediaGroup.OPTIONS("", h.MediaOptions)
	mediaGroup.GET("", h.ListMedia)
	mediaGroup.POST("", h.UploadMedia)
	mediaGroup.DELETE("/:id", h.DeleteMedia)

	tokens := api.Group("/tokens")
	tokens.GET("", h.ListTokens)
	tokens.POST("", h.CreateToken)
	tokens.DELETE("/:id", h.DeleteToken)

	settings := api.Group("/settings")
	settings.OPTIONS("", h.SettingsOptions)
	settings.GET("", h.GetSettings)
	settings.PUT("", h.UpdateSettings)

	ai := api.Group("/ai")
	ai.POST("/generate", h.GenerateContent)
	ai.POST("/seo", h.SuggestSEO)
	ai.POST("/chat", h.Chat)
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	// Setup TLS
	tlsResult, err := SetupTLS(cfg)
	if err != nil {
		return fmt.Errorf("TLS setup failed: %w", err)
	}

	// Channel for server errors
	errChan := make(chan error, 2)

	// HTTP redirect server for ACME mode
	var httpServer *http.Server

	switch tlsResult.Mode {
	case TLSModeOff:
		// Plain HTTP on configured port
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		go func() {
			slog.Info("Server running", "url", cfg.Server.BaseURL)
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

	case TLSModeACME:
		// HTTPS on :443
		go func() {
			slog.Info("Server running", "url", cfg.Server.BaseURL)
			if err := startTLSServer(e, ":443", tlsResult.TLSConfig); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

		// HTTP redirect server on :80
		httpServer = &http.Server{
			Addr:              ":80",
			Handler:           tlsResult.HTTPHandler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			slog.Info("HTTP redirect active", "addr", ":80")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

	case TLSModeManual:
		// HTTPS on configured port
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		go func() {
			slog.Info("Server running", "url", cfg.Server.BaseURL)
			if err := startTLSServer(e, addr, tlsResult.TLSConfig); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()
	}

	// Wait for interrupt signal or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown main server", "error", err)
	}

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown HTTP redirect server", "error", err)
		}
	}

	slog.Info("server stopped")
	return nil
}

// startTLSServer starts the Echo server with a custom TLS configuration.
func startTLSServer(e *echo.Echo, addr string, tlsConfig *tls.Config) error {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return err
	}
	e.TLSListener = tls.NewListener(ln, tlsConfig)
	e.TLSServer.TLSConfig = tlsConfig
	return e.Server.Serve(e.TLSListener)
}
