package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"outfit-agent-demo/internal/client"
	"outfit-agent-demo/internal/config"
	"outfit-agent-demo/internal/obs"
	"outfit-agent-demo/internal/repository"
	"outfit-agent-demo/internal/server"
	"outfit-agent-demo/internal/service"
	"outfit-agent-demo/internal/wardrobe"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}
	obs.InitLogger(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		obs.Logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	taxonomy, err := wardrobe.LoadTaxonomy()
	if err != nil {
		obs.Logger.Error("load slot taxonomy", "error", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.DatabaseURL)

	geminiClient, err := client.NewGeminiClient(&cfg.Gemini)
	if err != nil {
		obs.Logger.Error("init gemini client", "error", err)
		os.Exit(1)
	}
	agentClient, err := client.NewAgentClient(&cfg.Agent)
	if err != nil {
		obs.Logger.Error("init agent client", "error", err)
		os.Exit(1)
	}
	catalogClient, err := client.NewCatalogClient(&cfg.Catalog)
	if err != nil {
		obs.Logger.Error("init catalog client", "error", err)
		os.Exit(1)
	}

	productRepo := repository.NewProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	wardrobeService := service.NewWardrobeService(taxonomy, productRepo)
	outfitService := service.NewOutfitService(geminiClient)
	agentService := service.NewAgentService(agentClient, service.NewToolGate(cfg.Agent.ToolNamespaces))
	purchaseService, err := service.NewPurchaseService(db, wardrobeService, agentService, purchaseRepo, cfg.Payment.MerchantAddresses)
	if err != nil {
		obs.Logger.Error("init purchase service", "error", err)
		os.Exit(1)
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(catalogClient, wardrobeService, outfitService, purchaseService)

	obs.Logger.Info("starting HTTP server", "addr", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	obs.Logger.Info("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		obs.Logger.Error("HTTP server shutdown error", "error", err)
		os.Exit(1)
	}
}
