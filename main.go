package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docuchat/relay/internal/adapter/foundry"
	"github.com/docuchat/relay/internal/adapter/openai"
	"github.com/docuchat/relay/internal/config"
	"github.com/docuchat/relay/internal/service"
	"github.com/docuchat/relay/internal/store"
	transport "github.com/docuchat/relay/internal/transport/http"
	"github.com/docuchat/relay/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting relay...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Upload Dir: %s", cfg.UploadDir)
	log.Printf("OpenAI Base URL: %s", cfg.OpenAIBaseURL)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize completion client
	openaiClient := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAITimeout)

	// Initialize agent client; misconfigured credentials fail startup,
	// absent credentials just disable the agent model.
	var agentClient foundry.AgentAPI
	if cfg.AgentConfigured() {
		client, err := foundry.NewClient(foundry.Config{
			TenantID:      cfg.AzureTenantID,
			ClientID:      cfg.AzureClientID,
			ClientSecret:  cfg.AzureClientSecret,
			AgentEndpoint: cfg.FoundryAgentEndpoint,
			TokenURL:      cfg.EntraTokenURL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize agent client: %v", err)
		}
		agentClient = client
		log.Printf("Agent client configured: %s", cfg.FoundryAgentEndpoint)
	} else {
		log.Printf("Agent client not configured; %s model disabled", "foundry-agent")
	}

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service
	svc := service.New(db, openaiClient, agentClient, policyEngine, cfg)

	// Create HTTP server
	server := transport.NewServer(svc, cfg)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Relay started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down relay...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Relay stopped")
}
