package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lumenretail/marketing-agent/internal/agent"
	"github.com/lumenretail/marketing-agent/internal/api"
	"github.com/lumenretail/marketing-agent/internal/campaign"
	"github.com/lumenretail/marketing-agent/internal/config"
	"github.com/lumenretail/marketing-agent/internal/content"
	"github.com/lumenretail/marketing-agent/internal/customers"
	"github.com/lumenretail/marketing-agent/internal/deploy"
	"github.com/lumenretail/marketing-agent/internal/email"
	"github.com/lumenretail/marketing-agent/internal/imagegen"
	"github.com/lumenretail/marketing-agent/internal/publisher"
	"github.com/lumenretail/marketing-agent/internal/snapshot"
	"github.com/lumenretail/marketing-agent/internal/social"
	"github.com/lumenretail/marketing-agent/internal/textgen"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func buildTextChain(cfg *config.Config) *textgen.Chain {
	var providers []textgen.Provider
	if cfg.OpenAI.Enabled {
		providers = append(providers, textgen.NewOpenAIProvider(cfg.OpenAI))
		log.Printf("Text provider registered: openai (model %s)", cfg.OpenAI.Model)
	}
	if cfg.Azure.Enabled {
		providers = append(providers, textgen.NewAzureProvider(cfg.Azure))
		log.Printf("Text provider registered: azure (deployment %s)", cfg.Azure.Deployment)
	}
	if cfg.Bedrock.Enabled {
		p, err := textgen.NewBedrockProvider(cfg.Bedrock)
		if err != nil {
			log.Printf("Warning: Bedrock provider unavailable: %v", err)
		} else {
			providers = append(providers, p)
			log.Printf("Text provider registered: bedrock (model %s)", cfg.Bedrock.ModelID)
		}
	}
	if len(providers) == 0 {
		log.Println("No text providers configured — using canned content")
		return nil
	}
	return textgen.NewChain(providers...)
}

func buildImageChain(cfg *config.Config) *imagegen.Chain {
	var providers []imagegen.Provider
	if cfg.Image.Endpoint != "" {
		providers = append(providers, imagegen.NewRESTProvider(cfg.Image))
		log.Println("Image provider registered: rest")
	}
	if cfg.OpenAI.Enabled {
		providers = append(providers, imagegen.NewOpenAIProvider(cfg.OpenAI, cfg.Image.Size))
		log.Println("Image provider registered: openai")
	}
	if len(providers) == 0 {
		log.Println("No image providers configured — serving stock images")
		return nil
	}
	return imagegen.NewChain(providers...)
}

func main() {
	log.Println("╔════════════════════════════════════════════════════════════╗")
	log.Println("║  Lumen Retail Marketing Agent                              ║")
	log.Println("║  Autonomous campaign planning, deployment and analytics    ║")
	log.Println("╚════════════════════════════════════════════════════════════╝")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}
	log.Printf("Pre-flight check passed: port %d is available", port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional Redis mirror for campaign overviews
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Printf("Warning: Redis connection failed (%s): %v — overview snapshots stay in memory", cfg.Redis.Addr, err)
			redisClient.Close()
			redisClient = nil
		} else {
			log.Printf("Redis connected: %s (overview snapshots mirrored)", cfg.Redis.Addr)
		}
		pingCancel()
	} else {
		log.Println("Redis not configured (REDIS_ADDR not set) — overview snapshots stay in memory")
	}

	textChain := buildTextChain(cfg)
	imageChain := buildImageChain(cfg)

	// Simulated customer base and delivery channels
	var custOpts []customers.Option
	var emailOpts []email.Option
	var socialOpts []social.Option
	if cfg.Simulation.Seed != 0 {
		custOpts = append(custOpts, customers.WithSeed(cfg.Simulation.Seed))
		emailOpts = append(emailOpts, email.WithSeed(cfg.Simulation.Seed))
		socialOpts = append(socialOpts, social.WithSeed(cfg.Simulation.Seed))
	}
	emailOpts = append(emailOpts, email.WithPersonalizedBatch(cfg.Simulation.PersonalizedBatch))

	db := customers.NewDatabase(cfg.Simulation.CustomerCount, custOpts...)
	log.Printf("Customer database seeded: %d customers", cfg.Simulation.CustomerCount)

	var emailGen email.TextGenerator
	if textChain != nil {
		emailGen = textChain
	}
	emails := email.NewService(emailGen, emailOpts...)
	posts := social.NewService(imageChain, socialOpts...)
	snapshots := snapshot.NewStore(redisClient)
	deploys := deploy.NewService(db, emails, posts, snapshots)

	var contentGen content.TextGenerator
	var agentGen agent.TextGenerator
	if textChain != nil {
		contentGen = textChain
		agentGen = textChain
	}
	contentSvc := content.NewService(contentGen, cfg.Store)
	campaigns := campaign.NewManager()
	marketingAgent := agent.New(cfg.Store, agentGen, campaigns, deploys, contentSvc)
	log.Printf("Marketing agent ready for %s (%s, %s)", cfg.Store.Name, cfg.Store.Type, cfg.Store.Location)

	// Real posting is opt-in; everything else runs simulated
	var pub publisher.Publisher
	if cfg.Publisher.Enabled {
		browser, err := publisher.NewBrowser(cfg.Publisher)
		if err != nil {
			log.Printf("Warning: browser publisher unavailable: %v — posts stay simulated", err)
		} else {
			pub = browser
			log.Println("Browser publisher enabled (facebook)")
		}
	}

	handlers := api.NewHandlers(marketingAgent, campaigns, deploys, db, emails, posts, pub)
	server := api.NewServer(handlers)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", host, port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	log.Println("All services initialized — server is ready")

	<-done
	log.Println("Shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if redisClient != nil {
		redisClient.Close()
	}

	log.Println("Server stopped")
}
