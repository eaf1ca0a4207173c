package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"goseller/config"
	"goseller/internal/gateway"
	"goseller/internal/pkg/cache"
	"goseller/internal/pkg/database"
	"goseller/internal/pkg/logger"
	"goseller/internal/pkg/notify"
	"goseller/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"goseller/internal/api/authoring"
	"goseller/internal/api/catalog"
	"goseller/internal/api/inventory"
	"goseller/internal/api/review"
	"goseller/internal/api/router"
	"goseller/internal/repository/catalogrepo"
	"goseller/internal/repository/productrepo"
	"goseller/internal/repository/reviewrepo"
	"goseller/internal/repository/snapshotrepo"
	"goseller/internal/service/authoringservice"
	"goseller/internal/service/catalogservice"
	"goseller/internal/service/inventoryservice"
	"goseller/internal/service/reviewservice"
)

func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando portal GoSeller...")

	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	if err := godotenv.Load(); err != nil {
		// Variáveis essenciais podem estar no ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL) — snapshots de sessão
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Conexão Redis estabelecida.", nil)

	// C. Gateway HTTP do marketplace
	gw := gateway.NewClient(cfg.MarketplaceAPIURL, cfg.GatewayTimeout, log)
	log.Info("Gateway do marketplace configurado.", map[string]interface{}{"base_url": cfg.MarketplaceAPIURL})

	// D. Portas transversais (notificação e invalidação de cache)
	notifier := notify.NewLogNotifier(log)
	invalidator := cache.NewInvalidator(cacheClient, log)

	// 3. INJEÇÃO DE DEPENDÊNCIAS (Montagem da Clean Architecture)
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios (Camada de Acesso a Dados)
	productRepo := productrepo.NewProductRepository(gw, log)
	catalogRepo := catalogrepo.NewCatalogRepository(gw, cacheClient, log)
	reviewRepo := reviewrepo.NewReviewRepository(gw, log)
	snapshotRepo := snapshotrepo.NewSnapshotRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	// B. Serviços (Camada de Lógica de Negócio)
	catalogSvc := catalogservice.NewCatalogService(catalogRepo, log)
	authoringSvc := authoringservice.NewService(productRepo, catalogSvc, snapshotRepo, notifier, invalidator, log)
	inventorySvc := inventoryservice.NewInventoryService(productRepo, invalidator, notifier, log)
	reviewSvc := reviewservice.NewReviewService(reviewRepo, invalidator, notifier, log)
	log.Debug("Serviços inicializados.", nil)

	// C. Serviço de Tokens (JWT) — tokens emitidos pelo sistema de auth externo
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	log.Debug("Serviço de Tokens JWT inicializado.", nil)

	// D. Handlers (Camada de Apresentação)
	authoringHandler := authoring.NewHandler(authoringSvc, log)
	catalogHandler := catalog.NewHandler(catalogSvc, log)
	inventoryHandler := inventory.NewHandler(inventorySvc, log)
	reviewHandler := review.NewHandler(reviewSvc, log)
	log.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(router.Config{
		Authoring:    authoringHandler,
		Catalog:      catalogHandler,
		Inventory:    inventoryHandler,
		Review:       reviewHandler,
		TokenService: tokenSvc,
		Cache:        cacheClient,
		RateLimit:    cfg.RateLimitMaxRequests,
		RateWindow:   cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Portal GoSeller ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	// Lógica do Graceful Shutdown (captura de sinal)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
