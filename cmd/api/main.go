package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jaberco/invoicing-api/internal/application/service"
	"github.com/jaberco/invoicing-api/internal/config"
	"github.com/jaberco/invoicing-api/internal/domain/entity"
	"github.com/jaberco/invoicing-api/internal/domain/numbering"
	domainRepo "github.com/jaberco/invoicing-api/internal/domain/repository"
	"github.com/jaberco/invoicing-api/internal/infrastructure/database"
	"github.com/jaberco/invoicing-api/internal/infrastructure/repository"
	"github.com/jaberco/invoicing-api/internal/infrastructure/repository/memory"
	"github.com/jaberco/invoicing-api/internal/presentation/http/handler"
	"github.com/jaberco/invoicing-api/internal/presentation/http/routes"
	"github.com/jaberco/invoicing-api/pkg/printer"
	"github.com/jaberco/invoicing-api/pkg/utils"
	"github.com/spf13/viper"
)

type repositories struct {
	Invoice     domainRepo.InvoiceRepository
	InvoiceItem domainRepo.InvoiceItemRepository
	Company     domainRepo.CompanyRepository
	User        domainRepo.UserRepository
	Idempotency domainRepo.IdempotencyRepository
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	repos, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Select the invoice numbering policy
	policy, err := buildNumberingPolicy(cfg, repos.Invoice)
	if err != nil {
		log.Fatalf("Failed to initialize numbering policy: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(repos.User, jwtManager)
	invoiceService := service.NewInvoiceService(repos.Invoice, repos.InvoiceItem, repos.Company, policy)
	companyService := service.NewCompanyService(repos.Company)
	exportService := service.NewExportService(repos.Invoice)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, repos.Invoice, cfg.Printer.Type)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Invoice: handler.NewInvoiceHandler(invoiceService, exportService),
		Company: handler.NewCompanyHandler(companyService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repos.Idempotency,
	})

	addr := ":" + cfg.App.Port
	log.Printf("Starting %s on %s (storage: %s, numbering: %s)",
		cfg.App.Name, addr, cfg.Storage.Backend, cfg.Numbering.Policy)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildRepositories wires the configured storage backend.
func buildRepositories(cfg *config.Config) (*repositories, error) {
	if cfg.Storage.Backend == "memory" {
		store := memory.NewStore()
		repos := &repositories{
			Invoice:     store.Invoices(),
			InvoiceItem: store.InvoiceItems(),
			Company:     store.Companies(),
			User:        store.Users(),
			Idempotency: store.IdempotencyKeys(),
		}
		if err := seedMemoryAdmin(repos.User); err != nil {
			log.Printf("Warning: Failed to seed admin user: %v", err)
		}
		return repos, nil
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	return &repositories{
		Invoice:     repository.NewInvoiceRepository(db),
		InvoiceItem: repository.NewInvoiceItemRepository(db),
		Company:     repository.NewCompanyRepository(db),
		User:        repository.NewUserRepository(db),
		Idempotency: repository.NewIdempotencyRepository(db),
	}, nil
}

func buildNumberingPolicy(cfg *config.Config, invoiceRepo domainRepo.InvoiceRepository) (numbering.Policy, error) {
	switch cfg.Numbering.Policy {
	case "timestamp":
		return numbering.NewTimestampPolicy(cfg.Numbering.Timezone)
	default:
		return numbering.NewSequentialPolicy(invoiceRepo), nil
	}
}

func seedMemoryAdmin(userRepo domainRepo.UserRepository) error {
	adminUsername := viper.GetString("ADMIN_USERNAME")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	if adminUsername == "" || adminPassword == "" {
		return nil
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		return err
	}
	return userRepo.Create(context.Background(), &entity.User{
		Username: adminUsername,
		Password: hashed,
	})
}
