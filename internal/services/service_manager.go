package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/student-admin-service/internal/auth"
	"github.com/SAP-F-2025/student-admin-service/internal/cache"
	"github.com/SAP-F-2025/student-admin-service/internal/events"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
	"github.com/SAP-F-2025/student-admin-service/internal/storage"
	"github.com/SAP-F-2025/student-admin-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	EnableDebugLogging bool
	LogLevel           slog.Level

	// Token lifetimes
	SessionTokenTTL    time.Duration
	AssignmentTokenTTL time.Duration

	// Global settings
	DefaultTimeout time.Duration
}

// Dependencies bundles everything the services need.
type Dependencies struct {
	Repo             repositories.Repository
	FileStore        storage.FileStore
	CacheManager     *cache.CacheManager
	Publisher        events.EventPublisher
	SessionIssuer    *auth.SessionIssuer
	AssignmentIssuer *auth.AssignmentIssuer
	FrontendBaseURL  string
	Logger           *slog.Logger
	Validator        *validator.Validator
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	deps   Dependencies
	config ServiceManagerConfig

	// Service instances
	authService        AuthService
	studentService     StudentService
	tutorService       TutorService
	certificateService CertificateService
	dashboardService   DashboardService
	exportService      ExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(deps Dependencies, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		deps:   deps,
		config: config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(deps Dependencies) ServiceManager {
	config := ServiceManagerConfig{
		EnableDebugLogging: false,
		LogLevel:           slog.LevelInfo,
		SessionTokenTTL:    24 * time.Hour,
		AssignmentTokenTTL: 7 * 24 * time.Hour,
		DefaultTimeout:     30 * time.Second,
	}

	return NewServiceManager(deps, config)
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if sm.deps.Repo == nil {
		return fmt.Errorf("repository is required")
	}
	if sm.deps.FileStore == nil {
		return fmt.Errorf("file store is required")
	}
	if sm.deps.SessionIssuer == nil || sm.deps.AssignmentIssuer == nil {
		return fmt.Errorf("token issuers are required")
	}

	sm.deps.Logger.Info("Initializing service manager")

	sm.authService = NewAuthService(
		sm.deps.Repo,
		sm.deps.SessionIssuer,
		sm.deps.AssignmentIssuer,
		sm.deps.Logger,
		sm.deps.Validator,
	)
	sm.studentService = NewStudentService(
		sm.deps.Repo,
		sm.deps.FileStore,
		sm.deps.CacheManager,
		sm.deps.Publisher,
		sm.deps.Logger,
		sm.deps.Validator,
	)
	sm.tutorService = NewTutorService(
		sm.deps.Repo,
		sm.deps.FileStore,
		sm.deps.CacheManager,
		sm.deps.Logger,
		sm.deps.Validator,
	)
	sm.certificateService = NewCertificateService(
		sm.deps.Repo,
		sm.deps.FileStore,
		sm.deps.Publisher,
		sm.deps.FrontendBaseURL,
		sm.deps.Logger,
	)
	sm.dashboardService = NewDashboardService(sm.deps.Repo, sm.deps.Logger)
	sm.exportService = NewExportService(sm.deps.Repo, sm.deps.Logger)

	sm.initialized = true
	sm.deps.Logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.studentService
}

func (sm *serviceManager) Tutor() TutorService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.tutorService
}

func (sm *serviceManager) Certificate() CertificateService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.certificateService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.dashboardService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.exportService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	if sm.deps.Publisher != nil {
		if err := sm.deps.Publisher.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close event publisher", "error", err)
		}
	}

	if err := sm.deps.Repo.Close(); err != nil {
		sm.deps.Logger.Error("Failed to close repository connections", "error", err)
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down completed")

	return nil
}

// WithTimeout creates a context with the default timeout
func (sm *serviceManager) WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, sm.config.DefaultTimeout)
}
