package routes

import (
	"context"
	"fmt"
	"log"

	"github.com/road-estimator/road-estimator-api/config"
	"github.com/road-estimator/road-estimator-api/services"
	"gorm.io/gorm"
)

// Dependencies are the long-lived collaborators the routes are built from.
type Dependencies struct {
	Config           *config.Config
	Auth             *services.AuthService
	IdentityProvider services.IdentityProvider // nil when Google sign-in is disabled
}

// BuildDependencies wires the services for cfg on top of db. The returned
// func releases connections opened here.
func BuildDependencies(ctx context.Context, cfg *config.Config, db *gorm.DB) (*Dependencies, func(), error) {
	cleanup := func() {}

	var sessions services.SessionStore
	switch cfg.SessionStore {
	case "redis":
		client, err := config.ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() {
			if err := client.Close(); err != nil {
				log.Printf("warning: failed to close redis client: %v", err)
			}
		}
		sessions = services.NewRedisSessionStore(client)
	default:
		sessions = services.NewGormSessionStore(db)
	}

	users := services.NewGormUserStore(db)
	auth := services.NewAuthService(services.AuthServiceConfig{
		Users:      users,
		Sessions:   sessions,
		Verifier:   services.NewBcryptVerifier(0),
		SessionTTL: cfg.SessionTTL,
	})

	deps := &Dependencies{Config: cfg, Auth: auth}

	if cfg.GoogleEnabled() {
		provider, err := services.NewGoogleProvider(services.GoogleProviderConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleCallbackURL,
		})
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("failed to configure Google sign-in: %w", err)
		}
		deps.IdentityProvider = provider
	} else {
		log.Println("GOOGLE_CLIENT_ID not set, Google sign-in disabled")
	}

	if cfg.ReportArchiveEnabled() {
		s3Service, err := services.InitS3Service(ctx, cfg)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		services.InitReportArchive(s3Service)
	} else {
		services.SetReportArchive(nil)
		log.Println("AWS_S3_BUCKET not set, report export disabled")
	}

	return deps, cleanup, nil
}
