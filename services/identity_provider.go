package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleIssuer = "https://accounts.google.com"

// IdentityProvider drives an authorization-code sign-in with an external provider.
type IdentityProvider interface {
	// AuthCodeURL is the consent page the browser is redirected to.
	AuthCodeURL(state string) string
	// Exchange trades the callback code for a verified identity.
	Exchange(ctx context.Context, code string) (Identity, error)
}

// GoogleClaims contains the profile claims we read from a Google ID token.
type GoogleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// Validate requires the email claim, which the "email" scope always grants.
func (c *GoogleClaims) Validate(ctx context.Context) error {
	if c.Email == "" {
		return fmt.Errorf("id token has no email claim")
	}
	return nil
}

// GoogleProviderConfig configures a GoogleProvider. Endpoint, Issuer and
// KeyFunc default to Google's production values.
type GoogleProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	Endpoint oauth2.Endpoint
	Issuer   string
	KeyFunc  func(context.Context) (interface{}, error)
}

// GoogleProvider implements IdentityProvider for Google sign-in.
type GoogleProvider struct {
	oauth     *oauth2.Config
	validator *validator.Validator
}

// NewGoogleProvider sets up the OAuth client and the ID token validator.
// Google's signing keys are fetched through a caching JWKS provider.
func NewGoogleProvider(cfg GoogleProviderConfig) (*GoogleProvider, error) {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = google.Endpoint
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = googleIssuer
	}

	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		issuerURL, err := url.Parse(issuer + "/")
		if err != nil {
			return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
		}
		keyFunc = jwks.NewCachingProvider(issuerURL, 5*time.Minute).KeyFunc
	}

	idTokenValidator, err := validator.New(
		keyFunc,
		validator.RS256,
		issuer,
		[]string{cfg.ClientID},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &GoogleClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the id token validator: %w", err)
	}

	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"openid", "profile", "email"},
		},
		validator: idTokenValidator,
	}, nil
}

func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

func (p *GoogleProvider) Exchange(ctx context.Context, code string) (Identity, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return Identity{}, fmt.Errorf("token response has no id_token")
	}

	claims, err := p.validator.ValidateToken(ctx, rawIDToken)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to validate id token: %w", err)
	}

	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return Identity{}, fmt.Errorf("unexpected claims type %T", claims)
	}
	profile, ok := validated.CustomClaims.(*GoogleClaims)
	if !ok {
		return Identity{}, fmt.Errorf("unexpected custom claims type %T", validated.CustomClaims)
	}

	return Identity{
		Subject: validated.RegisteredClaims.Subject,
		Email:   profile.Email,
		Name:    profile.Name,
	}, nil
}
