// Command token issues and revokes access tokens for operators and local development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/campus/backend/internal/infrastructure/auth"
	"github.com/campus/backend/internal/infrastructure/config"
	"github.com/campus/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type permissionList []string

func (p *permissionList) String() string { return strings.Join(*p, ",") }

func (p *permissionList) Set(v string) error {
	for _, perm := range strings.Split(v, ",") {
		if perm = strings.TrimSpace(perm); perm != "" {
			*p = append(*p, perm)
		}
	}
	return nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	switch os.Args[1] {
	case "issue":
		err = issue(cfg, os.Args[2:])
	case "revoke":
		err = revoke(cfg, os.Args[2:], log)
	case "revoke-user":
		err = revokeUser(cfg, os.Args[2:], log)
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal("Command failed", zap.String("command", os.Args[1]), zap.Error(err))
	}
}

func issue(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("issue", flag.ExitOnError)
	var perms permissionList
	fs.Var(&perms, "perm", "Permission to grant, e.g. term:read or term:* (repeatable, comma separated)")
	tenant := fs.String("tenant", "", "Tenant ID; empty issues a token that is not bound to a tenant")
	user := fs.String("user", "", "User ID (default: random)")
	username := fs.String("username", "operator", "Username claim")
	ttl := fs.Duration("ttl", 0, "Token lifetime (default: jwt.access_token_expiration)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := auth.GenerateTokenInput{
		UserID:      uuid.New(),
		Username:    *username,
		Permissions: perms,
		TTL:         *ttl,
	}
	if *tenant != "" {
		id, err := uuid.Parse(*tenant)
		if err != nil {
			return fmt.Errorf("invalid tenant id: %w", err)
		}
		input.TenantID = id
	}
	if *user != "" {
		id, err := uuid.Parse(*user)
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		input.UserID = id
	}

	token, err := auth.NewJWTService(cfg.JWT).GenerateAccessToken(input)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(token)
}

func revoke(cfg *config.Config, args []string, log *zap.Logger) error {
	fs := flag.NewFlagSet("revoke", flag.ExitOnError)
	jti := fs.String("jti", "", "Token ID to revoke")
	ttl := fs.Duration("ttl", 0, "How long to keep the revocation (default: jwt.access_token_expiration)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *jti == "" {
		return fmt.Errorf("-jti is required")
	}
	return withBlacklist(cfg, func(ctx context.Context, b *auth.RedisTokenBlacklist) error {
		if err := b.Revoke(ctx, *jti, revocationTTL(cfg, *ttl)); err != nil {
			return err
		}
		log.Info("Token revoked", zap.String("jti", *jti))
		return nil
	})
}

func revokeUser(cfg *config.Config, args []string, log *zap.Logger) error {
	fs := flag.NewFlagSet("revoke-user", flag.ExitOnError)
	user := fs.String("user", "", "User whose tokens are revoked")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := uuid.Parse(*user); err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	return withBlacklist(cfg, func(ctx context.Context, b *auth.RedisTokenBlacklist) error {
		if err := b.RevokeUser(ctx, *user, revocationTTL(cfg, 0)); err != nil {
			return err
		}
		log.Info("User tokens revoked", zap.String("user_id", *user))
		return nil
	})
}

// revocationTTL keeps a revocation at least as long as any token issued before it
func revocationTTL(cfg *config.Config, ttl time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return cfg.JWT.AccessTokenExpiration
}

func withBlacklist(cfg *config.Config, fn func(context.Context, *auth.RedisTokenBlacklist) error) error {
	if !cfg.Redis.Enabled {
		return fmt.Errorf("redis is disabled; revocations only reach running servers through redis")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	b, err := auth.NewRedisTokenBlacklist(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(ctx, b)
}

func printUsage() {
	fmt.Println(`Campus access token tool

Usage:
  token issue [-perm <p>]... [-tenant <id>] [-user <id>] [-username <name>] [-ttl <d>]
  token revoke -jti <id> [-ttl <d>]
  token revoke-user -user <id>

Permissions take the form <entity>:<create|read|update|delete>, <entity>:* or *.
Signing settings come from config.toml or CAMPUS_JWT_* variables.`)
}
