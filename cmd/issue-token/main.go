package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/startupquest/quest-api/internal/config"
	"github.com/startupquest/quest-api/internal/pkg/jwt"
)

// issue-token prints a signed access token, e.g. for the minting worker:
//
//	go run ./cmd/issue-token -role minter -ttl 720h
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	userFlag := flag.String("user", "", "user id (random when empty)")
	role := flag.String("role", jwt.RoleFounder, "founder, minter or admin")
	ttl := flag.Duration("ttl", 0, "token lifetime (JWT_ACCESS_TTL when zero)")
	flag.Parse()

	switch *role {
	case jwt.RoleFounder, jwt.RoleMinter, jwt.RoleAdmin:
	default:
		log.Fatal().Str("role", *role).Msg("Unknown role")
	}

	userID := uuid.New()
	if *userFlag != "" {
		parsed, err := uuid.Parse(*userFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid user id")
		}
		userID = parsed
	}

	cfg := config.Load()
	svc := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = svc.GetAccessTTL()
	}

	token, err := svc.GenerateAccessTokenTTL(userID, *role, lifetime)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to sign token")
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("role", *role).
		Time("expires_at", time.Now().Add(lifetime)).
		Msg("Issued access token")
	fmt.Println(token)
}
