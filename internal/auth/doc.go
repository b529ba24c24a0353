// Package auth provides authentication for the application: bcrypt password
// hashing, signed expiring bearer tokens and the request middleware that
// resolves a token back to a user.
//
// Two token types exist and are never interchangeable:
//   - "access": short-lived (30m default), authorizes protected requests
//   - "confirmation": longer-lived (24h default), proves email ownership and
//     is only accepted by the confirmation endpoint
//
// Tokens are stateless HS256 JWTs carrying sub, exp and type claims. There
// is no server-side revocation: once issued, a token stays valid until its
// expiry.
//
// # Configuration
//
// The signing secret and TTLs come from the environment:
//
//	JWT_SECRET_KEY=<required>
//	JWT_ACCESS_TOKEN_TTL=30m
//	JWT_CONFIRMATION_TOKEN_TTL=24h
//	AUTH_BCRYPT_COST=12
//
// # Usage
//
// Wire the service in entrypoint:
//
//	codec := auth.NewTokenCodec(cfg.JWT.SecretKey, auth.NewTTLPolicy(cfg.JWT.AccessTokenTTL, cfg.JWT.ConfirmationTokenTTL))
//	service := auth.NewService(userRepo, codec, cfg.Auth.BcryptCost)
//	protected.Use(auth.NewMiddleware(service).RequireUser())
//
// Extract the user in handlers:
//
//	user, ok := auth.CurrentUser(c)
package auth
