// Package auth guards the desk with an optional operator login.
//
// Two modes are supported:
//   - "none": no login (default); every request runs as DefaultUserID
//   - "local": a single operator account created on first run through /setup
//
// # Configuration
//
//	AUTH_MODE=local
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # Auto-generated if empty
//	AUTH_SESSION_LIFETIME=12h
//	AUTH_BCRYPT_COST=12
//	AUTH_SECURE_COOKIES=true            # HTTPS-only cookies
//	AUTH_MAX_LOGIN_ATTEMPTS=5
//	AUTH_LOCKOUT_DURATION=15m
//
// Sessions live in the same SQLite file as the fleet data (sessions table),
// so a restart does not log the operator out.
//
// # Usage
//
//	svc := auth.NewService(db.DB, cfg.Auth)
//	sm, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	router.Use(sm.SessionLoadSave(), auth.NewMiddleware(svc, sm, cfg.Auth).Handler())
package auth
