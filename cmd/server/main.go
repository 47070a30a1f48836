package main

import (
	"log"
	"os"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"messagely_backend/internal/app/router"
	authadapters "messagely_backend/internal/feature/auth/adapters"
	authhandler "messagely_backend/internal/feature/auth/transport/handler"
	authusecase "messagely_backend/internal/feature/auth/usecase"
	messageadapters "messagely_backend/internal/feature/messages/adapters"
	messagehandler "messagely_backend/internal/feature/messages/transport/handler"
	messageusecase "messagely_backend/internal/feature/messages/usecase"
	useradapters "messagely_backend/internal/feature/users/adapters"
	userhandler "messagely_backend/internal/feature/users/transport/handler"
	userusecase "messagely_backend/internal/feature/users/usecase"
	"messagely_backend/internal/platform/cache"
	infradb "messagely_backend/internal/platform/db"
	jwtmw "messagely_backend/internal/platform/jwt"
	infraredis "messagely_backend/internal/platform/redis"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// トークン有効期限（デフォルト24時間）
	expiration := 24 * time.Hour
	if v := os.Getenv("JWT_EXPIRATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			expiration = d
		} else {
			log.Printf("[WARN] Invalid JWT_EXPIRATION %q. Using default %v.", v, expiration)
		}
	}
	tokens := jwtmw.NewManager(secret, expiration)

	// bcryptワークファクタ（デフォルトはbcrypt.DefaultCost）
	cost := bcrypt.DefaultCost
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cost = n
		}
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	profileRepo := useradapters.NewProfilePostgres(db)
	messageRepo := messageadapters.NewMessagePostgres(db)

	// メッセージ射影の相手プロフィール解決をRedisキャッシュでラップ
	cachedProfiles := cache.NewCachingProfileDirectory(rdb, 15*time.Minute, profileRepo, "profiles")

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, cost)
	userUC := userusecase.NewUserUsecase(profileRepo)
	messageUC := messageusecase.NewMessageUsecase(messageRepo, cachedProfiles)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	userH := userhandler.NewUserHandler(userUC)
	messageH := messagehandler.NewMessageHandler(messageUC)

	// ルータ生成
	router := router.NewRouter(tokens, authH, userH, messageH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
