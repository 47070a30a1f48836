package router

import (
	authhandler "messagely_backend/internal/feature/auth/transport/handler"
	messagehandler "messagely_backend/internal/feature/messages/transport/handler"
	userhandler "messagely_backend/internal/feature/users/transport/handler"
	jwtmw "messagely_backend/internal/platform/jwt"
	"messagely_backend/internal/platform/http/handler"

	"github.com/gin-gonic/gin"
)

func NewRouter(verifier jwtmw.Verifier, authHandler *authhandler.AuthHandler,
	users *userhandler.UserHandler, messages *messagehandler.MessageHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録（JWT 発行）
	r.POST("/register", authHandler.Register)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// アイデンティティ解決のみを行うルートグループ
	// jwtmw.Identify() はトークンが不正でもリクエストを拒否しない
	// アクセス判定は各ルートのガード（RequireAuth / RequireOwner）が行う
	api := r.Group("/")
	api.Use(jwtmw.Identify(verifier))
	{
		// 認証済みなら誰でも閲覧可能
		api.GET("/users", jwtmw.RequireAuth(), users.List)

		// 本人のみ閲覧可能
		api.GET("/users/:username", jwtmw.RequireOwner("username"), users.Get)
		api.GET("/users/:username/to", jwtmw.RequireOwner("username"), messages.ReceivedBy)
		api.GET("/users/:username/from", jwtmw.RequireOwner("username"), messages.SentBy)
	}

	return r
}
