// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"messagely_backend/internal/feature/users/domain/entity"
	"messagely_backend/internal/feature/users/usecase"
)

// UserUsecase はプロフィール読み取りのユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type UserUsecase interface {
	ListAll(ctx context.Context) ([]entity.Profile, error)
	GetDetail(ctx context.Context, username string) (*entity.ProfileDetail, error)
}

// UserHandler はプロフィール読み取りのHTTPリクエストを処理します。
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler は新しい UserHandler を作成します。
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List は全ユーザーの基本プロフィール一覧を取得するAPIです。
// Usecaseでエラーが発生した場合は500 Internal Server Errorを返します。
func (h *UserHandler) List(c *gin.Context) {
	profiles, err := h.uc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// Get はパスパラメータで指定されたユーザーの詳細プロフィールを取得するAPIです。
// ユーザーが存在しない場合は404を返します。
func (h *UserHandler) Get(c *gin.Context) {
	username := c.Param("username")
	detail, err := h.uc.GetDetail(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}
	c.JSON(http.StatusOK, detail)
}
