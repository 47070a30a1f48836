// Package handler はmessagesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"messagely_backend/internal/feature/messages/usecase"
)

// MessageUsecase はメッセージ射影のユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type MessageUsecase interface {
	SentBy(ctx context.Context, username string) ([]usecase.SentMessage, error)
	ReceivedBy(ctx context.Context, username string) ([]usecase.ReceivedMessage, error)
}

// MessageHandler はメッセージ射影のHTTPリクエストを処理します。
// 所有者チェックはルータ側のガードミドルウェアが担うため、ここでは行いません。
type MessageHandler struct {
	uc MessageUsecase
}

// NewMessageHandler は新しい MessageHandler を作成します。
func NewMessageHandler(uc MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

// SentBy はパスパラメータで指定されたユーザーが送信したメッセージ一覧を取得するAPIです。
// 各メッセージには受信者の基本プロフィールが付与されます。
func (h *MessageHandler) SentBy(c *gin.Context) {
	username := c.Param("username")
	msgs, err := h.uc.SentBy(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// ReceivedBy はパスパラメータで指定されたユーザーが受信したメッセージ一覧を取得するAPIです。
// 各メッセージには送信者の基本プロフィールが付与されます。
func (h *MessageHandler) ReceivedBy(c *gin.Context) {
	username := c.Param("username")
	msgs, err := h.uc.ReceivedBy(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, msgs)
}
