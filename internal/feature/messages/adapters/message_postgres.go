// Package adapters はmessagesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"messagely_backend/internal/feature/messages/domain/entity"
	"messagely_backend/internal/feature/messages/usecase"
)

// messagePostgres はMessageRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type messagePostgres struct {
	db *gorm.DB
}

// messagePostgresがMessageRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MessageRepository = (*messagePostgres)(nil)

// NewMessagePostgres は指定されたgorm.DB接続でmessagePostgresの新しいインスタンスを生成します。
func NewMessagePostgres(db *gorm.DB) *messagePostgres {
	return &messagePostgres{db: db}
}

// FindSentBy はfrom_usernameが一致するメッセージを返します。
// ORDER BYは指定しません。呼び出し側は順序に依存してはいけません。
func (r *messagePostgres) FindSentBy(ctx context.Context, username string) ([]entity.Message, error) {
	msgs := make([]entity.Message, 0)
	err := r.db.WithContext(ctx).
		Where("from_username = ?", username).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// FindReceivedBy はto_usernameが一致するメッセージを返します。
func (r *messagePostgres) FindReceivedBy(ctx context.Context, username string) ([]entity.Message, error) {
	msgs := make([]entity.Message, 0)
	err := r.db.WithContext(ctx).
		Where("to_username = ?", username).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
