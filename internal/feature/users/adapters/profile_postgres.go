// Package adapters はusersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"messagely_backend/internal/feature/users/domain/entity"
	"messagely_backend/internal/feature/users/usecase"
)

// profilePostgres はProfileRepositoryインターフェースのPostgreSQL実装です。
// authフィーチャーが所有するusersテーブルを読み取り専用で参照します。
type profilePostgres struct {
	db *gorm.DB
}

// profilePostgresがProfileRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ProfileRepository = (*profilePostgres)(nil)

// NewProfilePostgres は指定されたgorm.DB接続でprofilePostgresの新しいインスタンスを生成します。
func NewProfilePostgres(db *gorm.DB) *profilePostgres {
	return &profilePostgres{db: db}
}

// ListAll は全ユーザーの基本プロフィールを返します。
// ハッシュ化パスワードを含む列は選択しません。
func (r *profilePostgres) ListAll(ctx context.Context) ([]entity.Profile, error) {
	profiles := make([]entity.Profile, 0)
	err := r.db.WithContext(ctx).
		Table("users").
		Select("username", "first_name", "last_name", "phone").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// FindDetail はユーザー名で詳細プロフィールを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *profilePostgres) FindDetail(ctx context.Context, username string) (*entity.ProfileDetail, error) {
	var d entity.ProfileDetail
	err := r.db.WithContext(ctx).
		Table("users").
		Select("username", "first_name", "last_name", "phone", "join_at", "last_login_at").
		Where("username = ?", username).
		Take(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindByUsernames は指定されたユーザー名集合の基本プロフィールを一括取得し、
// ユーザー名をキーとするマップで返します。存在しないユーザー名は単に結果に含まれません。
// メッセージ射影の宛先・送信元プロフィール展開（messagesフィーチャー）が利用します。
func (r *profilePostgres) FindByUsernames(ctx context.Context, usernames []string) (map[string]entity.Profile, error) {
	out := make(map[string]entity.Profile, len(usernames))
	if len(usernames) == 0 {
		return out, nil
	}

	var rows []entity.Profile
	err := r.db.WithContext(ctx).
		Table("users").
		Select("username", "first_name", "last_name", "phone").
		Where("username IN ?", usernames).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, p := range rows {
		out[p.Username] = p
	}
	return out, nil
}
