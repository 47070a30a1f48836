// Package usecase はusersフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	"messagely_backend/internal/feature/users/domain/entity"
)

// ErrUserNotFound is returned when no profile exists for the given username.
var ErrUserNotFound = errors.New("user not found")

// ProfileRepository はユーザープロフィールの読み取り専用永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ProfileRepository interface {
	// ListAll はすべてのユーザーの基本プロフィールを返します。順序は保証されません。
	ListAll(ctx context.Context) ([]entity.Profile, error)

	// FindDetail は指定されたユーザー名の詳細プロフィールを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindDetail(ctx context.Context, username string) (*entity.ProfileDetail, error)
}

// userUsecase はプロフィール読み取りのビジネスロジックを実装します。
type userUsecase struct {
	profiles ProfileRepository
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(profiles ProfileRepository) *userUsecase {
	return &userUsecase{profiles: profiles}
}

// ListAll は全ユーザーの基本プロフィールを返します。
// ユーザーが存在しない場合は空のスライスを返します。
func (u *userUsecase) ListAll(ctx context.Context) ([]entity.Profile, error) {
	return u.profiles.ListAll(ctx)
}

// GetDetail は指定されたユーザー名の詳細プロフィールを返します。
func (u *userUsecase) GetDetail(ctx context.Context, username string) (*entity.ProfileDetail, error) {
	return u.profiles.FindDetail(ctx, username)
}
