// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"messagely_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じユーザー名が既に存在する場合、ErrUsernameTakenを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// UpdateLastLogin は指定されたユーザーのlast_login_atを現在時刻に更新します。
	UpdateLastLogin(ctx context.Context, username string) error
}

// TokenIssuer は署名付きアイデンティティトークンの発行インターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	// Issue は指定されたユーザー名を主張する署名済みトークンを生成します。
	Issue(username string) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenIssuer
	cost   int
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// costはbcryptのワークファクタで、0以下の場合はbcrypt.DefaultCostを使用します。
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, cost int) *authUsecase {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &authUsecase{
		users:  users,
		tokens: tokens,
		cost:   cost,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、
// last_login_atを更新した上で署名済みトークンを返します。
// ユーザー名が既に使用されている場合はErrUsernameTakenを返します。
func (u *authUsecase) Register(ctx context.Context, username, password, firstName, lastName, phone string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:  username,
		Password:  string(hashed),
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return "", err
	}

	// 登録直後でもログイン扱いとして記録する
	if err := u.users.UpdateLastLogin(ctx, username); err != nil {
		return "", fmt.Errorf("failed to update last login: %w", err)
	}

	token, err := u.tokens.Issue(username)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// Authenticate はユーザー名とパスワードの組み合わせを検証します。
// パスワード不一致はエラーではなくfalseとして返します。
// ユーザーが存在しない場合のみErrUserNotFoundを返します。
// タイミング攻撃を緩和するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Authenticate(ctx context.Context, username, password string) (bool, error) {
	user, err := u.users.FindByUsername(ctx, username)

	// ユーザー未検出時のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	return compareErr == nil, nil
}

// TouchLogin はlast_login_atを現在時刻に更新します。
// 登録直後に呼ばれても安全です。
func (u *authUsecase) TouchLogin(ctx context.Context, username string) error {
	return u.users.UpdateLastLogin(ctx, username)
}

// Login はユーザーを認証し、成功時に署名済みトークンを返します。
// パスワード不一致はErrInvalidCredentials、ユーザー未検出はErrUserNotFoundとなります。
// 成功時はlast_login_atを更新します。
func (u *authUsecase) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := u.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	if err := u.users.UpdateLastLogin(ctx, username); err != nil {
		return "", fmt.Errorf("failed to update last login: %w", err)
	}

	token, err := u.tokens.Issue(username)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
