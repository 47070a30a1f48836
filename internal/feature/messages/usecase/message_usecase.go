// Package usecase はmessagesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	"messagely_backend/internal/feature/messages/domain/entity"
	usersentity "messagely_backend/internal/feature/users/domain/entity"
)

// MessageRepository はメッセージ行の読み取り専用永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type MessageRepository interface {
	// FindSentBy はfrom_usernameが一致するメッセージを返します。順序は保証されません。
	FindSentBy(ctx context.Context, username string) ([]entity.Message, error)

	// FindReceivedBy はto_usernameが一致するメッセージを返します。順序は保証されません。
	FindReceivedBy(ctx context.Context, username string) ([]entity.Message, error)
}

// ProfileDirectory はメッセージの相手プロフィールを一括解決するディレクトリを抽象化します。
// 実装はusersフィーチャーのリポジトリ、またはそれをラップするキャッシュデコレータです。
type ProfileDirectory interface {
	// FindByUsernames は指定されたユーザー名集合の基本プロフィールを
	// ユーザー名をキーとするマップで返します。
	FindByUsernames(ctx context.Context, usernames []string) (map[string]usersentity.Profile, error)
}

// SentMessage はあるユーザーが送信したメッセージに受信者プロフィールを付与した射影です。
type SentMessage struct {
	ID     uint                `json:"id"`
	Body   string              `json:"body"`
	SentAt time.Time           `json:"sent_at"`
	ReadAt *time.Time          `json:"read_at"`
	ToUser usersentity.Profile `json:"to_user"`
}

// ReceivedMessage はあるユーザーが受信したメッセージに送信者プロフィールを付与した射影です。
type ReceivedMessage struct {
	ID       uint                `json:"id"`
	Body     string              `json:"body"`
	SentAt   time.Time           `json:"sent_at"`
	ReadAt   *time.Time          `json:"read_at"`
	FromUser usersentity.Profile `json:"from_user"`
}

// messageUsecase はメッセージ射影のビジネスロジックを実装します。
type messageUsecase struct {
	messages MessageRepository
	profiles ProfileDirectory
}

// NewMessageUsecase はmessageUsecaseの新しいインスタンスを生成します。
func NewMessageUsecase(messages MessageRepository, profiles ProfileDirectory) *messageUsecase {
	return &messageUsecase{
		messages: messages,
		profiles: profiles,
	}
}

// SentBy は指定されたユーザーが送信したメッセージを受信者プロフィール付きで返します。
// プロフィール解決はメッセージごとではなく、重複を除いた一括問い合わせで行います。
// メッセージが存在しない場合は空のスライスを返します。
func (u *messageUsecase) SentBy(ctx context.Context, username string) ([]SentMessage, error) {
	msgs, err := u.messages.FindSentBy(ctx, username)
	if err != nil {
		return nil, err
	}

	counterparts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		counterparts = append(counterparts, m.ToUsername)
	}
	profiles, err := u.lookupProfiles(ctx, counterparts)
	if err != nil {
		return nil, err
	}

	out := make([]SentMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, SentMessage{
			ID:     m.ID,
			Body:   m.Body,
			SentAt: m.SentAt,
			ReadAt: m.ReadAt,
			ToUser: profileOrFallback(profiles, m.ToUsername),
		})
	}
	return out, nil
}

// ReceivedBy は指定されたユーザーが受信したメッセージを送信者プロフィール付きで返します。
// SentByの対称形です。
func (u *messageUsecase) ReceivedBy(ctx context.Context, username string) ([]ReceivedMessage, error) {
	msgs, err := u.messages.FindReceivedBy(ctx, username)
	if err != nil {
		return nil, err
	}

	counterparts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		counterparts = append(counterparts, m.FromUsername)
	}
	profiles, err := u.lookupProfiles(ctx, counterparts)
	if err != nil {
		return nil, err
	}

	out := make([]ReceivedMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ReceivedMessage{
			ID:       m.ID,
			Body:     m.Body,
			SentAt:   m.SentAt,
			ReadAt:   m.ReadAt,
			FromUser: profileOrFallback(profiles, m.FromUsername),
		})
	}
	return out, nil
}

// lookupProfiles は重複を除いたユーザー名集合でディレクトリを一括照会します。
func (u *messageUsecase) lookupProfiles(ctx context.Context, usernames []string) (map[string]usersentity.Profile, error) {
	if len(usernames) == 0 {
		return map[string]usersentity.Profile{}, nil
	}

	seen := make(map[string]struct{}, len(usernames))
	unique := make([]string, 0, len(usernames))
	for _, name := range usernames {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}

	return u.profiles.FindByUsernames(ctx, unique)
}

// profileOrFallback はディレクトリに見つからなかった相手をユーザー名のみのプロフィールで埋めます。
// 外部キー制約により通常は到達しません。
func profileOrFallback(profiles map[string]usersentity.Profile, username string) usersentity.Profile {
	if p, ok := profiles[username]; ok {
		return p
	}
	return usersentity.Profile{Username: username}
}
