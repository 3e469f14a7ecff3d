package usecase

import (
	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/token"

	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	// 400 入力不足・形式不正
	ErrValidation = errors.New("validation error")
	// email重複（HTTPは400で返す。既存の挙動を維持）
	ErrEmailTaken = errors.New("user with this email already exists")
	// 401 ログイン失敗。email不明とパスワード違いを区別しない
	ErrInvalidCredentials = errors.New("invalid email or password")
	// 401 refresh tokenが無効（不明・revoke済み・期限切れをまとめる）
	ErrInvalidToken = errors.New("invalid refresh token")
	// 401 token検証後にユーザーがいない（孤児token）
	ErrUserNotFound = errors.New("user not found")
	// 500
	ErrInternal = errors.New("internal error")
)

// refreshtokenの有効期限
const refreshTokenTTL = 7 * 24 * time.Hour

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, email string, password string, role string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

type LoginOutput struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	User         model.SafeUser `json:"user"`
	ExpiresIn    int            `json:"expiresIn"`
}

type RefreshOutput struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

// AuthUsecaseは登録・ログイン・refresh・logout・APIキー発行をまとめる。
// 自前の状態は持たない（storeとcodecに委譲）。ログも書かない。
type AuthUsecase struct {
	users     repository.UserRepository
	rtRepo    repository.RefreshTokenRepository
	codec     *token.Codec
	validator AuthValidator
}

func NewAuthUsecase(
	users repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	codec *token.Codec,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		rtRepo:    rtRepo,
		codec:     codec,
		validator: validator,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*model.SafeUser, error) {
	if in.Role == "" {
		in.Role = string(model.RoleUser)
	}

	// 入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, in.Email, in.Password, in.Role); err != nil {
		return nil, err
	}

	// email重複チェック
	existing, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, ErrInternal
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	// パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrInternal
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: string(pwHash),
		Role:         model.Role(in.Role),
		IsActive:     true,
	}

	// unique制約違反は重複として扱う（チェックとの競合時）
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, ErrInternal
	}

	safe := user.Safe()
	return &safe, nil
}

func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (*LoginOutput, error) {
	if err := u.validator.ValidateLogin(ctx, email, password); err != nil {
		return nil, err
	}

	// ユーザー取得。見つからない場合も返答は同じにする（列挙対策）
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInternal
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// 停止ユーザーも同じ返答（アカウントの状態を漏らさない）
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	// パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	_ = u.users.UpdateLastLogin(ctx, user.ID, now)

	// access token発行
	accessToken, err := u.codec.MintAccess(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, ErrInternal
	}

	// refresh token発行（opaqueな64hex。DBに保存）
	refreshToken, err := u.codec.NewRefreshToken()
	if err != nil {
		return nil, ErrInternal
	}

	rt := &model.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: now.Add(refreshTokenTTL),
	}

	if err := u.rtRepo.Create(ctx, rt); err != nil {
		return nil, ErrInternal
	}

	return &LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Safe(),
		ExpiresIn:    int(u.codec.AccessTTL().Seconds()),
	}, nil
}

// Refreshは有効なrefresh tokenと引き換えに新しいaccess tokenを返す。
// refresh token自体は回転しない（使い回し許容。方針はDESIGN.md参照）。
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*RefreshOutput, error) {
	if refreshToken == "" {
		return nil, ErrValidation
	}

	// 不明・revoke済み・期限切れはSQL側でまとめて除外される
	rt, err := u.rtRepo.FindValidByToken(ctx, refreshToken, time.Now())
	if err != nil {
		return nil, ErrInternal
	}
	if rt == nil {
		return nil, ErrInvalidToken
	}

	user, err := u.users.FindByID(ctx, rt.UserID)
	if err != nil {
		return nil, ErrInternal
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	accessToken, err := u.codec.MintAccess(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, ErrInternal
	}

	return &RefreshOutput{
		AccessToken: accessToken,
		ExpiresIn:   int(u.codec.AccessTTL().Seconds()),
	}, nil
}

// Logoutは一致するrefresh tokenを1件revokeする。
// すでにrevoke済み・存在しない場合はエラー（2回目のlogoutは失敗する）。
func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrValidation
	}

	if err := u.rtRepo.Revoke(ctx, refreshToken); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return ErrInvalidToken
		}
		return ErrInternal
	}

	return nil
}

// LogoutAllは指定ユーザーのrefresh tokenを全てrevokeする（全端末ログアウト）。
func (u *AuthUsecase) LogoutAll(ctx context.Context, userID int64) (int64, error) {
	count, err := u.rtRepo.RevokeAllByUserID(ctx, userID)
	if err != nil {
		return 0, ErrInternal
	}
	return count, nil
}

// GenerateApiKeyは新しいAPIキーを発行して前のキーを上書きする。
// 平文キーを返すのはこの一度だけ（以後取得不可）。
func (u *AuthUsecase) GenerateApiKey(ctx context.Context, userID int64) (string, error) {
	apiKey, err := newApiKey()
	if err != nil {
		return "", ErrInternal
	}

	if err := u.users.UpdateApiKey(ctx, userID, apiKey); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", ErrInternal
	}

	return apiKey, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (*model.SafeUser, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	safe := user.Safe()
	return &safe, nil
}

// APIキー生成（refresh tokenと同じ64hex）
func newApiKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
