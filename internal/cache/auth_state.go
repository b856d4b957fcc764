package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/kasuwa-shop/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// UserAuthState 鉴权中间件使用的用户快照，命中时不再查库
type UserAuthState struct {
	UserID       uint   `json:"user_id"`
	Status       string `json:"status"`
	TokenVersion uint64 `json:"token_version"`
	IsStaff      bool   `json:"is_staff"`
	IsSuperuser  bool   `json:"is_superuser"`
	CachedAt     int64  `json:"cached_at"`
}

func userAuthStateKey(userID uint) string {
	return "auth:user:" + strconv.FormatUint(uint64(userID), 10)
}

// BuildUserAuthState 由用户记录生成快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	return &UserAuthState{
		UserID:       user.ID,
		Status:       user.Status,
		TokenVersion: user.TokenVersion,
		IsStaff:      user.IsStaff,
		IsSuperuser:  user.IsSuperuser,
		CachedAt:     time.Now().Unix(),
	}
}

// GetUserAuthState 读取快照，第二个返回值表示是否命中
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	state, err := loadJSON[UserAuthState](ctx, userAuthStateKey(userID))
	return state, state != nil, err
}

// SetUserAuthState 覆盖快照；口令、状态或权限标记变化后调用
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return storeJSON(ctx, userAuthStateKey(state.UserID), state, authStateCacheTTL)
}
