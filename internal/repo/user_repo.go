package repo

import (
	"context"

	"medical-records-api/internal/domain"
	"medical-records-api/internal/store"
)

type UserRepo struct{ Collection[domain.User] }

func NewUserRepo(s *store.Store) *UserRepo {
	return &UserRepo{Collection[domain.User]{s: s, name: store.Users}}
}

// FindUserByEmail 大小写敏感的精确匹配；调用方已持有整个集合
func FindUserByEmail(users []domain.User, email string) (*domain.User, bool) {
	return find(users, func(u *domain.User) bool { return u.Email == email })
}

// FindByCredentials 返回第一个 email 和密码都一致的用户
func (r *UserRepo) FindByCredentials(ctx context.Context, email, password string) (*domain.User, bool) {
	return find(r.All(ctx), func(u *domain.User) bool {
		return u.Email == email && u.Password == password
	})
}
