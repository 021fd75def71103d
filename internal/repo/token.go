package repo

import (
	"context"

	"github.com/sandeepk/magshop/internal/models"
)

func (r *GormRepo) CreateRefreshToken(ctx context.Context, t *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

// RevokeRefreshToken marks the stored (hashed) token revoked.
func (r *GormRepo) RevokeRefreshToken(ctx context.Context, hashedToken string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", hashedToken).
		Update("revoked", true).Error
}

func (r *GormRepo) RefreshTokenValid(ctx context.Context, jti string, now int64) (bool, error) {
	var t models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&t).Error; err != nil {
		if mapErr(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return !t.Revoked && t.ExpiresAt > now, nil
}
