package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateAccountCache drops the cached account record, profile projection
// and admin listings after a registration, profile update or deletion.
func InvalidateAccountCache(ctx context.Context, cm *CacheManager, accountID uint, email string) {
	SafeDelete(ctx, cm.Account,
		fmt.Sprintf("id:%d", accountID),
		fmt.Sprintf("email:%s", email),
		fmt.Sprintf("profile:%d", accountID))
	SafeInvalidatePattern(ctx, cm.Account, "list:*")
	SafeDelete(ctx, cm.Exists, fmt.Sprintf("email:%s", email))
}

// InvalidateApplicationCache drops cached application listings after a
// submission or a status transition.
func InvalidateApplicationCache(ctx context.Context, cm *CacheManager, applicationID uint) {
	SafeDelete(ctx, cm.Application, fmt.Sprintf("id:%d", applicationID))
	SafeInvalidatePattern(ctx, cm.Application, "list:*")
	SafeInvalidatePattern(ctx, cm.Application, "pending*")
}
