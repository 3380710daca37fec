package repository

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey string

const (
	// BranchCodeKey is the context key for the caller's branch code
	BranchCodeKey ctxKey = "branch_code"
	// SkipBranchScopeKey is the context key for skipping branch scope (admins)
	SkipBranchScopeKey ctxKey = "skip_branch_scope"
)

// BranchScope returns a GORM scope that limits rows to the branch in ctx.
// Admins carry SkipBranchScopeKey and see every branch.
func BranchScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skipScope, ok := ctx.Value(SkipBranchScopeKey).(bool); ok && skipScope {
			return db
		}

		code, ok := GetBranchCode(ctx)
		if !ok {
			// No branch, no rows.
			return db.Where("1 = 0")
		}
		return db.Where("branch_code = ?", code)
	}
}

// WithSkipBranchScope adds the skip branch scope flag to context
func WithSkipBranchScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipBranchScopeKey, skip)
}

// WithBranch adds the branch code to context
func WithBranch(ctx context.Context, branchCode string) context.Context {
	return context.WithValue(ctx, BranchCodeKey, branchCode)
}

// GetBranchCode extracts the branch code from context
func GetBranchCode(ctx context.Context) (string, bool) {
	code, ok := ctx.Value(BranchCodeKey).(string)
	return code, ok && code != ""
}

// SkipsBranchScope reports whether ctx belongs to a caller who sees every branch
func SkipsBranchScope(ctx context.Context) bool {
	skip, ok := ctx.Value(SkipBranchScopeKey).(bool)
	return ok && skip
}
