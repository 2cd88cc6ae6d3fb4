package contracts

import (
	"context"

	"github.com/bentito/lintfixLLM/rewriter/models"
)

// IBlockRewriter turns a nested-conditional block into its early-exit form.
type IBlockRewriter interface {
	Rewrite(ctx context.Context, block string) models.RewriteResult
}
