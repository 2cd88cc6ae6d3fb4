package rewriter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bentito/lintfixLLM/embed_data"
	"github.com/bentito/lintfixLLM/providers/contracts"
	rewriter_contracts "github.com/bentito/lintfixLLM/rewriter/contracts"
	"github.com/bentito/lintfixLLM/rewriter/models"
	"github.com/charmbracelet/log"
)

const defaultTimeout = 60 * time.Second

// BlockRewriter sends nested-conditional blocks to the chat provider and
// post-processes the reply into a drop-in replacement block.
type BlockRewriter struct {
	provider contracts.IChatProvider
	cache    *RewriteCache
	timeout  time.Duration
	logger   *log.Logger
}

// NewBlockRewriter initializes a rewriter. A nil cache disables memoization;
// a non-positive timeout falls back to the 60 second default.
func NewBlockRewriter(provider contracts.IChatProvider, cache *RewriteCache, timeout time.Duration, logger *log.Logger) rewriter_contracts.IBlockRewriter {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &BlockRewriter{
		provider: provider,
		cache:    cache,
		timeout:  timeout,
		logger:   logger,
	}
}

// Rewrite synchronously asks the provider for an early-exit restructuring of
// the block. The call is bounded by the configured timeout. Failures never
// propagate as errors: the result falls back to the original block with Err
// recording the cause, so a dead endpoint degrades a run into a no-op.
func (rewriter *BlockRewriter) Rewrite(ctx context.Context, block string) models.RewriteResult {
	if rewriter.cache != nil {
		if code, found := rewriter.cache.Get(block); found {
			rewriter.logger.Debug("rewrite served from cache", "block_bytes", len(block))
			return models.RewriteResult{Code: code, FromCache: true}
		}
	}

	requestCtx, cancel := context.WithTimeout(ctx, rewriter.timeout)
	defer cancel()

	response, err := rewriter.provider.ChatCompletion(requestCtx, string(embed_data.RewriteBlockPrompt), buildUserPrompt(block))
	if err != nil {
		rewriter.logger.Warn("rewrite request failed, keeping original block", "err", err)
		return models.RewriteResult{Code: block, Fallback: true, Err: err}
	}

	code, explanation := extractFencedCode(response.Content)
	if strings.TrimSpace(code) == "" {
		rewriter.logger.Warn("rewrite reply contained no code, keeping original block")
		return models.RewriteResult{
			Code:        block,
			Explanation: explanation,
			Fallback:    true,
			Err:         fmt.Errorf("empty reply from model"),
		}
	}

	if rewriter.cache != nil {
		rewriter.cache.Set(block, code)
	}

	return models.RewriteResult{Code: code, Explanation: explanation}
}

// buildUserPrompt embeds the block in a fenced Go region the way the model
// expects to receive it.
func buildUserPrompt(block string) string {
	return fmt.Sprintf("Please rewrite the following Go code to remove nested if statements while preserving functionality:\n\n```go\n%s\n```", block)
}
