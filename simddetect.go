package simddetect

import (
	"context"
	"os"

	"github.com/wippyai/simd-detect/analyzer"
	"github.com/wippyai/simd-detect/errors"
)

// AnalyzeFile reads path and analyzes it. opts.Path defaults to path.
func AnalyzeFile(ctx context.Context, path string, opts analyzer.Options) (*analyzer.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ReadFailed(path, err)
	}
	if opts.Path == "" {
		opts.Path = path
	}
	return analyzer.Analyze(ctx, data, opts)
}
