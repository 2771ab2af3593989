// Package compiler turns SeRQL syntax trees into query plans.
package compiler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/brimdata/serql/compiler/ast"
	"github.com/brimdata/serql/compiler/ast/algebra"
	"github.com/brimdata/serql/compiler/construct"
	"github.com/brimdata/serql/compiler/semantic"
	"github.com/brimdata/serql/rdf"
	"github.com/segmentio/ksuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Parse decodes a JSON syntax tree.  The tree may be a query container or
// a bare query.
func Parse(r io.Reader) (*ast.QueryContainer, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return nil, err
	}
	if head.Kind == "QueryContainer" {
		return ast.UnpackJSON(b)
	}
	return ast.UnpackJSONAsQuery(b)
}

// Compiler compiles syntax trees.  The zero value is ready to use.  A
// Compiler may be used by multiple goroutines.
type Compiler struct {
	Logger   *zap.Logger
	Factory  rdf.ValueFactory
	Builder  semantic.ConstructorBuilder
	Cache    *Cache
	MaxDepth int
}

// Compile translates qc into a query plan.  The context is consulted only
// before compilation starts.
func (c *Compiler) Compile(ctx context.Context, qc *ast.QueryContainer) (algebra.TupleExpr, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := c.logger().With(zap.Stringer("run_id", ksuid.New()))
	start := time.Now()
	var key uint64
	if c.Cache != nil {
		key = c.Cache.Key(qc, c.scope())
		if plan, ok := c.Cache.Get(key); ok {
			logger.Debug("Compiled query", zap.Bool("cache_hit", true), zap.Duration("elapsed", time.Since(start)))
			return plan, nil
		}
	}
	plan, err := semantic.Analyze(qc, c.factory(), c.builder(), c.MaxDepth)
	if err != nil {
		logger.Debug("Compile failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, err
	}
	if c.Cache != nil {
		c.Cache.Add(key, plan)
	}
	logger.Debug("Compiled query", zap.Bool("cache_hit", false), zap.Duration("elapsed", time.Since(start)))
	return plan, nil
}

// QueryError is the failure of one tree passed to CompileAll.  Index is
// the tree's position in the slice.
type QueryError struct {
	Index int
	Err   error
}

func (q *QueryError) Error() string {
	return fmt.Sprintf("query %d: %s", q.Index+1, q.Err)
}

func (q *QueryError) Unwrap() error {
	return q.Err
}

// CompileAll compiles independent trees with at most parallelism
// compilations running at once.  The plans are returned in the order of
// trees.  A failure does not stop the other compilations; each failure is
// a *QueryError and all of them are combined into the returned error.
func (c *Compiler) CompileAll(ctx context.Context, trees []*ast.QueryContainer, parallelism int) ([]algebra.TupleExpr, error) {
	plans := make([]algebra.TupleExpr, len(trees))
	errs := make([]error, len(trees))
	var g errgroup.Group
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for k, qc := range trees {
		k, qc := k, qc
		g.Go(func() error {
			plan, err := c.Compile(ctx, qc)
			if err != nil {
				errs[k] = &QueryError{Index: k, Err: err}
				return nil
			}
			plans[k] = plan
			return nil
		})
	}
	g.Wait()
	return plans, multierr.Combine(errs...)
}

// scope identifies the settings that shape a plan so compilers that
// differ in them never share cache entries.  Factories and builders are
// identified by type.
func (c *Compiler) scope() string {
	depth := c.MaxDepth
	if depth <= 0 {
		depth = semantic.DefaultMaxDepth
	}
	return fmt.Sprintf("%T|%T|%d", c.factory(), c.builder(), depth)
}

func (c *Compiler) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Compiler) factory() rdf.ValueFactory {
	if c.Factory == nil {
		return rdf.SimpleFactory{}
	}
	return c.Factory
}

func (c *Compiler) builder() semantic.ConstructorBuilder {
	if c.Builder == nil {
		return construct.Builder{}
	}
	return c.Builder
}
