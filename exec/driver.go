package exec

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gosari/sari/errs"
	"github.com/gosari/sari/regex"
)

// Strategy selects which evaluation strategy a Driver's sub-expressions
// use.
type Strategy int

const (
	BlackBoxStrategy Strategy = iota
	PullStrategy
)

// DefaultGapCap is the 32 KiB gap bound spec.md §9 describes as the
// source's capped wildcard-join variant; Driver defaults to unbounded
// (the other source variant) per spec.md §9's resolution, and callers
// opt into the cap via WithGapBound(DefaultGapCap).
const DefaultGapCap = 32 * 1024

// Option configures a Driver.
type Option func(*Driver)

// WithGapBound caps the offset distance a wildcard-join candidate may
// span; a negative bound (the default) is unbounded.
func WithGapBound(g int) Option {
	return func(d *Driver) { d.gapBound = g }
}

// WithStrategy selects black-box or pull-based evaluation for every
// sub-expression the driver executes.
func WithStrategy(s Strategy) Option {
	return func(d *Driver) { d.strategy = s }
}

// WithLogger overrides the driver's zap logger, used at query-boundary
// failures per spec.md §7.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// Driver implements spec.md §4.11: split the pattern on top-level `.*`,
// execute each sub-expression with the planner-chosen strategy, and fold
// the sub-results together with wildcard-join.
type Driver struct {
	idx      Index
	strategy Strategy
	gapBound int
	logger   *zap.Logger
}

// NewDriver returns a Driver over idx with unbounded wildcard-join and
// the black-box strategy by default.
func NewDriver(idx Index, opts ...Option) *Driver {
	d := &Driver{idx: idx, gapBound: -1, strategy: BlackBoxStrategy, logger: zap.NewNop()}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Execute parses, plans, and runs pattern, returning its full
// OffsetLength match set.
func (d *Driver) Execute(pattern string) ([]OffsetLength, error) {
	parts := splitTopLevelWildcard(pattern)

	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, errs.NewQuery("pattern has no literal sub-expression to anchor on")
	}

	var acc []OffsetLength
	for i, sub := range nonEmpty {
		node, err := regex.Parse(sub)
		if err != nil {
			return nil, err
		}
		sub, err := d.executeSub(node)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			acc = sub
			continue
		}
		acc = wildcardJoin(acc, sub, d.gapBound)
	}
	return acc, nil
}

func (d *Driver) executeSub(node regex.Node) ([]OffsetLength, error) {
	if d.strategy == BlackBoxStrategy {
		return NewBlackBox(d.idx).Execute(node), nil
	}

	if !hasAnchor(node) {
		return nil, errs.NewQuery("pull-based executor requires at least one literal anchor")
	}
	if isSuffixed(node) || !isPrefixed(node) {
		return NewBackward(d.idx).Execute(node), nil
	}
	return NewForward(d.idx).Execute(node), nil
}

// BatchResult is one line of spec.md §6's query/result file format.
type BatchResult struct {
	Count         int
	MicrosElapsed int64
}

// RunBatch executes every query independently, logging and recording a
// zero-result line for any that fail rather than aborting the batch, per
// spec.md §7's "driver logs the failing query's index and reason, emits
// a zero-result record to the output file for that line, and continues".
// elapsed is supplied by the caller (timing is an external collaborator
// per spec.md §1's out-of-scope list).
func (d *Driver) RunBatch(queries []string, elapsed func(query string) int64) []BatchResult {
	out := make([]BatchResult, len(queries))
	for i, q := range queries {
		results, err := d.Execute(q)
		micros := int64(0)
		if elapsed != nil {
			micros = elapsed(q)
		}
		if err != nil {
			d.logger.Warn("query failed",
				zap.Int("index", i),
				zap.String("query", q),
				zap.Error(err),
			)
			out[i] = BatchResult{Count: 0, MicrosElapsed: micros}
			continue
		}
		out[i] = BatchResult{Count: len(results), MicrosElapsed: micros}
	}
	return out
}

// splitTopLevelWildcard splits pattern on every occurrence of the
// literal substring ".*" that sits outside any parenthesized group and
// outside a backslash escape, per spec.md §4.11 ("nested .* inside
// parentheses is not recognized specially").
func splitTopLevelWildcard(pattern string) []string {
	var parts []string
	var cur strings.Builder
	depth := 0

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			cur.WriteByte(c)
			cur.WriteByte(pattern[i+1])
			i++
		case c == '(':
			depth++
			cur.WriteByte(c)
		case c == ')':
			depth--
			cur.WriteByte(c)
		case depth == 0 && c == '.' && i+1 < len(pattern) && pattern[i+1] == '*':
			parts = append(parts, cur.String())
			cur.Reset()
			i++
		default:
			cur.WriteByte(c)
		}
	}
	parts = append(parts, cur.String())
	return parts
}

// wildcardJoin folds left and right across a `.*` boundary, per spec.md
// §4.11: pair each left (o1,l1) with each right (o2,l2) where o2 ≥
// o1+l1 and (if gapBound ≥ 0) o2 ≤ o1+l1+gapBound; emit (o1, o2+l2-o1).
func wildcardJoin(left, right []OffsetLength, gapBound int) []OffsetLength {
	if len(left) == 0 || len(right) == 0 {
		return nil
	}
	var out []OffsetLength
	for _, l := range left {
		target := l.Offset + l.Length
		lo := sort.Search(len(right), func(i int) bool { return right[i].Offset >= target })
		hi := len(right)
		if gapBound >= 0 {
			maxOffset := target + gapBound
			hi = sort.Search(len(right), func(i int) bool { return right[i].Offset > maxOffset })
		}
		for i := lo; i < hi; i++ {
			r := right[i]
			out = append(out, OffsetLength{Offset: l.Offset, Length: r.Offset + r.Length - l.Offset})
		}
	}
	return sortDedup(out)
}

// hasAnchor reports whether n contains at least one literal Mgram
// primitive anywhere in its tree; pull-based execution without one would
// have to enumerate every corpus substring, which spec.md §9 says to
// refuse instead.
func hasAnchor(n regex.Node) bool {
	switch v := n.(type) {
	case *regex.Blank:
		return false
	case *regex.Primitive:
		return v.Kind == regex.Mgram
	case *regex.Concat:
		return hasAnchor(v.Left) || hasAnchor(v.Right)
	case *regex.Union:
		return hasAnchor(v.First) || hasAnchor(v.Second)
	case *regex.Repeat:
		return hasAnchor(v.Inner)
	default:
		return false
	}
}

// isPrefixed reports whether n's leftmost primitive descendant across
// concatenations is a literal Mgram.
func isPrefixed(n regex.Node) bool {
	switch v := n.(type) {
	case *regex.Blank:
		return false
	case *regex.Primitive:
		return v.Kind == regex.Mgram
	case *regex.Repeat:
		return isPrefixed(v.Inner)
	case *regex.Concat:
		return isPrefixed(v.Left)
	case *regex.Union:
		return isPrefixed(v.First) && isPrefixed(v.Second)
	default:
		return false
	}
}

// isSuffixed reports whether n's rightmost primitive descendant across
// concatenations is a literal Mgram.
func isSuffixed(n regex.Node) bool {
	switch v := n.(type) {
	case *regex.Blank:
		return false
	case *regex.Primitive:
		return v.Kind == regex.Mgram
	case *regex.Repeat:
		return isSuffixed(v.Inner)
	case *regex.Concat:
		return isSuffixed(v.Right)
	case *regex.Union:
		return isSuffixed(v.First) && isSuffixed(v.Second)
	default:
		return false
	}
}
