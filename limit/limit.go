// Package limit provides the size-limit policy injected into the
// encoder, decoder, and size-checker.
//
// A Policy accounts bytes as they are framed on the wire — every fixed-
// width scalar, every counted atom's length, and every counted
// container's element count — and fails the operation before any
// further work happens once a configured cap would be exceeded. This
// mirrors bincode's internal SizeLimit: Unbounded never fails, Bounded
// fails once its cap is reached.
package limit

import (
	"github.com/arloliu/wirecodec/errs"
	"github.com/arloliu/wirecodec/internal/options"
)

// Policy accounts wire bytes seen so far and fails once a configured
// cap would be exceeded.
//
// Add is called once per framed read or write (a fixed-width scalar, a
// length/count prefix, or the bytes that prefix accounts for) with the
// number of bytes that operation consumes. Implementations must be
// cheap: they are called once per primitive value in the entire tree.
type Policy interface {
	// Add accounts n additional bytes. It returns errs.ErrSizeLimit if
	// doing so would exceed the policy's configured cap.
	Add(n uint64) error

	// Used returns the number of bytes accounted so far.
	Used() uint64
}

// Unbounded never fails. It still tracks the running total so callers
// can ask "how many bytes have we seen" after the fact.
type Unbounded struct {
	used uint64
}

var _ Policy = (*Unbounded)(nil)

// NewUnbounded creates a Policy with no cap.
func NewUnbounded() *Unbounded {
	return &Unbounded{}
}

// Add implements Policy. It never fails.
func (u *Unbounded) Add(n uint64) error {
	u.used += n
	return nil
}

// Used implements Policy.
func (u *Unbounded) Used() uint64 {
	return u.used
}

// Bounded fails once the running total would exceed Max.
type Bounded struct {
	max  uint64
	used uint64
}

var _ Policy = (*Bounded)(nil)

// Option configures a Bounded policy at construction time.
type Option = options.Option[*Bounded]

// NewBounded creates a Policy capped at max bytes.
//
// Parameters:
//   - max: the maximum number of bytes this policy will account before
//     failing with errs.ErrSizeLimit
//   - opts: functional options applied in order, e.g. WithInitialUsed
func NewBounded(max uint64, opts ...Option) *Bounded {
	b := &Bounded{max: max}
	_ = options.Apply[*Bounded](b, opts...)

	return b
}

// WithInitialUsed seeds the accounted byte count, e.g. when a Bounded
// policy is shared across a header already known to have consumed some
// of the budget.
func WithInitialUsed(used uint64) Option {
	return options.NoError[*Bounded](func(b *Bounded) {
		b.used = used
	})
}

// Add implements Policy.
func (b *Bounded) Add(n uint64) error {
	if n > b.max-b.used {
		return errs.ErrSizeLimit
	}
	b.used += n

	return nil
}

// Used implements Policy.
func (b *Bounded) Used() uint64 {
	return b.used
}

// Max returns the configured cap.
func (b *Bounded) Max() uint64 {
	return b.max
}
