package vcfld

// DefaultMaxDistance is the largest physical distance, in base pairs, between
// two variants whose LD is computed.
const DefaultMaxDistance = 1000000

// PairFunc receives each (anchor, partner) pair found by a Window. Returning
// an error stops the scan.
type PairFunc func(anchor, partner *Variant) error

// Window enumerates every pair of variants that share a chromosome and lie
// within MaxDistance of each other, reading its source exactly once. Only the
// variants that can still pair with the current anchor are held in memory.
type Window struct {
	MaxDistance int

	src     VariantSource
	queue   variantQueue
	done    bool
	err     error
	maxLive int
}

func NewWindow(src VariantSource, maxDistance int) *Window {
	return &Window{
		MaxDistance: maxDistance,
		src:         src,
	}
}

// Scan calls fn for each pair in anchor-major order: for each variant in
// stream order, its partners are visited in stream order. Each pair is seen
// once, with the earlier variant as the anchor. The input must be sorted by
// ascending position within each chromosome. A source error ends the scan
// immediately and is returned.
func (w *Window) Scan(fn PairFunc) error {
	for {
		if w.queue.Len() == 0 && !w.pull() {
			return w.err
		}
		anchor := w.queue.At(0)

		for i := 1; ; i++ {
			if i == w.queue.Len() && !w.pull() {
				if w.err != nil {
					return w.err
				}
				break
			}
			partner := w.queue.At(i)

			if partner.Chromosome != anchor.Chromosome || partner.Position-anchor.Position > w.MaxDistance {
				break
			}

			if err := fn(anchor, partner); err != nil {
				return err
			}
		}

		// Retire the anchor
		w.queue.Pop()
	}
}

// pull appends one variant from the source to the queue, reporting whether
// it could. A source error is kept in w.err.
func (w *Window) pull() bool {
	if w.done {
		return false
	}

	v := w.src.Read()
	if v == nil {
		w.done = true
		w.err = w.src.Error()
		return false
	}

	w.queue.Push(v)
	if n := w.queue.Len(); n > w.maxLive {
		w.maxLive = n
	}

	return true
}

// Live is the number of variants currently held.
func (w *Window) Live() int {
	return w.queue.Len()
}

// MaxLive is the largest number of variants held at once so far.
func (w *Window) MaxLive() int {
	return w.maxLive
}
