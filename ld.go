package vcfld

import "math"

// DefaultMinR2 is the smallest r² that is reported.
const DefaultMinR2 = 0.1

// Stat holds the haplotype contingency table for two variants and the LD
// statistics derived from it. X11 counts haplotypes carrying '0' at both
// variants, X12 '0' at the first and '1' at the second, and so on.
type Stat struct {
	X11, X12, X21, X22 int
	Total              int
	R2                 float64
	D                  float64
	DPrime             float64
}

// Pair is a Stat located on the genome.
type Pair struct {
	Chromosome string
	Position1  int
	Position2  int
	Stat
}

// Compute tabulates the haplotypes observed at both a and b and derives D,
// D' and r². ok is false when the statistics are undefined: no haplotype is
// observed at both sites, or one of the sites is monomorphic among those
// haplotypes. Compute(b, a) transposes the table (X12 and X21 swap) and
// yields the same Total, D, D' and r².
func Compute(a, b *Variant) (stat Stat, ok bool) {
	stat.X11 = int(a.Zero.IntersectionCardinality(b.Zero))
	stat.X12 = int(a.Zero.IntersectionCardinality(b.One))
	stat.X21 = int(a.One.IntersectionCardinality(b.Zero))
	stat.X22 = int(a.One.IntersectionCardinality(b.One))
	stat.Total = stat.X11 + stat.X12 + stat.X21 + stat.X22

	if stat.Total == 0 {
		return stat, false
	}

	total := float64(stat.Total)
	x11r := float64(stat.X11) / total
	x12r := float64(stat.X12) / total
	x21r := float64(stat.X21) / total
	x22r := float64(stat.X22) / total

	p1 := x11r + x12r
	p2 := x21r + x22r
	q1 := x11r + x21r
	q2 := x12r + x22r

	if p1 == 0 || p2 == 0 || q1 == 0 || q2 == 0 {
		return stat, false
	}

	stat.D = x11r - p1*q1

	var dmax float64
	if stat.D < 0 {
		dmax = math.Min(p1*q1, p2*q2)
	} else {
		dmax = math.Min(p1*q2, p2*q1)
	}
	stat.DPrime = stat.D / dmax

	stat.R2 = (stat.D * stat.D) / (p1 * p2 * q1 * q2)

	return stat, true
}

// Calculator applies the reporting threshold to Compute and keeps a tally.
type Calculator struct {
	MinR2 float64

	Tested     int
	Degenerate int
	Reported   int
}

func NewCalculator(minR2 float64) *Calculator {
	return &Calculator{MinR2: minR2}
}

// Pair computes LD between anchor and partner and reports whether the result
// should be emitted: it must be defined and have r² of at least MinR2.
func (c *Calculator) Pair(anchor, partner *Variant) (Pair, bool, error) {
	if anchor.Zero.Len() != partner.Zero.Len() {
		return Pair{}, false, ErrSampleMismatch
	}

	c.Tested++
	stat, ok := Compute(anchor, partner)
	if !ok {
		c.Degenerate++
		return Pair{}, false, nil
	}

	if stat.R2 < c.MinR2 {
		return Pair{}, false, nil
	}

	c.Reported++
	return Pair{
		Chromosome: anchor.Chromosome,
		Position1:  anchor.Position,
		Position2:  partner.Position,
		Stat:       stat,
	}, true, nil
}
