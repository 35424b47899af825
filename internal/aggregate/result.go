// Package aggregate implements the reduction of a tick sequence into
// summary statistics, grounded on original_source/src/aggregate_result.cpp
// and the reduction algorithm described for the database facade's
// aggregate query.
package aggregate

// Result is a value container for the summary statistics of a tick
// range. Equality is field-wise; floating-point fields are compared
// exactly because the reducer is deterministic for a given input order.
type Result struct {
	Count       uint64
	TotalVolume uint64
	MaxPrice    float64
	MinPrice    float64
	AvgPrice    float64
	VWAP        float64
}

// Equal reports whether r and other hold identical field values.
func (r Result) Equal(other Result) bool {
	return r == other
}

// reducer accumulates the running sums needed to produce a Result; it is
// built up incrementally by Reduce over a timestamp-sorted tick stream.
type reducer struct {
	count       uint64
	totalVolume uint64
	sumPrice    float64
	sumPV       float64
	maxPrice    float64
	minPrice    float64
	seen        bool
}

// add folds one tick into the running accumulation.
func (r *reducer) add(price float64, volume uint32) {
	r.count++
	r.totalVolume += uint64(volume)
	r.sumPrice += price
	r.sumPV += price * float64(volume)

	if !r.seen {
		r.maxPrice = price
		r.minPrice = price
		r.seen = true
		return
	}
	if price > r.maxPrice {
		r.maxPrice = price
	}
	if price < r.minPrice {
		r.minPrice = price
	}
}

// result finalizes the accumulation into a Result. avg_price and vwap
// are zero when their respective denominators are zero.
func (r *reducer) result() Result {
	out := Result{
		Count:       r.count,
		TotalVolume: r.totalVolume,
		MaxPrice:    r.maxPrice,
		MinPrice:    r.minPrice,
	}
	if r.count > 0 {
		out.AvgPrice = r.sumPrice / float64(r.count)
	}
	if r.totalVolume > 0 {
		out.VWAP = r.sumPV / float64(r.totalVolume)
	}
	return out
}

// PriceVolume is the minimal shape Reduce needs from each included
// record, decoupling this package from internal/tick.
type PriceVolume struct {
	Price  float64
	Volume uint32
}

// Reduce folds a timestamp-sorted sequence of (price, volume) pairs into
// a Result. Ticks with zero volume still contribute to count, sum_price,
// min_price and max_price, but nothing to vwap's numerator or
// denominator.
func Reduce(records []PriceVolume) Result {
	var r reducer
	for _, rec := range records {
		r.add(rec.Price, rec.Volume)
	}
	return r.result()
}
