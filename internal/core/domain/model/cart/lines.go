package cart

import "localshop/internal/core/domain/model/kernel"

// Lines is an ordered set of cart lines as last confirmed by the remote
// store. Lines is a plain slice type: helpers operate on whatever the store
// returned, they never mutate it.
type Lines []Line

// Total computes the monetary total of the line set: the sum of
// unitPrice x quantity over every line. The total is recomputed on each
// call and never cached, so it always reflects the exact set it is called
// on.
func (ls Lines) Total() kernel.Money {
	var total kernel.Money
	for _, line := range ls {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Clone returns an independent copy of the line set. Lines are values, so
// a copied slice shares nothing with its source; order creation relies on
// this to snapshot cart contents immune to later cart mutation.
func (ls Lines) Clone() Lines {
	if ls == nil {
		return nil
	}
	cloned := make(Lines, len(ls))
	copy(cloned, ls)
	return cloned
}

// Quantity returns the total number of units across all lines.
func (ls Lines) Quantity() int {
	var n int
	for _, line := range ls {
		n += line.Quantity()
	}
	return n
}
