package distribution

import (
	"fmt"

	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/model"
)

// Marginal returns the law of the components selected by indices, in the
// given order, as a new independent distribution with the same settings.
// Indices must be distinct; a repeated index is an ErrorInvalidArgument.
func (d *Distribution) Marginal(indices ...int) (*Distribution, error) {
	ind := model.Indices(indices)
	if err := ind.Check(d.Dimension()); err != nil {
		return nil, fmt.Errorf("%s marginal: %w", d.Name(), err)
	}
	if ind.HasDuplicates() {
		return nil, fmt.Errorf("%s marginal %v: repeated index: %w",
			d.Name(), indices, common.ErrorInvalidArgument)
	}
	family, err := d.family.Marginal(append(model.Indices(nil), ind...))
	if err != nil {
		return nil, fmt.Errorf("%s marginal %v: %w", d.Name(), indices, err)
	}
	return d.options().build(family), nil
}
