package prior

// ParameterPrior is the set of Prior variants configured for one parameter
// position. A config string may name more than one variant for the same
// parameter (e.g. ARD plus a spatial prior); Combine decides how they mix.
type ParameterPrior struct {
	Variants []Prior
}

// Combine sums the configured variants' contributions by precision
// (precision-weighted mean), per spec §4.3: "Priors are combined
// multiplicatively (sum of precisions, precision-weighted mean) with any
// ARD contribution before being consumed by the VB update." Per the
// spec.md §9 open-question resolution, if any spatial variant is present
// for this parameter, ARD's contribution is skipped even if configured.
func (pp ParameterPrior) Combine(in Inputs) (Contribution, error) {
	hasSpatial := false
	for _, v := range pp.Variants {
		if v.Kind().IsSpatial() {
			hasSpatial = true
			break
		}
	}

	var sumLambda, sumLambdaMu float64
	any := false
	for _, v := range pp.Variants {
		if hasSpatial && v.Kind() == KindARD {
			continue
		}
		c, err := v.Contribution(in)
		if err != nil {
			return Contribution{}, err
		}
		if c.Lambda0 == 0 {
			continue
		}
		sumLambda += c.Lambda0
		sumLambdaMu += c.Lambda0 * c.Mu0
		any = true
	}
	if !any || sumLambda <= 0 {
		return Contribution{}, ErrNoContribution
	}
	return Contribution{Mu0: sumLambdaMu / sumLambda, Lambda0: sumLambda}, nil
}
