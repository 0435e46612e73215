package resource

// Conversion is a substitution rule within a PaymentOptions: up to Limit
// units of From cost may instead be paid as Rate units of To (e.g. up to
// 1 infantry cost may be paid as 1 mood token).
type Conversion struct {
	From  Kind
	To    Kind
	Rate  int  // units of To required per unit of From substituted
	Limit int  // maximum units of From this conversion may cover
}

// PaymentOptions specifies a cost: a default pile plus substitution
// rules.
type PaymentOptions struct {
	Default     Pile
	Conversions []Conversion
}

// NewPaymentOptions builds a PaymentOptions with no conversions.
func NewPaymentOptions(def Pile) PaymentOptions {
	return PaymentOptions{Default: def}
}

// WithConversion returns a copy of o with an added conversion rule.
func (o PaymentOptions) WithConversion(c Conversion) PaymentOptions {
	o.Conversions = append(append([]Conversion{}, o.Conversions...), c)
	return o
}

// IsFree reports whether the default cost is empty and there are no
// conversions that could introduce a cost.
func (o PaymentOptions) IsFree() bool {
	return o.Default.IsEmpty()
}

// CanAfford reports whether available can cover the default cost, using
// FirstValidPayment to search the conversion space.
func (o PaymentOptions) CanAfford(available Pile) bool {
	_, ok := o.FirstValidPayment(available)
	return ok
}

// Satisfies reports whether pile is itself a legal realization of o: it
// must be non-negative in every currency and reachable from the default
// cost by applying declared conversions (within their limits).
func (o PaymentOptions) Satisfies(pile Pile) bool {
	for _, k := range All {
		if pile.Get(k) < 0 {
			return false
		}
	}
	if pile == o.Default {
		return true
	}
	for _, c := range o.Conversions {
		limit := c.Limit
		if limit <= 0 {
			limit = o.Default.Get(c.From)
		}
		for units := 1; units <= limit && units <= o.Default.Get(c.From); units++ {
			trial := o.Default
			trial = trial.WithSet(c.From, trial.Get(c.From)-units)
			trial = trial.WithSet(c.To, trial.Get(c.To)+units*c.Rate)
			if trial == pile {
				return true
			}
		}
	}
	return false
}

// FirstValidPayment returns the first pile (by conversion-application
// order) that available can afford and that satisfies o, or false if
// none exists. It always tries the unconverted default first.
func (o PaymentOptions) FirstValidPayment(available Pile) (Pile, bool) {
	if available.CanAfford(o.Default) {
		return o.Default, true
	}

	candidate := o.Default
	for _, c := range o.Conversions {
		have := candidate.Get(c.From)
		if have == 0 || c.Rate <= 0 {
			continue
		}
		convert := have
		if c.Limit > 0 && convert > c.Limit {
			convert = c.Limit
		}
		for units := convert; units >= 1; units-- {
			trial := candidate
			trial = trial.WithSet(c.From, trial.Get(c.From)-units)
			trial = trial.WithSet(c.To, trial.Get(c.To)+units*c.Rate)
			if available.CanAfford(trial) {
				return trial, true
			}
		}
	}

	return Pile{}, false
}
