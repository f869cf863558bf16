package gazetteer

import (
	"fmt"
	"sync/atomic"
)

// fallbackBaseCurrency is the base currency when none has been configured.
const fallbackBaseCurrency = "USD"

var defaultBaseCurrency atomic.Pointer[string]

// SetDefaultBaseCurrency sets the process-wide base currency code used by
// Gazetteers built without WithBaseCurrency. Call it once at startup, before
// building any Gazetteer; instances already built keep their base currency.
// Prefer WithBaseCurrency where the value can be passed explicitly.
func SetDefaultBaseCurrency(code string) {
	defaultBaseCurrency.Store(&code)
}

// DefaultBaseCurrency returns the process-wide base currency code.
func DefaultBaseCurrency() string {
	if code := defaultBaseCurrency.Load(); code != nil {
		return *code
	}
	return fallbackBaseCurrency
}

func (g *Gazetteer) setBaseCurrency(code string) error {
	if code == "" {
		code = DefaultBaseCurrency()
	}
	g.baseCurrency = g.currencies.fromCode(code)
	if !g.baseCurrency.Valid() {
		return fmt.Errorf("%w: base currency %q", ErrInvalidReference, code)
	}
	return nil
}

// BaseCurrency returns the base currency of g.
func (g *Gazetteer) BaseCurrency() CurrencyID {
	return g.baseCurrency
}
