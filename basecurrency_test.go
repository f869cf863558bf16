package gazetteer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseCurrency(t *testing.T) {
	g := testGazetteer(t)
	assert.Equal(t, "USD", g.CurrencyCode(g.BaseCurrency()))

	g, err := NewGazetteer(WithBaseCurrency("EUR"))
	require.NoError(t, err)
	assert.Equal(t, CurrencyID(978), g.BaseCurrency())

	_, err = NewGazetteer(WithBaseCurrency("QQQ"))
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestSetDefaultBaseCurrency(t *testing.T) {
	prev := defaultBaseCurrency.Load()
	t.Cleanup(func() { defaultBaseCurrency.Store(prev) })

	assert.Equal(t, fallbackBaseCurrency, DefaultBaseCurrency())
	SetDefaultBaseCurrency("JPY")
	assert.Equal(t, "JPY", DefaultBaseCurrency())

	g, err := NewGazetteer()
	require.NoError(t, err)
	assert.Equal(t, "JPY", g.CurrencyCode(g.BaseCurrency()))

	// An explicit option wins over the process default.
	g, err = NewGazetteer(WithBaseCurrency("GBP"))
	require.NoError(t, err)
	assert.Equal(t, "GBP", g.CurrencyCode(g.BaseCurrency()))
}
