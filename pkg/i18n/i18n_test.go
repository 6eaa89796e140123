package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	msg := T("en", "conflict.warning", map[string]interface{}{
		"StockNumber": "A100",
		"Salesperson": "Dana",
		"Customer":    "Lee",
	})
	assert.Equal(t, "Stock number A100 is already claimed by Dana for customer Lee.", msg)

	msg = T("id", "shared_sale.no_partner", nil)
	assert.Equal(t, "Pilih rekan penjual untuk penjualan bersama ini.", msg)
}

func TestT_FallsBackToEnglishAndID(t *testing.T) {
	assert.Equal(t, "Select the partner salesperson for this shared sale.", T("fr", "shared_sale.no_partner", nil))
	assert.Equal(t, "missing.id", T("en", "missing.id", nil))
}

func TestFromAcceptLanguage(t *testing.T) {
	assert.Equal(t, "id", FromAcceptLanguage("id-ID,id;q=0.9,en;q=0.8", "en"))
	assert.Equal(t, "en", FromAcceptLanguage("en-US", "id"))
	assert.Equal(t, "en", FromAcceptLanguage("", "en"))
}
