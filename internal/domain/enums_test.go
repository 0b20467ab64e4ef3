package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
)

func TestNeighborhood(t *testing.T) {
	assert.Len(t, domain.Neighborhoods(), 7)
	assert.True(t, domain.NeighborhoodCentro.Valid())
	assert.Equal(t, "Vermelhão", domain.NeighborhoodVermelhao.Label())
	assert.Equal(t, "Aeroporto II", domain.Neighborhood("aeroporto_ii").Label())
	assert.False(t, domain.Neighborhood("invalid").Valid())
	assert.Equal(t, "invalid", domain.Neighborhood("invalid").Label())
}

func TestPropertyType(t *testing.T) {
	assert.Equal(t,
		[]domain.PropertyType{"casa", "kitnet", "apartamento", "quarto"},
		domain.PropertyTypes())
	assert.Equal(t, "Kitnet", domain.PropertyTypeKitnet.Label())
	assert.False(t, domain.PropertyType("chacara").Valid())
}

func TestRole(t *testing.T) {
	assert.True(t, domain.RoleLandlord.Valid())
	assert.Equal(t, "Locatário", domain.RoleTenant.Label())
	assert.False(t, domain.Role("ADMIN").Valid())
	assert.Equal(t, domain.RoleTenant, domain.NewDefaultProfile().Role)
	assert.Empty(t, domain.NewDefaultProfile().Phone)
}

func TestValidatePrice(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"0", nil},
		{"1200.00", nil},
		{"1200.5", nil},
		{"99999999.99", nil},
		{"0.10", nil},
		{"-5.00", domain.ErrPriceNegative},
		{"10.123", domain.ErrPriceTooPrecise},
		{"123456789", domain.ErrPriceTooManyDigits},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.ValidatePrice(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1200.00", domain.FormatPrice(decimal.RequireFromString("1200")))
	assert.Equal(t, "R$ 1.234,56", domain.FormatBRL(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "R$ 850,00", domain.FormatBRL(decimal.RequireFromString("850")))
	assert.Equal(t, "R$ 1.000.000,00", domain.FormatBRL(decimal.RequireFromString("1000000")))
}
