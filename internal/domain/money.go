package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// 价格列为 decimal(10,2)：整数部分最多 8 位，小数最多 2 位。
const (
	priceMaxDigits     = 10
	priceDecimalPlaces = 2
)

var (
	ErrPriceNegative      = errors.New("Certifique-se de que este valor seja maior ou igual a 0.")
	ErrPriceTooManyDigits = errors.New("Certifique-se de que não tenha mais de 10 dígitos no total.")
	ErrPriceTooPrecise    = errors.New("Certifique-se de que não tenha mais de 2 casas decimais.")
)

// ValidatePrice 检查价格是否满足非负、精度与位数约束。
func ValidatePrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return ErrPriceNegative
	}
	if -p.Exponent() > priceDecimalPlaces && !p.Equal(p.Truncate(priceDecimalPlaces)) {
		return ErrPriceTooPrecise
	}
	intDigits := len(p.Truncate(0).Abs().String())
	if p.Abs().LessThan(decimal.NewFromInt(1)) {
		intDigits = 0
	}
	if intDigits > priceMaxDigits-priceDecimalPlaces {
		return ErrPriceTooManyDigits
	}
	return nil
}

// FormatPrice 返回固定两位小数的字符串，例如 "1200.00"。
func FormatPrice(p decimal.Decimal) string {
	return p.StringFixed(priceDecimalPlaces)
}

// FormatBRL 按巴西习惯格式化金额：千位用点，小数用逗号，例如 "R$ 1.234,56"。
func FormatBRL(p decimal.Decimal) string {
	s := p.StringFixed(priceDecimalPlaces)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := "R$ " + b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
