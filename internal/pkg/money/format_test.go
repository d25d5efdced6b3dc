package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFormatter_BRL(t *testing.T) {
	f := NewBRLFormatter()

	assert.Equal(t, "R$ 259,90", f.Format(MustParse("259.90")))
	assert.Equal(t, "R$ 233,91", f.Format(MustParse("233.91")))
	assert.Equal(t, "R$ 1.234,50", f.Format(MustParse("1234.5")))
	assert.Equal(t, "R$ 0,00", f.Format(Zero()))
	assert.Equal(t, "-R$ 19,90", f.Format(MustParse("-19.90")))
}

func TestFormatter_English(t *testing.T) {
	f := NewFormatter(language.AmericanEnglish, "$")

	assert.Equal(t, "$ 1,234.50", f.Format(MustParse("1234.5")))
}

func TestFormatter_Installment(t *testing.T) {
	f := NewBRLFormatter()

	assert.Equal(t, "2x de R$ 50,00 sem juros", f.Installment(2, MustParse("50")))
}
