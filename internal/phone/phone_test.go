package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "local with leading zero", raw: "0812345678", want: "+243812345678"},
		{name: "already canonical", raw: "+243812345678", want: "+243812345678"},
		{name: "bare local digits", raw: "812345678", want: "+243812345678"},
		{name: "country code without plus", raw: "243812345678", want: "+243812345678"},
		{name: "country code and trunk zero", raw: "+243 0812 345 678", want: "+243812345678"},
		{name: "separators are dropped", raw: "081-234 56.78", want: "+243812345678"},
		// Все ведущие нули схлопываются, 00 не считается международным префиксом
		{name: "double leading zero collapses", raw: "00812345678", want: "+243812345678"},
		{name: "triple leading zero collapses", raw: "000812345678", want: "+243812345678"},
		{name: "00 before foreign code stays local", raw: "0032470123456", want: "+24332470123456"},
		{name: "foreign number kept", raw: "+32 470 12 34 56", want: "+32470123456"},
		{name: "plus only inside is dropped", raw: "+33+6 12", want: "+33612"},
		{name: "empty", raw: "", want: ""},
		{name: "no digits", raw: "abc", want: ""},
		{name: "plus only", raw: "+", want: "+"},
		{name: "country code only", raw: "+243", want: "+243"},
		{name: "country code only without plus", raw: "243", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"", "+", "0", "00", "000812", "243", "+243", "243243812", "+2430812345678",
		"0812345678", "+243812345678", "812345678", "+32470123456", "+0032470",
		"(081) 234-5678", "+1 (555) 010-9999", "++243", "2430",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: "0812345678", want: true},
		{raw: "+243812345678", want: true},
		{raw: "81234567", want: false},       // 8 локальных цифр
		{raw: "+2438123456789", want: false}, // 10 локальных цифр
		{raw: "+32470123456", want: true},    // иностранный номер принимается как есть
		{raw: "+1 555 010 9999", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.raw))
		})
	}
}

// Пустая строка считается валидной: нормализованное значение не начинается с +243.
// Поведение сохранено намеренно, проверка формата делается отдельно через IsInternational.
func TestIsValid_EmptyStringIsAccepted(t *testing.T) {
	assert.True(t, IsValid(""))
	assert.False(t, IsInternational(""))
}

func TestIsInternational(t *testing.T) {
	assert.True(t, IsInternational("+243 812 345 678"))
	assert.True(t, IsInternational("+32470123456"))
	assert.False(t, IsInternational("0812345678"))
	assert.False(t, IsInternational("+0812345678"))
	assert.False(t, IsInternational("+1234"))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "+24381...5678", Mask("+243812345678"))
	assert.Equal(t, "+3247", Mask("+3247"))
}
