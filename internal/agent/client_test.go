package agent

import (
	"errors"
	"testing"

	"github.com/GGmuzem/intcalc-project/internal/calculate"
)

func TestRemoteCalcError(t *testing.T) {
	tests := []struct {
		message string
		kind    error
	}{
		{"division by zero", calculate.ErrDivisionByZero},
		{`invalid character 'a' at position 2`, calculate.ErrInvalidCharacter},
		{"missing ')' at position 4", calculate.ErrMalformedGrouping},
		{"expected a number at position 1", calculate.ErrInvalidExpression},
		{"empty expression", calculate.ErrInvalidExpression},
	}

	for _, test := range tests {
		err := remoteCalcError(test.message)
		if !errors.Is(err, test.kind) {
			t.Errorf("Message %q: expected kind %v, got %v", test.message, test.kind, err)
		}
		if err.Error() != test.message {
			t.Errorf("Message %q lost in translation: %q", test.message, err.Error())
		}
	}
}
