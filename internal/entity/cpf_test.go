package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
)

func TestValidCPF(t *testing.T) {
	valid := []string{
		"52998224725",
		"529.982.247-25", // formatting is stripped
		"16899535009",
	}
	for _, cpf := range valid {
		assert.Truef(t, domain.ValidCPF(cpf), "expected %q to be valid", cpf)
	}

	invalid := []string{
		"",
		"529982247",    // too short
		"529982247256", // too long
		"52998224726",  // wrong second check digit
		"52998224735",  // wrong first check digit
		"11111111111",  // all-equal sequence
		"00000000000",
		"abcdefghijk",
	}
	for _, cpf := range invalid {
		assert.Falsef(t, domain.ValidCPF(cpf), "expected %q to be invalid", cpf)
	}
}
