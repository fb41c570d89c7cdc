package documento

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCPF(t *testing.T) {
	assert.NoError(t, Validate("529.982.247-25"))
	assert.NoError(t, Validate("52998224725"))

	assert.Error(t, Validate("529.982.247-24"), "dígito verificador errado")
	assert.Error(t, Validate("111.111.111-11"), "dígitos repetidos")
	assert.Error(t, Validate("1234567890"), "tamanho inválido")
}

func TestValidateCNPJ(t *testing.T) {
	assert.NoError(t, Validate("11.222.333/0001-81"))
	assert.NoError(t, Validate("11222333000181"))

	assert.Error(t, Validate("11.222.333/0001-80"), "dígito verificador errado")
	assert.Error(t, Validate("00.000.000/0000-00"), "dígitos repetidos")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "12345678000195", Normalize("12.345.678/0001-95"))
	assert.Equal(t, "52998224725", Normalize("529.982.247-25"))
	assert.Equal(t, "", Normalize("abc"))
}
