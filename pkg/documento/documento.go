package documento

import (
	"fmt"
	"unicode"
)

// pesos dos dois dígitos verificadores do CNPJ, aplicados da esquerda para a
// direita sobre os 12 e 13 primeiros dígitos respectivamente.
var (
	cnpjWeightsFirst  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeightsSecond = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3}
)

// Normalize remove a pontuação do documento, deixando só os dígitos.
// "12.345.678/0001-95" vira "12345678000195".
func Normalize(document string) string {
	return string(extractDigits(document))
}

// Validate valida um CPF (11 dígitos) ou CNPJ (14 dígitos) pelos dígitos
// verificadores módulo 11. Aceita o documento com ou sem pontuação.
func Validate(document string) error {
	digits := extractDigits(document)
	switch len(digits) {
	case 11:
		return validateCPF(digits)
	case 14:
		return validateCNPJ(digits)
	}
	return fmt.Errorf("documento: esperado CPF (11 dígitos) ou CNPJ (14 dígitos), recebidos %d", len(digits))
}

func validateCPF(digits []byte) error {
	if allSame(digits) {
		// sequências repetidas (000..., 111...) passam no módulo 11 mas são inválidas
		return fmt.Errorf("documento: CPF com todos os dígitos iguais")
	}
	first := cpfCheckDigit(digits[:9], 10)
	if digits[9] != first {
		return fmt.Errorf("documento: primeiro dígito verificador do CPF inválido: esperado %c, recebido %c", first, digits[9])
	}
	second := cpfCheckDigit(digits[:10], 11)
	if digits[10] != second {
		return fmt.Errorf("documento: segundo dígito verificador do CPF inválido: esperado %c, recebido %c", second, digits[10])
	}
	return nil
}

// cpfCheckDigit calcula um dígito verificador do CPF: pesos decrescentes a
// partir de startWeight, resto < 2 vira 0, senão 11 - resto.
func cpfCheckDigit(base []byte, startWeight int) byte {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * (startWeight - i)
	}
	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + (11 - remainder))
}

func validateCNPJ(digits []byte) error {
	if allSame(digits) {
		return fmt.Errorf("documento: CNPJ com todos os dígitos iguais")
	}
	first := cnpjCheckDigit(digits[:12], cnpjWeightsFirst[:])
	if digits[12] != first {
		return fmt.Errorf("documento: primeiro dígito verificador do CNPJ inválido: esperado %c, recebido %c", first, digits[12])
	}
	second := cnpjCheckDigit(digits[:13], cnpjWeightsSecond[:])
	if digits[13] != second {
		return fmt.Errorf("documento: segundo dígito verificador do CNPJ inválido: esperado %c, recebido %c", second, digits[13])
	}
	return nil
}

func cnpjCheckDigit(base []byte, weights []int) byte {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * weights[i]
	}
	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + (11 - remainder))
}

func allSame(digits []byte) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
