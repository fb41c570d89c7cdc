package orders

import "github.com/shopspring/decimal"

// Prorate divide um valor total entre os itens proporcionalmente aos pesos
// informados (a quantidade de cada linha). Cada parcela é arredondada em 2
// casas e o último item recebe o resíduo, de modo que a soma das parcelas
// feche exatamente com o total.
func Prorate(total decimal.Decimal, weights []decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(weights))
	if len(weights) == 0 || total.IsZero() {
		return shares
	}

	sum := decimal.Zero
	for _, w := range weights {
		sum = sum.Add(w)
	}
	if sum.IsZero() {
		return shares
	}

	allocated := decimal.Zero
	for i, w := range weights {
		if i == len(weights)-1 {
			shares[i] = total.Sub(allocated)
			break
		}
		share := total.Mul(w).Div(sum).Round(2)
		shares[i] = share
		allocated = allocated.Add(share)
	}
	return shares
}
