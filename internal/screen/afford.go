package screen

import "math"

// ContractSize is the number of underlying shares per option contract.
const ContractSize = 100

// AffordableContracts returns how many whole contracts the capital buys at
// the given premium. A non-positive premium affords nothing; there is no
// credit or short-position logic.
func AffordableContracts(callPrice, capital float64) int {
	if callPrice <= 0 || capital <= 0 {
		return 0
	}
	return int(math.Floor(capital / (callPrice * ContractSize)))
}
