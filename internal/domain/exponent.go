package domain

// DamageMultiplier resolves a one-character damage exponent code to its
// numeric multiplier. It is a pure lookup into the legacy table (see the
// package comment). The second return reports whether the code is mapped:
// for an unmapped code the multiplier is 0 and the caller must count the
// anomaly rather than drop it silently.
//
// "-" and "?" are placeholder junk in the historical data. They resolve to
// 0 like any other unmapped code and are flagged so bad rows stay visible.
func DamageMultiplier(code string) (float64, bool) {
	switch code {
	case "":
		return 0, true
	case "+":
		return 1, true
	case "h", "H":
		return 100, true
	case "k", "K":
		return 1e3, true
	case "m", "M":
		return 1e6, true
	case "b", "B":
		return 1e9, true
	}
	// Single digits 0-8 all mean "times ten" in the legacy encoding.
	// 9 never appears in the documented table and stays unmapped.
	if len(code) == 1 && code[0] >= '0' && code[0] <= '8' {
		return 10, true
	}
	return 0, false
}
