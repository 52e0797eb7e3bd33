package ledger

// ValidCPF reports whether s is a valid CPF. Formatting characters are ignored:
// only digits count. The two trailing check digits are verified with the
// standard mod-11 weighted sums.
func ValidCPF(s string) bool {
	digits := make([]int, 0, 11)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		} else if r != '.' && r != '-' && r != ' ' {
			return false
		}
	}
	if len(digits) != 11 {
		return false
	}

	// Sequences like "11111111111" satisfy the checksum but are not issued.
	same := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}

	return digits[9] == checkDigit(digits[:9], 10) &&
		digits[10] == checkDigit(digits[:10], 11)
}

// checkDigit computes one CPF verification digit: weighted sum with weights
// firstWeight down to 2, then the mod-11 rule.
func checkDigit(digits []int, firstWeight int) int {
	sum := 0
	for i, d := range digits {
		sum += d * (firstWeight - i)
	}
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}
