package domain

// ValidCPF checks the CPF check digits. Formatting characters are stripped
// first, so "529.982.247-25" and "52998224725" validate the same.
func ValidCPF(cpf string) bool {
	var digits []int
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) != 11 {
		return false
	}

	// all-equal sequences pass the arithmetic but are not real CPFs
	allEqual := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	if checkDigit(digits, 9, 10) != digits[9] {
		return false
	}
	return checkDigit(digits, 10, 11) == digits[10]
}

func checkDigit(digits []int, upto, weight int) int {
	sum := 0
	for i := 0; i < upto; i++ {
		sum += digits[i] * (weight - i)
	}
	d := 11 - sum%11
	if d >= 10 {
		return 0
	}
	return d
}
