package usecase

// ValidateTxHash checks that a string is a 32-byte hex transaction hash.
func ValidateTxHash(hash string) bool {
	if len(hash) != 64 {
		return false
	}
	for _, r := range hash {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
