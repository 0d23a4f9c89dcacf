package utils

// EstimateTokens approximates the token count of a prompt as one token
// per four characters. The estimate is deliberately conservative; exact
// tokenization depends on the upstream model's vocabulary.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// EstimateMessageTokens sums the estimate over a set of message bodies.
func EstimateMessageTokens(contents ...string) int {
	total := 0
	for _, c := range contents {
		total += EstimateTokens(c)
	}
	return total
}
