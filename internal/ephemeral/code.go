package ephemeral

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

const (
	codeMin = 100000
	codeMax = 999999
)

var codeSpan = big.NewInt(codeMax - codeMin + 1)

// GenerateCode returns a uniformly random six-digit code in
// [100000, 999999]. The range alone guarantees there is no leading zero.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneratingCode, err)
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}
