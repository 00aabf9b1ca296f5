package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// GiftCodeAlphabet omits 0/O and 1/I to keep codes readable
const GiftCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	giftCodePrefix      = "DAH"
	giftCodeGroups      = 3
	giftCodeGroupLength = 4
)

// GenerateGiftCode returns a code shaped DAH-XXXX-XXXX-XXXX
func GenerateGiftCode() (string, error) {
	alphabetLen := big.NewInt(int64(len(GiftCodeAlphabet)))
	groups := make([]string, 0, giftCodeGroups+1)
	groups = append(groups, giftCodePrefix)

	for g := 0; g < giftCodeGroups; g++ {
		var sb strings.Builder
		for i := 0; i < giftCodeGroupLength; i++ {
			n, err := rand.Int(rand.Reader, alphabetLen)
			if err != nil {
				return "", fmt.Errorf("failed to generate gift code: %w", err)
			}
			sb.WriteByte(GiftCodeAlphabet[n.Int64()])
		}
		groups = append(groups, sb.String())
	}

	return strings.Join(groups, "-"), nil
}
