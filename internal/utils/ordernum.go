package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderNumber builds a display order number for receipts and
// guest checkouts. It is not the database primary key.
func GenerateOrderNumber() string {
	now := time.Now().UTC()
	datePart := now.Format("20060102")

	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 900000)
	}

	return fmt.Sprintf("ORD-%s-%06d", datePart, 100000+n.Int64()%900000)
}
