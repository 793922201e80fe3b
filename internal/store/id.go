package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewID generates a team ID with a timestamp prefix and random suffix,
// e.g. "20240115-143052-a1b2c3". IDs sort chronologically and stay readable.
func NewID() string {
	random := make([]byte, 3)
	rand.Read(random)
	return fmt.Sprintf("%s-%s",
		time.Now().Format("20060102-150405"),
		hex.EncodeToString(random),
	)
}

// ShortID shortens an ID for display: "20240115-143052-a1b2c3" -> "240115-1430".
func ShortID(id string) string {
	if len(id) < 15 {
		return id
	}
	return id[2:8] + "-" + id[9:13]
}
