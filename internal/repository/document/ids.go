package document

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	TreatmentIDPrefix = "T"
	RoomIDPrefix      = "S"
)

// NextID returns one more than the largest key that parses as an integer.
// Keys that do not parse count as 0, so an empty or unparsable set yields 1.
func NextID(keys []string) int {
	max := 0
	for _, k := range keys {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			n = 0
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}

func NextIntID(ids []int) int {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = strconv.Itoa(id)
	}
	return NextID(keys)
}

// NextPrefixedID is NextID over the numeric part of ids such as T004.
func NextPrefixedID(ids []string, prefix string) int {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = strings.TrimPrefix(id, prefix)
	}
	return NextID(keys)
}

func TreatmentID(n int) string {
	return fmt.Sprintf("%s%03d", TreatmentIDPrefix, n)
}

func RoomID(n int) string {
	return RoomIDPrefix + strconv.Itoa(n)
}
