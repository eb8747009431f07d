package model

import (
	"fmt"
	"strconv"
	"strings"
)

// AccountKey identifies an account either by numeric id or by account number, never both.
type AccountKey struct {
	id     int64
	number string
}

func AccountByID(id int64) AccountKey {
	return AccountKey{id: id}
}

func AccountByNumber(number string) AccountKey {
	return AccountKey{number: number}
}

// ParseAccountKey treats an all-digit value as id and anything else as account number
func ParseAccountKey(s string) (AccountKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AccountKey{}, fmt.Errorf("empty account key")
	}

	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		if id <= 0 {
			return AccountKey{}, fmt.Errorf("account id must be positive: %d", id)
		}
		return AccountByID(id), nil
	}

	return AccountByNumber(s), nil
}

// ID returns the numeric id and whether the key is id based
func (k AccountKey) ID() (int64, bool) {
	return k.id, k.id != 0
}

// Number returns the account number and whether the key is number based
func (k AccountKey) Number() (string, bool) {
	return k.number, k.number != ""
}

func (k AccountKey) String() string {
	if k.id != 0 {
		return strconv.FormatInt(k.id, 10)
	}
	return k.number
}
