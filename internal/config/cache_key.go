package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SubmitRateKey returns the counter key for a client's submissions in the
// fixed window starting at windowStart (unix seconds).
func (r *CacheKeyStruct) SubmitRateKey(clientIP string, windowStart int64) string {
	return fmt.Sprintf("ratelimit:submit:%s:%d", clientIP, windowStart)
}

var CacheKey = NewCacheKeyStruct()
