package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ActivationUsedKey returns the cache key marking a consumed activation token.
func (r *CacheKeyStruct) ActivationUsedKey(jti string) string {
	return fmt.Sprintf("activation:%s:used", jti)
}

// ResetUsedKey returns the cache key marking a consumed password-reset token.
func (r *CacheKeyStruct) ResetUsedKey(jti string) string {
	return fmt.Sprintf("reset:%s:used", jti)
}

var CacheKey = NewCacheKeyStruct()
