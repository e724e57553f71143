package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// OwnerCoursesKey returns the cache key for an owner's course list.
func (r *CacheKeyStruct) OwnerCoursesKey(ownerEmail string) string {
	return fmt.Sprintf("courses:%s", ownerEmail)
}

// IdentityKey returns the cache key for a verified bearer credential.
func (r *CacheKeyStruct) IdentityKey(token string) string {
	return fmt.Sprintf("identity:%s", token)
}

var CacheKey = NewCacheKeyStruct()
