package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's login session.
func (r *CacheKeyStruct) UserSessionKey(userID string) string {
	return fmt.Sprintf("login:%s", userID)
}

// QuizPayloadKey returns the cache key for a template's concealed quiz payload.
func (r *CacheKeyStruct) QuizPayloadKey(templateID string) string {
	return fmt.Sprintf("template:%s:quiz_payload", templateID)
}

var CacheKey = NewCacheKeyStruct()
