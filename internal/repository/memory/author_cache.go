package memory

import (
	"time"

	"inkfeed-be/internal/dto"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type AuthorCache struct {
	cache *cache.Cache
}

func NewAuthorCache() *AuthorCache {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &AuthorCache{
		cache: c,
	}
}

func (r *AuthorCache) Save(author *dto.AuthorResponse) {
	r.cache.Set(author.Id.String(), author, cache.DefaultExpiration)
}

func (r *AuthorCache) Get(authorId uuid.UUID) (*dto.AuthorResponse, bool) {
	if x, found := r.cache.Get(authorId.String()); found {
		return x.(*dto.AuthorResponse), true
	}
	return nil, false
}

func (r *AuthorCache) Delete(authorId uuid.UUID) {
	r.cache.Delete(authorId.String())
}
