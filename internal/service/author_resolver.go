package service

import (
	"context"

	"inkfeed-be/internal/dto"
	"inkfeed-be/internal/repository/memory"
	"inkfeed-be/internal/repository/specification"
	"inkfeed-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// authorResolver batch-loads author display info with a small in-process
// cache in front. Feed, favorites and comment responses all share it.
type authorResolver struct {
	authorCache *memory.AuthorCache
}

func NewAuthorResolver(authorCache *memory.AuthorCache) *authorResolver {
	return &authorResolver{authorCache: authorCache}
}

// Resolve returns display info for every existing user in userIds, one
// query for all cache misses. Unknown ids are simply absent from the map.
func (r *authorResolver) Resolve(ctx context.Context, uow unitofwork.UnitOfWork, userIds []uuid.UUID) (map[uuid.UUID]dto.AuthorResponse, error) {
	result := make(map[uuid.UUID]dto.AuthorResponse, len(userIds))
	seen := make(map[uuid.UUID]bool, len(userIds))
	var missing []uuid.UUID

	for _, id := range userIds {
		if seen[id] {
			continue
		}
		seen[id] = true

		if r.authorCache != nil {
			if author, found := r.authorCache.Get(id); found {
				result[id] = *author
				continue
			}
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return result, nil
	}

	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: missing})
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		author := dto.AuthorResponse{
			Id:        user.Id,
			Name:      user.DisplayName(),
			AvatarURL: user.AvatarURL,
		}
		result[user.Id] = author
		if r.authorCache != nil {
			r.authorCache.Save(&author)
		}
	}

	return result, nil
}
