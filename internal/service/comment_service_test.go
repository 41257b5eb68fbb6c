package service

import (
	"testing"
	"time"

	"inkfeed-be/internal/dto"
	"inkfeed-be/internal/entity"

	"github.com/google/uuid"
)

func makeComment(noteId uuid.UUID, parentId *uuid.UUID, offset time.Duration) *entity.Comment {
	return &entity.Comment{
		Id:        uuid.New(),
		UserId:    uuid.New(),
		NoteId:    noteId,
		ParentId:  parentId,
		Content:   "c",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Add(offset),
	}
}

func TestBuildCommentForest(t *testing.T) {
	noteId := uuid.New()

	t.Run("roots keep creation order", func(t *testing.T) {
		first := makeComment(noteId, nil, 0)
		second := makeComment(noteId, nil, time.Minute)
		third := makeComment(noteId, nil, 2*time.Minute)

		forest := buildCommentForest([]*entity.Comment{first, second, third}, nil)

		if len(forest) != 3 {
			t.Fatalf("roots = %d, want 3", len(forest))
		}
		if forest[0].Id != first.Id || forest[1].Id != second.Id || forest[2].Id != third.Id {
			t.Errorf("root order does not follow creation order")
		}
	})

	t.Run("replies nest under their parent in order", func(t *testing.T) {
		root := makeComment(noteId, nil, 0)
		replyA := makeComment(noteId, &root.Id, time.Minute)
		replyB := makeComment(noteId, &root.Id, 2*time.Minute)

		forest := buildCommentForest([]*entity.Comment{root, replyA, replyB}, nil)

		if len(forest) != 1 {
			t.Fatalf("roots = %d, want 1", len(forest))
		}
		replies := forest[0].Replies
		if len(replies) != 2 {
			t.Fatalf("replies = %d, want 2", len(replies))
		}
		if replies[0].Id != replyA.Id || replies[1].Id != replyB.Id {
			t.Errorf("reply order does not follow creation order")
		}
	})

	t.Run("nesting goes arbitrarily deep", func(t *testing.T) {
		root := makeComment(noteId, nil, 0)
		child := makeComment(noteId, &root.Id, time.Minute)
		grandchild := makeComment(noteId, &child.Id, 2*time.Minute)

		forest := buildCommentForest([]*entity.Comment{root, child, grandchild}, nil)

		if len(forest) != 1 || len(forest[0].Replies) != 1 {
			t.Fatalf("unexpected shape at root level")
		}
		nested := forest[0].Replies[0].Replies
		if len(nested) != 1 || nested[0].Id != grandchild.Id {
			t.Errorf("grandchild not attached under child")
		}
	})

	t.Run("orphans are left out of the tree", func(t *testing.T) {
		deletedParent := uuid.New()
		root := makeComment(noteId, nil, 0)
		orphan := makeComment(noteId, &deletedParent, time.Minute)

		forest := buildCommentForest([]*entity.Comment{root, orphan}, nil)

		if len(forest) != 1 {
			t.Fatalf("roots = %d, want 1 (orphan must not float to top level)", len(forest))
		}
		if forest[0].Id != root.Id {
			t.Errorf("surviving root is not the expected comment")
		}
		if len(forest[0].Replies) != 0 {
			t.Errorf("orphan attached somewhere it should not be")
		}
	})

	t.Run("author info is attached from the lookup map", func(t *testing.T) {
		root := makeComment(noteId, nil, 0)
		authors := map[uuid.UUID]dto.AuthorResponse{
			root.UserId: {Id: root.UserId, Name: "Ada"},
		}

		forest := buildCommentForest([]*entity.Comment{root}, authors)

		if forest[0].Author.Name != "Ada" {
			t.Errorf("Author.Name = %q, want %q", forest[0].Author.Name, "Ada")
		}
	})

	t.Run("replies slice is never nil", func(t *testing.T) {
		root := makeComment(noteId, nil, 0)

		forest := buildCommentForest([]*entity.Comment{root}, nil)

		if forest[0].Replies == nil {
			t.Errorf("leaf Replies is nil, want empty slice")
		}
	})

	t.Run("empty input yields empty forest", func(t *testing.T) {
		forest := buildCommentForest(nil, nil)
		if forest == nil || len(forest) != 0 {
			t.Errorf("forest = %v, want empty non-nil slice", forest)
		}
	})
}
