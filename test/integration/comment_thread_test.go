package integration

import (
	"encoding/json"
	"testing"

	"inkfeed-be/internal/dto"
	"inkfeed-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type errEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TestCommentThread(t *testing.T) {
	app, db := newTestApp(t)

	owner := seedUser(t, db, "Owner")
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")
	ownerToken := mintToken(t, owner.Id)
	aliceToken := mintToken(t, alice.Id)
	bobToken := mintToken(t, bob.Id)

	noteId := createPublishedNote(t, app, db, ownerToken, "Thread target")
	commentPath := "/api/comment/v1/notes/" + noteId.String()

	postComment := func(token, content string, parentId *uuid.UUID) (int, dto.CommentResponse) {
		body := map[string]interface{}{"content": content}
		if parentId != nil {
			body["parent_id"] = parentId.String()
		}
		resp := api(t, app, "POST", commentPath, token, body)
		var res serverutils.BaseResponse[dto.CommentResponse]
		json.NewDecoder(resp.Body).Decode(&res)
		return resp.StatusCode, res.Data
	}
	getTree := func() dto.CommentListResponse {
		resp := api(t, app, "GET", commentPath, "", nil)
		assert.Equal(t, 200, resp.StatusCode)
		var res serverutils.BaseResponse[dto.CommentListResponse]
		json.NewDecoder(resp.Body).Decode(&res)
		return res.Data
	}

	var root, replyB, replyC dto.CommentResponse

	t.Run("root comment lands with author info", func(t *testing.T) {
		code, created := postComment(aliceToken, "first!", nil)
		assert.Equal(t, 201, code)
		assert.Nil(t, created.ParentId)
		assert.Equal(t, "Alice", created.Author.Name)
		assert.Empty(t, created.Replies)
		root = created
	})

	t.Run("replies nest in creation order", func(t *testing.T) {
		var code int
		code, replyB = postComment(bobToken, "agreed", &root.Id)
		assert.Equal(t, 201, code)
		code, replyC = postComment(aliceToken, "thanks", &root.Id)
		assert.Equal(t, 201, code)

		tree := getTree()
		assert.EqualValues(t, 3, tree.Total)
		if !assert.Len(t, tree.Comments, 1) {
			return
		}
		top := tree.Comments[0]
		assert.Equal(t, root.Id, top.Id)
		if assert.Len(t, top.Replies, 2) {
			assert.Equal(t, replyB.Id, top.Replies[0].Id)
			assert.Equal(t, replyC.Id, top.Replies[1].Id)
		}
	})

	t.Run("cross-note parent is rejected", func(t *testing.T) {
		otherNote := createPublishedNote(t, app, db, ownerToken, "Unrelated note")
		resp := api(t, app, "POST", "/api/comment/v1/notes/"+otherNote.String(), bobToken,
			map[string]interface{}{"content": "lost reply", "parent_id": root.Id.String()})
		assert.Equal(t, 422, resp.StatusCode)

		var errRes errEnvelope
		json.NewDecoder(resp.Body).Decode(&errRes)
		assert.Equal(t, "INVALID_PARENT", errRes.Code)
	})

	t.Run("vanished parent is rejected", func(t *testing.T) {
		ghost := uuid.New()
		code, _ := postComment(bobToken, "reply to nothing", &ghost)
		assert.Equal(t, 422, code)
	})

	t.Run("comment on a missing note is not found", func(t *testing.T) {
		resp := api(t, app, "POST", "/api/comment/v1/notes/"+uuid.New().String(), bobToken,
			map[string]interface{}{"content": "void"})
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("only the author may delete", func(t *testing.T) {
		resp := api(t, app, "DELETE", "/api/comment/v1/"+root.Id.String(), bobToken, nil)
		assert.Equal(t, 403, resp.StatusCode)

		var errRes errEnvelope
		json.NewDecoder(resp.Body).Decode(&errRes)
		assert.Equal(t, "FORBIDDEN", errRes.Code)
	})

	t.Run("deleting a parent orphans its replies", func(t *testing.T) {
		resp := api(t, app, "DELETE", "/api/comment/v1/"+root.Id.String(), aliceToken, nil)
		assert.Equal(t, 200, resp.StatusCode)

		tree := getTree()
		assert.EqualValues(t, 2, tree.Total, "orphaned replies stay counted")
		assert.Len(t, tree.Comments, 0, "orphans must not surface as roots")
	})

	t.Run("deleting a missing comment is not found", func(t *testing.T) {
		resp := api(t, app, "DELETE", "/api/comment/v1/"+uuid.New().String(), aliceToken, nil)
		assert.Equal(t, 404, resp.StatusCode)
	})
}
