package integration

import (
	"encoding/json"
	"testing"
	"time"

	"inkfeed-be/internal/dto"
	"inkfeed-be/internal/model"
	"inkfeed-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFeedAndNotificationFlow(t *testing.T) {
	app, db := newTestApp(t)

	writer := seedUser(t, db, "Writer")
	val := seedUser(t, db, "Val")
	wes := seedUser(t, db, "Wes")
	writerToken := mintToken(t, writer.Id)
	valToken := mintToken(t, val.Id)
	wesToken := mintToken(t, wes.Id)

	tripId := createPublishedNote(t, app, db, writerToken, "Trip")

	// A draft that must never leak into public surfaces
	draftStatus := "draft"
	resp := api(t, app, "POST", "/api/note/v1", writerToken, dto.CreateNoteRequest{Title: "Packing draft", Content: "socks", Status: &draftStatus})
	var draftRes serverutils.BaseResponse[dto.NoteResponse]
	json.NewDecoder(resp.Body).Decode(&draftRes)
	draftId := draftRes.Data.Id
	t.Cleanup(func() { db.Unscoped().Delete(&model.Note{}, draftId) })

	t.Run("discover lists only published work", func(t *testing.T) {
		resp := api(t, app, "GET", "/api/feed/v1/discover?page_size=100", "", nil)
		assert.Equal(t, 200, resp.StatusCode)

		var res serverutils.BaseResponse[dto.PageResponse[dto.FeedItemResponse]]
		json.NewDecoder(resp.Body).Decode(&res)

		sawTrip := false
		for _, item := range res.Data.List {
			assert.NotNil(t, item.PublishedAt, "discover leaked an unpublished note")
			assert.NotEqual(t, draftId, item.Id)
			if item.Id == tripId {
				sawTrip = true
				assert.Equal(t, "Writer", item.Author.Name)
			}
		}
		assert.True(t, sawTrip, "fresh publication missing from discover")
	})

	t.Run("public detail view follows publication state", func(t *testing.T) {
		resp := api(t, app, "GET", "/api/feed/v1/discover/"+tripId.String(), "", nil)
		assert.Equal(t, 200, resp.StatusCode)

		resp = api(t, app, "GET", "/api/feed/v1/discover/"+draftId.String(), "", nil)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("my notes include drafts and honor filters", func(t *testing.T) {
		listMine := func(query string) []dto.MyNoteItemResponse {
			resp := api(t, app, "GET", "/api/feed/v1/mine"+query, writerToken, nil)
			assert.Equal(t, 200, resp.StatusCode)
			var res serverutils.BaseResponse[dto.PageResponse[dto.MyNoteItemResponse]]
			json.NewDecoder(resp.Body).Decode(&res)
			return res.Data.List
		}

		all := listMine("")
		assert.Len(t, all, 2)

		drafts := listMine("?status=draft")
		if assert.Len(t, drafts, 1) {
			assert.Equal(t, draftId, drafts[0].Id)
		}

		byTitle := listMine("?search=Trip")
		if assert.Len(t, byTitle, 1) {
			assert.Equal(t, tripId, byTitle[0].Id)
		}

		resp := api(t, app, "GET", "/api/feed/v1/mine?status=published", writerToken, nil)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("author pages show the public subset", func(t *testing.T) {
		resp := api(t, app, "GET", "/api/feed/v1/authors/"+writer.Id.String(), "", nil)
		assert.Equal(t, 200, resp.StatusCode)

		var profile serverutils.BaseResponse[dto.AuthorProfileResponse]
		json.NewDecoder(resp.Body).Decode(&profile)
		assert.Equal(t, "Writer", profile.Data.Name)
		assert.EqualValues(t, 1, profile.Data.PublicNotesCount)

		resp = api(t, app, "GET", "/api/feed/v1/authors/"+writer.Id.String()+"/notes", "", nil)
		var notes serverutils.BaseResponse[dto.PageResponse[dto.FeedItemResponse]]
		json.NewDecoder(resp.Body).Decode(&notes)
		if assert.Len(t, notes.Data.List, 1) {
			assert.Equal(t, tripId, notes.Data.List[0].Id)
		}

		resp = api(t, app, "GET", "/api/feed/v1/authors/"+uuid.New().String(), "", nil)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("engagement and comment round trip", func(t *testing.T) {
		likePath := "/api/engagement/v1/notes/" + tripId.String() + "/like"
		favPath := "/api/engagement/v1/notes/" + tripId.String() + "/favorite"

		var res serverutils.BaseResponse[dto.EngagementStatusResponse]

		resp := api(t, app, "POST", likePath, valToken, nil)
		json.NewDecoder(resp.Body).Decode(&res)
		assert.True(t, res.Data.Active)
		assert.EqualValues(t, 1, res.Data.Count)

		resp = api(t, app, "POST", likePath, valToken, nil)
		json.NewDecoder(resp.Body).Decode(&res)
		assert.False(t, res.Data.Active)
		assert.EqualValues(t, 0, res.Data.Count)

		resp = api(t, app, "POST", favPath, valToken, nil)
		json.NewDecoder(resp.Body).Decode(&res)
		assert.True(t, res.Data.Active)
		assert.EqualValues(t, 1, res.Data.Count)

		var rootRes serverutils.BaseResponse[dto.CommentResponse]
		resp = api(t, app, "POST", "/api/comment/v1/notes/"+tripId.String(), valToken, map[string]string{"content": "take me along"})
		assert.Equal(t, 201, resp.StatusCode)
		json.NewDecoder(resp.Body).Decode(&rootRes)

		resp = api(t, app, "POST", "/api/comment/v1/notes/"+tripId.String(), wesToken,
			map[string]interface{}{"content": "me too", "parent_id": rootRes.Data.Id.String()})
		assert.Equal(t, 201, resp.StatusCode)

		resp = api(t, app, "GET", "/api/comment/v1/notes/"+tripId.String(), "", nil)
		var tree serverutils.BaseResponse[dto.CommentListResponse]
		json.NewDecoder(resp.Body).Decode(&tree)
		assert.EqualValues(t, 2, tree.Data.Total)
		if assert.Len(t, tree.Data.Comments, 1) && assert.Len(t, tree.Data.Comments[0].Replies, 1) {
			assert.Equal(t, "me too", tree.Data.Comments[0].Replies[0].Content)
		}
	})

	t.Run("activity lands in the writer's inbox", func(t *testing.T) {
		// publish + like + favorite + root comment + reply = 5 rows,
		// written asynchronously by the recorder
		var inbox dto.PageResponse[model.Notification]
		deadline := time.Now().Add(3 * time.Second)
		for time.Now().Before(deadline) {
			resp := api(t, app, "GET", "/api/notification/v1?page_size=50", writerToken, nil)
			assert.Equal(t, 200, resp.StatusCode)
			var res serverutils.BaseResponse[dto.PageResponse[model.Notification]]
			json.NewDecoder(resp.Body).Decode(&res)
			inbox = res.Data
			if inbox.Total >= 5 {
				break
			}
			time.Sleep(50 * time.Millisecond)
		}
		if !assert.EqualValues(t, 5, inbox.Total) {
			return
		}

		byType := make(map[string]model.Notification)
		for _, n := range inbox.List {
			byType[n.TypeCode] = n
			assert.False(t, n.IsRead)
		}
		assert.Contains(t, byType, "NOTE_PUBLISHED")
		assert.Contains(t, byType, "NOTE_LIKED")
		assert.Contains(t, byType, "NOTE_FAVORITED")
		assert.Contains(t, byType, "COMMENT_CREATED")

		liked := byType["NOTE_LIKED"]
		assert.Contains(t, liked.Message, "Val")
		assert.Contains(t, liked.Message, "Trip")

		t.Run("unread bookkeeping", func(t *testing.T) {
			unread := func(token string) int64 {
				resp := api(t, app, "GET", "/api/notification/v1/unread-count", token, nil)
				var res serverutils.BaseResponse[map[string]int64]
				json.NewDecoder(resp.Body).Decode(&res)
				return res.Data["count"]
			}

			assert.EqualValues(t, 5, unread(writerToken))

			resp := api(t, app, "PUT", "/api/notification/v1/"+liked.ID.String()+"/read", writerToken, nil)
			assert.Equal(t, 200, resp.StatusCode)
			assert.EqualValues(t, 4, unread(writerToken))

			// Another user cannot mark it; the row reads as absent
			resp = api(t, app, "PUT", "/api/notification/v1/"+liked.ID.String()+"/read", valToken, nil)
			assert.Equal(t, 404, resp.StatusCode)

			resp = api(t, app, "PUT", "/api/notification/v1/read-all", writerToken, nil)
			assert.Equal(t, 200, resp.StatusCode)
			assert.EqualValues(t, 0, unread(writerToken))
		})

		t.Run("reply notifies the parent author too", func(t *testing.T) {
			resp := api(t, app, "GET", "/api/notification/v1", valToken, nil)
			var res serverutils.BaseResponse[dto.PageResponse[model.Notification]]
			json.NewDecoder(resp.Body).Decode(&res)
			if assert.EqualValues(t, 1, res.Data.Total) {
				assert.Equal(t, "COMMENT_CREATED", res.Data.List[0].TypeCode)
			}
		})
	})
}
