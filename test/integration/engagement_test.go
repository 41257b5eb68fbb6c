package integration

import (
	"encoding/json"
	"sync"
	"testing"

	"inkfeed-be/internal/dto"
	"inkfeed-be/internal/model"
	"inkfeed-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func createPublishedNote(t *testing.T, app *fiber.App, db *gorm.DB, token, title string) uuid.UUID {
	t.Helper()

	resp := api(t, app, "POST", "/api/note/v1", token, dto.CreateNoteRequest{Title: title, Content: "<p>body</p>"})
	assert.Equal(t, 201, resp.StatusCode)

	var created serverutils.BaseResponse[dto.NoteResponse]
	json.NewDecoder(resp.Body).Decode(&created)
	noteId := created.Data.Id

	resp = api(t, app, "PUT", "/api/note/v1/"+noteId.String()+"/publish", token, nil)
	assert.Equal(t, 200, resp.StatusCode)

	t.Cleanup(func() {
		db.Unscoped().Where("note_id = ?", noteId).Delete(&model.Engagement{})
		db.Unscoped().Where("note_id = ?", noteId).Delete(&model.Comment{})
		db.Unscoped().Delete(&model.Note{}, noteId)
	})
	return noteId
}

func TestEngagementToggles(t *testing.T) {
	app, db := newTestApp(t)

	owner := seedUser(t, db, "Owner")
	visitor := seedUser(t, db, "Visitor")
	second := seedUser(t, db, "Second")
	ownerToken := mintToken(t, owner.Id)
	visitorToken := mintToken(t, visitor.Id)
	secondToken := mintToken(t, second.Id)

	noteId := createPublishedNote(t, app, db, ownerToken, "Engagement target")
	likePath := "/api/engagement/v1/notes/" + noteId.String() + "/like"
	favPath := "/api/engagement/v1/notes/" + noteId.String() + "/favorite"

	toggle := func(token, path string) dto.EngagementStatusResponse {
		resp := api(t, app, "POST", path, token, nil)
		assert.Equal(t, 200, resp.StatusCode)
		var res serverutils.BaseResponse[dto.EngagementStatusResponse]
		json.NewDecoder(resp.Body).Decode(&res)
		return res.Data
	}
	status := func(token, path string) dto.EngagementStatusResponse {
		resp := api(t, app, "GET", path, token, nil)
		assert.Equal(t, 200, resp.StatusCode)
		var res serverutils.BaseResponse[dto.EngagementStatusResponse]
		json.NewDecoder(resp.Body).Decode(&res)
		return res.Data
	}

	t.Run("double toggle returns to the origin", func(t *testing.T) {
		on := toggle(visitorToken, likePath)
		assert.True(t, on.Active)
		assert.EqualValues(t, 1, on.Count)

		off := toggle(visitorToken, likePath)
		assert.False(t, off.Active)
		assert.EqualValues(t, 0, off.Count)
	})

	t.Run("like and favorite are separate ledgers", func(t *testing.T) {
		fav := toggle(visitorToken, favPath)
		assert.True(t, fav.Active)
		assert.EqualValues(t, 1, fav.Count)

		like := status(visitorToken, likePath)
		assert.False(t, like.Active, "favoriting must not create a like")
		assert.EqualValues(t, 0, like.Count)
	})

	t.Run("counts add up across users", func(t *testing.T) {
		toggle(visitorToken, likePath)
		res := toggle(secondToken, likePath)
		assert.True(t, res.Active)
		assert.EqualValues(t, 2, res.Count)
	})

	t.Run("anonymous status read works", func(t *testing.T) {
		res := status("", likePath)
		assert.False(t, res.Active)
		assert.EqualValues(t, 2, res.Count)
	})

	t.Run("missing note is not found", func(t *testing.T) {
		resp := api(t, app, "POST", "/api/engagement/v1/notes/"+uuid.New().String()+"/like", visitorToken, nil)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("concurrent duplicate toggles converge", func(t *testing.T) {
		raceNote := createPublishedNote(t, app, db, ownerToken, "Race target")
		racePath := "/api/engagement/v1/notes/" + raceNote.String() + "/favorite"

		var wg sync.WaitGroup
		codes := make([]int, 4)
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(slot int) {
				defer wg.Done()
				resp := api(t, app, "POST", racePath, visitorToken, nil)
				codes[slot] = resp.StatusCode
			}(i)
		}
		wg.Wait()

		for _, code := range codes {
			assert.Equal(t, 200, code, "races must never surface as errors")
		}

		var rows int64
		db.Model(&model.Engagement{}).
			Where("user_id = ? AND note_id = ? AND kind = ?", visitor.Id, raceNote, "favorite").
			Count(&rows)
		assert.LessOrEqual(t, rows, int64(1), "at most one ledger row may survive")

		res := status(visitorToken, racePath)
		assert.Equal(t, rows == 1, res.Active)
	})
}

func TestFavoritesListing(t *testing.T) {
	app, db := newTestApp(t)

	owner := seedUser(t, db, "Owner")
	visitor := seedUser(t, db, "Visitor")
	ownerToken := mintToken(t, owner.Id)
	visitorToken := mintToken(t, visitor.Id)

	first := createPublishedNote(t, app, db, ownerToken, "First favorite")
	second := createPublishedNote(t, app, db, ownerToken, "Second favorite")

	api(t, app, "POST", "/api/engagement/v1/notes/"+first.String()+"/favorite", visitorToken, nil)
	api(t, app, "POST", "/api/engagement/v1/notes/"+second.String()+"/favorite", visitorToken, nil)

	listFavorites := func() dto.PageResponse[dto.FavoriteItemResponse] {
		resp := api(t, app, "GET", "/api/engagement/v1/favorites", visitorToken, nil)
		assert.Equal(t, 200, resp.StatusCode)
		var res serverutils.BaseResponse[dto.PageResponse[dto.FavoriteItemResponse]]
		json.NewDecoder(resp.Body).Decode(&res)
		return res.Data
	}

	t.Run("recent favorites come first", func(t *testing.T) {
		page := listFavorites()
		if !assert.Len(t, page.List, 2) {
			return
		}
		assert.Equal(t, second, page.List[0].NoteId)
		assert.Equal(t, first, page.List[1].NoteId)
		assert.Equal(t, "Owner", page.List[0].Author.Name)
		assert.NotContains(t, page.List[0].ContentPreview, "<p>", "preview must be plain text")
	})

	t.Run("unpublished notes drop out of the listing", func(t *testing.T) {
		resp := api(t, app, "PUT", "/api/note/v1/"+second.String()+"/draft", ownerToken, nil)
		assert.Equal(t, 200, resp.StatusCode)

		page := listFavorites()
		if !assert.Len(t, page.List, 1) {
			return
		}
		assert.Equal(t, first, page.List[0].NoteId)
		assert.EqualValues(t, 1, page.Total)
	})
}
