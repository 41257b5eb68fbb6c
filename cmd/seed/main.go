package main

import (
	"log"
	"os"
	"time"

	"inkfeed-be/internal/model"
	"inkfeed-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🚀 Seeding demo users, notes and engagement\n")

	users := seedUsers(db)
	notes := seedNotes(db, users)
	seedEngagements(db, users, notes)
	seedComments(db, users, notes)

	color.Cyan("\nSeeding completed!")
}

func ptr(s string) *string {
	return &s
}

func seedUsers(db *gorm.DB) map[string]model.User {
	color.Yellow("\n[1] Users")

	seeds := []model.User{
		{Id: uuid.New(), Username: "ada.writes", Nickname: ptr("Ada"), Bio: ptr("Notes on systems and tea."), Email: ptr("ada@example.com")},
		{Id: uuid.New(), Username: "bram", Nickname: ptr("Bram"), Bio: ptr("Mostly drafts."), Email: ptr("bram@example.com")},
		{Id: uuid.New(), Username: "cleo.field", Email: ptr("cleo@example.com")},
	}

	result := make(map[string]model.User)
	for _, u := range seeds {
		var existing model.User
		if err := db.Where("username = ?", u.Username).First(&existing).Error; err == nil {
			color.Yellow("User '%s' already exists, skipping...", u.Username)
			result[u.Username] = existing
			continue
		}

		if err := db.Create(&u).Error; err != nil {
			color.Red("Error creating user '%s': %v", u.Username, err)
			continue
		}
		color.Green("Created user: %s", u.Username)
		result[u.Username] = u
	}
	return result
}

func seedNotes(db *gorm.DB, users map[string]model.User) map[string]model.Note {
	color.Yellow("\n[2] Notes")

	now := time.Now()
	lastWeek := now.Add(-7 * 24 * time.Hour)

	type noteSeed struct {
		owner       string
		title       string
		content     string
		status      string
		publishedAt *time.Time
	}

	seeds := []noteSeed{
		{owner: "ada.writes", title: "Why I still take notes by hand", content: "Paper first, keyboard later. The friction is the point.", status: "public", publishedAt: &lastWeek},
		{owner: "ada.writes", title: "Reading list, unsorted", content: "A pile of links I keep meaning to get to.", status: "public", publishedAt: &now},
		{owner: "ada.writes", title: "Half-formed thoughts on caching", content: "TTLs are apologies with timestamps.", status: "draft"},
		{owner: "bram", title: "Sourdough log, week 3", content: "The starter finally survived a weekend unattended.", status: "public", publishedAt: &now},
		{owner: "bram", title: "Things I will not publish", content: "For my eyes only.", status: "private"},
		{owner: "cleo.field", title: "Field recording locations", content: "Wind shelter matters more than mic choice.", status: "public", publishedAt: &lastWeek},
	}

	result := make(map[string]model.Note)
	for _, s := range seeds {
		owner, ok := users[s.owner]
		if !ok {
			color.Red("Skipping note '%s': owner '%s' missing", s.title, s.owner)
			continue
		}

		var existing model.Note
		if err := db.Where("user_id = ? AND title = ?", owner.Id, s.title).First(&existing).Error; err == nil {
			color.Yellow("Note '%s' already exists, skipping...", s.title)
			result[s.title] = existing
			continue
		}

		n := model.Note{
			Id:          uuid.New(),
			UserId:      owner.Id,
			Title:       s.title,
			Content:     s.content,
			Status:      s.status,
			PublishedAt: s.publishedAt,
		}
		if err := db.Create(&n).Error; err != nil {
			color.Red("Error creating note '%s': %v", s.title, err)
			continue
		}
		color.Green("Created note: %s (%s)", s.title, s.status)
		result[s.title] = n
	}
	return result
}

func seedEngagements(db *gorm.DB, users map[string]model.User, notes map[string]model.Note) {
	color.Yellow("\n[3] Likes & Favorites")

	type engSeed struct {
		user string
		note string
		kind string
	}

	seeds := []engSeed{
		{user: "bram", note: "Why I still take notes by hand", kind: "like"},
		{user: "cleo.field", note: "Why I still take notes by hand", kind: "like"},
		{user: "cleo.field", note: "Why I still take notes by hand", kind: "favorite"},
		{user: "ada.writes", note: "Sourdough log, week 3", kind: "like"},
		{user: "bram", note: "Field recording locations", kind: "favorite"},
	}

	for _, s := range seeds {
		user, uok := users[s.user]
		note, nok := notes[s.note]
		if !uok || !nok {
			continue
		}

		var existing model.Engagement
		if err := db.Where("user_id = ? AND note_id = ? AND kind = ?", user.Id, note.Id, s.kind).First(&existing).Error; err == nil {
			color.Yellow("%s by '%s' on '%s' already exists, skipping...", s.kind, s.user, s.note)
			continue
		}

		e := model.Engagement{
			Id:     uuid.New(),
			UserId: user.Id,
			NoteId: note.Id,
			Kind:   s.kind,
		}
		if err := db.Create(&e).Error; err != nil {
			color.Red("Error creating %s: %v", s.kind, err)
			continue
		}
		color.Green("Created %s: %s → %s", s.kind, s.user, s.note)
	}
}

func seedComments(db *gorm.DB, users map[string]model.User, notes map[string]model.Note) {
	color.Yellow("\n[4] Comments")

	note, ok := notes["Why I still take notes by hand"]
	if !ok {
		return
	}

	var count int64
	db.Model(&model.Comment{}).Where("note_id = ?", note.Id).Count(&count)
	if count > 0 {
		color.Yellow("Note already has comments, skipping...")
		return
	}

	bram, bok := users["bram"]
	cleo, cok := users["cleo.field"]
	ada, aok := users["ada.writes"]
	if !bok || !cok || !aok {
		return
	}

	root := model.Comment{
		Id:      uuid.New(),
		UserId:  bram.Id,
		NoteId:  note.Id,
		Content: "Same here. Typing makes me edit before I think.",
	}
	if err := db.Create(&root).Error; err != nil {
		color.Red("Error creating comment: %v", err)
		return
	}
	color.Green("Created comment by %s", bram.Username)

	replies := []model.Comment{
		{Id: uuid.New(), UserId: ada.Id, NoteId: note.Id, ParentId: &root.Id, Content: "Exactly, the backspace key is a censor."},
		{Id: uuid.New(), UserId: cleo.Id, NoteId: note.Id, ParentId: &root.Id, Content: "Counterpoint: my handwriting censors me."},
	}
	for _, r := range replies {
		if err := db.Create(&r).Error; err != nil {
			color.Red("Error creating reply: %v", err)
			continue
		}
		color.Green("Created reply by %s", usernameOf(users, r.UserId))
	}
}

func usernameOf(users map[string]model.User, id uuid.UUID) string {
	for _, u := range users {
		if u.Id == id {
			return u.Username
		}
	}
	return id.String()
}
