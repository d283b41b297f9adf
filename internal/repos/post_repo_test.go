package repos_test

import (
	"testing"

	"ecocart/internal/domain"
	"ecocart/internal/repos"
)

func TestPostUpsertServerWinsKeepsComments(t *testing.T) {
	posts := repos.NewPostRepo(seededDB(t))

	if err := posts.Create(domain.Post{
		ID: "p-1", Title: "Plastic free July", Author: "Thandi", Body: "My month without plastic", Status: domain.PostPending,
	}); err != nil {
		t.Fatal(err)
	}
	if err := posts.AddComment(domain.Comment{ID: "c-1", PostID: "p-1", Author: "Sipho", Body: "Inspiring!"}); err != nil {
		t.Fatal(err)
	}

	// server copy replaces the local row
	if err := posts.Upsert(domain.Post{
		ID: "p-1", Title: "Plastic Free July", Author: "Thandi", Body: "Edited on the server", Status: domain.PostApproved,
	}); err != nil {
		t.Fatal(err)
	}

	p, err := posts.Get("p-1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Body != "Edited on the server" || p.Status != domain.PostApproved {
		t.Fatalf("server copy should win: %+v", p)
	}

	comments, err := posts.CommentsFor("p-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != 1 {
		t.Fatalf("local comments must survive the merge, got %d", len(comments))
	}
}

func TestPostListFilters(t *testing.T) {
	posts := repos.NewPostRepo(seededDB(t))
	for _, p := range []domain.Post{
		{ID: "p-1", Title: "Composting 101", Author: "Thandi", Body: "How to start", Status: domain.PostApproved},
		{ID: "local-abc", Title: "My garden", Author: "Sipho", Body: "Compost worked", Status: domain.PostPending},
	} {
		if err := posts.Create(p); err != nil {
			t.Fatal(err)
		}
	}

	got, err := posts.List("compost", "all")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("substring search should match title and body, got %d", len(got))
	}

	got, err = posts.List("", domain.PostPending)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "local-abc" {
		t.Fatalf("want the pending local post, got %+v", got)
	}
}

func TestCommentsJoinPostTitle(t *testing.T) {
	posts := repos.NewPostRepo(seededDB(t))
	if err := posts.Create(domain.Post{ID: "p-1", Title: "Zero waste wins", Status: domain.PostApproved}); err != nil {
		t.Fatal(err)
	}
	if err := posts.AddComment(domain.Comment{ID: "c-1", PostID: "p-1", Author: "Thandi", Body: "Well done"}); err != nil {
		t.Fatal(err)
	}

	got, err := posts.Comments("")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].PostTitle != "Zero waste wins" {
		t.Fatalf("want comment joined with post title, got %+v", got)
	}

	if err := posts.DeleteComment("c-404"); err != nil {
		t.Fatalf("delete of unknown comment should be a no-op, got %v", err)
	}
}
