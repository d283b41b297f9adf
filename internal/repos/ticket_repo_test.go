package repos_test

import (
	"testing"

	"ecocart/internal/domain"
	"ecocart/internal/repos"
)

func TestTicketRespondMovesToInProgress(t *testing.T) {
	tickets := repos.NewTicketRepo(seededDB(t))
	if err := tickets.Create(domain.SupportTicket{
		ID: "t-1", User: "Thandi", Subject: "Late delivery", Message: "Order not here yet", Status: domain.TicketOpen,
	}); err != nil {
		t.Fatal(err)
	}

	if err := tickets.Respond("t-1", domain.TicketResponse{TicketID: "t-1", By: "Support", Message: "Looking into it"}); err != nil {
		t.Fatal(err)
	}

	got, err := tickets.Get("t-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.TicketInProgress {
		t.Fatalf("want in_progress after reply, got %s", got.Status)
	}

	responses, err := tickets.Responses("t-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(responses) != 1 || responses[0].By != "Support" {
		t.Fatalf("bad responses: %+v", responses)
	}
}

func TestTicketRespondDoesNotReopenClosed(t *testing.T) {
	tickets := repos.NewTicketRepo(seededDB(t))
	if err := tickets.Create(domain.SupportTicket{ID: "t-1", Subject: "Done", Status: domain.TicketOpen}); err != nil {
		t.Fatal(err)
	}
	if err := tickets.SetStatus("t-1", domain.TicketClosed); err != nil {
		t.Fatal(err)
	}
	if err := tickets.Respond("t-1", domain.TicketResponse{TicketID: "t-1", By: "Support", Message: "Follow-up"}); err != nil {
		t.Fatal(err)
	}
	got, err := tickets.Get("t-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.TicketClosed {
		t.Fatalf("closed ticket should stay closed, got %s", got.Status)
	}
}

func TestTicketListFilters(t *testing.T) {
	tickets := repos.NewTicketRepo(seededDB(t))
	for _, tk := range []domain.SupportTicket{
		{ID: "t-1", User: "Thandi", Subject: "Refund request", Status: domain.TicketOpen},
		{ID: "t-2", User: "Sipho", Subject: "Broken sponge", Status: domain.TicketClosed},
	} {
		if err := tickets.Create(tk); err != nil {
			t.Fatal(err)
		}
	}

	got, err := tickets.List("refund", "all")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "t-1" {
		t.Fatalf("want the refund ticket, got %+v", got)
	}

	got, err = tickets.List("", domain.TicketClosed)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "t-2" {
		t.Fatalf("want the closed ticket, got %+v", got)
	}

	if err := tickets.Delete("t-404"); err != nil {
		t.Fatalf("delete of unknown ticket should be a no-op, got %v", err)
	}
}
