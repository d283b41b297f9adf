package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ecocart/internal/domain"
	applog "ecocart/internal/log"
	"ecocart/internal/repos"

	"github.com/google/uuid"
)

// localIDPrefix marks posts created on this node before any sync ran.
// The merge keeps them even when the server copy does not list them.
const localIDPrefix = "local-"

// RemoteFeed is the community backend: the authoritative post list, plus
// best-effort mirroring of local moderation deletes.
type RemoteFeed interface {
	FetchPosts(ctx context.Context) ([]domain.Post, error)
	DeletePost(ctx context.Context, id string) error
	DeleteComment(ctx context.Context, id string) error
}

type CommunityService struct {
	Posts  *repos.PostRepo
	Remote RemoteFeed // optional
}

func NewCommunityService(posts *repos.PostRepo, remote RemoteFeed) *CommunityService {
	return &CommunityService{Posts: posts, Remote: remote}
}

// CreatePost stores a locally-authored post as pending moderation.
func (s *CommunityService) CreatePost(author, title, body string) (domain.Post, error) {
	p := domain.Post{
		ID:     localIDPrefix + uuid.NewString(),
		Title:  strings.TrimSpace(title),
		Author: author,
		Body:   strings.TrimSpace(body),
		Status: domain.PostPending,
	}
	if err := s.Posts.Create(p); err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

func (s *CommunityService) AddComment(postID, author, body string) error {
	return s.Posts.AddComment(domain.Comment{
		ID:     uuid.NewString(),
		PostID: postID,
		Author: author,
		Body:   strings.TrimSpace(body),
	})
}

// Approved lists the posts visible on the public community page.
func (s *CommunityService) Approved() ([]domain.Post, error) {
	return s.Posts.List("", domain.PostApproved)
}

// DeletePost removes the post locally and mirrors the delete to the
// backend. The local removal is authoritative; a failed push is logged
// and never surfaces. Posts that only ever existed here are not pushed.
func (s *CommunityService) DeletePost(ctx context.Context, id string) error {
	if err := s.Posts.Delete(id); err != nil {
		return err
	}
	if s.Remote == nil || strings.HasPrefix(id, localIDPrefix) {
		return nil
	}
	if err := s.Remote.DeletePost(ctx, id); err != nil {
		applog.Error(nil, "community_post_delete_sync", err, map[string]any{"post_id": id})
	}
	return nil
}

// DeleteComment removes the comment locally and mirrors the delete to the
// backend, log-only on failure.
func (s *CommunityService) DeleteComment(ctx context.Context, id string) error {
	if err := s.Posts.DeleteComment(id); err != nil {
		return err
	}
	if s.Remote == nil {
		return nil
	}
	if err := s.Remote.DeleteComment(ctx, id); err != nil {
		applog.Error(nil, "community_comment_delete_sync", err, map[string]any{"comment_id": id})
	}
	return nil
}

// Sync merges the remote post list into local storage. Server copies win
// over local rows with the same id; locally-created posts and all local
// comments survive the merge. Failures leave the local state untouched.
func (s *CommunityService) Sync(ctx context.Context) error {
	if s.Remote == nil {
		return nil
	}
	remote, err := s.Remote.FetchPosts(ctx)
	if err != nil {
		applog.Error(nil, "community_sync", err, nil)
		return err
	}
	for _, p := range remote {
		if strings.HasPrefix(p.ID, localIDPrefix) {
			continue
		}
		if err := s.Posts.Upsert(p); err != nil {
			return err
		}
	}
	applog.Info(nil, "community_sync", map[string]any{"posts": len(remote)})
	return nil
}

type SupportService struct {
	Tickets *repos.TicketRepo
}

func NewSupportService(tickets *repos.TicketRepo) *SupportService {
	return &SupportService{Tickets: tickets}
}

// OpenTicket files a new support request.
func (s *SupportService) OpenTicket(user, subject, message string) (domain.SupportTicket, error) {
	t := domain.SupportTicket{
		ID:      fmt.Sprintf("t-%d", time.Now().UnixMilli()),
		User:    user,
		Subject: strings.TrimSpace(subject),
		Message: strings.TrimSpace(message),
		Status:  domain.TicketOpen,
	}
	if err := s.Tickets.Create(t); err != nil {
		return domain.SupportTicket{}, err
	}
	return t, nil
}

// Respond records a staff reply; the repo moves the ticket to in_progress.
func (s *SupportService) Respond(ticketID, responder, message string) error {
	return s.Tickets.Respond(ticketID, domain.TicketResponse{
		TicketID: ticketID,
		By:       responder,
		Message:  strings.TrimSpace(message),
	})
}
