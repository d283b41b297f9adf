// Package syncer talks to the optional remote profile and community
// backends. Every call is best effort; callers log failures and move on.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ecocart/internal/domain"
)

type Client struct {
	ProfileURL   string // e.g. https://profiles.example.com/api
	CommunityURL string // e.g. https://community.example.com/api
	HTTP         *http.Client
}

func New(profileURL, communityURL string) *Client {
	return &Client{
		ProfileURL:   profileURL,
		CommunityURL: communityURL,
		HTTP:         &http.Client{Timeout: 5 * time.Second},
	}
}

// PushPoints sends the customer's new eco-point balance to the profile
// backend. A blank ProfileURL disables the push.
func (c *Client) PushPoints(email string, balance int) error {
	if c == nil || c.ProfileURL == "" {
		return nil
	}
	body, err := json.Marshal(map[string]any{"email": email, "ecoPoints": balance})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ProfileURL+"/points", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("profile backend returned %d", resp.StatusCode)
	}
	return nil
}

// DeletePost asks the community backend to drop a post. The local delete
// has already happened; callers treat failures as non-fatal.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.remoteDelete(ctx, "/posts/"+id)
}

// DeleteComment mirrors a local comment removal to the community backend.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.remoteDelete(ctx, "/comments/"+id)
}

func (c *Client) remoteDelete(ctx context.Context, path string) error {
	if c == nil || c.CommunityURL == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.CommunityURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("community backend returned %d", resp.StatusCode)
	}
	return nil
}

// FetchPosts pulls the current community posts from the remote backend.
// A blank CommunityURL yields no posts and no error.
func (c *Client) FetchPosts(ctx context.Context) ([]domain.Post, error) {
	if c == nil || c.CommunityURL == "" {
		return nil, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.CommunityURL+"/posts", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("community backend returned %d", resp.StatusCode)
	}

	var payload []struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Author    string `json:"author"`
		Body      string `json:"content"`
		Status    string `json:"status"`
		CreatedAt string `json:"createdAt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	out := make([]domain.Post, 0, len(payload))
	for _, p := range payload {
		status := p.Status
		if status != domain.PostApproved {
			status = domain.PostPending
		}
		out = append(out, domain.Post{
			ID:        p.ID,
			Title:     p.Title,
			Author:    p.Author,
			Body:      p.Body,
			Status:    status,
			CreatedAt: p.CreatedAt,
		})
	}
	return out, nil
}
