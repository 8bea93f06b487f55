package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/wingwing524/wallet-client/internal/core"
)

// SearchUsers finds accounts matching the free-text query.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]core.User, error) {
	q := url.Values{}
	q.Set("q", query)

	var users []core.User
	if err := c.do(ctx, http.MethodGet, "/users/search", q, nil, &users); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

// SendFriendRequest asks the given user to connect.
func (c *Client) SendFriendRequest(ctx context.Context, userID string) error {
	body := struct {
		UserID string `json:"userId"`
	}{UserID: userID}
	if err := c.do(ctx, http.MethodPost, "/friends/request", nil, body, nil); err != nil {
		return fmt.Errorf("send friend request: %w", err)
	}
	return nil
}

// RespondFriendRequest accepts or rejects a pending request.
func (c *Client) RespondFriendRequest(ctx context.Context, requestID string, status core.FriendStatus) error {
	body := struct {
		FriendshipID string `json:"friendshipId"`
		Action       string `json:"action"`
	}{FriendshipID: requestID, Action: string(status)}
	if err := c.do(ctx, http.MethodPost, "/friends/respond", nil, body, nil); err != nil {
		return fmt.Errorf("respond to friend request: %w", err)
	}
	return nil
}

// Friends lists accepted friends with their derived spend stats.
func (c *Client) Friends(ctx context.Context) ([]core.Friend, error) {
	var friends []core.Friend
	if err := c.do(ctx, http.MethodGet, "/friends", nil, nil, &friends); err != nil {
		return nil, fmt.Errorf("fetch friends: %w", err)
	}
	return friends, nil
}

// PendingRequests lists friend requests awaiting a response.
func (c *Client) PendingRequests(ctx context.Context) ([]core.FriendRequest, error) {
	var requests []core.FriendRequest
	if err := c.do(ctx, http.MethodGet, "/friends/pending", nil, nil, &requests); err != nil {
		return nil, fmt.Errorf("fetch pending requests: %w", err)
	}
	return requests, nil
}

// FriendStats fetches the per-friend monthly and total spend figures.
func (c *Client) FriendStats(ctx context.Context, friendID string) (core.FriendStats, error) {
	var stats core.FriendStats
	if err := c.do(ctx, http.MethodGet, "/friends/"+url.PathEscape(friendID)+"/stats", nil, nil, &stats); err != nil {
		return core.FriendStats{}, fmt.Errorf("fetch friend stats: %w", err)
	}
	return stats, nil
}
