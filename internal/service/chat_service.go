package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"clubportal/internal/csvstore"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

const (
	maxChatMessageLength = 1000
	defaultChatLimit     = 50
)

// ChatStats summarizes a room.
type ChatStats struct {
	TotalMessages int `json:"total_messages"`
	ActiveUsers   int `json:"active_users"`
	MessagesToday int `json:"messages_today"`
}

// ChatService manages club chat rooms. The room model.ClubAll is the
// common room; listing it returns every room the actor can see.
type ChatService interface {
	Send(ctx context.Context, actor model.Principal, room, message string) (*model.ChatMessage, error)
	Recent(ctx context.Context, actor model.Principal, room string, limit int) ([]model.ChatMessage, error)
	Delete(ctx context.Context, actor model.Principal, id int64) error
	Stats(ctx context.Context, actor model.Principal, room string) (*ChatStats, error)
}

type chatService struct {
	messages *repository.Table[model.ChatMessage]
	now      Clock
}

// NewChatService creates a new chat service.
func NewChatService(tables *repository.Tables, now Clock) ChatService {
	return &chatService{messages: tables.Chat, now: clockOrNow(now)}
}

func (s *chatService) Send(ctx context.Context, actor model.Principal, room, message string) (*model.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, invalid("message is empty")
	}
	if utf8.RuneCountInString(message) > maxChatMessageLength {
		return nil, invalid("message is longer than %d characters", maxChatMessageLength)
	}
	if room == "" {
		room = actor.Club
	}
	if !actor.CanSee(room) {
		return nil, forbidden("post in room")
	}
	msg := &model.ChatMessage{Username: actor.Username, Club: room, Message: message}
	id, err := s.messages.Insert(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return s.messages.Get(ctx, id)
}

func (s *chatService) visible(actor model.Principal, room string) func(*model.ChatMessage) bool {
	return func(m *model.ChatMessage) bool {
		if m.Deleted {
			return false
		}
		if room == model.ClubAll {
			return actor.CanSee(m.Club)
		}
		return m.Club == room
	}
}

// Recent returns the latest limit messages of room in chronological order.
func (s *chatService) Recent(ctx context.Context, actor model.Principal, room string, limit int) ([]model.ChatMessage, error) {
	if !actor.CanSee(room) {
		return nil, forbidden("read room")
	}
	if limit <= 0 {
		limit = defaultChatLimit
	}
	msgs, err := s.messages.Filter(ctx, s.visible(actor, room))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp.Before(msgs[j].Timestamp) })
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

// Delete hides a message. Only its author or a teacher may delete it.
func (s *chatService) Delete(ctx context.Context, actor model.Principal, id int64) error {
	msg, err := s.messages.Get(ctx, id)
	if err != nil {
		return err
	}
	if msg.Username != actor.Username && !actor.IsTeacher() {
		return forbidden("delete message")
	}
	return s.messages.Update(ctx, id, csvstore.Row{"deleted": true})
}

func (s *chatService) Stats(ctx context.Context, actor model.Principal, room string) (*ChatStats, error) {
	if room == "" {
		room = model.ClubAll
	}
	if !actor.CanSee(room) {
		return nil, forbidden("read room")
	}
	msgs, err := s.messages.Filter(ctx, s.visible(actor, room))
	if err != nil {
		return nil, err
	}
	now := s.now()
	users := make(map[string]struct{})
	stats := &ChatStats{TotalMessages: len(msgs)}
	for _, m := range msgs {
		users[m.Username] = struct{}{}
		if sameDay(m.Timestamp, now) {
			stats.MessagesToday++
		}
	}
	stats.ActiveUsers = len(users)
	return stats, nil
}
