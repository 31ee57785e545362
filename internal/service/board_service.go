package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"clubportal/internal/csvstore"
	"clubportal/internal/errors"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

// Post types.
const (
	PostTypeGeneral = "일반"
	PostTypeNotice  = "공지"
)

// PostInput holds the editable fields of a post.
type PostInput struct {
	Title     string
	Content   string
	Club      string
	Tags      string
	PostType  string
	ImagePath string
}

// RenderedPost is a post with its content converted to sanitized HTML.
type RenderedPost struct {
	model.Post
	HTML string `json:"html"`
}

// BoardService manages the message board.
type BoardService interface {
	ListPosts(ctx context.Context, actor model.Principal, club string) ([]model.Post, error)
	GetPost(ctx context.Context, actor model.Principal, id int64) (*RenderedPost, error)
	CreatePost(ctx context.Context, actor model.Principal, in PostInput) (*model.Post, error)
	UpdatePost(ctx context.Context, actor model.Principal, id int64, in PostInput) (*model.Post, error)
	DeletePost(ctx context.Context, actor model.Principal, id int64) error
	LikePost(ctx context.Context, actor model.Principal, id int64) (int, error)
	AddComment(ctx context.Context, actor model.Principal, postID int64, content string) (*model.Comment, error)
	ListComments(ctx context.Context, actor model.Principal, postID int64) ([]model.Comment, error)
	DeleteComment(ctx context.Context, actor model.Principal, id int64) error
}

type boardService struct {
	posts    *repository.Table[model.Post]
	comments *repository.Table[model.Comment]
	notifier Notifier
	md       goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewBoardService creates a new board service. notifier may be nil.
func NewBoardService(tables *repository.Tables, notifier Notifier) BoardService {
	return &boardService{
		posts:    tables.Posts,
		comments: tables.Comments,
		notifier: notifier,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:   bluemonday.UGCPolicy(),
	}
}

// ListPosts returns visible posts, newest first. Notices come before other
// posts. A non-empty club narrows the list to that club.
func (s *boardService) ListPosts(ctx context.Context, actor model.Principal, club string) ([]model.Post, error) {
	posts, err := s.posts.Filter(ctx, func(p *model.Post) bool {
		return actor.CanSee(p.Club) && (club == "" || p.Club == club)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		ni, nj := posts[i].PostType == PostTypeNotice, posts[j].PostType == PostTypeNotice
		if ni != nj {
			return ni
		}
		return posts[i].CreatedDate.After(posts[j].CreatedDate)
	})
	return posts, nil
}

func (s *boardService) visible(ctx context.Context, actor model.Principal, id int64) (*model.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanSee(post.Club) {
		return nil, forbidden("view post")
	}
	return post, nil
}

func (s *boardService) GetPost(ctx context.Context, actor model.Principal, id int64) (*RenderedPost, error) {
	post, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	html, err := s.render(post.Content)
	if err != nil {
		return nil, err
	}
	return &RenderedPost{Post: *post, HTML: html}, nil
}

func (s *boardService) render(content string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return s.policy.Sanitize(buf.String()), nil
}

func (s *boardService) CreatePost(ctx context.Context, actor model.Principal, in PostInput) (*model.Post, error) {
	for field, value := range map[string]string{"title": in.Title, "content": in.Content, "club": in.Club} {
		if err := requireText(field, value); err != nil {
			return nil, err
		}
	}
	if !actor.IsTeacher() && in.Club != actor.Club && in.Club != model.ClubAll {
		return nil, forbidden("post to another club")
	}
	postType := in.PostType
	if postType == "" {
		postType = PostTypeGeneral
	}
	if postType == PostTypeNotice && !actor.CanManage(in.Club) {
		return nil, forbidden("post a notice")
	}

	post := &model.Post{
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Author:    actor.Username,
		Club:      in.Club,
		Tags:      in.Tags,
		PostType:  postType,
		ImagePath: in.ImagePath,
	}
	id, err := s.posts.Insert(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if s.notifier != nil {
		title := fmt.Sprintf("📝 새 게시글: %s", post.Title)
		message := fmt.Sprintf("%s님이 새 글을 올렸습니다.", actor.Name)
		if _, err := s.notifier.NotifyClub(ctx, post.Club, title, message, model.NotificationInfo); err != nil {
			slog.WarnContext(ctx, "notify new post", slog.Int64("post_id", id), slog.Any("err", err))
		}
	}
	return s.posts.Get(ctx, id)
}

func (s *boardService) editable(ctx context.Context, actor model.Principal, id int64, action string) (*model.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Author != actor.Username && !actor.IsTeacher() {
		return nil, forbidden(action)
	}
	return post, nil
}

func (s *boardService) UpdatePost(ctx context.Context, actor model.Principal, id int64, in PostInput) (*model.Post, error) {
	if _, err := s.editable(ctx, actor, id, "edit post"); err != nil {
		return nil, err
	}
	changes := csvstore.Row{}
	if strings.TrimSpace(in.Title) != "" {
		changes["title"] = strings.TrimSpace(in.Title)
	}
	if strings.TrimSpace(in.Content) != "" {
		changes["content"] = in.Content
	}
	if in.Tags != "" {
		changes["tags"] = in.Tags
	}
	if in.ImagePath != "" {
		changes["image_path"] = in.ImagePath
	}
	if len(changes) == 0 {
		return nil, invalid("nothing to update")
	}
	if err := s.posts.Update(ctx, id, changes); err != nil {
		return nil, err
	}
	return s.posts.Get(ctx, id)
}

// DeletePost removes a post and its comments.
func (s *boardService) DeletePost(ctx context.Context, actor model.Principal, id int64) error {
	if _, err := s.editable(ctx, actor, id, "delete post"); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	if _, err := s.comments.DeleteWhere(ctx, "post_id", fmt.Sprint(id)); err != nil {
		slog.WarnContext(ctx, "delete comments of post", slog.Int64("post_id", id), slog.Any("err", err))
	}
	return nil
}

func (s *boardService) LikePost(ctx context.Context, actor model.Principal, id int64) (int, error) {
	if _, err := s.visible(ctx, actor, id); err != nil {
		return 0, err
	}
	var likes int
	err := s.posts.Modify(ctx, id, func(p *model.Post) (csvstore.Row, error) {
		likes = p.Likes + 1
		return csvstore.Row{"likes": likes}, nil
	})
	return likes, err
}

func (s *boardService) AddComment(ctx context.Context, actor model.Principal, postID int64, content string) (*model.Comment, error) {
	if err := requireText("content", content); err != nil {
		return nil, err
	}
	if _, err := s.visible(ctx, actor, postID); err != nil {
		return nil, err
	}
	c := &model.Comment{PostID: postID, Author: actor.Username, Content: content}
	id, err := s.comments.Insert(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	if err := s.adjustComments(ctx, postID, 1); err != nil {
		return nil, err
	}
	return s.comments.Get(ctx, id)
}

func (s *boardService) adjustComments(ctx context.Context, postID int64, delta int) error {
	return s.posts.Modify(ctx, postID, func(p *model.Post) (csvstore.Row, error) {
		n := p.Comments + delta
		if n < 0 {
			n = 0
		}
		return csvstore.Row{"comments": n}, nil
	})
}

// ListComments returns a post's comments, oldest first.
func (s *boardService) ListComments(ctx context.Context, actor model.Principal, postID int64) ([]model.Comment, error) {
	if _, err := s.visible(ctx, actor, postID); err != nil {
		return nil, err
	}
	comments, err := s.comments.Filter(ctx, func(c *model.Comment) bool { return c.PostID == postID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedDate.Before(comments[j].CreatedDate)
	})
	return comments, nil
}

func (s *boardService) DeleteComment(ctx context.Context, actor model.Principal, id int64) error {
	c, err := s.comments.Get(ctx, id)
	if err != nil {
		return err
	}
	if c.Author != actor.Username && !actor.IsTeacher() {
		return forbidden("delete comment")
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.adjustComments(ctx, c.PostID, -1); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}
