package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubportal/internal/service"
)

// BoardHandler serves posts and comments.
type BoardHandler struct {
	svc service.BoardService
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(svc service.BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

// PostRequest is the payload of a post. Content is markdown.
type PostRequest struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Club      string `json:"club" validate:"required"`
	Tags      string `json:"tags"`
	PostType  string `json:"post_type"`
	ImagePath string `json:"image_path"`
}

func (r PostRequest) input() service.PostInput {
	return service.PostInput{
		Title:     r.Title,
		Content:   r.Content,
		Club:      r.Club,
		Tags:      r.Tags,
		PostType:  r.PostType,
		ImagePath: r.ImagePath,
	}
}

// CommentRequest is the payload of a comment.
type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// LikeResponse carries the like count after a like.
type LikeResponse struct {
	Likes int `json:"likes"`
}

// ListPosts godoc
// @Summary List visible posts
// @Tags board
// @Produce json
// @Security BearerAuth
// @Param club query string false "Only this club"
// @Success 200 {array} model.Post
// @Router /posts [get]
func (h *BoardHandler) ListPosts(c echo.Context) error {
	posts, err := h.svc.ListPosts(c.Request().Context(), principal(c), c.QueryParam("club"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary Get post with rendered HTML
// @Tags board
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} service.RenderedPost
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *BoardHandler) GetPost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.svc.GetPost(c.Request().Context(), principal(c), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary Create post
// @Tags board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body PostRequest true "Post"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *BoardHandler) CreatePost(c echo.Context) error {
	var req PostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.svc.CreatePost(c.Request().Context(), principal(c), req.input())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary Edit post
// @Tags board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param post body PostRequest true "Post"
// @Success 200 {object} model.Post
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *BoardHandler) UpdatePost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req PostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.svc.UpdatePost(c.Request().Context(), principal(c), id, req.input())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete post and its comments
// @Tags board
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *BoardHandler) DeletePost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeletePost(c.Request().Context(), principal(c), id); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// LikePost godoc
// @Summary Like post
// @Tags board
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} LikeResponse
// @Router /posts/{id}/like [post]
func (h *BoardHandler) LikePost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	likes, err := h.svc.LikePost(c.Request().Context(), principal(c), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, LikeResponse{Likes: likes})
}

// ListComments godoc
// @Summary List comments of a post
// @Tags board
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {array} model.Comment
// @Router /posts/{id}/comments [get]
func (h *BoardHandler) ListComments(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.svc.ListComments(c.Request().Context(), principal(c), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// AddComment godoc
// @Summary Comment on a post
// @Tags board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param comment body CommentRequest true "Comment"
// @Success 201 {object} model.Comment
// @Router /posts/{id}/comments [post]
func (h *BoardHandler) AddComment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req CommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.svc.AddComment(c.Request().Context(), principal(c), id, req.Content)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment godoc
// @Summary Delete comment
// @Tags board
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 204
// @Router /comments/{id} [delete]
func (h *BoardHandler) DeleteComment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteComment(c.Request().Context(), principal(c), id); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}
