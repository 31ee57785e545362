package model

import "time"

// Post is a board entry.
type Post struct {
	ID          int64     `json:"id" csv:"id,omitempty"`
	Title       string    `json:"title" csv:"title"`
	Content     string    `json:"content" csv:"content"`
	Author      string    `json:"author" csv:"author"`
	Club        string    `json:"club" csv:"club"`
	CreatedDate time.Time `json:"created_date" csv:"created_date"`
	Likes       int       `json:"likes" csv:"likes"`
	Comments    int       `json:"comments" csv:"comments"`
	ImagePath   string    `json:"image_path,omitempty" csv:"image_path"`
	ImageData   string    `json:"-" csv:"image_data"`
	Tags        string    `json:"tags,omitempty" csv:"tags"`
	PostType    string    `json:"post_type,omitempty" csv:"post_type"`
}

// Comment belongs to a post.
type Comment struct {
	ID          int64     `json:"id" csv:"id,omitempty"`
	PostID      int64     `json:"post_id" csv:"post_id"`
	Author      string    `json:"author" csv:"author"`
	Content     string    `json:"content" csv:"content"`
	CreatedDate time.Time `json:"created_date" csv:"created_date"`
}
