package model

import (
	"strings"
	"time"
)

// Portfolio item statuses. Only public items appear in the featured list.
const (
	PortfolioInProgress = "진행중"
	PortfolioDone       = "완료"
	PortfolioPublic     = "공개"
	PortfolioPrivate    = "비공개"
)

// PortfolioCategories are the accepted portfolio categories.
var PortfolioCategories = []string{
	"프로그래밍 프로젝트",
	"창작 활동",
	"발표/프레젠테이션",
	"팀 프로젝트",
	"개인 작품",
	"학습 기록",
	"수상 내역",
	"자격증/인증서",
}

// PortfolioItem is one piece of a student's portfolio.
type PortfolioItem struct {
	ID           int64     `json:"id" csv:"id,omitempty"`
	Username     string    `json:"username" csv:"username"`
	Title        string    `json:"title" csv:"title"`
	Category     string    `json:"category" csv:"category"`
	Description  string    `json:"description" csv:"description"`
	Technologies string    `json:"technologies,omitempty" csv:"technologies"`
	Status       string    `json:"status" csv:"status"`
	ProjectURL   string    `json:"project_url,omitempty" csv:"project_url"`
	Tags         string    `json:"tags,omitempty" csv:"tags"`
	ImagePath    string    `json:"image_path,omitempty" csv:"image_path"`
	CreatedDate  time.Time `json:"created_date" csv:"created_date"`
}

// TagList splits the comma separated tags, dropping blanks.
func (p PortfolioItem) TagList() []string {
	var tags []string
	for _, t := range strings.Split(p.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// FeaturedPortfolioItem is a public item with its creator's display name.
type FeaturedPortfolioItem struct {
	PortfolioItem
	CreatorName string `json:"creator_name"`
}

// PortfolioCreator is one row of the creator ranking.
type PortfolioCreator struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

// PortfolioStats summarizes every portfolio.
type PortfolioStats struct {
	Total       int                `json:"total"`
	Public      int                `json:"public"`
	Mine        int                `json:"mine"`
	Categories  int                `json:"categories"`
	ByCategory  map[string]int     `json:"by_category"`
	TopCreators []PortfolioCreator `json:"top_creators"`
}
