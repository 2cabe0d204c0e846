package repos

import (
	"essenza/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BlogRepo struct{ db *sqlx.DB }

func NewBlogRepo(db *sqlx.DB) *BlogRepo { return &BlogRepo{db: db} }

func (r *BlogRepo) List(limit int) ([]domain.BlogPost, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []domain.BlogPost
	err := r.db.Select(&out, `
	  SELECT id, title, author, COALESCE(excerpt,'') AS excerpt,
	         COALESCE(body,'') AS body, COALESCE(image,'') AS image, created_at
	  FROM blog_posts
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *BlogRepo) Get(id string) (domain.BlogPost, error) {
	var p domain.BlogPost
	err := r.db.Get(&p, `
	  SELECT id, title, author, COALESCE(excerpt,'') AS excerpt,
	         COALESCE(body,'') AS body, COALESCE(image,'') AS image, created_at
	  FROM blog_posts
	  WHERE id = ?
	`, id)
	return p, err
}
