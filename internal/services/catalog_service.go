package services

import (
	"essenza/internal/domain"
	"essenza/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
	Blog  *repos.BlogRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, blog *repos.BlogRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, Blog: blog}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) ListProductsByCategory(catID string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.ListByCategory(catID, pageSize, offset)
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) Search(q, category, brand string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.Search(q, category, brand, pageSize, offset)
}

func (s *CatalogService) ListPosts(limit int) ([]domain.BlogPost, error) {
	return s.Blog.List(limit)
}

func (s *CatalogService) GetPost(id string) (domain.BlogPost, error) {
	return s.Blog.Get(id)
}
