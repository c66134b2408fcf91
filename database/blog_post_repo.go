package database

import (
	"context"

	"github.com/eventpilot/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const blogPostEntity = "Blog post"

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// Create inserts a post. Publishing without a date stamps publishedAt now.
// A taken slug surfaces as a unique violation.
func (r *BlogPostRepo) Create(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// List returns posts newest first. A nil published returns drafts too.
func (r *BlogPostRepo) List(ctx context.Context, published *bool) ([]models.BlogPost, error) {
	posts := []models.BlogPost{}
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if published != nil {
		query = query.Where("published = ?", *published)
	}
	err := query.Find(&posts).Error
	return posts, err
}

func (r *BlogPostRepo) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return findOne[models.BlogPost](ctx, r.db, blogPostEntity, "slug = ?", slug)
}

func (r *BlogPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	return findOne[models.BlogPost](ctx, r.db, blogPostEntity, "id = ?", id)
}

// Update applies a partial change. Setting published to true without an
// explicit date keeps an existing publishedAt or stamps the current time.
func (r *BlogPostRepo) Update(ctx context.Context, id uuid.UUID, columns map[string]any) (*models.BlogPost, error) {
	if published, ok := columns["published"].(bool); ok && published {
		if _, dated := columns["published_at"]; !dated {
			withDate := make(map[string]any, len(columns)+1)
			for k, v := range columns {
				withDate[k] = v
			}
			withDate["published_at"] = gorm.Expr("COALESCE(published_at, ?)", r.db.NowFunc())
			columns = withDate
		}
	}
	return updateByID[models.BlogPost](ctx, r.db, blogPostEntity, id, columns, true)
}

func (r *BlogPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.BlogPost](ctx, r.db, blogPostEntity, id)
}
