package api

import (
	"net/http"

	"github.com/eventpilot/backend/database"
	"github.com/eventpilot/backend/schema"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
	}
}

// getAllBlogPosts lists posts newest first
// @Summary Get blog posts
// @Description Published posts only, unless an authenticated admin asks for published=false
// @Tags Blog Posts
// @Produce json
// @Param published query bool false "false returns drafts as well (admin only)"
// @Success 200 {array} models.BlogPost "List of blog posts"
// @Router /api/blog [get]
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publishedOnly := true
		if flag := schema.ParseOptionalBool(r.URL.Query(), "published"); flag != nil && !*flag {
			if identity, ok := ctxGetIdentity(r.Context()); ok && identity.IsAdmin() {
				publishedOnly = false
			}
		}

		var filter *bool
		if publishedOnly {
			filter = &publishedOnly
		}

		posts, err := h.blogPostRepo.List(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "blog posts", err))
			return
		}
		h.responder.WriteJSON(w, posts)
	}
}

// getBlogPost retrieves a post by its slug
// @Summary Get blog post
// @Tags Blog Posts
// @Param slug path string true "Blog post slug"
// @Success 200 {object} models.BlogPost "Blog post"
// @Failure 404 {object} MessageResponse "Blog post not found"
// @Router /api/blog/{slug} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.blogPostRepo.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "Blog post", err))
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// createBlogPost creates a new blog post
// @Summary Create blog post
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Success 200 {object} models.BlogPost "Created blog post"
// @Failure 400 {object} ValidationErrorResponse "Validation error"
// @Failure 409 {object} MessageResponse "Slug already taken"
// @Router /api/blog [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := decodeObject(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := schema.ParseBlogPost(raw)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogPostRepo.Create(r.Context(), &post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "Blog post", err))
			return
		}

		h.logger.Info().Str("slug", post.Slug).Bool("published", post.Published).Msg("blog post created")
		h.responder.WriteJSON(w, post)
	}
}

func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Blog post")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		raw, err := decodeObject(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		patch, err := schema.ParseBlogPostPatch(raw)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.Update(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "Blog post", err))
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Blog post")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogPostRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "Blog post", err))
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Message: "Blog post deleted successfully"})
	}
}
