package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartshoplabs/smartshop-backend/api/responses"
	"github.com/smartshoplabs/smartshop-backend/api/validators"
	feedsvc "github.com/smartshoplabs/smartshop-backend/internal/feed"
	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
	"github.com/smartshoplabs/smartshop-backend/pkg/logger"
)

type addCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

// FeedList serves the session's feed.
func FeedList(svc *feedsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "feed service unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"posts": svc.Posts()})
	}
}

// FeedToggleLike flips the like on a post.
func FeedToggleLike(svc *feedsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "feed service unavailable"))
			return
		}

		post, err := svc.ToggleLike(chi.URLParam(r, "postId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, post)
	}
}

// FeedComments serves a post's comment thread.
func FeedComments(svc *feedsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "feed service unavailable"))
			return
		}

		comments, err := svc.ListComments(chi.URLParam(r, "postId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"comments": comments})
	}
}

// FeedAddComment appends a comment to the post.
func FeedAddComment(svc *feedsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "feed service unavailable"))
			return
		}

		var payload addCommentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		comment, err := svc.AddComment(chi.URLParam(r, "postId"), payload.Body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, comment)
	}
}
