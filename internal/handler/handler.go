package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Dan9191/blog-service/internal/apperrors"
	"github.com/Dan9191/blog-service/internal/feed"
	"github.com/Dan9191/blog-service/internal/service"
	"github.com/Dan9191/blog-service/internal/token"
	"github.com/gorilla/mux"
)

type Handler struct {
	svc    *service.Service
	tokens *token.Service
	feed   *feed.Builder
}

func NewHandler(svc *service.Service, tokens *token.Service, feedBuilder *feed.Builder) *Handler {
	return &Handler{svc: svc, tokens: tokens, feed: feedBuilder}
}

// pathID parses the named numeric path variable.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, apperrors.BadRequest("Invalid " + name)
	}
	return id, nil
}

// decodeBody decodes the JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}
	return nil
}
