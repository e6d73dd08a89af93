package api

import (
	"net/http"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

// handleListTags returns the tag dictionary, unpaginated.
func (s *Server) handleListTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := s.store.Tags(r.Context())
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		if tags == nil {
			tags = []model.Tag{}
		}
		writeJSON(w, http.StatusOK, tags)
	}
}

func (s *Server) handleTagDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		tag, err := s.store.TagByID(r.Context(), id)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tag)
	}
}
