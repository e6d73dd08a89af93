package api

import (
	"net/http"
	"strconv"

	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

// pageEnvelope is the paginated list response shape.
type pageEnvelope struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// parsePage reads ?page= and ?limit= with defaults and caps from config.
func (s *Server) parsePage(r *http.Request) model.Page {
	page := model.Page{Number: 1, Limit: s.cfg.Pagination.DefaultLimit}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Number = n
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Limit = min(n, s.cfg.Pagination.MaxLimit)
		}
	}
	return page
}

// envelope builds the paginated response, deriving next/previous links from
// the request URL. results must be a non-nil slice so the JSON field is
// always an array.
func envelope(r *http.Request, page model.Page, total int, results any) pageEnvelope {
	env := pageEnvelope{Count: total, Results: results}

	if page.Offset()+page.Limit < total {
		env.Next = pageURL(r, page.Number+1)
	}
	if page.Number > 1 {
		env.Previous = pageURL(r, page.Number-1)
	}
	return env
}

func pageURL(r *http.Request, number int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(number))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
