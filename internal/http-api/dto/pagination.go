package dto

import (
	"net/url"
	"strconv"

	"yamdb/internal/http-api/repository"
)

// Paginated is the list envelope shared by every collection endpoint.
type Paginated[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPaginated wraps one page of results. Links are built from self, the
// absolute URL of the current request; the first page link drops the
// page parameter.
func NewPaginated[T any](results []T, count int64, page repository.Page, self *url.URL) Paginated[T] {
	if results == nil {
		results = []T{}
	}
	p := Paginated[T]{Count: count, Results: results}
	if int64(page.Number)*int64(page.Size) < count {
		next := pageLink(self, page.Number+1)
		p.Next = &next
	}
	if page.Number > 1 {
		prev := pageLink(self, page.Number-1)
		p.Previous = &prev
	}
	return p
}

func pageLink(self *url.URL, number int) string {
	u := *self
	q := u.Query()
	if number <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Map converts every model of a page into its response shape.
func Map[M any, R any](items []M, fn func(*M) R) []R {
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return out
}
