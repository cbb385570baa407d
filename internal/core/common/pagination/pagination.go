// Package pagination implements page-number pagination over counted result
// sets: ?page=N&page_size=M with a bounded page size and an envelope carrying
// absolute next/previous links.
package pagination

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/frahmantamala/employee-management/internal"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	PageQueryParam     = "page"
	PageSizeQueryParam = "page_size"

	// LastPage may be passed as ?page=last.
	LastPage = "last"
)

type Paginator struct {
	DefaultPageSize int
	MaxPageSize     int
}

func NewPaginator(defaultPageSize, maxPageSize int) *Paginator {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if maxPageSize < defaultPageSize {
		maxPageSize = defaultPageSize
	}
	return &Paginator{DefaultPageSize: defaultPageSize, MaxPageSize: maxPageSize}
}

// Request is the pagination part of an incoming list request.
type Request struct {
	RawPage  string
	PageSize int
	URL      *url.URL
}

func (p *Paginator) FromRequest(r *http.Request) Request {
	q := r.URL.Query()
	return Request{
		RawPage:  q.Get(PageQueryParam),
		PageSize: p.pageSize(q.Get(PageSizeQueryParam)),
		URL:      absoluteURL(r),
	}
}

// pageSize never rejects: bad values fall back to the default and large
// values are capped.
func (p *Paginator) pageSize(raw string) int {
	if raw == "" {
		return p.DefaultPageSize
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return p.DefaultPageSize
	}
	if size > p.MaxPageSize {
		return p.MaxPageSize
	}
	return size
}

// NumPages is never below one so that the first page of an empty set exists.
func NumPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

// Resolve turns the raw page parameter into a page number valid for total.
func (req Request) Resolve(total int64) (int, *internal.AppError) {
	numPages := NumPages(total, req.PageSize)
	if req.RawPage == "" {
		return 1, nil
	}
	if req.RawPage == LastPage {
		return numPages, nil
	}
	page, err := strconv.Atoi(req.RawPage)
	if err != nil || page < 1 || page > numPages {
		return 0, internal.ErrPageNotFound()
	}
	return page, nil
}

func Offset(page, pageSize int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * pageSize
}

// Envelope is the paginated response body.
type Envelope[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func NewEnvelope[T any](req Request, page int, total int64, results []T) Envelope[T] {
	if results == nil {
		results = []T{}
	}
	env := Envelope[T]{
		Count:   total,
		Results: results,
	}
	if page < NumPages(total, req.PageSize) {
		env.Next = req.link(page + 1)
	}
	if page > 1 {
		env.Previous = req.link(page - 1)
	}
	return env
}

// link rebuilds the request URL for another page. The first page carries no
// page parameter at all.
func (req Request) link(page int) *string {
	if req.URL == nil {
		return nil
	}
	u := *req.URL
	q := u.Query()
	if page <= 1 {
		q.Del(PageQueryParam)
	} else {
		q.Set(PageQueryParam, strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

func absoluteURL(r *http.Request) *url.URL {
	u := *r.URL
	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" {
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			u.Scheme = proto
		}
	}
	return &u
}
