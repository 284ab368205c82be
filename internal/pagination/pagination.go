package pagination

import (
	"context"
	"errors"
	"strconv"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	defaultCurrent  = 1
	defaultPageSize = 10
)

var (
	// ErrInvalidCurrent is returned for a non-numeric or < 1 page number.
	ErrInvalidCurrent = errors.New("invalid current number")
	// ErrInvalidPageSize is returned for a non-numeric or < 1 page size.
	ErrInvalidPageSize = errors.New("invalid pageSize number")
)

// Request is an offset pagination request.
type Request struct {
	Current  int
	PageSize int
}

// Offset is the number of rows to skip for the requested page.
func (r Request) Offset() int {
	return (r.Current - 1) * r.PageSize
}

// ParseRequest parses ?current and ?pageSize query values. Empty values fall
// back to defaults; non-numeric or sub-1 values are rejected rather than
// silently coerced.
func ParseRequest(currentRaw, pageSizeRaw string) (Request, error) {
	req := Request{Current: defaultCurrent, PageSize: defaultPageSize}

	if currentRaw != "" {
		current, err := strconv.Atoi(currentRaw)
		if err != nil || current < 1 {
			return Request{}, ErrInvalidCurrent
		}
		req.Current = current
	}
	if pageSizeRaw != "" {
		pageSize, err := strconv.Atoi(pageSizeRaw)
		if err != nil || pageSize < 1 {
			return Request{}, ErrInvalidPageSize
		}
		req.PageSize = pageSize
	}
	return req, nil
}

// Meta describes a page of results.
type Meta struct {
	Current    int   `json:"current"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
	TotalItem  int64 `json:"totalItem"`
}

// NewMeta computes page counts; zero items means zero pages.
func NewMeta(req Request, totalItem int64) Meta {
	totalPages := int((totalItem + int64(req.PageSize) - 1) / int64(req.PageSize))
	return Meta{
		Current:    req.Current,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
		TotalItem:  totalItem,
	}
}

// Scope narrows a query; the same scopes apply to both the page fetch and
// the count so the two reflect one filter predicate.
type Scope func(*gorm.DB) *gorm.DB

// FindPage fetches one page of T and the total matching count. The two
// queries run concurrently and tolerate snapshot skew between them; there is
// no surrounding transaction.
func FindPage[T any](ctx context.Context, db *gorm.DB, req Request, scopes ...Scope) ([]T, int64, error) {
	g, gctx := errgroup.WithContext(ctx)
	query := func() *gorm.DB {
		tx := db.WithContext(gctx).Model(new(T))
		for _, scope := range scopes {
			tx = scope(tx)
		}
		return tx
	}

	var (
		items []T
		total int64
	)
	g.Go(func() error {
		return query().Offset(req.Offset()).Limit(req.PageSize).Find(&items).Error
	})
	g.Go(func() error {
		return query().Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
