// Package catalog provides product sources and the filter/sort pipeline that
// derives the storefront's product views.
package catalog

import (
	"context"
	"sync/atomic"

	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
)

// Source supplies catalog data.
type Source interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetBrands(ctx context.Context) ([]domain.Brand, error)
}

type degradedKey struct{}

// TrackDegraded returns a context in which a Source can report that it served
// substitute data, and a func reporting whether any source did.
func TrackDegraded(ctx context.Context) (context.Context, func() bool) {
	flag := new(atomic.Bool)
	return context.WithValue(ctx, degradedKey{}, flag), flag.Load
}

// MarkDegraded records on ctx that the current answer came from substitute
// data. It is a no-op when ctx is not tracked.
func MarkDegraded(ctx context.Context) {
	if flag, ok := ctx.Value(degradedKey{}).(*atomic.Bool); ok {
		flag.Store(true)
	}
}
