package page

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWidget struct {
	id       string
	disposed *[]string
}

func (f failingWidget) ID() string   { return f.id }
func (f failingWidget) Kind() Kind   { return KindChart }
func (f failingWidget) Options() any { return nil }
func (f failingWidget) Dispose() error {
	*f.disposed = append(*f.disposed, f.id)
	return errors.New("still animating")
}

func TestLaunchWatchRegistry(t *testing.T) {
	r, err := NewLaunchWatchRegistry()
	require.NoError(t, err)

	ids := make([]string, 0)
	for _, c := range r.List() {
		ids = append(ids, c.ID())
	}
	assert.Equal(t, []string{"typed-text", "price-chart", "supply-chart", "testimonial-slider"}, ids)

	c, ok := r.Get("price-chart")
	require.True(t, ok)
	opts := c.Options().(ChartOptions)
	assert.Len(t, opts.Series, 3)
	for _, s := range opts.Series {
		assert.Len(t, s.Data, len(opts.Categories), s.Name)
	}

	carousel, ok := r.Get("testimonial-slider")
	require.True(t, ok)
	assert.Equal(t, 5000, carousel.Options().(CarouselOptions).IntervalMS)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(PriceChart()))

	err := r.Register(PriceChart())
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestRegistryDispose(t *testing.T) {
	r := NewRegistry()
	price := PriceChart()
	slider := TestimonialCarousel()
	var order []string
	require.NoError(t, r.Register(price))
	require.NoError(t, r.Register(failingWidget{id: "broken", disposed: &order}))
	require.NoError(t, r.Register(slider))
	require.NoError(t, r.Register(HeroTypewriter()))

	err := r.Dispose()
	assert.ErrorContains(t, err, "dispose broken")
	assert.True(t, price.Disposed())
	assert.True(t, slider.Disposed())
	assert.Equal(t, []string{"broken"}, order)
	assert.Empty(t, r.List())

	_, ok := r.Get("price-chart")
	assert.False(t, ok)
	assert.ErrorIs(t, r.Register(SupplyChart()), ErrDisposed)
	assert.NoError(t, r.Dispose())
}
