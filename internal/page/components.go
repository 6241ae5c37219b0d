package page

import "sync/atomic"

// Palette colours shared by the charts.
const (
	colorCyan = "#00d4ff"
	colorGold = "#d4af37"
	colorTeal = "#20c997"
)

var quarters = []string{"Q1 2024", "Q2 2024", "Q3 2024", "Q4 2024", "Q1 2025", "Q2 2025", "Q3 2025"}

// Series is one plotted data set.
type Series struct {
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Color  string    `json:"color"`
	Smooth bool      `json:"smooth,omitempty"`
	Data   []float64 `json:"data"`
}

// ChartOptions is the static configuration handed to the charting library.
type ChartOptions struct {
	Categories []string `json:"categories"`
	YAxisName  string   `json:"yAxisName"`
	Series     []Series `json:"series"`
}

// Chart is a statically configured chart.
type Chart struct {
	id       string
	options  ChartOptions
	disposed atomic.Bool
}

func (c *Chart) ID() string   { return c.id }
func (c *Chart) Kind() Kind   { return KindChart }
func (c *Chart) Options() any { return c.options }

// Dispose releases the chart.
func (c *Chart) Dispose() error {
	c.disposed.Store(true)
	return nil
}

// Disposed reports whether Dispose ran.
func (c *Chart) Disposed() bool { return c.disposed.Load() }

// PriceChart is the quarterly price growth comparison per micro-market.
func PriceChart() *Chart {
	return &Chart{
		id: "price-chart",
		options: ChartOptions{
			Categories: quarters,
			YAxisName:  "Price Growth %",
			Series: []Series{
				{Name: "Golf Course Road", Type: "line", Color: colorCyan, Smooth: true, Data: []float64{8, 12, 15, 18, 19, 20, 21}},
				{Name: "Dwarka Expressway", Type: "line", Color: colorGold, Smooth: true, Data: []float64{2, 3, 4, 5, 5.5, 5.8, 6}},
				{Name: "New Gurugram", Type: "line", Color: colorTeal, Smooth: true, Data: []float64{5, 7, 8, 9, 10, 11, 12}},
			},
		},
	}
}

// SupplyChart compares new supply with sales volume.
func SupplyChart() *Chart {
	return &Chart{
		id: "supply-chart",
		options: ChartOptions{
			Categories: quarters,
			YAxisName:  "Units (Thousands)",
			Series: []Series{
				{Name: "New Supply", Type: "bar", Color: colorCyan, Data: []float64{95, 92, 89, 91, 88, 90, 91.8}},
				{Name: "Sales Volume", Type: "bar", Color: colorGold, Data: []float64{96, 94, 95, 97, 93, 94, 95.5}},
			},
		},
	}
}

// CarouselOptions configures the slider library.
type CarouselOptions struct {
	Type         string         `json:"type"`
	Autoplay     bool           `json:"autoplay"`
	IntervalMS   int            `json:"interval"`
	PauseOnHover bool           `json:"pauseOnHover"`
	Arrows       bool           `json:"arrows"`
	Pagination   bool           `json:"pagination"`
	Gap          string         `json:"gap"`
	Breakpoints  map[int]string `json:"breakpoints"`
}

// Carousel is a mounted slider.
type Carousel struct {
	id        string
	options   CarouselOptions
	destroyed atomic.Bool
}

func (c *Carousel) ID() string   { return c.id }
func (c *Carousel) Kind() Kind   { return KindCarousel }
func (c *Carousel) Options() any { return c.options }

// Dispose destroys the carousel.
func (c *Carousel) Dispose() error {
	c.destroyed.Store(true)
	return nil
}

// Disposed reports whether Dispose ran.
func (c *Carousel) Disposed() bool { return c.destroyed.Load() }

// TestimonialCarousel is the looping testimonial slider. Breakpoints map a max width in pixels to
// the gap used below it.
func TestimonialCarousel() *Carousel {
	return &Carousel{
		id: "testimonial-slider",
		options: CarouselOptions{
			Type:         "loop",
			Autoplay:     true,
			IntervalMS:   5000,
			PauseOnHover: true,
			Arrows:       false,
			Pagination:   true,
			Gap:          "2rem",
			Breakpoints:  map[int]string{768: "1rem"},
		},
	}
}

// TypewriterOptions configures the hero headline typing effect.
type TypewriterOptions struct {
	Strings     []string `json:"strings"`
	TypeSpeedMS int      `json:"typeSpeed"`
	BackSpeedMS int      `json:"backSpeed"`
	BackDelayMS int      `json:"backDelay"`
	Loop        bool     `json:"loop"`
	CursorChar  string   `json:"cursorChar"`
}

type typewriter struct {
	options TypewriterOptions
}

func (t typewriter) ID() string   { return "typed-text" }
func (t typewriter) Kind() Kind   { return KindTypewriter }
func (t typewriter) Options() any { return t.options }

// HeroTypewriter cycles the hero tag lines.
func HeroTypewriter() Component {
	return typewriter{options: TypewriterOptions{
		Strings:     []string{"Before It Hits the Market", "With Verified Intelligence", "For Smart Investments"},
		TypeSpeedMS: 80,
		BackSpeedMS: 50,
		BackDelayMS: 2000,
		Loop:        true,
		CursorChar:  "|",
	}}
}
