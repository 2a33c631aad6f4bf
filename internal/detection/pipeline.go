package detection

import (
	"errors"
	"image"
	"sync"
	"time"

	"github.com/ironsheep/floorplan-tools-mcp/internal/floorplan"
	"github.com/ironsheep/floorplan-tools-mcp/internal/imaging"
	"github.com/paulmach/orb"
)

// ErrAnalysisRunning is returned by Runner.Start while a run is in flight.
var ErrAnalysisRunning = errors.New("analysis already running")

// Analysis is the immutable result of one analysis run.
type Analysis struct {
	Path        string                      `json:"path,omitempty"`
	ImageWidth  int                         `json:"image_width"`
	ImageHeight int                         `json:"image_height"`
	Found       bool                        `json:"found"`
	Bounds      imaging.Bounds              `json:"bounds"`
	Horizontal  []AxisLine                  `json:"horizontal_lines"`
	Vertical    []AxisLine                  `json:"vertical_lines"`
	Objects     []*floorplan.DetectedObject `json:"objects"`
	Elapsed     time.Duration               `json:"elapsed_ns"`
}

// Rectangles returns the candidate rectangles of all detected objects.
func (a *Analysis) Rectangles() []orb.Bound {
	rects := make([]orb.Bound, len(a.Objects))
	for i, o := range a.Objects {
		rects[i] = o.Bounds
	}
	return rects
}

// Analyze runs the full chain: plan bounds, edge mask, line extraction,
// rectangle assembly and classification. A plan that cannot be located yields
// an analysis with Found false and no objects.
func Analyze(img image.Image, cfg Config) *Analysis {
	started := time.Now()
	l := imaging.NewLuma(img)

	a := &Analysis{
		ImageWidth:  l.Width,
		ImageHeight: l.Height,
		Horizontal:  []AxisLine{},
		Vertical:    []AxisLine{},
		Objects:     []*floorplan.DetectedObject{},
	}

	b, ok := PlanBounds(l)
	if !ok {
		cfg.logf("plan bounds not found in %dx%d image", l.Width, l.Height)
		a.Elapsed = time.Since(started)
		return a
	}
	a.Found = true
	a.Bounds = b
	cfg.logf("plan bounds %s", b)

	mask := imaging.BuildEdgeMask(l, b, cfg.EdgeThreshold)
	a.Horizontal, a.Vertical = ExtractLines(mask, b, cfg)

	for _, r := range AssembleRectangles(a.Horizontal, a.Vertical, cfg) {
		w, h := r.Max[0]-r.Min[0], r.Max[1]-r.Min[1]
		a.Objects = append(a.Objects, floorplan.NewDetectedObject(r, Classify(w, h), cfg.Confidence))
	}

	a.Elapsed = time.Since(started)
	cfg.logf("detected %d objects in %s", len(a.Objects), a.Elapsed)
	return a
}

// AnalyzeFile loads path through cache and analyzes it. Decode failures are
// logged and reported as a plan that was not found.
func AnalyzeFile(cache *imaging.ImageCache, path string, cfg Config) *Analysis {
	img, err := cache.Load(path)
	if err != nil {
		cfg.logf("analysis of %s: %v", path, err)
		return &Analysis{
			Path:       path,
			Horizontal: []AxisLine{},
			Vertical:   []AxisLine{},
			Objects:    []*floorplan.DetectedObject{},
		}
	}

	a := Analyze(img, cfg)
	a.Path = path
	return a
}

// Runner runs one analysis at a time on a worker goroutine. There is no
// cancellation: callers may only decline to start a run or ignore its result.
type Runner struct {
	cache *imaging.ImageCache
	cfg   Config

	mu      sync.Mutex
	running bool
	last    *Analysis
	wg      sync.WaitGroup
}

// NewRunner creates a runner that loads images through cache.
func NewRunner(cache *imaging.ImageCache, cfg Config) *Runner {
	return &Runner{cache: cache, cfg: cfg}
}

// Start analyzes path in the background. The returned channel receives the
// result once and is then closed.
func (r *Runner) Start(path string) (<-chan *Analysis, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil, ErrAnalysisRunning
	}
	r.running = true
	r.mu.Unlock()

	out := make(chan *Analysis, 1)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		a := AnalyzeFile(r.cache, path, r.cfg)

		r.mu.Lock()
		r.running = false
		r.last = a
		r.mu.Unlock()

		out <- a
		close(out)
	}()
	return out, nil
}

// Running reports whether a run is in flight.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Last returns the most recent completed analysis, or nil.
func (r *Runner) Last() *Analysis {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Wait blocks until any in-flight run has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}
