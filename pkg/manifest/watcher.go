package manifest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/metric"
	"github.com/zeromicro/go-zero/core/syncx"
	"github.com/zeromicro/go-zero/core/threading"
)

// DefaultWatchInterval is how often a Watcher stats the manifests.
const DefaultWatchInterval = 2 * time.Second

var manifestChanges = metric.NewCounterVec(&metric.CounterVecOpts{
	Namespace: "plat_webfonts",
	Subsystem: "manifest",
	Name:      "changes_total",
	Help:      "Manifest rewrites noticed by the watcher",
	Labels:    []string{"format"},
})

var manifestFonts = metric.NewGaugeVec(&metric.GaugeVecOpts{
	Namespace: "plat_webfonts",
	Subsystem: "manifest",
	Name:      "fonts",
	Help:      "Fonts currently offered for preload",
	Labels:    []string{"format"},
})

// Watcher polls the manifest files and calls onChange when one is written,
// created or removed. It implements go-zero's service.Service.
type Watcher struct {
	resolver *Resolver
	onChange func()
	interval time.Duration
	running  *syncx.AtomicBool

	mu        sync.Mutex
	signature string

	ctx    context.Context
	cancel context.CancelFunc
	group  *threading.RoutineGroup
}

// NewWatcher watches the manifests resolver reads. onChange typically
// invalidates the preload builder; when nil the resolver itself is invalidated.
func NewWatcher(resolver *Resolver, onChange func(), interval time.Duration) *Watcher {
	if onChange == nil {
		onChange = resolver.Invalidate
	}
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		resolver: resolver,
		onChange: onChange,
		interval: interval,
		running:  syncx.NewAtomicBool(),
		ctx:      ctx,
		cancel:   cancel,
		group:    threading.NewRoutineGroup(),
	}
	w.signature = w.stat()
	return w
}

// Start begins polling.
func (w *Watcher) Start() {
	if !w.running.CompareAndSwap(false, true) {
		return
	}

	logx.Infow("Manifest watcher started", logx.Field("interval", w.interval.String()))
	w.group.RunSafe(w.loop)
}

// Stop ends polling and waits for the loop to exit.
func (w *Watcher) Stop() {
	if !w.running.CompareAndSwap(true, false) {
		return
	}

	w.cancel()
	w.group.Wait()
	logx.Info("Manifest watcher stopped")
}

func (w *Watcher) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check stats the manifests once and reports whether they changed since the
// previous check. onChange has run when it returns true.
func (w *Watcher) Check() bool {
	current := w.stat()

	w.mu.Lock()
	changed := current != w.signature
	w.signature = current
	w.mu.Unlock()

	if !changed {
		return false
	}

	w.onChange()
	fonts := w.resolver.Fonts()
	format := string(w.resolver.Format())
	manifestChanges.Inc(format)
	manifestFonts.Set(float64(len(fonts)), format)
	logx.Infow("Manifest changed, preload markup recomputed",
		logx.Field("format", format),
		logx.Field("fonts", len(fonts)),
	)
	return true
}

func (w *Watcher) stat() string {
	flat, build := w.resolver.Options().Paths()

	var b strings.Builder
	for _, path := range []string{flat, build} {
		info, err := os.Stat(path)
		if err != nil {
			b.WriteString("-;")
			continue
		}
		fmt.Fprintf(&b, "%d:%d;", info.ModTime().UnixNano(), info.Size())
	}
	return b.String()
}
