// Package server is the live-reload development server: it builds the site,
// serves the output directory and rebuilds when sources change.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hyperui/internal/builder"
	herrors "hyperui/internal/errors"
	"hyperui/internal/logfields"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// BuildFunc runs one site build.
type BuildFunc func(ctx context.Context, opts builder.BuildOptions) (*builder.Report, error)

// Options configures Run.
type Options struct {
	Port int
	// WatchPaths are the directories and files whose changes trigger a
	// rebuild. Missing paths are skipped.
	WatchPaths []string
	Build      BuildFunc
	BuildOpts  builder.BuildOptions
	Logger     zerolog.Logger
}

const debounceDuration = 500 * time.Millisecond

// Run builds the site once, then serves it until ctx is done.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	buildOpts := opts.BuildOpts
	buildOpts.CleanDestination = true
	report, err := opts.Build(ctx, buildOpts)
	if err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}
	logReport(logger, report)

	hub := newHub(logger)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return herrors.WrapError(err, herrors.CategoryFileSystem, "could not create file watcher").Build()
	}
	defer watcher.Close()
	if err := addWatches(watcher, opts.WatchPaths, logger); err != nil {
		return err
	}

	buildOpts.CleanDestination = false
	go watchForChanges(ctx, watcher, hub, opts.Build, buildOpts, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           newMux(hub, buildOpts.Site.OutputDir),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str(logfields.KeyAddr, "http://localhost"+srv.Addr).Msg("serving site, press Ctrl+C to stop")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newMux(hub *Hub, outputDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r)
	})
	mux.Handle("/", liveReloadWrapper(http.FileServer(http.Dir(outputDir))))
	return mux
}

// addWatches registers every directory below the given paths. Files are
// watched through their parent directory so editors that save by renaming
// a swap file are still noticed.
func addWatches(watcher *fsnotify.Watcher, paths []string, logger zerolog.Logger) error {
	watched := make(map[string]bool)
	addWatch := func(dir string) {
		dir = filepath.Clean(dir)
		if watched[dir] {
			return
		}
		if err := watcher.Add(dir); err != nil {
			logger.Warn().Err(err).Str(logfields.KeyPath, dir).Msg("cannot watch directory")
			return
		}
		logger.Debug().Str(logfields.KeyPath, dir).Msg("watching directory")
		watched[dir] = true
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return herrors.FileSystemError("could not stat watch path", err).File(path).Build()
		}
		if !info.IsDir() {
			addWatch(filepath.Dir(path))
			continue
		}
		err = filepath.WalkDir(path, func(walkPath string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				addWatch(walkPath)
			}
			return nil
		})
		if err != nil {
			return herrors.FileSystemError("failed to watch directory", err).File(path).Build()
		}
	}
	return nil
}

func watchForChanges(ctx context.Context, watcher *fsnotify.Watcher, hub *Hub, build BuildFunc, opts builder.BuildOptions, logger zerolog.Logger) {
	var lastBuildTime time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if time.Since(lastBuildTime) <= debounceDuration {
				continue
			}
			// Let editors finish writing before reading the tree.
			time.Sleep(100 * time.Millisecond)

			logger.Info().Str(logfields.KeyFile, event.Name).Msg("change detected, rebuilding")
			report, err := build(ctx, opts)
			if err != nil {
				logger.Error().Err(err).Msg("rebuild failed")
			} else {
				logReport(logger, report)
				hub.broadcastMessage([]byte("reload"))
			}
			lastBuildTime = time.Now()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

func logReport(logger zerolog.Logger, report *builder.Report) {
	for _, f := range report.Failures {
		logger.Warn().Err(f.Err).Str(logfields.KeyRoute, f.Route.String()).Msg("page not rebuilt")
	}
}

func liveReloadWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		isHTML := strings.HasSuffix(r.URL.Path, ".html") || strings.HasSuffix(r.URL.Path, "/")
		if !isHTML {
			next.ServeHTTP(w, r)
			return
		}

		iw := newInterceptingWriter(w)
		next.ServeHTTP(iw, r)

		for key, values := range iw.Header() {
			for _, value := range values {
				w.Header().Add(key, value)
			}
		}

		bodyBytes := iw.body.Bytes()
		if iw.statusCode != http.StatusOK {
			w.WriteHeader(iw.statusCode)
			_, _ = w.Write(bodyBytes)
			return
		}

		injectedBody := bytes.Replace(bodyBytes, []byte("</body>"), []byte(liveReloadScript+"</body>"), 1)
		w.Header().Set("Content-Length", fmt.Sprint(len(injectedBody)))
		w.WriteHeader(iw.statusCode)
		_, _ = w.Write(injectedBody)
	})
}

type interceptingWriter struct {
	http.ResponseWriter
	body       *bytes.Buffer
	statusCode int
	header     http.Header
}

func newInterceptingWriter(w http.ResponseWriter) *interceptingWriter {
	return &interceptingWriter{
		ResponseWriter: w,
		body:           new(bytes.Buffer),
		header:         make(http.Header),
		statusCode:     http.StatusOK,
	}
}

func (iw *interceptingWriter) Header() http.Header {
	return iw.header
}

func (iw *interceptingWriter) Write(b []byte) (int, error) {
	return iw.body.Write(b)
}

func (iw *interceptingWriter) WriteHeader(statusCode int) {
	iw.statusCode = statusCode
}

const liveReloadScript = `
<script>
  (function() {
    let socket = new WebSocket("ws://" + window.location.host + "/ws");
    socket.onmessage = function(event) {
      if (event.data === "reload") {
        window.location.reload();
      }
    };
    socket.onerror = function() {
      console.error("Live reload connection error. Please restart 'hyperui serve'.");
    };
  })();
</script>
`
