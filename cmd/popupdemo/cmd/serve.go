package cmd

import (
	"net/http"
	"os"
	"time"

	ext "github.com/atdiar/extender"
	doc "github.com/atdiar/extender/drivers/html"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	addr      string
	assetsDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the demo server",
	RunE:  serve,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&assetsDir, "assets", "", "static assets directory to serve and watch")
	rootCmd.AddCommand(serveCmd)
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()
}

func serve(cmd *cobra.Command, args []string) error {
	log := newLogger()
	ext.RegisterIcon("bold", "/assets/icons/bold.png")

	mux := http.NewServeMux()
	mux.HandleFunc("/", handleIndex(log))
	mux.HandleFunc("/close", handleClose(log))
	mux.HandleFunc("/partial", handlePartial(log))

	if assetsDir != "" {
		mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(assetsDir))))
		stop, err := watchAssets(assetsDir, log)
		if err != nil {
			return err
		}
		defer stop()
	}

	log.Info().Str("addr", addr).Msg("demo server listening")
	return http.ListenAndServe(addr, mux)
}

// demoScope builds the page served by every handler: a date field with a
// calendar popup attached, and an editor with a toolbar button.
func demoScope(log zerolog.Logger) (*ext.Scope, *ext.PopupExtender, error) {
	s := ext.NewScope(ext.WithLogger(log))

	field := ext.New(ext.NewElement("input", "date-field"), ext.WithData("type", "text"))
	calendar := ext.NewElement("div", "calendar")
	editor := ext.NewElement("textarea", "editor")
	s.Root.SetChildrenElements(field, calendar, editor)

	if _, err := ext.AttachToolbarButton(editor, ext.ToolbarButtonConfig{
		Icon:    "bold",
		Tooltip: "Bold",
		Command: "bold",
	}); err != nil {
		return nil, nil, err
	}

	popup, err := ext.AttachPopup(s, field, ext.PopupConfig{
		PopupID:        "calendar",
		Position:       ext.PositionBottom,
		CommitProperty: "value",
	})
	if err != nil {
		return nil, nil, err
	}
	return s, popup, nil
}

func renderScope(w http.ResponseWriter, s *ext.Scope, log zerolog.Logger) {
	if err := s.Process(); err != nil {
		log.Error().Err(err).Msg("processing scope")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := doc.Render(w, s); err != nil {
		log.Error().Err(err).Msg("rendering scope")
	}
}

func handleIndex(log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _, err := demoScope(log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		renderScope(w, s, log)
	}
}

// handleClose plays the server side of a popup round-trip: the client posts
// back the popup outcome, the server records it on the session and the
// checkpoint flushes it into the payload of the re-rendered page.
func handleClose(log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, popup, err := demoScope(log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if r.URL.Query().Has("cancel") {
			popup.Cancel()
		} else {
			popup.Commit(r.URL.Query().Get("result"))
		}
		renderScope(w, s, log)
	}
}

// handlePartial shows the relay path: the popup is closed from a nested
// scope and its result surfaces through a placeholder in the outer page.
func handlePartial(log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outer := ext.NewScope(ext.WithLogger(log))
		inner := ext.NewPartialScope(outer)

		closer := ext.NewCloser(inner, "inner-field")
		if r.URL.Query().Has("cancel") {
			closer.Cancel()
		} else {
			closer.Commit(r.URL.Query().Get("result"))
		}
		renderScope(w, outer, log)
	}
}

func watchAssets(dir string, log zerolog.Logger) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					log.Info().Str("file", event.Name).Msg("asset changed")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error().Err(err).Msg("asset watcher")
			}
		}
	}()
	return watcher.Close, nil
}
