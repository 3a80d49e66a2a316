package dash

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/obeviz/obeviz/frame"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server renders the three dashboard pages over a dataset loaded once at
// startup.
type Server struct {
	ds     *frame.Dataset
	tpl    *template.Template
	logger zerolog.Logger
}

func NewServer(ds *frame.Dataset, logger zerolog.Logger) (*Server, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		ds:     ds,
		tpl:    tpl,
		logger: logger,
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/page2.html", s.handlePage2)
	mux.HandleFunc("/page3.html", s.handlePage3)
	return s.logRequests(mux)
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

func options(values []string, labels Labels, selected string) []option {
	list := make([]option, len(values))
	for i, v := range values {
		list[i] = option{
			Value:    v,
			Label:    labels.Get(v),
			Selected: v == selected,
		}
	}
	return list
}

// pick returns the submitted value when it is one of the allowed ones, the
// fallback when nothing was submitted, and ok=false otherwise.
func pick(r *http.Request, name, fallback string, allowed []string) (string, bool) {
	v := r.FormValue(name)
	if v == "" {
		return fallback, true
	}
	for _, a := range allowed {
		if a == v {
			return v, true
		}
	}
	return "", false
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	classes, err := s.ds.Levels("nobeyesdad")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	variable, ok := pick(r, "dropdown-variable", "ncp", indexVariables)
	if !ok {
		http.Error(w, "unknown variable", http.StatusBadRequest)
		return
	}
	class, ok := pick(r, "dropdown-obesity", "Insufficient Weight", classes)
	if !ok {
		http.Error(w, "unknown obesity category", http.StatusBadRequest)
		return
	}

	var (
		g        errgroup.Group
		heatmap  template.HTML
		barplot  template.HTML
		lineplot template.HTML
		pieplot  template.HTML
	)
	g.Go(func() error {
		var err error
		heatmap, err = buildHeatmap(s.ds, variable, class)
		return err
	})
	g.Go(func() error {
		var err error
		barplot, err = buildBar(s.ds, variable, class)
		return err
	})
	g.Go(func() error {
		var err error
		lineplot, err = buildLine(s.ds, variable)
		return err
	})
	g.Go(func() error {
		var err error
		pieplot, err = buildPie(s.ds, variable)
		return err
	})
	if err := g.Wait(); err != nil {
		s.fail(w, r, err)
		return
	}

	page := struct {
		Variables []option
		Classes   []option
		Heatmap   template.HTML
		Bar       template.HTML
		Line      template.HTML
		Pie       template.HTML
	}{
		Variables: options(indexVariables, indexLabels, variable),
		Classes:   options(classes, nil, class),
		Heatmap:   heatmap,
		Bar:       barplot,
		Line:      lineplot,
		Pie:       pieplot,
	}
	s.render(w, r, "index.html", page)
}

func (s *Server) handlePage2(w http.ResponseWriter, r *http.Request) {
	variable, ok := pick(r, "dropdown-categorical", "mtrans", page2Variables)
	if !ok {
		http.Error(w, "unknown variable", http.StatusBadRequest)
		return
	}
	binary, ok := pick(r, "dropdown-binary", "gender", page2Binaries)
	if !ok {
		http.Error(w, "unknown binary variable", http.StatusBadRequest)
		return
	}
	donut, err := buildDonut(s.ds, variable, binary)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page := struct {
		Variables []option
		Binaries  []option
		Donut     template.HTML
	}{
		Variables: options(page2Variables, page2Labels, variable),
		Binaries:  options(page2Binaries, page2Labels, binary),
		Donut:     donut,
	}
	s.render(w, r, "page2.html", page)
}

func (s *Server) handlePage3(w http.ResponseWriter, r *http.Request) {
	variable, ok := pick(r, "dropdown-variable", "hypertension", page3Variables)
	if !ok {
		http.Error(w, "unknown variable", http.StatusBadRequest)
		return
	}
	var (
		g        errgroup.Group
		sankey   template.HTML
		crosstab template.HTML
	)
	g.Go(func() error {
		var err error
		sankey, err = buildSankey(s.ds, variable)
		return err
	})
	g.Go(func() error {
		var err error
		crosstab, err = buildCrosstab(s.ds, variable)
		return err
	})
	if err := g.Wait(); err != nil {
		s.fail(w, r, err)
		return
	}
	page := struct {
		Variables []option
		Sankey    template.HTML
		Crosstab  template.HTML
	}{
		Variables: options(page3Variables, page3Labels, variable),
		Sankey:    sankey,
		Crosstab:  crosstab,
	}
	s.render(w, r, "page3.html", page)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, page any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.ExecuteTemplate(w, name, page); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("render page")
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("build charts")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(now)).
			Msg("request")
	})
}
