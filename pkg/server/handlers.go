package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/fabmenu/pkg/buildinfo"
	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/layout"
	"github.com/matzehuels/fabmenu/pkg/menu"
	"github.com/matzehuels/fabmenu/pkg/pipeline"
	"github.com/matzehuels/fabmenu/pkg/render"
	"github.com/matzehuels/fabmenu/pkg/script"
)

// CreateRequest is the body of POST /v1/menus.
type CreateRequest struct {
	Config menu.Config `json:"config"`
	Total  int         `json:"total,omitempty"`
}

// MenuResponse carries a menu's current frame.
type MenuResponse struct {
	ID    string     `json:"id"`
	Frame menu.Frame `json:"frame"`
}

// EventResponse is returned for every delivered event.
type EventResponse struct {
	Emitted []script.Emission `json:"emitted"`
	Ignored string            `json:"ignored,omitempty"`
	Frame   menu.Frame        `json:"frame"`
}

// LayoutResponse lists child offsets relative to the trigger.
type LayoutResponse struct {
	Strategy layout.Strategy `json:"strategy"`
	Corner   layout.Corner   `json:"corner"`
	Offsets  []layout.Offset `json:"offsets"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"menus":   s.Len(),
		"version": buildinfo.Short(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	strategy := menu.DefaultStrategy
	if v := q.Get("strategy"); v != "" {
		parsed, err := layout.ParseStrategy(v)
		if err != nil {
			writeError(w, err)
			return
		}
		strategy = parsed
	}
	corner := menu.DefaultCorner
	if v := q.Get("corner"); v != "" {
		parsed, err := layout.ParseCorner(v)
		if err != nil {
			writeError(w, err)
			return
		}
		corner = parsed
	}
	total, err := queryInt(q.Get("total"), script.DefaultTotal)
	if err == nil {
		err = s.checkTotal(total)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	radius, err := queryFloat(q.Get("radius"), 0)
	if err != nil {
		writeError(w, err)
		return
	}
	spacing, err := queryFloat(q.Get("spacing"), 0)
	if err != nil {
		writeError(w, err)
		return
	}

	for name, v := range map[string]float64{"radius": radius, "spacing": spacing} {
		if v < 0 {
			writeError(w, errors.ValidatePositive(name, v))
			return
		}
	}

	engine := layout.NewEngine(layout.WithBaseRadius(radius), layout.WithSpacing(spacing))
	offsets, err := engine.Offsets(total, strategy, corner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LayoutResponse{Strategy: strategy, Corner: corner, Offsets: offsets})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Total == 0 {
		req.Total = script.DefaultTotal
	}
	if err := errors.ValidateTotal(req.Total); err != nil {
		writeError(w, err)
		return
	}
	if err := s.checkTotal(req.Total); err != nil {
		writeError(w, err)
		return
	}

	inst := &instance{rec: &script.Recorder{}, total: req.Total}
	opts := append(inst.rec.Options(), menu.WithLogger(s.logger))
	m, err := menu.New(req.Config, opts...)
	if err != nil {
		writeError(w, err)
		return
	}
	inst.menu = m

	s.mu.Lock()
	if len(s.menus) >= s.maxMenus {
		s.mu.Unlock()
		writeError(w, errors.New(errors.ErrCodeUnsupported, "menu limit of %d reached", s.maxMenus))
		return
	}
	s.menus[m.ID()] = inst
	s.mu.Unlock()

	frame, err := m.Frame(inst.total)
	if err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("menu created", "id", m.ID(), "strategy", frame.Strategy, "corner", frame.Corner)
	writeJSON(w, http.StatusCreated, MenuResponse{ID: m.ID(), Frame: frame})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	inst, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	total, err := queryInt(r.URL.Query().Get("total"), inst.total)
	if err == nil {
		err = s.checkTotal(total)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	frame, err := inst.menu.Frame(total)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MenuResponse{ID: inst.menu.ID(), Frame: frame})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.menus[id]
	delete(s.menus, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "menu %q not found", id))
		return
	}
	s.logger.Info("menu deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	inst, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var ev script.Event
	if err := decodeBody(r, &ev); err != nil {
		writeError(w, err)
		return
	}
	if !ev.Kind.Valid() {
		writeError(w, errors.New(errors.ErrCodeInvalidArgument, "event kind is required"))
		return
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()

	resp := EventResponse{}
	if err := script.Apply(inst.menu, ev, inst.total); err != nil {
		if !errors.Is(err, errors.ErrCodeOutOfOrderEvent) {
			inst.rec.Drain()
			writeError(w, err)
			return
		}
		resp.Ignored = errors.UserMessage(err)
	}
	resp.Emitted = inst.rec.Drain()
	frame, err := inst.menu.Frame(inst.total)
	if err != nil {
		writeError(w, err)
		return
	}
	resp.Frame = frame
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFrameSVG(w http.ResponseWriter, r *http.Request) {
	inst, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()

	inst.mu.Lock()
	total, err := queryInt(q.Get("total"), inst.total)
	if err == nil {
		err = s.checkTotal(total)
	}
	if err != nil {
		inst.mu.Unlock()
		writeError(w, err)
		return
	}
	frame, err := inst.menu.Frame(total)
	inst.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.Render(r.Context(), frame, pipeline.Options{
		Formats: []string{render.FormatSVG},
		Guides:  queryBool(q.Get("guides")),
		Labels:  queryBool(q.Get("labels")),
		Ghosts:  queryBool(q.Get("ghosts")),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Cache", cacheHeader(res.CacheHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[render.FormatSVG])
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var sc script.Script
	if err := decodeBody(r, &sc); err != nil {
		writeError(w, err)
		return
	}
	if err := s.checkTotal(sc.Total); err != nil {
		writeError(w, err)
		return
	}
	t, hit, err := s.runner.Simulate(r.Context(), &sc, false)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(hit))
	writeJSON(w, http.StatusOK, t)
}

// checkTotal rejects item counts above the server limit. Smaller values
// are left to the layout preconditions.
func (s *Server) checkTotal(total int) error {
	if total > s.maxTotal {
		return errors.New(errors.ErrCodeInvalidArgument, "total %d exceeds the limit of %d", total, s.maxTotal)
	}
	return nil
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func (s *Server) lookup(r *http.Request) (*instance, error) {
	id := chi.URLParam(r, "id")
	s.mu.RLock()
	inst, ok := s.menus[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "menu %q not found", id)
	}
	return inst, nil
}

func queryInt(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidArgument, "invalid integer %q", v)
	}
	return n, nil
}

func queryFloat(v string, def float64) (float64, error) {
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidArgument, "invalid number %q", v)
	}
	if err := errors.ValidateFinite("query", f); err != nil {
		return 0, err
	}
	return f, nil
}

func queryBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}
