package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goliatone/go-cascade/components/regions"
	"github.com/goliatone/go-cascade/components/regions/selectorwiring"
	"github.com/goliatone/go-cascade/pkg/controls"
	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/renderers/vanilla"
	"github.com/goliatone/go-cascade/pkg/selector"
)

const placeholder = "Please select"

// chainNames are the demo page controls in level order.
var chainNames = []string{"province", "city", "district"}

// handlePage renders the demo chain. The first level is populated from the
// regions tree; every level whose control name appears in the query is
// chosen in turn, which populates the level after it. The format query
// parameter selects a registered renderer other than the HTML page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	query := r.URL.Query()
	format := firstValue(query, "format")
	if format == "" {
		format = s.renderer.Name()
	}
	renderer, err := s.renderers.Get(format)
	if err != nil {
		writeError(w, http.StatusNotAcceptable, fmt.Sprintf("unknown format %q", format))
		return
	}

	chain := controls.NewChain(placeholder, chainNames...)
	sel, err := s.newSelector(chain)
	if err != nil {
		s.log.Error("build selector", "error", err)
		writeError(w, http.StatusInternalServerError, "selector unavailable")
		return
	}
	if err := sel.Init(ctx); err != nil {
		s.log.Error("init selector", "error", err)
		writeError(w, http.StatusInternalServerError, "selector unavailable")
		return
	}
	sel.Wait()

	for _, control := range chain {
		value := firstValue(query, control.Name())
		if value == "" {
			break
		}
		if err := control.Choose(value); err != nil {
			s.log.Debug("ignoring unknown selection", "control", control.Name(), "value", value)
			break
		}
		sel.Wait()
	}

	chainState := render.ChainFromSelector(sel)
	var out []byte
	if renderer.Name() == s.renderer.Name() {
		out, err = s.renderer.RenderPage(vanilla.Page{
			Action: r.URL.Path,
			Chain:  chainState,
		})
	} else {
		out, err = renderer.Render(chainState)
	}
	if err != nil {
		s.log.Error("render page", "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Write(out)
}

func (s *Server) newSelector(chain []*controls.Select) (*selector.Selector, error) {
	endpoint, fns := selectorwiring.SelectorOptions("", s.cfg.BasePath, s.regionOptions())
	fns = append(fns,
		selector.WithFetcher(treeFetcher(s.tree, s.cfg.Param)),
		selector.WithLogger(s.log),
		selector.WithDebug(s.cfg.Debug),
		selector.WithFetchErrorHandler(func(sel *selector.Selector, target selector.Group, err error) {
			s.log.Warn("populate level", "selector", sel.ID(), "error", err)
		}),
	)
	return selector.New(endpoint, controls.Controls(chain...), fns...)
}

// treeFetcher answers fetches in-process with the same envelope the regions
// handler writes, decoded the way HTTPFetcher decodes it.
func treeFetcher(tree *regions.Tree, param string) selector.Fetcher {
	return selector.FetcherFunc(func(ctx context.Context, _ string, params url.Values) (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		children := tree.Children(params.Get(param))
		if children == nil {
			children = []regions.Region{}
		}
		raw, err := json.Marshal(regions.Response{Status: 1, Data: children})
		if err != nil {
			return nil, err
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var out any
		if err := dec.Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	})
}
