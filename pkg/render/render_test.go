package render_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cascade/pkg/controls"
	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/selector"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string                        { return s.name }
func (s stubRenderer) ContentType() string                 { return "text/plain" }
func (s stubRenderer) Render(render.Chain) ([]byte, error) { return []byte(s.name), nil }

func TestRegistry(t *testing.T) {
	reg, err := render.NewRegistry(stubRenderer{name: "b"}, render.JSON{})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "json"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("json") || reg.Has("missing") {
		t.Fatalf("unexpected Has results")
	}
	if err := reg.Register(stubRenderer{name: "b"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected missing name error")
	}
	if _, err := reg.Get("missing"); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
	if _, err := render.NewRegistry(stubRenderer{name: "x"}, stubRenderer{name: "x"}); err == nil {
		t.Fatalf("expected duplicate error from constructor")
	}
}

func TestSnapshot(t *testing.T) {
	province := controls.NewSelect("province",
		controls.WithPlaceholder("Please select"),
		controls.WithOptions(selector.Option{Value: "1", Text: "Beijing"}),
	)
	if err := province.Choose("1"); err != nil {
		t.Fatalf("choose: %v", err)
	}
	city := controls.NewSelect("city")
	city.SetAttr(selector.LevelAttr, "2")

	got := render.Snapshot(render.Chain{Param: "id", Controls: []selector.Control{province, nil, city}})
	want := render.ChainView{
		Param: "id",
		Controls: []render.ControlView{
			{Name: "province", Level: "1", Value: "1", Options: []render.OptionView{
				{Value: "", Text: "Please select"},
				{Value: "1", Text: "Beijing", Selected: true},
			}},
			{Name: "city", Level: "2", Options: []render.OptionView{}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON_Render(t *testing.T) {
	out, err := render.JSON{}.Render(render.Chain{
		Endpoint: "/api/regions",
		Controls: controls.Controls(controls.NewChain("", "province")...),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["endpoint"] != "/api/regions" {
		t.Fatalf("unexpected endpoint: %v", decoded["endpoint"])
	}
	if _, ok := decoded["id"]; ok {
		t.Fatalf("blank id should be omitted: %s", out)
	}
	if ctrl := decoded["controls"].([]any)[0].(map[string]any); ctrl["name"] != "province" {
		t.Fatalf("unexpected control: %v", ctrl)
	}
}
