package selector_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cascade/pkg/controls"
	"github.com/goliatone/go-cascade/pkg/selector"
)

func newTestSelector(t *testing.T, policy selector.PopulatePolicy, chain ...*controls.Select) *selector.Selector {
	t.Helper()
	sel, err := selector.New("http://example.test/api", controls.Controls(chain...), selector.WithPopulatePolicy(policy))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return sel
}

func TestCreateOptions_InsertsAfterPlaceholder(t *testing.T) {
	target := controls.NewSelect("city", controls.WithPlaceholder("Please select"))
	sel := newTestSelector(t, selector.PopulateAccumulate, target)

	ok := sel.CreateOptions(selector.OptionsParams{
		Select: selector.Group{target},
		Data: []any{
			map[string]any{"id": json.Number("11"), "name_cn": "Chaoyang"},
			map[string]any{"id": json.Number("12"), "name_cn": "Haidian"},
			map[string]any{"id": json.Number("13"), "name_cn": "Dongcheng"},
		},
	})
	if !ok {
		t.Fatalf("expected CreateOptions to succeed")
	}

	want := []selector.Option{
		{Value: "", Text: "Please select"},
		{Value: "11", Text: "Chaoyang"},
		{Value: "12", Text: "Haidian"},
		{Value: "13", Text: "Dongcheng"},
	}
	if diff := cmp.Diff(want, target.Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateOptions_CustomProperties(t *testing.T) {
	target := controls.NewSelect("trade", controls.WithPlaceholder("--"))
	sel := newTestSelector(t, selector.PopulateAccumulate, target)

	sel.CreateOptions(selector.OptionsParams{
		Select:        selector.Group{target},
		Data:          []map[string]any{{"code": "A01", "trade_name_cn": "Farming", "id": "ignored"}},
		ValueProperty: "code",
		TextProperty:  "trade_name_cn",
	})

	opt, ok := target.Option(1)
	if !ok || opt.Value != "A01" || opt.Text != "Farming" {
		t.Fatalf("unexpected option: %#v", opt)
	}
}

func TestCreateOptions_WritesFirstControlOfGroup(t *testing.T) {
	first := controls.NewSelect("a", controls.WithPlaceholder("--"))
	second := controls.NewSelect("b", controls.WithPlaceholder("--"))
	sel := newTestSelector(t, selector.PopulateAccumulate, first, second)

	sel.CreateOptions(selector.OptionsParams{
		Select: selector.Group{first, second},
		Data:   []any{map[string]any{"id": "1", "name_cn": "One"}},
	})

	if first.OptionCount() != 2 {
		t.Fatalf("expected first control to be populated, got %d options", first.OptionCount())
	}
	if second.OptionCount() != 1 {
		t.Fatalf("expected second control untouched, got %d options", second.OptionCount())
	}
}

func TestCreateOptions_EmptyGroupFails(t *testing.T) {
	target := controls.NewSelect("a", controls.WithPlaceholder("--"))
	sel := newTestSelector(t, selector.PopulateAccumulate, target)

	if sel.CreateOptions(selector.OptionsParams{Data: []any{map[string]any{"id": "1"}}}) {
		t.Fatalf("expected failure for unresolved control")
	}
	if target.OptionCount() != 1 {
		t.Fatalf("expected no mutation")
	}
}

func TestCreateOptions_PopulatePolicies(t *testing.T) {
	seed := []selector.Option{{Value: "1", Text: "old-1"}, {Value: "2", Text: "old-2"}, {Value: "3", Text: "old-3"}}
	data := []any{map[string]any{"id": "9", "name_cn": "new"}}

	accumulate := controls.NewSelect("acc", controls.WithPlaceholder("--"), controls.WithOptions(seed...))
	newTestSelector(t, selector.PopulateAccumulate, accumulate).
		CreateOptions(selector.OptionsParams{Select: selector.Group{accumulate}, Data: data})

	wantAccumulate := []selector.Option{
		{Value: "", Text: "--"},
		{Value: "9", Text: "new"},
		{Value: "2", Text: "old-2"},
		{Value: "3", Text: "old-3"},
	}
	if diff := cmp.Diff(wantAccumulate, accumulate.Options()); diff != "" {
		t.Fatalf("accumulate mismatch (-want +got):\n%s", diff)
	}

	replace := controls.NewSelect("rep", controls.WithPlaceholder("--"), controls.WithOptions(seed...))
	newTestSelector(t, selector.PopulateReplace, replace).
		CreateOptions(selector.OptionsParams{Select: selector.Group{replace}, Data: data})

	wantReplace := []selector.Option{{Value: "", Text: "--"}, {Value: "9", Text: "new"}}
	if diff := cmp.Diff(wantReplace, replace.Options()); diff != "" {
		t.Fatalf("replace mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateOptions_PackageHelper(t *testing.T) {
	target := controls.NewSelect("a", controls.WithPlaceholder("--"))
	if selector.CreateOptions(nil, nil, "", "") {
		t.Fatalf("expected nil control to fail")
	}
	if !selector.CreateOptions(target, []any{"not-an-object", map[string]any{"id": 2.0, "name_cn": "Two"}}, "", "") {
		t.Fatalf("expected success")
	}
	want := []selector.Option{{Value: "", Text: "--"}, {}, {Value: "2", Text: "Two"}}
	if diff := cmp.Diff(want, target.Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestStringify(t *testing.T) {
	cases := map[string]any{
		"":         nil,
		"abc":      "abc",
		"110000":   json.Number("110000"),
		"1.5":      1.5,
		"42":       42,
		"true":     true,
		"12345678": float64(12345678),
	}
	for want, in := range cases {
		if got := selector.Stringify(in); got != want {
			t.Fatalf("Stringify(%#v): expected %q, got %q", in, want, got)
		}
	}
}
