package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-cascade/pkg/selector"
)

// ChainView is a serializable snapshot of a chain.
type ChainView struct {
	ID       string        `json:"id,omitempty"`
	Endpoint string        `json:"endpoint,omitempty"`
	Param    string        `json:"param,omitempty"`
	Controls []ControlView `json:"controls"`
}

type ControlView struct {
	Name    string       `json:"name"`
	Level   string       `json:"level"`
	Value   string       `json:"value"`
	Options []OptionView `json:"options"`
}

type OptionView struct {
	Value    string `json:"value"`
	Text     string `json:"text"`
	Selected bool   `json:"selected,omitempty"`
}

// Snapshot reads the current state of every control in chain. Nil controls
// are skipped. A control without a level attribute gets its position.
// Controls that do not implement ListedControl are named by their "name"
// attribute and carry no options. Slot 0 is never marked selected.
func Snapshot(chain Chain) ChainView {
	view := ChainView{
		ID:       chain.ID,
		Endpoint: chain.Endpoint,
		Param:    chain.Param,
		Controls: make([]ControlView, 0, len(chain.Controls)),
	}
	for i, control := range chain.Controls {
		if control == nil {
			continue
		}
		view.Controls = append(view.Controls, snapshotControl(i, control))
	}
	return view
}

func snapshotControl(index int, control selector.Control) ControlView {
	level := strings.TrimSpace(control.Attr(selector.LevelAttr))
	if level == "" {
		level = strconv.Itoa(index + 1)
	}
	view := ControlView{
		Name:    control.Attr("name"),
		Level:   level,
		Value:   control.Value(),
		Options: []OptionView{},
	}

	listed, ok := control.(ListedControl)
	if !ok {
		return view
	}
	if view.Name == "" {
		view.Name = listed.Name()
	}
	selected := listed.SelectedIndex()
	for i, opt := range listed.Options() {
		view.Options = append(view.Options, OptionView{
			Value:    opt.Value,
			Text:     opt.Text,
			Selected: i == selected && i > 0,
		})
	}
	return view
}
