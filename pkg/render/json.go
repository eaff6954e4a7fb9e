package render

import (
	"encoding/json"
	"fmt"
)

// JSON renders a chain snapshot as application/json.
type JSON struct {
	Indent string
}

var _ Renderer = JSON{}

func (JSON) Name() string {
	return "json"
}

func (JSON) ContentType() string {
	return "application/json"
}

func (j JSON) Render(chain Chain) ([]byte, error) {
	view := Snapshot(chain)
	var (
		out []byte
		err error
	)
	if j.Indent != "" {
		out, err = json.MarshalIndent(view, "", j.Indent)
	} else {
		out, err = json.Marshal(view)
	}
	if err != nil {
		return nil, fmt.Errorf("render: encode chain: %w", err)
	}
	return out, nil
}
