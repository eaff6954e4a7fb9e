package selector

// LevelAttr is the attribute written on every control during Init.
const LevelAttr = "level"

// Option is a single entry in a control's option list.
type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// Control is the host toolkit handle driven by the selector. Implementations
// must allow indexed option assignment: setting an index equal to the current
// length appends, setting a larger index pads the list with blank options.
type Control interface {
	Attr(name string) string
	SetAttr(name, value string)
	OnChange(fn func())
	Value() string
	OptionCount() int
	SetOption(index int, opt Option)
	Truncate(n int)
}

// Group is the ordered set of controls resolved for a level. Population only
// writes to the first member.
type Group []Control

// Len reports the number of controls in the group.
func (g Group) Len() int {
	return len(g)
}

// First returns the first control or nil when the group is empty.
func (g Group) First() Control {
	if len(g) == 0 {
		return nil
	}
	return g[0]
}
