package selector

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is a decoded JSON object describing one option.
type Record = map[string]any

// OptionsParams describes a CreateOptions call.
type OptionsParams struct {
	Select        Group
	Data          any
	ValueProperty string
	TextProperty  string
}

// CreateOptions writes one option per record into the first control of
// params.Select, starting at slot 1. Slot 0 is left alone for the placeholder.
// It returns false, without touching anything, when no control is resolved.
func (s *Selector) CreateOptions(params OptionsParams) bool {
	control := params.Select.First()
	if control == nil {
		s.Diagnose("select is empty")
		return false
	}
	policy := PopulateAccumulate
	if s != nil {
		policy = s.cfg.Populate
	}
	populate(control, params.Data, params.ValueProperty, params.TextProperty, policy)
	return true
}

// CreateOptions populates control outside of a selector using the accumulate
// policy and the default property names when valueProp or textProp are blank.
func CreateOptions(control Control, data any, valueProp, textProp string) bool {
	if control == nil {
		return false
	}
	populate(control, data, valueProp, textProp, PopulateAccumulate)
	return true
}

func populate(control Control, data any, valueProp, textProp string, policy PopulatePolicy) {
	if strings.TrimSpace(valueProp) == "" {
		valueProp = DefaultValueProperty
	}
	if strings.TrimSpace(textProp) == "" {
		textProp = DefaultTextProperty
	}
	if policy == PopulateReplace && control.OptionCount() > 1 {
		control.Truncate(1)
	}
	for i, record := range Records(data) {
		control.SetOption(i+1, Option{
			Value: Field(record, valueProp),
			Text:  Field(record, textProp),
		})
	}
}

// Records coerces a decoded payload into a record slice. Anything that is not
// a list yields nil.
func Records(data any) []any {
	switch v := data.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out
	default:
		return nil
	}
}

// Field reads property from a record and formats it as option text. Missing
// properties and non-object records yield "".
func Field(record any, property string) string {
	obj, ok := record.(map[string]any)
	if !ok {
		return ""
	}
	return Stringify(obj[property])
}

// Stringify formats a decoded JSON scalar the way it appears in the payload.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
