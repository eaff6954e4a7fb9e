package selectorwiring

import (
	"strings"

	"github.com/goliatone/go-cascade/components/regions"
	"github.com/goliatone/go-cascade/pkg/selector"
	"github.com/goliatone/go-cascade/pkg/shape"
)

// SelectorOptions returns the endpoint and selector options for a cascade
// backed by the regions component mounted at origin+basePath.
//
// The generated options:
// - use the component's parent parameter name
// - populate targets from the "data" list once "boolen" equals 1
// - read option values from "id" and text from "name_cn"
func SelectorOptions(origin, basePath string, fns ...regions.OptionFn) (string, []selector.OptionFn) {
	opts := regions.NewOptions(fns...)
	endpoint := strings.TrimRight(strings.TrimSpace(origin), "/") + regions.MountPath(basePath, func(o *regions.Options) {
		if o == nil {
			return
		}
		*o = opts
	})

	return endpoint, []selector.OptionFn{
		selector.WithParam(opts.Param),
		selector.WithDataCallback(shape.Populate(shape.Config{
			ResultsPath:   "data",
			StatusField:   "boolen",
			StatusOK:      "1",
			ValueProperty: "id",
			TextProperty:  "name_cn",
		})),
	}
}
