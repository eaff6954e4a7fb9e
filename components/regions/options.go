package regions

import "net/http"

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath string
	Param     string
	Guard     GuardFunc

	Tree *Tree
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/api/regions",
		Param:     "id",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/regions"
	}
	if opts.Param == "" {
		opts.Param = "id"
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Param = name
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithTree(tree *Tree) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Tree = tree
	}
}
