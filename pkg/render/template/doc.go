// Package template defines the template rendering seam used by the HTML
// renderers. The default implementation lives in the gotemplate subpackage.
package template
