// Package template defines the seam report rendering depends on. The pongo
// subpackage implements it with pongo2.
package template
