package core

import (
	"github.com/kamdentle/valuation-gateway/pkg/config"
)

// Document is one predefined GraphQL query plus the dot-delimited path to
// the result subtree inside the response data.
type Document struct {
	Name         string
	Query        string
	ResponsePath string
}

// Request is one logical valuation lookup. Mileage is optional; nil means
// no mileage filter.
type Request struct {
	UVC     string
	Mileage *int
}

// Router selects the query document and variable map for a request.
// It is a pure function over its configuration: identical requests always
// yield identical selections.
type Router struct {
	withMileage    Document
	withoutMileage Document
}

// NewRouter builds a Router from the configured query documents.
func NewRouter(cfg *config.GraphQL) *Router {
	return &Router{
		withMileage: Document{
			Name:         "withMileage",
			Query:        cfg.Documents.WithMileage,
			ResponsePath: cfg.ResponsePath,
		},
		withoutMileage: Document{
			Name:         "withoutMileage",
			Query:        cfg.Documents.WithoutMileage,
			ResponsePath: cfg.ResponsePath,
		},
	}
}

// Select picks the document and variables for a request. A zero mileage is
// treated the same as an absent one; the upstream system never distinguishes
// the two, so "mileage: 0" means "no mileage filter".
func (r *Router) Select(req Request) (Document, map[string]interface{}) {
	if req.Mileage == nil || *req.Mileage == 0 {
		return r.withoutMileage, map[string]interface{}{
			"uvc": req.UVC,
		}
	}
	return r.withMileage, map[string]interface{}{
		"uvc":     req.UVC,
		"mileage": *req.Mileage,
	}
}
