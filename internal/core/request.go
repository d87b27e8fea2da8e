package core

import (
	"slices"
	"strings"
)

// Validate checks the fields the generation agent cannot do without.
func (r GenerateRequest) Validate() error {
	if strings.TrimSpace(r.ProductName) == "" {
		return &ValidationError{Field: "product_name", Message: "Product name is required"}
	}
	if strings.TrimSpace(r.Industry) == "" {
		return &ValidationError{Field: "industry", Message: "Please select an industry"}
	}
	return nil
}

// Normalized trims the free-text fields, fills the defaults and removes
// repeated emphasis areas.
func (r GenerateRequest) Normalized() GenerateRequest {
	d := DefaultGenerateRequest()
	r.ProductName = strings.TrimSpace(r.ProductName)
	r.Industry = strings.TrimSpace(r.Industry)
	r.ProblemStatement = strings.TrimSpace(r.ProblemStatement)
	if strings.TrimSpace(r.ProductType) == "" {
		r.ProductType = d.ProductType
	}
	if strings.TrimSpace(r.DetailLevel) == "" {
		r.DetailLevel = d.DetailLevel
	}

	var emphasis []string
	for _, e := range r.Emphasis {
		e = strings.TrimSpace(e)
		if e != "" && !slices.Contains(emphasis, e) {
			emphasis = append(emphasis, e)
		}
	}
	r.Emphasis = emphasis
	return r
}

// ToggleEmphasis adds area when absent and removes it when present.
func (r GenerateRequest) ToggleEmphasis(area string) GenerateRequest {
	out := make([]string, 0, len(r.Emphasis)+1)
	found := false
	for _, e := range r.Emphasis {
		if e == area {
			found = true
			continue
		}
		out = append(out, e)
	}
	if !found {
		out = append(out, area)
	}
	r.Emphasis = out
	return r
}
