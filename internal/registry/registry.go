// Package registry holds the job board vendors the finder knows how to recognize.
//
// A Registry is built once at startup and is read-only afterwards; scanners
// receive it explicitly.
package registry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Vendor identifiers for the built-in job boards.
const (
	VendorBambooHR        = "bamboohr"
	VendorGreenhouse      = "greenhouse"
	VendorLever           = "lever"
	VendorWorkday         = "workday"
	VendorSmartRecruiters = "smartrecruiters"
	VendorICIMS           = "icims"
	VendorJobvite         = "jobvite"
	VendorJazzHR          = "jazzhr"
	VendorAshby           = "ashby"
	VendorWorkable        = "workable"
	VendorRecruitee       = "recruitee"
	VendorBreezy          = "breezy"
)

// Spec describes a vendor by its identifier and the host suffix its boards live under.
type Spec struct {
	Vendor string `json:"vendor" validate:"required,vendorid"`
	Domain string `json:"domain" validate:"required,hostname_rfc1123,contains=."`
}

// builtin lists the default vendors in scan order.
var builtin = []Spec{
	{Vendor: VendorBambooHR, Domain: "bamboohr.com"},
	{Vendor: VendorGreenhouse, Domain: "greenhouse.io"},
	{Vendor: VendorLever, Domain: "lever.co"},
	{Vendor: VendorWorkday, Domain: "myworkdayjobs.com"},
	{Vendor: VendorSmartRecruiters, Domain: "smartrecruiters.com"},
	{Vendor: VendorICIMS, Domain: "icims.com"},
	{Vendor: VendorJobvite, Domain: "jobvite.com"},
	{Vendor: VendorJazzHR, Domain: "applytojob.com"},
	{Vendor: VendorAshby, Domain: "ashbyhq.com"},
	{Vendor: VendorWorkable, Domain: "workable.com"},
	{Vendor: VendorRecruitee, Domain: "recruitee.com"},
	{Vendor: VendorBreezy, Domain: "breezy.hr"},
}

var vendorIDPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Entry is a vendor together with its compiled URL matcher.
type Entry struct {
	Vendor  string
	Domain  string
	matcher *regexp.Regexp
}

// Matcher returns the case-insensitive pattern matching this vendor's board URLs.
func (e Entry) Matcher() *regexp.Regexp {
	return e.matcher
}

// Registry is an ordered, immutable set of vendor entries.
type Registry struct {
	entries []Entry
	index   map[string]int
}

// BuiltinSpecs returns a copy of the default vendor list.
func BuiltinSpecs() []Spec {
	out := make([]Spec, len(builtin))
	copy(out, builtin)
	return out
}

// Default returns a registry with the built-in vendors.
func Default() *Registry {
	r, err := New(builtin)
	if err != nil {
		panic(fmt.Sprintf("built-in vendor registry is invalid: %v", err))
	}
	return r
}

// New builds a registry from specs, preserving their order.
func New(specs []Spec) (*Registry, error) {
	if len(specs) == 0 {
		return nil, &Error{Message: "at least one vendor is required"}
	}

	validate := newValidator()
	r := &Registry{
		entries: make([]Entry, 0, len(specs)),
		index:   make(map[string]int, len(specs)),
	}
	for _, spec := range specs {
		if err := validate.Struct(spec); err != nil {
			return nil, &Error{
				Message: fmt.Sprintf("invalid vendor %q", spec.Vendor),
				Cause:   err,
			}
		}
		if r.Has(spec.Vendor) {
			return nil, &Error{Message: fmt.Sprintf("duplicate vendor %q", spec.Vendor)}
		}
		r.index[spec.Vendor] = len(r.entries)
		r.entries = append(r.entries, Entry{
			Vendor:  spec.Vendor,
			Domain:  strings.ToLower(spec.Domain),
			matcher: compileMatcher(spec.Domain),
		})
	}
	return r, nil
}

// compileMatcher builds the URL pattern shared by every vendor: a scheme,
// any host ending in the vendor domain, then a path up to whitespace, a quote
// or an angle bracket.
func compileMatcher(domain string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)https?://[a-z0-9.-]*` + regexp.QuoteMeta(domain) + `[^\s"'<>]*`)
}

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("vendorid", func(fl validator.FieldLevel) bool {
		return vendorIDPattern.MatchString(fl.Field().String())
	})
	return validate
}

// Entries returns the vendor entries in scan order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Vendors returns the vendor identifiers in scan order.
func (r *Registry) Vendors() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Vendor
	}
	return out
}

// Has reports whether vendor is registered.
func (r *Registry) Has(vendor string) bool {
	_, ok := r.index[vendor]
	return ok
}

// Len returns the number of vendors.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Specs returns the registry contents as specs, in scan order.
func (r *Registry) Specs() []Spec {
	out := make([]Spec, len(r.entries))
	for i, e := range r.entries {
		out[i] = Spec{Vendor: e.Vendor, Domain: e.Domain}
	}
	return out
}
