package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/jobboard-finder/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Order(t *testing.T) {
	r := Default()
	vendors := r.Vendors()
	require.Len(t, vendors, len(builtin))
	assert.Equal(t, VendorBambooHR, vendors[0])
	assert.Equal(t, VendorGreenhouse, vendors[1])
	assert.True(t, r.Has(VendorWorkday))
	assert.False(t, r.Has("taleo"))
}

func TestEntry_Matcher(t *testing.T) {
	r := Default()
	entry := r.Entries()[0]
	require.Equal(t, VendorBambooHR, entry.Vendor)

	tests := []struct {
		name  string
		text  string
		match string
	}{
		{"subdomain with path", `href="https://acme.bamboohr.com/jobs/?x=1"`, "https://acme.bamboohr.com/jobs/?x=1"},
		{"upper case", "HTTPS://ACME.BAMBOOHR.COM/careers", "HTTPS://ACME.BAMBOOHR.COM/careers"},
		{"plain http", "see http://bamboohr.com/x here", "http://bamboohr.com/x"},
		{"stops at angle bracket", "<a>https://acme.bamboohr.com/jobs</a>", "https://acme.bamboohr.com/jobs"},
		{"stops at single quote", "'https://acme.bamboohr.com/jobs'", "https://acme.bamboohr.com/jobs"},
		{"no scheme", "acme.bamboohr.com/jobs", ""},
		{"other vendor", "https://boards.greenhouse.io/acme", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, entry.Matcher().FindString(tt.text))
		})
	}
}

func TestEntry_MatcherEscapesDomain(t *testing.T) {
	r, err := New([]Spec{{Vendor: "lever", Domain: "lever.co"}})
	require.NoError(t, err)
	entry := r.Entries()[0]

	assert.Empty(t, entry.Matcher().FindString("https://jobs.leverXco/acme"))
	assert.Equal(t, "https://jobs.lever.co/acme", entry.Matcher().FindString("https://jobs.lever.co/acme"))
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name  string
		specs []Spec
	}{
		{"empty", nil},
		{"duplicate", []Spec{{Vendor: "a", Domain: "a.com"}, {Vendor: "a", Domain: "b.com"}}},
		{"bad vendor id", []Spec{{Vendor: "Bad Vendor", Domain: "a.com"}}},
		{"missing domain", []Spec{{Vendor: "a"}}},
		{"domain without dot", []Spec{{Vendor: "a", Domain: "localhost"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.specs)
			require.Error(t, err)
			var regErr *Error
			assert.ErrorAs(t, err, &regErr)
		})
	}
}

func TestEntries_ReturnsCopy(t *testing.T) {
	r := Default()
	entries := r.Entries()
	entries[0].Vendor = "mutated"

	assert.Equal(t, VendorBambooHR, r.Vendors()[0])
}

func TestParse_AppendsToBuiltins(t *testing.T) {
	r, err := Parse("vendors.json", []byte(`{"vendors":[{"vendor":"pinpoint","domain":"pinpointhq.com"}]}`))
	require.NoError(t, err)

	assert.Equal(t, len(builtin)+1, r.Len())
	assert.Equal(t, "pinpoint", r.Vendors()[r.Len()-1])
}

func TestParse_Replace(t *testing.T) {
	r, err := Parse("vendors.json", []byte(`{"replace":true,"vendors":[{"vendor":"pinpoint","domain":"pinpointhq.com"}]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"pinpoint"}, r.Vendors())
}

func TestParse_DuplicateOfBuiltin(t *testing.T) {
	_, err := Parse("vendors.json", []byte(`{"vendors":[{"vendor":"lever","domain":"lever.co"}]}`))
	require.Error(t, err)

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Contains(t, err.Error(), "duplicate vendor")
}

func TestParse_SchemaViolation(t *testing.T) {
	_, err := Parse("vendors.json", []byte(`{"vendors":[{"vendor":"UPPER","domain":"x.com"}]}`))
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse("vendors.json", []byte(`{"vendors": [`))
	require.Error(t, err)

	var docErr *schemas.DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Contains(t, err.Error(), "failed to parse JSON")
	assert.NotContains(t, err.Error(), "schema")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendors.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"vendors":[{"vendor":"teamtailor","domain":"teamtailor.com"}]}`), 0644))

	r, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, r.Has("teamtailor"))
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Contains(t, err.Error(), "failed to read file")
}
