package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProviderLegacyAliases(t *testing.T) {
	// An old serviceProviders document written before field names settled.
	data := map[string]interface{}{
		"userId":            "u1",
		"fullName":          "Budi Santoso",
		"businessName":      "CV Karya Mandiri",
		"phoneNumber":       "+62811111111",
		"isApproved":        true,
		"isActive":          true,
		"expertise":         []interface{}{"plumbing", "electrical"},
		"licenseDocuments":  []interface{}{"https://storage.example/lic.pdf"},
	}

	p := NormalizeProvider("sp1", ProviderKindService, data)

	assert.Equal(t, "u1", p.OwnerID)
	assert.Equal(t, "Budi Santoso", p.ContactName)
	assert.Equal(t, "CV Karya Mandiri", p.CompanyName)
	assert.Equal(t, "+62811111111", p.Phone)
	assert.True(t, p.Approved)
	assert.True(t, p.Active)
	assert.Equal(t, []string{"plumbing", "electrical"}, p.Skills)
	assert.Equal(t, []string{"https://storage.example/lic.pdf"}, p.LicenseURLs)
	assert.Equal(t, "CV Karya Mandiri", p.DisplayLabel())
}

func TestNormalizeProviderCanonicalFieldsWin(t *testing.T) {
	data := map[string]interface{}{
		"ownerId":     "u2",
		"userId":      "stale",
		"contactName": "Siti",
		"approved":    true,
		"active":      false,
	}

	p := NormalizeProvider("cp1", ProviderKindConstruction, data)

	assert.Equal(t, "u2", p.OwnerID)
	assert.Equal(t, "Siti", p.ContactName)
	assert.True(t, p.Approved)
	assert.False(t, p.Active)
	assert.False(t, p.Available())
	assert.Equal(t, "Siti", p.DisplayLabel())
}

func TestNormalizeProviderEmptyDocument(t *testing.T) {
	p := NormalizeProvider("x", ProviderKindService, map[string]interface{}{})

	assert.False(t, p.Approved)
	assert.False(t, p.Available())
	assert.Empty(t, p.DisplayLabel())
}
