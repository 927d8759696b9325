package entity

import (
	"time"
)

const (
	ProviderKindService      = "service"
	ProviderKindConstruction = "construction"
)

// ProviderProfile is the canonical shape for both serviceProviders and
// constructionProviders documents. Legacy documents use inconsistent field
// names (name vs fullName vs companyName, isActive vs active, isApproved vs
// approved); NormalizeProvider folds those into this struct at the read
// boundary so nothing downstream branches on which alias is populated.
type ProviderProfile struct {
	ID          string `json:"id" firestore:"id"`
	OwnerID     string `json:"owner_id" firestore:"ownerId"`
	Kind        string `json:"kind" firestore:"kind"`
	CompanyName string `json:"company_name" firestore:"companyName"`
	ContactName string `json:"contact_name" firestore:"contactName"`
	Email       string `json:"email" firestore:"email"`
	Phone       string `json:"phone" firestore:"phone"`
	City        string `json:"city,omitempty" firestore:"city,omitempty"`
	Bio         string `json:"bio,omitempty" firestore:"bio,omitempty"`

	Approved bool `json:"approved" firestore:"approved"`
	Active   bool `json:"active" firestore:"active"`

	Skills        []string `json:"skills" firestore:"skills"`
	PortfolioURLs []string `json:"portfolio_urls" firestore:"portfolioURLs"`
	LicenseURLs   []string `json:"license_urls" firestore:"licenseURLs"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Available reports whether the profile may be assigned to a project.
func (p *ProviderProfile) Available() bool {
	return p.Approved && p.Active
}

// DisplayLabel is the human-readable name shown wherever the profile is
// referenced by id.
func (p *ProviderProfile) DisplayLabel() string {
	if p.CompanyName != "" {
		return p.CompanyName
	}
	return p.ContactName
}

// NormalizeProvider migrates a raw document into the canonical profile shape.
// It accepts every field alias the legacy collections ever used.
func NormalizeProvider(id, kind string, data map[string]interface{}) *ProviderProfile {
	p := &ProviderProfile{
		ID:   id,
		Kind: kind,
	}

	p.OwnerID = firstString(data, "ownerId", "userId", "uid")
	p.CompanyName = firstString(data, "companyName", "company", "businessName")
	p.ContactName = firstString(data, "contactName", "fullName", "name")
	p.Email = firstString(data, "email", "contactEmail")
	p.Phone = firstString(data, "phone", "phoneNumber", "contact")
	p.City = firstString(data, "city", "location")
	p.Bio = firstString(data, "bio", "description", "about")

	p.Approved = firstBool(data, "approved", "isApproved")
	p.Active = firstBool(data, "active", "isActive")

	p.Skills = stringSlice(data, "skills", "expertise", "services")
	p.PortfolioURLs = stringSlice(data, "portfolioURLs", "portfolioImages", "portfolio")
	p.LicenseURLs = stringSlice(data, "licenseURLs", "licenseDocuments", "certifications")

	p.CreatedAt = timeValue(data, "createdAt")
	p.UpdatedAt = timeValue(data, "updatedAt")

	return p
}

func firstString(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func firstBool(data map[string]interface{}, keys ...string) bool {
	for _, key := range keys {
		if v, ok := data[key].(bool); ok {
			return v
		}
	}
	return false
}

func stringSlice(data map[string]interface{}, keys ...string) []string {
	for _, key := range keys {
		raw, ok := data[key].([]interface{})
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func timeValue(data map[string]interface{}, key string) time.Time {
	if v, ok := data[key].(time.Time); ok {
		return v
	}
	return time.Time{}
}
