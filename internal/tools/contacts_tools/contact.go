package contacts_tools

import (
	people "google.golang.org/api/people/v1"
)

// Contact is the flattened view of a person.
type Contact struct {
	ResourceName  string         `json:"resourceName"`
	Name          *Name          `json:"name,omitempty"`
	Emails        []Entry        `json:"emails,omitempty"`
	Phones        []Entry        `json:"phones,omitempty"`
	Addresses     []Address      `json:"addresses,omitempty"`
	Organizations []Organization `json:"organizations,omitempty"`
	Photo         *Photo         `json:"photo,omitempty"`
}

// Name is the primary name of a contact.
type Name struct {
	DisplayName string `json:"displayName"`
	GivenName   string `json:"givenName"`
	FamilyName  string `json:"familyName"`
	MiddleName  string `json:"middleName"`
}

// Entry is an email address or phone number.
type Entry struct {
	Value   string `json:"value"`
	Type    string `json:"type"`
	Primary bool   `json:"primary"`
}

type Address struct {
	FormattedValue string `json:"formattedValue"`
	Type           string `json:"type"`
	Primary        bool   `json:"primary"`
}

type Organization struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Department string `json:"department"`
	Type       string `json:"type"`
	Primary    bool   `json:"primary"`
}

type Photo struct {
	URL     string `json:"url"`
	Default bool   `json:"default"`
}

func isPrimary(m *people.FieldMetadata) bool {
	return m != nil && m.Primary
}

// primaryIndex returns the first entry flagged primary, else 0.
func primaryIndex(n int, meta func(i int) *people.FieldMetadata) int {
	for i := 0; i < n; i++ {
		if isPrimary(meta(i)) {
			return i
		}
	}
	return 0
}

// Flatten converts a People API person into a Contact.
func Flatten(p *people.Person) Contact {
	c := Contact{ResourceName: p.ResourceName}

	if len(p.Names) > 0 {
		n := p.Names[primaryIndex(len(p.Names), func(i int) *people.FieldMetadata { return p.Names[i].Metadata })]
		c.Name = &Name{
			DisplayName: n.DisplayName,
			GivenName:   n.GivenName,
			FamilyName:  n.FamilyName,
			MiddleName:  n.MiddleName,
		}
	}
	for _, e := range p.EmailAddresses {
		c.Emails = append(c.Emails, Entry{Value: e.Value, Type: e.Type, Primary: isPrimary(e.Metadata)})
	}
	for _, ph := range p.PhoneNumbers {
		c.Phones = append(c.Phones, Entry{Value: ph.Value, Type: ph.Type, Primary: isPrimary(ph.Metadata)})
	}
	for _, a := range p.Addresses {
		c.Addresses = append(c.Addresses, Address{FormattedValue: a.FormattedValue, Type: a.Type, Primary: isPrimary(a.Metadata)})
	}
	for _, o := range p.Organizations {
		c.Organizations = append(c.Organizations, Organization{
			Name:       o.Name,
			Title:      o.Title,
			Department: o.Department,
			Type:       o.Type,
			Primary:    isPrimary(o.Metadata),
		})
	}
	if len(p.Photos) > 0 {
		ph := p.Photos[primaryIndex(len(p.Photos), func(i int) *people.FieldMetadata { return p.Photos[i].Metadata })]
		c.Photo = &Photo{URL: ph.Url, Default: ph.Default}
	}
	return c
}
