package constants

import (
	"strings"
)

// Category is the user-assigned expense category on an invoice. Invoices start
// uncategorized; callers set one via the update endpoint and analytics group by it.
type Category string

const (
	OfficeSupplies    Category = "OfficeSupplies"
	SoftwareServices  Category = "SoftwareServices"
	Utilities         Category = "Utilities"
	Travel            Category = "Travel"
	Meals             Category = "Meals"
	Marketing         Category = "Marketing"
	ProfessionalFees  Category = "ProfessionalFees"
	Equipment         Category = "Equipment"
	RentAndFacilities Category = "RentAndFacilities"
	Shipping          Category = "Shipping"
	Other             Category = "Other"
)

var allCategories = []Category{
	OfficeSupplies,
	SoftwareServices,
	Utilities,
	Travel,
	Meals,
	Marketing,
	ProfessionalFees,
	Equipment,
	RentAndFacilities,
	Shipping,
	Other,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Other, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Category{
		"saas":         SoftwareServices,
		"software":     SoftwareServices,
		"subscription": SoftwareServices,
		"supplies":     OfficeSupplies,
		"stationery":   OfficeSupplies,
		"electricity":  Utilities,
		"internet":     Utilities,
		"phone":        Utilities,
		"hotel":        Travel,
		"airline":      Travel,
		"taxi":         Travel,
		"restaurant":   Meals,
		"catering":     Meals,
		"ads":          Marketing,
		"advertising":  Marketing,
		"legal":        ProfessionalFees,
		"accounting":   ProfessionalFees,
		"consulting":   ProfessionalFees,
		"hardware":     Equipment,
		"rent":         RentAndFacilities,
		"postage":      Shipping,
		"courier":      Shipping,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	// check if it matches any category string
	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return Other, false
}
