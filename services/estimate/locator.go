// File: services/estimate/locator.go
package estimate

import (
	"context"
	"strings"

	ai "clearcare/services/intelligence"
	"clearcare/utils"

	"go.uber.org/zap"

	"clearcare/models"
)

const locatorLimit = 8

// specialtyKeywords maps procedure words to NPI taxonomy descriptions so
// an MRI request finds radiology facilities, not just general hospitals.
var specialtyKeywords = []struct {
	keyword  string
	taxonomy string
}{
	{"mri", "radiology"},
	{"x-ray", "radiology"},
	{"xray", "radiology"},
	{"ct scan", "radiology"},
	{"imaging", "radiology"},
	{"ultrasound", "radiology"},
	{"knee", "orthopedics"},
	{"hip", "orthopedics"},
	{"shoulder", "orthopedics"},
	{"fracture", "orthopedics"},
	{"heart", "cardiology"},
	{"cardiac", "cardiology"},
	{"skin", "dermatology"},
	{"derm", "dermatology"},
	{"colonoscopy", "gastroenterology"},
	{"endoscopy", "gastroenterology"},
	{"physical therapy", "physical therapy"},
	{"mental", "psychiatry"},
	{"therapy session", "psychiatry"},
	{"birth", "obstetrics"},
	{"pregnan", "obstetrics"},
	{"eye", "ophthalmology"},
	{"vision", "ophthalmology"},
	{"dental", "dental"},
	{"tooth", "dental"},
}

type registryLocator struct {
	search ai.ProviderSearch
}

// NewHospitalLocator builds the registry-backed candidate finder.
func NewHospitalLocator(search ai.ProviderSearch) HospitalLocator {
	return &registryLocator{search: search}
}

// Locate searches by inferred specialty first and falls back to a plain
// hospital search. Zero candidates is returned as an empty list without
// error; a registry failure is a CapabilityError the caller absorbs.
func (l *registryLocator) Locate(ctx context.Context, zipCode, careNeeded string) ([]models.Hospital, error) {
	specialty := inferSpecialty(careNeeded)

	hospitals, err := l.search.FindProviders(ctx, zipCode, specialty, locatorLimit)
	if err != nil {
		utils.GetLogger().Warn("Provider search failed", zap.String("specialty", specialty), zap.Error(err))
		return nil, &CapabilityError{Capability: "provider-search", Err: err}
	}

	if len(hospitals) == 0 && specialty != "hospital" {
		hospitals, err = l.search.FindProviders(ctx, zipCode, "hospital", locatorLimit)
		if err != nil {
			return nil, &CapabilityError{Capability: "provider-search", Err: err}
		}
	}
	return hospitals, nil
}

func inferSpecialty(careNeeded string) string {
	lower := strings.ToLower(careNeeded)
	for _, sk := range specialtyKeywords {
		if strings.Contains(lower, sk.keyword) {
			return sk.taxonomy
		}
	}
	return "hospital"
}
