package contracts

import (
	"context"
	"encounter-service/internal/pkg/fhir_dto"
)

type BundleFhirClient interface {
	// PostTransactionBundle posts a transaction bundle to the FHIR base
	// endpoint and returns the response bundle.
	PostTransactionBundle(ctx context.Context, bundle *fhir_dto.FHIRBundle) (*fhir_dto.FHIRBundle, error)
}
