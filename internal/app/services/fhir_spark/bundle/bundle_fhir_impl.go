package bundle

import (
	"bytes"
	"context"
	"encounter-service/internal/app/contracts"
	"encounter-service/internal/pkg/constvars"
	"encounter-service/internal/pkg/exceptions"
	"encounter-service/internal/pkg/fhir_dto"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BundleFhirClientImpl struct {
	baseFhirURL string
	log         *zap.Logger
}

// NewBundleFhirClient returns a concrete client. Callers can still depend on
// the contracts.BundleFhirClient interface for abstraction.
func NewBundleFhirClient(baseFhirURL string, logger *zap.Logger) contracts.BundleFhirClient {
	return &BundleFhirClientImpl{baseFhirURL: baseFhirURL, log: logger}
}

func (c *BundleFhirClientImpl) PostTransactionBundle(ctx context.Context, bundle *fhir_dto.FHIRBundle) (*fhir_dto.FHIRBundle, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	requestJSON, err := json.Marshal(bundle)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.baseFhirURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		bodyBytes, rerr := io.ReadAll(resp.Body)
		if rerr != nil {
			c.log.Error("bundleFhirClient.PostTransactionBundle error reading response body",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(rerr),
			)
			return nil, exceptions.ErrCreateFHIRResource(rerr, constvars.ResourceBundle)
		}
		var outcome fhir_dto.OperationOutcome
		if uerr := json.Unmarshal(bodyBytes, &outcome); uerr != nil {
			c.log.Error("bundleFhirClient.PostTransactionBundle error unmarshaling outcome",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(uerr),
			)
			return nil, exceptions.ErrCreateFHIRResource(uerr, constvars.ResourceBundle)
		}
		if len(outcome.Issue) > 0 {
			fhirErrorIssue := fmt.Errorf(outcome.Issue[0].Diagnostics)
			c.log.Error("bundleFhirClient.PostTransactionBundle FHIR error",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(fhirErrorIssue),
			)
			return nil, exceptions.ErrCreateFHIRResource(fhirErrorIssue, constvars.ResourceBundle)
		}
		return nil, exceptions.ErrCreateFHIRResource(fmt.Errorf("unexpected status %d", resp.StatusCode), constvars.ResourceBundle)
	}

	var result fhir_dto.FHIRBundle
	if derr := json.NewDecoder(resp.Body).Decode(&result); derr != nil {
		return nil, exceptions.ErrDecodeResponse(derr, constvars.ResourceBundle)
	}
	return &result, nil
}
