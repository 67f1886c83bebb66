package constvars

const (
	ResourceEncounter          = "Encounter"
	ResourceCondition          = "Condition"
	ResourceAllergyIntolerance = "AllergyIntolerance"
	ResourceServiceRequest     = "ServiceRequest"
	ResourcePatient            = "Patient"
	ResourcePractitioner       = "Practitioner"
	ResourceLocation           = "Location"
	ResourceBundle             = "Bundle"
)

const (
	FhirBundleTypeTransaction         = "transaction"
	FhirBundleTypeTransactionResponse = "transaction-response"
)

const (
	FhirConditionCategoryEncounterDiagnosis = "encounter-diagnosis"
	FhirConditionCategoryProblemListItem    = "problem-list-item"

	FhirConditionClinicalStatusActive = "active"

	FhirVerificationStatusConfirmed   = "confirmed"
	FhirVerificationStatusProvisional = "provisional"
)

const (
	FhirSystemConditionCategory     = "http://terminology.hl7.org/CodeSystem/condition-category"
	FhirSystemConditionClinical     = "http://terminology.hl7.org/CodeSystem/condition-clinical"
	FhirSystemConditionVerification = "http://terminology.hl7.org/CodeSystem/condition-ver-status"
	FhirSystemAllergyClinical       = "http://terminology.hl7.org/CodeSystem/allergyintolerance-clinical"
)

const (
	FhirEncounterStatusFinished = "finished"

	FhirEncounterClassAmbulatory = "AMB"
	FhirEncounterClassInpatient  = "IMP"
	FhirEncounterClassEmergency  = "EMER"
	FhirSystemEncounterClass     = "http://terminology.hl7.org/CodeSystem/v3-ActCode"
)

const (
	FhirServiceRequestStatusActive = "active"
	FhirServiceRequestIntentOrder  = "order"
)

const (
	FhirUrnUUIDPrefix = "urn:uuid:"
)
