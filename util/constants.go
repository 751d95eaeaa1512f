package util

// Collection names.
const (
	DoctorCollection              = "DOCTOR"
	AssistantCollection           = "ASSISTANT"
	PatientCollection             = "PATIENT"
	DrugCollection                = "DRUG"
	PrescriptionCollection        = "PRESCRIPTION"
	PendingPrescriptionCollection = "PENDING_PRESCRIPTION"
)

// Cache key prefixes.
const (
	DrugKey         = "DRUG:"
	PrescriptionKey = "PRESCRIPTION:"
)
