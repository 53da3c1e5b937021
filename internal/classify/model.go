package classify

// Category is the coarse intent label produced by the keyword classifier.
// Values from this set must never be mixed with PageCategory or
// Specialization values; each classifier owns its own closed set.
type Category string

const (
	CategoryHealthQuery    Category = "health_query"
	CategoryMedicalRecords Category = "medical_records"
	CategoryUnknown        Category = "unknown"
)

// PageCategory is the navigation target produced by the LLM page classifier.
type PageCategory string

const (
	PageMedibot            PageCategory = "medibot"
	PageMediscanner        PageCategory = "mediscanner"
	PageUserProfile        PageCategory = "user_profile"
	PageUploadPrescription PageCategory = "upload_prescription"
	PageBookAppointment    PageCategory = "book_appointment"

	// PageUnclassified is returned when the model answers with anything
	// outside the taxonomy. It is a valid result, not an error.
	PageUnclassified PageCategory = "unclassified"
)

// pageCategories is the closed taxonomy the model's answer is validated
// against. Anything else becomes PageUnclassified.
var pageCategories = []PageCategory{
	PageMedibot,
	PageMediscanner,
	PageUserProfile,
	PageUploadPrescription,
	PageBookAppointment,
}

// Specialization is a medical field-of-practice code.
type Specialization string

// SpecializationUnrecognized is the fallback for model answers outside the
// taxonomy.
const SpecializationUnrecognized Specialization = "unrecognized"

var specializations = []Specialization{
	"general_medicine",
	"cardiology",
	"dermatology",
	"endocrinology",
	"gastroenterology",
	"neurology",
	"oncology",
	"pediatrics",
	"psychiatry",
	"radiology",
	"urology",
	"nephrology",
	"pulmonology",
	"rheumatology",
	"ophthalmology",
	"orthopedics",
	"gynecology",
	"otolaryngology",
	"hematology",
	"immunology",
	"anesthesiology",
	"pathology",
	"dentistry",
	"physiotherapy",
	"dietetics",
	"geriatrics",
	"neonatology",
	"venereology",
}

// Source records how an utterance entered the system.
type Source string

const (
	SourceVoice Source = "voice"
	SourceTyped Source = "typed"
)

// Utterance is one unit of user input for a single request. Language is
// advisory metadata and is fixed once detected.
type Utterance struct {
	Text     string `json:"text"`
	Language string `json:"lang"`
	Source   Source `json:"source"`
}

// ClassificationResult is the response of the simple-intent flow.
type ClassificationResult struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
	Language string   `json:"lang"`
}

// NavigationResult is the response of the navigation flow. TextResponse is
// only present when the classifier routed to the conversational assistant.
type NavigationResult struct {
	Category     PageCategory `json:"category"`
	TextResponse string       `json:"text_response,omitempty"`
}

// DoctorMatch is the read-only projection of a directory record attached to
// chatbot responses.
type DoctorMatch struct {
	Name            string `json:"name"`
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"experience_years"`
	LocationName    string `json:"location_name"`
	Contact         string `json:"phonenumber"`
}

// ChatResult is the response of the chatbot flow. It is only constructed when
// all three sub-results are available; there are no partial responses.
type ChatResult struct {
	Response       string         `json:"response"`
	Specialization Specialization `json:"specialization"`
	Doctors        []DoctorMatch  `json:"doctors"`
}
