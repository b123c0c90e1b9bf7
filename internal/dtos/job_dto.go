package dtos

// JobInput is the generator form. The same keys are used for form posts and JSON bodies.
type JobInput struct {
	JobTitle        string `json:"jobTitle" form:"jobTitle" validate:"required,notblank"`
	CompanyName     string `json:"companyName" form:"companyName" validate:"required,notblank"`
	CompanyEmail    string `json:"companyEmail" form:"companyEmail" validate:"required,notblank"`
	City            string `json:"city" form:"city" validate:"required,notblank"`
	State           string `json:"state" form:"state" validate:"required,notblank"`
	JobType         string `json:"jobType" form:"jobType" validate:"required,notblank"`
	ExperienceLevel string `json:"experienceLevel" form:"experienceLevel" validate:"required,notblank"`
	Degree          string `json:"degree" form:"degree" validate:"required,notblank"`
	SkillsKnown     string `json:"skillsKnown" form:"skillsKnown" validate:"required,notblank"`

	// Optional Fields
	Salary            string `json:"salary,omitempty" form:"salary"`
	AdditionalDetails string `json:"additionalDetails,omitempty" form:"additionalDetails"`
}

// JobDetails are the display fields echoed back by the generator.
type JobDetails struct {
	Title           string `json:"title"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	JobType         string `json:"jobType"`
	ExperienceLevel string `json:"experienceLevel"`
	Salary          string `json:"salary"`
	Email           string `json:"email"`
}

type Metadata struct {
	GeneratedAt string `json:"generatedAt"`
	WordCount   int    `json:"wordCount"`
}

// GenerateResponse is the body of POST /generate.
// Application failures keep HTTP 200 and set Success=false.
type GenerateResponse struct {
	Success        bool        `json:"success"`
	JobDescription string      `json:"jobDescription,omitempty"`
	JobDetails     *JobDetails `json:"jobDetails,omitempty"`
	Metadata       *Metadata   `json:"metadata,omitempty"`
	Error          string      `json:"error,omitempty"`
	Message        string      `json:"message,omitempty"`
}

// Toast is a user-facing notification. Kind is one of success, error, warning, info.
type Toast struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// DescriptionResponse is returned by the description endpoints.
type DescriptionResponse struct {
	ID         string     `json:"id"`
	State      string     `json:"state"`
	Fallback   bool       `json:"fallback"`
	HTML       string     `json:"html"`
	JobDetails JobDetails `json:"jobDetails"`
	Metadata   Metadata   `json:"metadata"`
	Toasts     []Toast    `json:"toasts,omitempty"`
}
