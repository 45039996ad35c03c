package models

// Application is the wire record of one candidate applying to one job posting
type Application struct {
	ID         string           `json:"id"`
	Status     string           `json:"status"`
	Stage      string           `json:"stage"`
	AppliedAt  string           `json:"applied_at"`
	Candidate  ApplicationPerson `json:"candidate"`
	JobPosting JobPostingRef    `json:"job_posting"`
}

// ApplicationPerson is the candidate embedded in an application record
type ApplicationPerson struct {
	ID                string     `json:"id"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	DateOfBirth       string     `json:"date_of_birth,omitempty"`
	CurrentPosition   string     `json:"current_position"`
	Rating            float64    `json:"rating"`
	ImageURL          string     `json:"image_url,omitempty"`
	Documents         []Document `json:"documents,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	SalaryExpectation *float64   `json:"salary_expectation,omitempty"`
	WeeklyHours       *float64   `json:"weekly_hours,omitempty"`
}

// JobPostingRef is the job posting embedded in an application record
type JobPostingRef struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Department string `json:"department"`
}

// Candidate is the practice-wide wire record with a global status
type Candidate struct {
	ID                string     `json:"id"`
	Status            string     `json:"status"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	DateOfBirth       string     `json:"date_of_birth,omitempty"`
	CurrentPosition   string     `json:"current_position"`
	Rating            float64    `json:"rating"`
	ImageURL          string     `json:"image_url,omitempty"`
	Documents         []Document `json:"documents,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	SalaryExpectation *float64   `json:"salary_expectation,omitempty"`
	WeeklyHours       *float64   `json:"weekly_hours,omitempty"`
	CreatedAt         string     `json:"created_at"`
	JobPostingID      string     `json:"job_posting_id,omitempty"`
	JobPostingTitle   string     `json:"job_posting_title,omitempty"`
}

// Document is an uploaded file attached to a candidate
type Document struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Size       int64  `json:"size,omitempty"`
	UploadedAt string `json:"uploadedAt,omitempty"`
}

// JobPosting is an open position a board can be filtered by
type JobPosting struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Department string `json:"department,omitempty"`
}
