// Package dto defines data transfer objects for the JSearch API responses.
package dto

// SearchResponse represents the JSON response from the JSearch /search endpoint.
type SearchResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	Data    []Posting `json:"data"`
}

// Posting is one job posting in a SearchResponse.
type Posting struct {
	JobID                  string `json:"job_id"`
	JobTitle               string `json:"job_title"`
	EmployerName           string `json:"employer_name"`
	JobCity                string `json:"job_city"`
	JobState               string `json:"job_state"`
	JobCountry             string `json:"job_country"`
	JobDescription         string `json:"job_description"`
	JobApplyLink           string `json:"job_apply_link"`
	JobPostedAtDatetimeUTC string `json:"job_posted_at_datetime_utc"`
}
