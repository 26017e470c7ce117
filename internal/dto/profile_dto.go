package dto

// UpdateProfileRequest carries the self-service profile mutation. Pointer
// fields distinguish "not sent" from a zero value.
type UpdateProfileRequest struct {
	Name            *string   `json:"name"`
	Location        *string   `json:"location"`
	Age             *int      `json:"age"`
	Skills          *[]string `json:"skills"`
	ExperienceYears *int      `json:"experience_years"`
	WageMin         *float64  `json:"wage_min"`
	WageMax         *float64  `json:"wage_max"`
	Availability    *[]string `json:"availability"`
	Description     *string   `json:"description"`
}
