package model

// AccessToken struct holds the access token data
type AccessToken struct {
	Token string `json:"token"`
}

// StudentResponse struct holds the response data for student login or registration
type StudentResponse struct {
	User        StudentProfile `json:"user"`
	AccessToken string         `json:"access_token"`
}

// SetAccessToken sets the access token in the StudentResponse
func (r *StudentResponse) SetAccessToken(accessToken string) {
	r.AccessToken = accessToken
}

// AdminResponse struct holds the response data for admin login
type AdminResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

// SetAccessToken sets the access token in the AdminResponse
func (r *AdminResponse) SetAccessToken(accessToken string) {
	r.AccessToken = accessToken
}
