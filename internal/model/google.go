package model

// GoogleUserInfo mirrors the payload returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	GID     string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
