package domain

// Organization is the public metadata of a tenant, looked up by shortcode.
type Organization struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Shortcode string `json:"shortcode"`
	LogoURL   string `json:"logo_url,omitempty"`
}
