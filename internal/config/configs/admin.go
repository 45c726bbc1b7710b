package configs

// Admin configures the admin boundary. Token is the static bearer token
// required on admin endpoints; an empty token leaves them open, which
// is intended for local development only.
type Admin struct {
	Token string `env:"TOKEN" envDefault:""`
}
