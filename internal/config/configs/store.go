package configs

// Store configures the badger database holding persisted settings.
type Store struct {
	// Dir is the directory of the settings database. Created on first
	// start when missing.
	Dir string `env:"DIR" envDefault:"./data"`
}
