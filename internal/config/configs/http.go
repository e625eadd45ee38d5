package configs

// HTTP defines configuration for the console's HTTP server. Port is the
// TCP port the server binds to.
type HTTP struct {
	// Port defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
}
