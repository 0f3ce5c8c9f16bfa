package httpfn

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const configPrefix = "httpfn:TransportConfig"

// TransportConfig configures the single transport shared by every
// HttpFunction a FunctionProvider hands out. All timeout phases are
// derived from BaseTimeout.
type TransportConfig struct {
	BaseTimeout time.Duration `envconfig:"STATEFUN_HTTP_TIMEOUT" default:"30s"`

	// Zero means no limit.
	MaxIdleConnsPerHost int `envconfig:"STATEFUN_HTTP_MAX_IDLE_CONNS_PER_HOST" default:"0"`

	// Upper bound on calls in flight across all functions. Zero means no limit.
	MaxConns int `envconfig:"STATEFUN_HTTP_MAX_CONNS" default:"0"`
}

// DefaultTransportConfig returns a 30s base timeout with unbounded pooling.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{BaseTimeout: 30 * time.Second}
}

// LoadTransportConfig reads the configuration from the environment.
func LoadTransportConfig() (TransportConfig, error) {
	var config TransportConfig
	if err := envconfig.Process("", &config); err != nil {
		return TransportConfig{}, fmt.Errorf("%s - %w", configPrefix, err)
	}

	return config, config.Validate()
}

func (config TransportConfig) Validate() error {
	if config.BaseTimeout <= 0 {
		return fmt.Errorf("%s - STATEFUN_HTTP_TIMEOUT must be positive", configPrefix)
	}
	if config.MaxIdleConnsPerHost < 0 {
		return fmt.Errorf("%s - STATEFUN_HTTP_MAX_IDLE_CONNS_PER_HOST cannot be negative", configPrefix)
	}
	if config.MaxConns < 0 {
		return fmt.Errorf("%s - STATEFUN_HTTP_MAX_CONNS cannot be negative", configPrefix)
	}
	return nil
}

// ConnectTimeout bounds establishing a connection, TLS handshake included.
func (config TransportConfig) ConnectTimeout() time.Duration {
	return config.BaseTimeout
}

// ReadTimeout bounds the wait for a response once the request is sent.
func (config TransportConfig) ReadTimeout() time.Duration {
	return config.BaseTimeout
}

// WriteTimeout bounds each write of the request to the connection.
func (config TransportConfig) WriteTimeout() time.Duration {
	return config.BaseTimeout
}

// CallTimeout bounds the whole exchange. It is twice the base so a call
// that is slow in a single phase does not trip it.
func (config TransportConfig) CallTimeout() time.Duration {
	return 2 * config.BaseTimeout
}

// Timeouts lists the effective timeout of each phase of a call.
type Timeouts struct {
	Connect time.Duration
	Read    time.Duration
	Write   time.Duration
	Call    time.Duration
}

func (config TransportConfig) timeouts() Timeouts {
	return Timeouts{
		Connect: config.ConnectTimeout(),
		Read:    config.ReadTimeout(),
		Write:   config.WriteTimeout(),
		Call:    config.CallTimeout(),
	}
}
