package vision

import (
	"context"
	"fmt"
)

// Decoder reads the barcode digits off a product photo.
type Decoder interface {
	// Load initializes the decoder with its configuration
	Load(ctx context.Context) error
	// DecodeBarcode takes an image and returns the digit string it reads
	DecodeBarcode(ctx context.Context, imageData []byte) (string, error)
}

// DecoderFactory creates a new decoder instance based on configuration
type DecoderFactory interface {
	CreateDecoder() (Decoder, error)
}

// NewDecoder creates a decoder of the given kind ("google" or "local"),
// loading its configuration from configPath with env fallback.
func NewDecoder(kind, configPath string) (Decoder, error) {
	var factory DecoderFactory

	switch kind {
	case "google":
		config := GoogleConfig{
			BaseConfig: BaseConfig{ConfigPath: configPath},
		}
		if err := config.Load(); err != nil {
			return nil, fmt.Errorf("failed to load Google config: %w", err)
		}
		factory = NewGoogleDecoderFactory(config)
	case "local":
		config := LocalConfig{
			BaseConfig: BaseConfig{ConfigPath: configPath},
		}
		if err := config.Load(); err != nil {
			return nil, fmt.Errorf("failed to load local config: %w", err)
		}
		factory = NewLocalDecoderFactory(config)
	default:
		return nil, fmt.Errorf("unsupported decoder type: %s", kind)
	}
	return factory.CreateDecoder()
}
