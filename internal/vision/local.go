package vision

import (
	"context"
	"fmt"
	"os"
)

// LocalConfig holds configuration for the local decoder
type LocalConfig struct {
	BaseConfig
	ModelPath string `json:"model_path"`
}

// Load loads the local configuration
func (c *LocalConfig) Load() error {
	if err := c.LoadConfig(c.ConfigPath, "local", c); err != nil {
		return err
	}

	if c.ModelPath == "" {
		c.ModelPath = os.Getenv("LOCAL_MODEL_PATH")
	}

	return nil
}

// LocalDecoder implements the Decoder interface for on-device decoding
type LocalDecoder struct {
	config LocalConfig
}

// LocalDecoderFactory implements DecoderFactory for local decoders
type LocalDecoderFactory struct {
	config LocalConfig
}

// NewLocalDecoderFactory creates a new local decoder factory
func NewLocalDecoderFactory(config LocalConfig) *LocalDecoderFactory {
	return &LocalDecoderFactory{config: config}
}

// CreateDecoder creates a new local decoder instance
func (f *LocalDecoderFactory) CreateDecoder() (Decoder, error) {
	return &LocalDecoder{
		config: f.config,
	}, nil
}

// Load initializes the local decoder
func (d *LocalDecoder) Load(ctx context.Context) error {
	return nil
}

// DecodeBarcode decodes an image using a local model
func (d *LocalDecoder) DecodeBarcode(ctx context.Context, imageData []byte) (string, error) {
	return "", fmt.Errorf("unimplemented: local barcode decoding not yet implemented")
}
