package config

// CompressionLevel selects the s2 encoder.
type CompressionLevel string

const (
	CompressionDefault CompressionLevel = "default"
	CompressionBetter  CompressionLevel = "better"
	CompressionBest    CompressionLevel = "best"
)

// CompressionCfg
//   - Supported levels:
//     default - s2.Encode, fastest
//     better  - s2.EncodeBetter
//     best    - s2.EncodeBest, slowest
//
// Only []byte and string values of tenants with compression enabled are compressed.
type CompressionCfg struct {
	Level CompressionLevel `yaml:"level"`

	IsBetter bool // virtual: computed during init
	IsBest   bool // virtual: computed during init
}

func (cfg *CompressionCfg) Enabled() bool {
	return cfg != nil
}
