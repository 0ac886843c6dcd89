package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Driver selects the backend implementation (minio, s3).
	Driver string `mapstructure:"driver" default:"minio"`
	// Endpoint is the URL of the storage service.
	// An empty endpoint targets AWS S3 itself.
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the default bucket used when a request does not name one.
	Bucket string `mapstructure:"bucket" default:"ai2-llm"`
	// Region is the location of the bucket.
	Region string `mapstructure:"region" default:"us-east-1"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

const (
	DriverMinio = "minio"
	DriverS3    = "s3"
)

// IsValidDriver checks if the configured driver is supported.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverMinio, DriverS3:
		return true
	default:
		return false
	}
}
