package config

import "os"

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	JWTSecret               string
	AWSRegion               string
	S3Bucket                string
	AWSAccessKey            string
	AWSSecretKey            string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		AWSRegion:               getEnv("AWS_REGION", "eu-central-1"),
		S3Bucket:                getEnv("S3_BUCKET", "cityscope-comment-images"),
		AWSAccessKey:            getEnv("AWS_ACCESS_KEY", ""),
		AWSSecretKey:            getEnv("AWS_SECRET_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
