package model

// Config corresponds to the top-level structure of config.yaml.
type Config struct {
	Token    string   `mapstructure:"TOKEN"`
	Database Database `mapstructure:"database"`
	Commands Commands `mapstructure:"commands"`
	Review   Review   `mapstructure:"review"`
	Admin    Admin    `mapstructure:"admin"`
	Assets   Assets   `mapstructure:"assets"`
}

// Database holds the SQLite settings.
type Database struct {
	Path string `mapstructure:"path"`
}

// Commands holds slash-command registration and authorization settings.
type Commands struct {
	AllowGuilds []string `mapstructure:"allow_guilds"`
	Auth        Auth     `mapstructure:"auth"`
}

// Auth lists the users and roles permitted to moderate.
type Auth struct {
	Developers []string `mapstructure:"Developers"`
	AdminRoles []string `mapstructure:"AdminRoles"`
}

// Review holds the Discord channels used by the moderation flow.
type Review struct {
	ReviewChannelID  string `mapstructure:"review_channel_id"`
	PublishChannelID string `mapstructure:"publish_channel_id"`
	QueueBatchSize   int    `mapstructure:"queue_batch_size"`
}

// Admin holds the admin HTTP API settings.
type Admin struct {
	Listen string `mapstructure:"listen"`
	Token  string `mapstructure:"token"`
}

// Assets holds the object storage settings for submission images.
type Assets struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}
