package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// AdminConfig is the fixed-credential admin login contract. It is a
// placeholder boundary, not an authentication system.
type AdminConfig struct {
	Email    string `yaml:"email" json:"email"`
	Password string `yaml:"password" json:"password"`
}

type InstagramConfig struct {
	AccessToken string `yaml:"access_token" json:"access_token"`
	UserID      string `yaml:"user_id" json:"user_id"`
}

type AppConfig struct {
	System    SysConfig       `yaml:"system" json:"system"`
	Web       WebConfig       `yaml:"web" json:"web"`
	Database  DBConfig        `yaml:"database" json:"database"`
	Logger    LogConfig       `yaml:"logger" json:"logger"`
	Admin     AdminConfig     `yaml:"admin" json:"admin"`
	Instagram InstagramConfig `yaml:"instagram" json:"instagram"`
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(c.Workdir("logs"), 0755)
	_ = os.MkdirAll(c.Workdir("uploads"), 0755)
	_ = os.MkdirAll(c.Workdir("data"), 0755)
}

// Workdir joins path elements under the configured working directory.
func (c *AppConfig) Workdir(elem ...string) string {
	return filepath.Join(append([]string{c.System.Workdir}, elem...)...)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "Storefront",
		Location: "America/New_York",
		Workdir:  "/var/storefront",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-0001-1203-xxtt-0f568ac9da37",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "storefront",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/storefront/storefront.log",
	},
	Admin: AdminConfig{
		Email:    "admin@chamberedinseams.com",
		Password: "admin123",
	},
	Instagram: InstagramConfig{},
}

func setEnvValue(name string, f func(v string)) {
	if v := os.Getenv(name); v != "" {
		f(v)
	}
}

// LoadConfig reads the YAML config file and applies environment overrides.
// A missing file yields the default configuration.
func LoadConfig(cfile string) *AppConfig {
	_ = godotenv.Load()

	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("STOREFRONT_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("STOREFRONT_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = cast.ToBool(v) })
	setEnvValue("STOREFRONT_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("STOREFRONT_WEB_PORT", func(v string) { cfg.Web.Port = cast.ToInt(v) })
	setEnvValue("STOREFRONT_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("STOREFRONT_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("STOREFRONT_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("STOREFRONT_DB_PORT", func(v string) { cfg.Database.Port = cast.ToInt(v) })
	setEnvValue("STOREFRONT_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("STOREFRONT_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("STOREFRONT_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("STOREFRONT_ADMIN_EMAIL", func(v string) { cfg.Admin.Email = v })
	setEnvValue("STOREFRONT_ADMIN_PASSWORD", func(v string) { cfg.Admin.Password = v })
	setEnvValue("STOREFRONT_INSTAGRAM_TOKEN", func(v string) { cfg.Instagram.AccessToken = v })
	setEnvValue("STOREFRONT_INSTAGRAM_USER", func(v string) { cfg.Instagram.UserID = v })

	return cfg
}
