package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/zeromicro/go-zero/core/logc"
)

type App struct {
	Server  Server  `yaml:"server"`
	MySQL   MySQL   `yaml:"mysql"`
	Ansible Ansible `yaml:"ansible"`
	Monitor Monitor `yaml:"monitor"`
}

type Server struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"`
}

type MySQL struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	User    string `yaml:"user"`
	Pass    string `yaml:"pass"`
	DBName  string `yaml:"dbname"`
	Timeout string `yaml:"timeout"`
}

// Ansible 远程执行相关配置，沿用运维口径的命名
type Ansible struct {
	ScriptDir       string `yaml:"scriptDir"`
	InitPlaybook    string `yaml:"initPlaybook"`
	FactPlaybook    string `yaml:"factPlaybook"`
	MonitorPlaybook string `yaml:"monitorPlaybook"`
	KeyFile         string `yaml:"keyFile"`
	Forks           int    `yaml:"forks"`
	TimeoutSeconds  int    `yaml:"timeoutSeconds"`
}

type Monitor struct {
	SyncIntervalSeconds int  `yaml:"syncIntervalSeconds"`
	Enabled             bool `yaml:"enabled"`
}

// defaultKeyFile 控制端私钥的默认路径，对应公钥取 <keyFile>.pub
func defaultKeyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ssh", "id_rsa")
}

func InitConfig() App {
	v := viper.New()
	v.SetConfigFile("config.yaml")
	v.SetConfigType("yaml")

	// 未显式配置时的兜底值
	v.SetDefault("server.port", "9001")
	v.SetDefault("server.mode", "release")
	v.SetDefault("ansible.keyFile", defaultKeyFile())
	v.SetDefault("ansible.forks", 100)
	v.SetDefault("ansible.timeoutSeconds", 120)
	v.SetDefault("monitor.syncIntervalSeconds", 15)
	v.SetDefault("monitor.enabled", true)

	if err := v.ReadInConfig(); err != nil {
		logc.Errorf(context.Background(), "读取配置文件失败: %s", err.Error())
		panic(err)
	}

	var config App
	if err := v.Unmarshal(&config); err != nil {
		logc.Errorf(context.Background(), "解析配置文件失败: %s", err.Error())
		panic(err)
	}
	return config
}
