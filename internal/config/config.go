package config

import (
	"fmt"
	"time"

	"github.com/groomly/pet-services/notifygateway/pkg/msgprovider"
	"github.com/groomly/pet-services/notifygateway/pkg/mq"
	"github.com/groomly/pet-services/notifygateway/pkg/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	API      API                `mapstructure:"api"`
	Database mysql.Config       `mapstructure:"database"`
	RabbitMQ mq.Config          `mapstructure:"rabbitmq"`
	Provider msgprovider.Config `mapstructure:"provider"`
	Poller   Poller             `mapstructure:"poller"`
	Dispatch Dispatch           `mapstructure:"dispatch"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Poller struct {
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
	LeaseTTL  time.Duration `mapstructure:"lease_ttl"`
}

type Dispatch struct {
	Workers  int `mapstructure:"workers"`
	Prefetch int `mapstructure:"prefetch"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
